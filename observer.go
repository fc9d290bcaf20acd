package reqio

// Observer receives notifications about handle activity.
// Implementations must be safe for concurrent use and must not block.
type Observer interface {
	LineRead()
	LineWritten()
	Flushed()
	EndOfStream()
}

type nopObserver struct{}

func (nopObserver) LineRead()    {}
func (nopObserver) LineWritten() {}
func (nopObserver) Flushed()     {}
func (nopObserver) EndOfStream() {}

// ObserverFuncs adapts plain functions to the Observer interface.
// Nil fields are ignored.
type ObserverFuncs struct {
	OnLineRead    func()
	OnLineWritten func()
	OnFlush       func()
	OnEndOfStream func()
}

func (o ObserverFuncs) LineRead() {
	if o.OnLineRead != nil {
		o.OnLineRead()
	}
}

func (o ObserverFuncs) LineWritten() {
	if o.OnLineWritten != nil {
		o.OnLineWritten()
	}
}

func (o ObserverFuncs) Flushed() {
	if o.OnFlush != nil {
		o.OnFlush()
	}
}

func (o ObserverFuncs) EndOfStream() {
	if o.OnEndOfStream != nil {
		o.OnEndOfStream()
	}
}
