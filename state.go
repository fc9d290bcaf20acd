package reqio

// State is the lifecycle position of a handle.
type State int

const (
	// StateOpen is the initial state. Reads and writes keep a handle here.
	StateOpen State = iota
	// StateFlushed means every byte written so far has reached the
	// underlying writer. A new write moves the handle back to StateOpen.
	StateFlushed
	// StateClosed is terminal.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateFlushed:
		return "flushed"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
