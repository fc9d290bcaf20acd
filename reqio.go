package reqio

import (
	"errors"
	"io"
	"log/slog"
	"os"
)

const defaultBufferSize = 4096

// Request bundles the input and output handles of one execution context.
// Neither handle should outlive the context; Close tears both down.
type Request struct {
	In  *Input
	Out *Output

	logger *slog.Logger
}

type options struct {
	autoFlush  bool
	observer   Observer
	logger     *slog.Logger
	bufferSize int
}

// Option defines a functional option for configuring a Request.
type Option func(*options)

// WithAutoFlush flushes the output after every write.
func WithAutoFlush(enabled bool) Option {
	return func(o *options) {
		o.autoFlush = enabled
	}
}

// WithObserver registers an observer for read, write and flush activity.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithLogger sets the structured logger used for lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithBufferSize sets the size of the read and write buffers.
func WithBufferSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.bufferSize = size
		}
	}
}

// New creates a Request reading from r and writing to w.
// A nil reader or writer falls back to os.Stdin or os.Stdout.
func New(r io.Reader, w io.Writer, opts ...Option) *Request {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}

	o := options{
		observer:   nopObserver{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		bufferSize: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.observer == nil {
		o.observer = nopObserver{}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	o.logger.Debug("request opened", "auto_flush", o.autoFlush)

	return &Request{
		In:     newInput(r, o.bufferSize, o.observer),
		Out:    newOutput(w, o.bufferSize, o.autoFlush, o.observer),
		logger: o.logger,
	}
}

// Close flushes and closes the output, then closes the input.
// It is safe to call more than once.
func (r *Request) Close() error {
	outErr := r.Out.Close()
	inErr := r.In.Close()

	r.logger.Debug("request closed",
		"lines_read", r.In.LinesRead(),
		"lines_written", r.Out.LinesWritten(),
		"end_of_stream", r.In.IsEndOfStream(),
	)
	return errors.Join(outErr, inErr)
}
