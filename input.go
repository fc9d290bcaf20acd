package reqio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
)

// Input is the read side of a request.
//
// Lines are pulled from the source by a background pump so that ReadLine
// can honour context cancellation. A line received by the pump is never
// dropped: if the caller gives up waiting, the next ReadLine returns it.
type Input struct {
	reader   *bufio.Reader
	observer Observer

	lines     chan string
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once

	// final is the error that stopped the pump. It is written before lines
	// is closed and only read after observing the close.
	final error

	eof    atomic.Bool
	closed atomic.Bool
	read   atomic.Int64
}

func newInput(r io.Reader, size int, observer Observer) *Input {
	return &Input{
		reader:   bufio.NewReaderSize(r, size),
		observer: observer,
		lines:    make(chan string),
		done:     make(chan struct{}),
	}
}

func (in *Input) initPump() {
	in.startOnce.Do(func() {
		go in.pump()
	})
}

func (in *Input) pump() {
	defer close(in.lines)
	for {
		text, err := in.reader.ReadString('\n')

		// A final line without a newline still counts as a line.
		if text != "" {
			select {
			case in.lines <- text:
			case <-in.done:
				return
			}
		}

		if err != nil {
			in.final = err
			return
		}
	}
}

// ReadLine blocks until a full line or the end of the stream is available.
// The line is returned without its trailing "\n" (or "\r\n").
// At the end of the stream it returns io.EOF, and keeps returning it.
func (in *Input) ReadLine(ctx context.Context) (string, error) {
	if in.closed.Load() {
		return "", ErrClosed
	}
	if in.eof.Load() {
		return "", io.EOF
	}

	in.initPump()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-in.done:
		return "", ErrClosed
	case text, ok := <-in.lines:
		if !ok {
			return "", in.finish()
		}
		in.read.Add(1)
		in.observer.LineRead()
		return trimNewline(text), nil
	}
}

func (in *Input) finish() error {
	if in.closed.Load() {
		return ErrClosed
	}
	if in.final != nil && !errors.Is(in.final, io.EOF) {
		return fmt.Errorf("reqio: read line: %w", in.final)
	}
	if in.eof.CompareAndSwap(false, true) {
		in.observer.EndOfStream()
	}
	return io.EOF
}

// IsEndOfStream reports whether a read has already reached the end of the
// input. It never blocks.
func (in *Input) IsEndOfStream() bool {
	return in.eof.Load()
}

// LinesRead returns the number of lines returned so far.
func (in *Input) LinesRead() int64 {
	return in.read.Load()
}

// State reports StateClosed after Close and StateOpen before.
func (in *Input) State() State {
	if in.closed.Load() {
		return StateClosed
	}
	return StateOpen
}

// Close stops the pump. The underlying reader is not closed.
// Closing twice is a no-op.
func (in *Input) Close() error {
	in.closeOnce.Do(func() {
		in.closed.Store(true)
		close(in.done)
	})
	return nil
}

func trimNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
