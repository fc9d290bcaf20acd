package reqio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Output is the write side of a request.
// It is safe for concurrent use; writes reach the underlying writer in the
// order the calls acquired the handle.
type Output struct {
	mu        sync.Mutex
	w         *bufio.Writer
	observer  Observer
	autoFlush bool
	state     State
	lines     int64
}

func newOutput(w io.Writer, size int, autoFlush bool, observer Observer) *Output {
	return &Output{
		w:         bufio.NewWriterSize(w, size),
		observer:  observer,
		autoFlush: autoFlush,
		state:     StateOpen,
	}
}

// WriteLine queues text followed by a newline.
func (out *Output) WriteLine(ctx context.Context, text string) error {
	return out.write(ctx, text+"\n")
}

// Write queues s as is.
func (out *Output) Write(ctx context.Context, s string) error {
	return out.write(ctx, s)
}

// Writef queues the formatted string. The format carries its own newline.
func (out *Output) Writef(ctx context.Context, format string, args ...any) error {
	return out.write(ctx, fmt.Sprintf(format, args...))
}

func (out *Output) write(ctx context.Context, s string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out.mu.Lock()
	defer out.mu.Unlock()

	if out.state == StateClosed {
		return ErrClosed
	}
	if _, err := out.w.WriteString(s); err != nil {
		return fmt.Errorf("reqio: write: %w", err)
	}
	out.state = StateOpen

	n := strings.Count(s, "\n")
	out.lines += int64(n)
	for i := 0; i < n; i++ {
		out.observer.LineWritten()
	}

	if out.autoFlush {
		return out.flushLocked()
	}
	return nil
}

// Flush delivers every buffered byte to the underlying writer.
func (out *Output) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out.mu.Lock()
	defer out.mu.Unlock()

	if out.state == StateClosed {
		return ErrClosed
	}
	return out.flushLocked()
}

func (out *Output) flushLocked() error {
	if err := out.w.Flush(); err != nil {
		return fmt.Errorf("reqio: flush: %w", err)
	}
	out.state = StateFlushed
	out.observer.Flushed()
	return nil
}

// Buffered returns the number of bytes written but not yet flushed.
func (out *Output) Buffered() int {
	out.mu.Lock()
	defer out.mu.Unlock()
	return out.w.Buffered()
}

// LinesWritten returns the number of newline-terminated lines queued so far.
func (out *Output) LinesWritten() int64 {
	out.mu.Lock()
	defer out.mu.Unlock()
	return out.lines
}

// State returns the current lifecycle state.
func (out *Output) State() State {
	out.mu.Lock()
	defer out.mu.Unlock()
	return out.state
}

// Close flushes pending output and moves the handle to StateClosed.
// The handle is closed even if the final flush fails.
// The underlying writer is not closed.
func (out *Output) Close() error {
	out.mu.Lock()
	defer out.mu.Unlock()

	if out.state == StateClosed {
		return nil
	}
	err := out.flushLocked()
	out.state = StateClosed
	return err
}
