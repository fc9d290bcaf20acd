package reqio

import (
	"os"

	"golang.org/x/term"
)

// Stdio binds a Request to the process's standard input and output.
//
// When stdout is a terminal, output is flushed after every write, the way
// an interactive C stdio stream is line buffered. Options passed by the
// caller override that default.
func Stdio(opts ...Option) *Request {
	defaults := []Option{WithAutoFlush(isTerminal(os.Stdout))}
	return New(os.Stdin, os.Stdout, append(defaults, opts...)...)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
