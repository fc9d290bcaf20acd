/*
Package reqio is a small line-oriented request I/O facade.

A Request binds the input and output streams of one execution context (a
single process run, or a single served request) and exposes them as lines:
read a line, write a line, flush. Every call that may block takes a
context.Context so a script can be interrupted between lines.

# Concept

The handle follows a simple lifecycle:

	Open -> (Reading|Writing)* -> Flushed -> Closed

Writes are buffered until Flush (or Close) delivers them to the underlying
writer. Reads return lines without their trailing newline and report
io.EOF once the input is exhausted. Closed is terminal: every operation on
a closed handle returns ErrClosed.

# Usage

The greeter below answers every input line with "Hello <line>!".

	package main

	import (
		"context"
		"errors"
		"io"
		"log"

		"github.com/aretw0/reqio"
	)

	func main() {
		ctx := context.Background()
		req := reqio.Stdio()
		defer req.Close(ctx)

		for !req.In.IsEndOfStream() {
			line, err := req.In.ReadLine(ctx)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				log.Fatal(err)
			}
			if err := req.Out.Writef(ctx, "Hello %s!\n", line); err != nil {
				log.Fatal(err)
			}
		}
	}

Stdio enables auto-flush when stdout is a terminal, mirroring the line
buffering of a C stdio stream. Pipes stay fully buffered until Flush.
*/
package reqio
