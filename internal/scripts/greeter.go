package scripts

import (
	"context"
	"errors"
	"io"

	"github.com/aretw0/reqio"
)

// DefaultGreeting is the template used when none is configured.
const DefaultGreeting = "Hello %s!"

// Greeter answers every input line L with the greeting (by default
// "Hello L!") until the input ends. The end of stream itself produces no
// output.
func Greeter(ctx context.Context, req *reqio.Request, format string) error {
	if format == "" {
		format = DefaultGreeting
	}
	return eachLine(ctx, req, func(line string) error {
		return req.Out.Writef(ctx, format+"\n", line)
	})
}

// Echo answers every input line L with prefix+L.
func Echo(ctx context.Context, req *reqio.Request, prefix string) error {
	return eachLine(ctx, req, func(line string) error {
		return req.Out.WriteLine(ctx, prefix+line)
	})
}

// eachLine calls reply for every input line and flushes after each reply,
// then once more when the input ends.
func eachLine(ctx context.Context, req *reqio.Request, reply func(line string) error) error {
	for !req.In.IsEndOfStream() {
		line, err := req.In.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if err := reply(line); err != nil {
			return err
		}
		if err := req.Out.Flush(ctx); err != nil {
			return err
		}
	}
	return req.Out.Flush(ctx)
}
