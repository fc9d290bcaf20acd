package reqio_test

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"strings"

	"github.com/aretw0/reqio"
)

// ExampleNew answers each input line with a greeting and flushes once the
// input is exhausted.
func ExampleNew() {
	ctx := context.Background()
	req := reqio.New(strings.NewReader("World\nGopher\n"), os.Stdout)
	defer req.Close()

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

	if err := req.Out.Flush(ctx); err != nil {
		log.Fatal(err)
	}

	// Output:
	// Hello World!
	// Hello Gopher!
}
