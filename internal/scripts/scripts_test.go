package scripts_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/reqio"
	"github.com/aretw0/reqio/internal/scripts"
	"github.com/aretw0/reqio/pkg/cgienv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer that tolerates a concurrent reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func run(t *testing.T, input string, script func(context.Context, *reqio.Request) error) string {
	t.Helper()
	out := &bytes.Buffer{}
	req := reqio.New(strings.NewReader(input), out)
	require.NoError(t, script(context.Background(), req))
	require.NoError(t, req.Close())
	return out.String()
}

func TestCount(t *testing.T) {
	got := run(t, "", func(ctx context.Context, req *reqio.Request) error {
		return scripts.Count(ctx, req, scripts.CountOptions{Limit: 10})
	})
	assert.Equal(t, "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n", got)
}

func TestCount_Pacing(t *testing.T) {
	start := time.Now()
	got := run(t, "", func(ctx context.Context, req *reqio.Request) error {
		return scripts.Count(ctx, req, scripts.CountOptions{Limit: 3, Interval: 20 * time.Millisecond})
	})
	assert.Equal(t, "1\n2\n3\n", got)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestCount_FlushesEachNumber(t *testing.T) {
	out := &syncBuffer{}
	req := reqio.New(strings.NewReader(""), out)
	defer req.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- scripts.Count(ctx, req, scripts.CountOptions{Limit: 10, Interval: time.Hour})
	}()

	require.Eventually(t, func() bool { return out.String() == "1\n" }, time.Second, 5*time.Millisecond,
		"the first number is visible before the pause")

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("count did not stop on cancel")
	}
	assert.Equal(t, "1\n", out.String())
}

func TestCount_ZeroLimit(t *testing.T) {
	got := run(t, "", func(ctx context.Context, req *reqio.Request) error {
		return scripts.Count(ctx, req, scripts.CountOptions{})
	})
	assert.Empty(t, got)
}

func TestDumpEnv(t *testing.T) {
	env := cgienv.Parse([]string{
		"HTTP_USER_AGENT=curl/8.0",
		"REMOTE_ADDR=127.0.0.1",
		"PATH=/usr/bin",
		"HTTP_ACCEPT=*/*",
		"SERVER_PORT=8080",
	})

	got := run(t, "", func(ctx context.Context, req *reqio.Request) error {
		return scripts.DumpEnv(ctx, req, env)
	})

	var want strings.Builder
	for _, name := range cgienv.Names {
		value := cgienv.Unset
		switch name {
		case "REMOTE_ADDR":
			value = "127.0.0.1"
		case "SERVER_PORT":
			value = "8080"
		}
		fmt.Fprintf(&want, "%s = %s\n", name, value)
	}
	want.WriteString("HTTP_USER_AGENT = curl/8.0\n")
	want.WriteString("HTTP_ACCEPT = */*\n")

	assert.Equal(t, want.String(), got)
}

func TestGreeter(t *testing.T) {
	greet := func(ctx context.Context, req *reqio.Request) error {
		return scripts.Greeter(ctx, req, "")
	}

	t.Run("Lines In Order", func(t *testing.T) {
		got := run(t, "World\nGopher\r\n\nlast", greet)
		assert.Equal(t, "Hello World!\nHello Gopher!\nHello !\nHello last!\n", got)
	})

	t.Run("No Input", func(t *testing.T) {
		assert.Empty(t, run(t, "", greet))
	})

	t.Run("Idempotent", func(t *testing.T) {
		input := "a\nb\nc\n"
		assert.Equal(t, run(t, input, greet), run(t, input, greet))
	})

	t.Run("Custom Format", func(t *testing.T) {
		got := run(t, "there\n", func(ctx context.Context, req *reqio.Request) error {
			return scripts.Greeter(ctx, req, "Hi %s :)")
		})
		assert.Equal(t, "Hi there :)\n", got)
	})
}

func TestGreeter_RepliesBeforeInputEnds(t *testing.T) {
	pr, pw := io.Pipe()
	out := &syncBuffer{}
	req := reqio.New(pr, out)
	defer req.Close()

	done := make(chan error, 1)
	go func() { done <- scripts.Greeter(context.Background(), req, "") }()

	fmt.Fprintln(pw, "first")
	require.Eventually(t, func() bool { return out.String() == "Hello first!\n" }, time.Second, 5*time.Millisecond)

	require.NoError(t, pw.Close())
	require.NoError(t, <-done)
	assert.Equal(t, "Hello first!\n", out.String())
}

func TestEcho(t *testing.T) {
	got := run(t, "ping\npong\n", func(ctx context.Context, req *reqio.Request) error {
		return scripts.Echo(ctx, req, "RCVD: ")
	})
	assert.Equal(t, "RCVD: ping\nRCVD: pong\n", got)
}
