package scripts_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/reqio"
	"github.com/aretw0/reqio/internal/scripts"
	"github.com/aretw0/reqio/pkg/adapters/memory"
	"github.com/aretw0/reqio/pkg/adapters/redis"
	"github.com/aretw0/reqio/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("chat did not return")
		return nil
	}
}

func TestChat_Session(t *testing.T) {
	ctx := context.Background()
	hub := memory.NewHub()
	pr, pw := io.Pipe()
	out := &syncBuffer{}
	req := reqio.New(pr, out)
	defer req.Close()

	done := make(chan error, 1)
	go func() { done <- scripts.Chat(ctx, req, hub, nil) }()

	fmt.Fprintln(pw, "alice")
	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.Publish(ctx, "[bob] hi alice"))
	require.Eventually(t, func() bool { return strings.Contains(out.String(), "[bob] hi alice") },
		time.Second, 5*time.Millisecond)

	fmt.Fprintln(pw, "hello bob")
	require.NoError(t, pw.Close())
	require.NoError(t, waitDone(t, done))

	assert.Equal(t, "Choose a username:\n[bob] hi alice\n", out.String(), "own messages are not echoed")
	assert.Equal(t, []string{
		"[bob] hi alice",
		"[alice] hello bob",
		"alice has left the building",
	}, hub.Published())
	assert.Zero(t, hub.Subscribers(), "subscription is released")
}

func TestChat_NoUser(t *testing.T) {
	for name, input := range map[string]string{
		"Empty Input": "",
		"Blank Name":  "   \n",
	} {
		t.Run(name, func(t *testing.T) {
			hub := memory.NewHub()
			out := &syncBuffer{}
			req := reqio.New(strings.NewReader(input), out)
			defer req.Close()

			err := scripts.Chat(context.Background(), req, hub, nil)
			assert.ErrorIs(t, err, scripts.ErrNoUser)
			assert.Equal(t, scripts.ChatPrompt+"\n", out.String())
			assert.Empty(t, hub.Published())
		})
	}
}

func TestChat_CancelPublishesFarewell(t *testing.T) {
	hub := memory.NewHub()
	pr, pw := io.Pipe()
	defer pw.Close()
	req := reqio.New(pr, io.Discard)
	defer req.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- scripts.Chat(ctx, req, hub, nil) }()

	fmt.Fprintln(pw, "carol")
	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, waitDone(t, done))
	assert.Equal(t, []string{"carol has left the building"}, hub.Published())
}

func TestChat_Redis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	hub := redis.New(mr.Addr(), "chat")
	defer hub.Close()

	watcher, err := hub.Subscribe(ctx)
	require.NoError(t, err)
	defer watcher.Close()

	req := reqio.New(strings.NewReader("dave\nanyone here?\n"), io.Discard)
	defer req.Close()
	require.NoError(t, scripts.Chat(ctx, req, hub, nil))

	assert.Equal(t, "[dave] anyone here?", next(t, watcher))
	assert.Equal(t, "dave has left the building", next(t, watcher))
}

func next(t *testing.T, sub ports.Subscription) string {
	t.Helper()
	select {
	case msg := <-sub.Messages():
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return ""
	}
}
