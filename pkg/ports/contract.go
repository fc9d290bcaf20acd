package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contractTimeout = 2 * time.Second

// RunChatHubContract runs a suite of tests to verify that a ChatHub
// implementation adheres to the defined interface contract.
func RunChatHubContract(t *testing.T, hub ChatHub) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	t.Run("Fan Out", func(t *testing.T) {
		first, err := hub.Subscribe(ctx)
		require.NoError(t, err, "Subscribe should not return error")
		defer first.Close()

		second, err := hub.Subscribe(ctx)
		require.NoError(t, err)
		defer second.Close()

		require.NoError(t, hub.Publish(ctx, "[alice] hello"))

		assert.Equal(t, "[alice] hello", receive(t, first))
		assert.Equal(t, "[alice] hello", receive(t, second))
	})

	t.Run("Publish Order", func(t *testing.T) {
		sub, err := hub.Subscribe(ctx)
		require.NoError(t, err)
		defer sub.Close()

		for _, msg := range []string{"one", "two", "three"} {
			require.NoError(t, hub.Publish(ctx, msg))
		}

		assert.Equal(t, "one", receive(t, sub))
		assert.Equal(t, "two", receive(t, sub))
		assert.Equal(t, "three", receive(t, sub))
	})

	t.Run("Close Ends Feed", func(t *testing.T) {
		sub, err := hub.Subscribe(ctx)
		require.NoError(t, err)

		require.NoError(t, sub.Close())

		select {
		case _, ok := <-sub.Messages():
			assert.False(t, ok, "Messages should be closed after Close")
		case <-time.After(contractTimeout):
			t.Fatal("Messages was not closed after Close")
		}

		// Publishing with nobody listening is not an error.
		assert.NoError(t, hub.Publish(ctx, "into the void"))
	})
}

func receive(t *testing.T, sub Subscription) string {
	t.Helper()
	select {
	case msg, ok := <-sub.Messages():
		require.True(t, ok, "subscription closed unexpectedly")
		return msg
	case <-time.After(contractTimeout):
		t.Fatal("timed out waiting for message")
		return ""
	}
}
