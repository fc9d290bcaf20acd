package redis

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/reqio/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Hub implements ports.ChatHub on a Redis pub/sub channel.
type Hub struct {
	client  *backend.Client
	channel string
}

// Ensure Hub implements ports.ChatHub
var _ ports.ChatHub = (*Hub)(nil)

// New creates a Hub connected to the Redis server at addr.
func New(addr, channel string) *Hub {
	client := backend.NewClient(&backend.Options{
		Addr: addr,
	})
	return NewFromClient(client, channel)
}

// NewFromClient creates a Hub from an existing client.
func NewFromClient(client *backend.Client, channel string) *Hub {
	return &Hub{
		client:  client,
		channel: channel,
	}
}

// Ping checks that the server is reachable.
func (h *Hub) Ping(ctx context.Context) error {
	if err := h.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Publish sends msg to the channel.
func (h *Hub) Publish(ctx context.Context, msg string) error {
	if err := h.client.Publish(ctx, h.channel, msg).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Subscribe waits for the server to confirm the subscription before
// returning, so nothing published afterwards is missed.
func (h *Hub) Subscribe(ctx context.Context) (ports.Subscription, error) {
	ps := h.client.Subscribe(ctx, h.channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("redis subscribe %s: %w", h.channel, err)
	}

	sub := &subscription{
		ps:   ps,
		out:  make(chan string),
		done: make(chan struct{}),
	}
	go sub.forward(ps.Channel())
	return sub, nil
}

// Close releases the underlying client.
func (h *Hub) Close() error {
	return h.client.Close()
}

type subscription struct {
	ps   *backend.PubSub
	out  chan string
	done chan struct{}
	once sync.Once
	err  error
}

func (s *subscription) forward(in <-chan *backend.Message) {
	defer close(s.out)
	for {
		select {
		case <-s.done:
			return
		case msg, ok := <-in:
			if !ok {
				return
			}
			select {
			case s.out <- msg.Payload:
			case <-s.done:
				return
			}
		}
	}
}

func (s *subscription) Messages() <-chan string {
	return s.out
}

func (s *subscription) Close() error {
	s.once.Do(func() {
		close(s.done)
		s.err = s.ps.Close()
	})
	return s.err
}
