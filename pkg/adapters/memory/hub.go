package memory

import (
	"context"
	"sync"

	"github.com/aretw0/reqio/pkg/ports"
)

const subscriptionBuffer = 64

// Hub implements ports.ChatHub in memory.
// Safe for concurrent use. A subscriber that stops reading blocks
// publishers once its buffer is full.
type Hub struct {
	mu   sync.Mutex
	subs map[*subscription]struct{}
	log  []string
}

// Ensure Hub implements ports.ChatHub
var _ ports.ChatHub = (*Hub)(nil)

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[*subscription]struct{}),
	}
}

// Publish delivers msg to every current subscriber.
func (h *Hub) Publish(ctx context.Context, msg string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.log = append(h.log, msg)
	for sub := range h.subs {
		select {
		case sub.ch <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Subscribe registers a new subscriber.
func (h *Hub) Subscribe(ctx context.Context) (ports.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sub := &subscription{
		hub: h,
		ch:  make(chan string, subscriptionBuffer),
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub, nil
}

// Subscribers returns the number of active subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Published returns a copy of every message published so far.
func (h *Hub) Published() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.log...)
}

type subscription struct {
	hub  *Hub
	ch   chan string
	once sync.Once
}

func (s *subscription) Messages() <-chan string {
	return s.ch
}

func (s *subscription) Close() error {
	s.once.Do(func() {
		s.hub.mu.Lock()
		defer s.hub.mu.Unlock()
		delete(s.hub.subs, s)
		close(s.ch)
	})
	return nil
}
