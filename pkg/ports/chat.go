package ports

import "context"

// ChatHub is a broadcast channel shared by every chat participant.
type ChatHub interface {
	// Publish delivers msg to every current subscriber.
	Publish(ctx context.Context, msg string) error
	// Subscribe returns once the subscription is active: any message
	// published after it returns is delivered to it.
	Subscribe(ctx context.Context) (Subscription, error)
}

// Subscription is a live message feed.
type Subscription interface {
	// Messages is closed after Close.
	Messages() <-chan string
	Close() error
}
