package scripts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/reqio"
	"github.com/aretw0/reqio/pkg/ports"
)

// ErrNoUser is returned when the chat user name is empty or never arrives.
var ErrNoUser = errors.New("chat: no user name given")

// ChatPrompt is the first line the chat script writes.
const ChatPrompt = "Choose a username:"

// Chat joins the hub as the user named on the first input line.
//
// Every later input line M is published as "[user] M". Every message on the
// hub that was not sent by this user is written out and flushed. When the
// input ends or ctx is cancelled, "user has left the building" is published
// and Chat returns.
func Chat(ctx context.Context, req *reqio.Request, hub ports.ChatHub, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := req.Out.WriteLine(ctx, ChatPrompt); err != nil {
		return err
	}
	if err := req.Out.Flush(ctx); err != nil {
		return err
	}

	name, err := req.In.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return ErrNoUser
	}
	if err != nil {
		return err
	}
	user := strings.TrimSpace(name)
	if user == "" {
		return ErrNoUser
	}
	tag := "[" + user + "]"

	sub, err := hub.Subscribe(ctx)
	if err != nil {
		return err
	}
	defer sub.Close()
	logger.Debug("chat joined", "user", user)

	relayCtx, stopRelay := context.WithCancel(ctx)
	relayDone := make(chan error, 1)
	go func() {
		relayDone <- relay(relayCtx, req.Out, sub, tag)
	}()

	inputErr := publishInput(ctx, req.In, hub, tag)

	stopRelay()
	relayErr := <-relayDone

	// The farewell goes out even when the session was cancelled.
	leaveErr := hub.Publish(context.WithoutCancel(ctx), fmt.Sprintf("%s has left the building", user))
	logger.Debug("chat left", "user", user)

	if inputErr != nil && !errors.Is(inputErr, context.Canceled) {
		return errors.Join(inputErr, relayErr, leaveErr)
	}
	return errors.Join(relayErr, leaveErr)
}

func publishInput(ctx context.Context, in *reqio.Input, hub ports.ChatHub, tag string) error {
	for {
		line, err := in.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := hub.Publish(ctx, tag+" "+line); err != nil {
			return err
		}
	}
}

func relay(ctx context.Context, out *reqio.Output, sub ports.Subscription, tag string) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-sub.Messages():
			if !ok {
				return nil
			}
			if strings.HasPrefix(msg, tag) {
				continue
			}
			if err := out.WriteLine(ctx, msg); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			if err := out.Flush(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}
