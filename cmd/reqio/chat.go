package main

import (
	"context"
	"time"

	"github.com/aretw0/reqio/internal/scripts"
	"github.com/aretw0/reqio/pkg/adapters/redis"
	"github.com/spf13/cobra"
)

const pingTimeout = 5 * time.Second

func newChatCmd() *cobra.Command {
	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Join a Redis-backed chat room",
		Long: `Asks for a username, then publishes every input line to a Redis channel
and prints every message from the other participants.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, "chat", func(ctx context.Context, s *session) error {
				addr := s.cfg.Chat.RedisAddr
				if cmd.Flags().Changed("redis") {
					addr, _ = cmd.Flags().GetString("redis")
				}
				channel := s.cfg.Chat.Channel
				if cmd.Flags().Changed("channel") {
					channel, _ = cmd.Flags().GetString("channel")
				}

				hub := redis.New(addr, channel)
				defer hub.Close()

				pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
				defer cancel()
				if err := hub.Ping(pingCtx); err != nil {
					return err
				}

				s.logger.Debug("chat connected", "addr", addr, "channel", channel)
				return scripts.Chat(ctx, s.req, hub, s.logger)
			})
		},
	}

	chatCmd.Flags().String("redis", "", "Redis address (default from config, localhost:6379)")
	chatCmd.Flags().String("channel", "", "Redis pub/sub channel (default from config, chat)")
	return chatCmd
}
