package main

import (
	"context"

	"github.com/aretw0/reqio/internal/scripts"
	"github.com/spf13/cobra"
)

func newGreeterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "greeter",
		Short: `For each line FOO received on stdin, respond with "Hello FOO!"`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, "greeter", func(ctx context.Context, s *session) error {
				return scripts.Greeter(ctx, s.req, s.cfg.Greeter.Format)
			})
		},
	}
}

func newEchoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "echo",
		Short: `For each line FOO received on stdin, respond with "RCVD: FOO"`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, "echo", func(ctx context.Context, s *session) error {
				return scripts.Echo(ctx, s.req, s.cfg.Echo.Prefix)
			})
		},
	}
}
