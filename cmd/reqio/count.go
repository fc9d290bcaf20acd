package main

import (
	"context"

	"github.com/aretw0/reqio/internal/scripts"
	"github.com/spf13/cobra"
)

func newCountCmd() *cobra.Command {
	countCmd := &cobra.Command{
		Use:   "count",
		Short: "Count to ten at ~2Hz, then stop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, "count", func(ctx context.Context, s *session) error {
				opts := scripts.CountOptions{
					Limit:    s.cfg.Count.Limit,
					Interval: s.cfg.Count.Interval,
				}
				if cmd.Flags().Changed("limit") {
					opts.Limit, _ = cmd.Flags().GetInt("limit")
				}
				if cmd.Flags().Changed("interval") {
					opts.Interval, _ = cmd.Flags().GetDuration("interval")
				}
				return scripts.Count(ctx, s.req, opts)
			})
		},
	}

	countCmd.Flags().Int("limit", 10, "Last number to print")
	countCmd.Flags().Duration("interval", 0, "Pause between numbers (default from config, 500ms)")
	return countCmd
}
