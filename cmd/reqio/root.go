package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/reqio/internal/config"
	"github.com/aretw0/reqio/internal/logging"
	"github.com/spf13/cobra"
)

// exitInterrupted is the conventional status for a process stopped by SIGINT.
const exitInterrupted = 130

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reqio",
		Short: "reqio runs small line-oriented request scripts",
		Long: `reqio bundles example scripts built on a line-oriented request I/O facade.
Each script reads lines from stdin, writes lines to stdout and exits when done,
which makes them suitable as handlers behind a websocket or CGI bridge.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus metrics to this file at exit")

	rootCmd.AddCommand(
		newCountCmd(),
		newDumpEnvCmd(),
		newGreeterCmd(),
		newEchoCmd(),
		newChatCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err == nil {
		return
	}
	stop()
	if errors.Is(err, context.Canceled) {
		os.Exit(exitInterrupted)
	}
	logging.New(slog.LevelInfo).Error("reqio failed", "error", err)
	os.Exit(1)
}
