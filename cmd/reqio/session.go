package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/reqio"
	"github.com/aretw0/reqio/internal/config"
	"github.com/aretw0/reqio/internal/logging"
	"github.com/aretw0/reqio/pkg/metrics"
	"github.com/spf13/cobra"
)

// session is everything a script needs for one run.
type session struct {
	cfg         config.Config
	logger      *slog.Logger
	req         *reqio.Request
	metrics     *metrics.Collector
	metricsFile string
}

func openSession(cmd *cobra.Command, script string) (*session, error) {
	path, _ := cmd.Flags().GetString("config")
	if cmd.Flags().Changed("config") && path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	cfg, err := config.Load(path, os.Environ())
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level).With("script", script)

	metricsFile, _ := cmd.Flags().GetString("metrics-file")
	if metricsFile == "" {
		metricsFile = cfg.Metrics.Textfile
	}

	collector := metrics.New(script)
	opts := []reqio.Option{
		reqio.WithLogger(logger),
		reqio.WithObserver(collector),
	}

	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	var req *reqio.Request
	if in == os.Stdin && out == os.Stdout {
		req = reqio.Stdio(opts...)
	} else {
		req = reqio.New(in, out, opts...)
	}

	return &session{
		cfg:         cfg,
		logger:      logger,
		req:         req,
		metrics:     collector,
		metricsFile: metricsFile,
	}, nil
}

// close tears the request down and writes metrics, whatever runErr is.
func (s *session) close(runErr error) error {
	closeErr := s.req.Close()

	var metricsErr error
	if s.metricsFile != "" {
		if err := s.metrics.WriteTextfile(s.metricsFile); err != nil {
			metricsErr = fmt.Errorf("metrics: %w", err)
		}
	}

	err := errors.Join(runErr, closeErr, metricsErr)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Debug("script failed", "error", err)
	}
	return err
}

// runScript opens a session, runs fn and always closes the session.
func runScript(cmd *cobra.Command, script string, fn func(ctx context.Context, s *session) error) error {
	s, err := openSession(cmd, script)
	if err != nil {
		return err
	}
	return s.close(fn(cmd.Context(), s))
}
