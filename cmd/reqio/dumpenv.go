package main

import (
	"context"

	"github.com/aretw0/reqio/internal/scripts"
	"github.com/aretw0/reqio/pkg/cgienv"
	"github.com/spf13/cobra"
)

func newDumpEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump-env",
		Short: "Print the CGI request variables and HTTP headers",
		Long: `Prints every standard CGI variable (RFC 3875) as "NAME = value",
using <unset> for the missing ones, followed by every HTTP_* variable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, "dump-env", func(ctx context.Context, s *session) error {
				return scripts.DumpEnv(ctx, s.req, cgienv.FromOS())
			})
		},
	}
}
