package scripts

import (
	"context"

	"github.com/aretw0/reqio"
	"github.com/aretw0/reqio/pkg/cgienv"
)

// DumpEnv writes one "NAME = value" line per standard CGI variable, then
// one per HTTP_* variable.
func DumpEnv(ctx context.Context, req *reqio.Request, env cgienv.Environment) error {
	for _, v := range cgienv.Dump(env) {
		if err := req.Out.Writef(ctx, "%s = %s\n", v.Name, v.Value); err != nil {
			return err
		}
	}
	return req.Out.Flush(ctx)
}
