package scripts

import (
	"context"
	"time"

	"github.com/aretw0/reqio"
)

// CountOptions paces Count.
type CountOptions struct {
	Limit    int
	Interval time.Duration
}

// Count writes the integers 1 through opts.Limit, one per line, waiting
// opts.Interval between them. Every number is flushed as soon as it is
// written so a reader sees the pacing.
func Count(ctx context.Context, req *reqio.Request, opts CountOptions) error {
	for i := 1; i <= opts.Limit; i++ {
		if err := req.Out.Writef(ctx, "%d\n", i); err != nil {
			return err
		}
		if err := req.Out.Flush(ctx); err != nil {
			return err
		}
		if i < opts.Limit {
			if err := sleep(ctx, opts.Interval); err != nil {
				return err
			}
		}
	}
	return req.Out.Flush(ctx)
}

// sleep blocks the script for d. Only cancellation cuts it short.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
