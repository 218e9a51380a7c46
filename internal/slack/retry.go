package slack

import (
	"context"
	"errors"
	"time"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// withRetry runs fn, waiting out rate limits using the Retry-After duration
// Slack supplies. Every other kind of failure is returned as-is; the caller
// decides between aborting (auth), degrading (not found), and propagating.
func withRetry(ctx context.Context, logger *zap.Logger, fn func() error) error {
	for {
		err := fn()
		if err == nil {
			return nil
		}

		if Classify(err) != KindRateLimited {
			return err
		}

		var rateLimitErr *slack.RateLimitedError
		errors.As(err, &rateLimitErr)
		logger.Warn("Rate limited by Slack, waiting",
			zap.Duration("retry_after", rateLimitErr.RetryAfter))
		select {
		case <-time.After(rateLimitErr.RetryAfter):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
