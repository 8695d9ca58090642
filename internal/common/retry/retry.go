package retry

import (
	"context"
	"time"

	"github.com/lafise/go-fp-transfer/internal/common/logger"
	"github.com/lafise/go-fp-transfer/internal/config"

	"github.com/cenkalti/backoff/v4"
)

const DefaultMaxRetries uint64 = 3

type Retryer interface {
	Retry(ctx context.Context, operation, giveUp func() error) error
	StopRetryWithErr(err error) error
}

type exponentialBackoff struct {
	ebCfg config.ExponentialBackOffConfig
}

/*
NewExponentialBackOff will init Retryer interface.
This retryer implement exponential backoff mechanism.

Example:

Retry(ctx, func() error { return session.RefreshUser(ctx) }, func() error { return errDirectoryUnavailable })
*/
func NewExponentialBackOff(ebCfg config.ExponentialBackOffConfig) Retryer {
	if ebCfg.MaxBackoffTime < 0 {
		ebCfg.MaxBackoffTime = backoff.DefaultMaxElapsedTime
	}

	if ebCfg.BackoffMultiplier <= 0 {
		ebCfg.BackoffMultiplier = backoff.DefaultMultiplier
	}

	if ebCfg.MaxRetries <= 0 {
		ebCfg.MaxRetries = DefaultMaxRetries
	}

	return &exponentialBackoff{ebCfg: ebCfg}
}

/*
Retry keeps calling "operation" with exponential backoff until it succeeds, returns a permanent
error, or the retry budget runs out. When the budget runs out "giveUp" is called and its error
is returned, so callers decide whether exhaustion is fatal.
*/
func (r *exponentialBackoff) Retry(ctx context.Context, operation, giveUp func() error) error {
	eb := backoff.NewExponentialBackOff()
	eb.MaxElapsedTime = r.ebCfg.MaxBackoffTime
	eb.Multiplier = r.ebCfg.BackoffMultiplier

	notify := func(err error, next time.Duration) {
		logger.Warn(ctx, "[RETRY]", logger.Err(err), logger.Duration("nextAttemptIn", next))
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(eb, r.ebCfg.MaxRetries), ctx), notify)
	if err != nil {
		logger.Debugf(ctx, "retry budget exhausted with err: %v", err)
		if giveUp == nil {
			return err
		}
		return giveUp()
	}

	return nil
}

// StopRetryWithErr will stop retrying and return the error.
// This function should be called inside "operation" func.
func (r *exponentialBackoff) StopRetryWithErr(err error) error {
	return backoff.Permanent(err)
}
