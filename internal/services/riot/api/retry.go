package api

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/cenkalti/backoff/v5"
	apperrors "github.com/louisbranch/riftscout/internal/platform/errors"
	"github.com/louisbranch/riftscout/internal/platform/requestctx"
)

var (
	retryInitialInterval = 500 * time.Millisecond
	retryMaxInterval     = 10 * time.Second
)

type attemptResult struct {
	body   []byte
	status int
}

// getWithRetry repeats rate limited and unavailable requests up to
// maxRetries times. A Retry-After header replaces the computed delay.
func (c *Client) getWithRetry(ctx context.Context, req request) ([]byte, int, error) {
	if c.maxRetries == 0 {
		return c.attempt(ctx, req)
	}

	var (
		lastErr    error
		lastStatus int
	)
	operation := func() (attemptResult, error) {
		body, status, err := c.attempt(ctx, req)
		lastErr, lastStatus = err, status
		if err == nil {
			return attemptResult{body: body, status: status}, nil
		}
		if !retryable(err) {
			return attemptResult{}, backoff.Permanent(err)
		}
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.RetryAfter > 0 {
			return attemptResult{}, backoff.RetryAfter(int(statusErr.RetryAfter / time.Second))
		}
		return attemptResult{}, err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = retryInitialInterval
	policy.MaxInterval = retryMaxInterval
	policy.Reset()

	result, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(c.maxRetries+1)),
		backoff.WithNotify(func(_ error, wait time.Duration) {
			log.Printf("%sriot api retry %s in %s: %v", requestctx.LogPrefix(ctx), req.route, wait, lastErr)
		}),
	)
	if err != nil {
		// Retry reports its own wrapper types; callers want the upstream error.
		if lastErr != nil {
			return nil, lastStatus, lastErr
		}
		return nil, lastStatus, err
	}
	return result.body, result.status, nil
}

func retryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code().Retryable()
	}
	return apperrors.CodeOf(err) == apperrors.CodeUpstreamUnavailable
}
