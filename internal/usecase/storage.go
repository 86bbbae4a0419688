package usecase

import (
	"context"
	"errors"
	"time"
)

// ErrStorageUnavailable marks a store call that timed out or failed at the
// I/O level. Dialogue state is left untouched by callers, so a retry of the
// same action is always safe.
var ErrStorageUnavailable = errors.New("storage unavailable")

// withStoreTimeout bounds a single store call. No store operation may block
// a dialogue turn indefinitely.
func withStoreTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

// classifyStoreErr folds context timeouts and cancellations into
// ErrStorageUnavailable; anything else passes through unchanged.
func classifyStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrStorageUnavailable
	}
	return err
}
