package tool

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/docbridge/docbridge/internal/logging"
)

// AttemptFunc performs one remote attempt: it builds a fresh client from
// the configured credentials and performs exactly one remote call,
// returning the serialized response body on success.
type AttemptFunc func(ctx context.Context) (string, error)

// Runner executes remote attempts under the shared retry and cancellation
// contract both tools follow:
//
//   - at most MaxRetries+1 strictly sequential attempts
//   - a fixed DelayAfterError wait between consecutive attempts (no
//     backoff, no jitter, no differentiation by error type)
//   - cooperative cancellation via ctx, polled at the top of each
//     iteration and again after a failed attempt; an error observed inside
//     a cancellation window is reported as canceled, not as a remote error
//   - every remote failure is logged in full before being downgraded to
//     the short message reported to the caller
//
// The overall wall-clock timeout is the caller's concern: wrap ctx with
// ExecTimeout before calling Run.
type Runner struct {
	MaxRetries      int
	DelayAfterError time.Duration
	Logger          *slog.Logger

	// OnRetry, when set, is called once per retried attempt, before the
	// attempt runs. Used to feed retry counters.
	OnRetry func(ctx context.Context)

	// sleep is swapped out in tests to observe delays without waiting.
	sleep func(ctx context.Context, d time.Duration)
}

// NewRunner creates a Runner with the given retry policy. A nil logger
// falls back to slog.Default.
func NewRunner(maxRetries int, delayAfterError time.Duration, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		MaxRetries:      maxRetries,
		DelayAfterError: delayAfterError,
		Logger:          logger,
		sleep:           sleepContext,
	}
}

// Run executes attempt under the retry contract and returns the terminal
// result. name is the tool's component name, used in log lines and in the
// formatted error text ("<name> error: <msg>").
//
// Run panics if the loop exhausts without either a success or a captured
// error; that state indicates broken retry bookkeeping and must surface
// immediately rather than masquerade as a result.
func (r *Runner) Run(ctx context.Context, name string, attempt AttemptFunc) Result {
	logger := logging.WithTool(r.Logger, name)

	var lastErr error
	for i := 0; i <= r.MaxRetries; i++ {
		if ctx.Err() != nil {
			logger.Debug("invocation canceled", logging.Attempt(i+1))
			return Canceled()
		}

		if i > 0 {
			r.sleep(ctx, r.DelayAfterError)
			if ctx.Err() != nil {
				logger.Debug("invocation canceled during retry delay", logging.Attempt(i+1))
				return Canceled()
			}
			if r.OnRetry != nil {
				r.OnRetry(ctx)
			}
		}

		text, err := attempt(ctx)
		if err == nil {
			return Succeed(text)
		}

		if ctx.Err() != nil {
			// The failure happened inside a cancellation window; the
			// remote error is noise, not a reportable failure.
			logger.Debug("invocation canceled mid-attempt", logging.Attempt(i+1))
			return Canceled()
		}

		lastErr = err
		logger.Error("remote call failed",
			logging.Attempt(i+1),
			slog.Int("max_attempts", r.MaxRetries+1),
			logging.Err(err))
	}

	if lastErr == nil {
		panic(fmt.Sprintf("%s: retry loop exhausted without result or error", name))
	}

	return Fail(fmt.Sprintf("%s error: %s", name, lastErr), lastErr.Error())
}

// sleepContext waits for d or until ctx is canceled, whichever is first.
func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
