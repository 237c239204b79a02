package retry

import (
	"errors"
	"time"

	"clustat/pkg/store"

	"go.uber.org/zap"
)

// Policy bounds the retries absorbed around a whole aggregation pass. It is
// applied to the full pass, never to individual sub-reads: a partial walk
// assembled across a failing-then-recovering store is not a consistent
// snapshot and must be rebuilt, not patched.
type Policy struct {
	MaxAttempts int
	Wait        time.Duration
	Logger      *zap.Logger
}

// Default waits out a Consul leader election: 24 attempts, 5s apart.
func Default(logger *zap.Logger) Policy {
	return Policy{MaxAttempts: 24, Wait: 5 * time.Second, Logger: logger}
}

// Do runs fn, retrying while it reports store.ErrUnavailable. Any other error
// returns immediately. Exhausting the bound returns the last unavailable
// error as terminal.
func (p Policy) Do(fn func() error) error {
	// A misconfigured bound must not skip the pass outright; one attempt
	// always runs.
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, store.ErrUnavailable) {
			return err
		}
		if attempt == attempts {
			break
		}
		p.Logger.Warn("store unavailable, will retry",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Duration("retry_in", p.Wait),
			zap.Error(err))
		time.Sleep(p.Wait)
	}
	return err
}
