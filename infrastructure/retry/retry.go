package retry

import (
	"time"

	"github.com/ArnW0lf/ParaJose/infrastructure/logger"
)

// Policy applies bounded exponential backoff around any fallible operation.
// Attempt i (zero-based) that fails sleeps InitialDelay * 2^i before the next
// try; after MaxAttempts the last failure is returned. Sleeps block the
// calling goroutine.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration

	// Sleep is swappable for tests; nil means time.Sleep.
	Sleep func(time.Duration)
}

// NewPolicy returns a Policy with the given attempt ceiling (>=1) and initial delay.
func NewPolicy(maxAttempts int, initialDelay time.Duration) Policy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return Policy{MaxAttempts: maxAttempts, InitialDelay: initialDelay}
}

// Do invokes op until it succeeds or attempts are exhausted.
func (p Policy) Do(op func() error) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		err = op()
		if err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		delay := p.InitialDelay * (1 << uint(i))
		logger.GetLogger().
			WithField("attempt", i+1).
			WithField("delay", delay.String()).
			WithField("error", err.Error()).
			Warn("operation failed, backing off before retry")
		sleep(delay)
	}
	return err
}

// Value wraps an operation returning a value under the same policy.
func Value[T any](p Policy, op func() (T, error)) (T, error) {
	var out T
	err := p.Do(func() error {
		v, err := op()
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}
