package util

import (
	"errors"
	"time"
)

// ErrTimeout is returned by Timeout when fn did not finish in time
var ErrTimeout = errors.New("Timeout")

// Timeout is a utility method used to timeout function calls after the specified interval.
// A non-positive duration runs fn without a bound.
func Timeout(fn func() error, duration time.Duration) error {
	if duration <= 0 {
		return fn()
	}
	ch := make(chan error, 1)
	go func() {
		ch <- fn()
	}()
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case err := <-ch:
		return err
	case <-timer.C:
		return ErrTimeout
	}
}
