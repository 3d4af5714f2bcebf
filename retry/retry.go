// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package retry provides a function for retrying an operation.
package retry

import (
	"context"
	"time"

	"zombiezen.com/go/log"
)

// A BackoffStrategy can be called repeatedly to obtain (presumably)
// increasing durations to wait between retries.
type BackoffStrategy interface {
	Duration() time.Duration
}

// Exponential is a BackoffStrategy whose durations start at Base and double
// on every call, never exceeding Max. The zero value starts at 100ms with
// no cap.
type Exponential struct {
	Base time.Duration
	Max  time.Duration

	next time.Duration
}

// Duration returns the next wait and advances the strategy.
func (e *Exponential) Duration() time.Duration {
	if e.next == 0 {
		e.next = e.Base
		if e.next <= 0 {
			e.next = 100 * time.Millisecond
		}
	}
	d := e.next
	if e.Max > 0 && d > e.Max {
		d = e.Max
	}
	e.next = d * 2
	return d
}

// Do calls a function repeatedly until it returns a nil error, waiting
// according to the strategy between attempts. Do returns an error only if
// the passed-in function does not return nil before the Context is Done.
// The function is guaranteed to be called at least once.
//
// The operation should be a verb phrase like "talking to Alice" for logging.
func Do(ctx context.Context, operation string, strategy BackoffStrategy, f func() error) error {
	var t *time.Timer
	for attempt := 1; ; attempt++ {
		err := f()
		if err == nil {
			return nil
		}
		d := strategy.Duration()
		if d <= 0 {
			log.Warnf(ctx, "Attempt %d %s (will retry): %v", attempt, operation, err)
			select {
			case <-ctx.Done():
				return err
			default:
			}
			continue
		}
		log.Warnf(ctx, "Attempt %d %s (will retry in %v): %v", attempt, operation, d, err)
		if t == nil {
			t = time.NewTimer(d)
			defer t.Stop()
		} else {
			t.Reset(d)
		}
		select {
		case <-t.C:
		case <-ctx.Done():
			return err
		}
	}
}
