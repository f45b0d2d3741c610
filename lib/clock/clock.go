// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts the wall clock and one-shot timers so that the
// scheduling core is testable without real waiting. Production code
// injects Real(); tests inject a Fake with explicit time control.
//
// Only the operations the core actually performs are abstracted:
// reading the current time, waiting for a duration, and arming a
// one-shot callback timer.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time once
	// duration d has elapsed. If d <= 0 the channel receives
	// immediately.
	After(d time.Duration) <-chan time.Time

	// AfterFunc arms a one-shot timer that calls f after duration d.
	// The returned Timer cancels the pending call with Stop.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer is a pending one-shot callback armed by AfterFunc.
type Timer struct {
	stopFunc func() bool
}

// Stop prevents the timer from firing. Returns true if the call
// stopped the timer, false if it already fired or was already
// stopped. Stop is safe to call more than once.
func (t *Timer) Stop() bool { return t.stopFunc() }
