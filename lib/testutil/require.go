// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import "time"

// TB is the subset of testing.TB these helpers need.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// RequireReceive reads one value from ch within timeout, or fails the
// test. Encapsulates the timeout safety valve so tests never hang on
// a channel that will not deliver.
//
//	value := testutil.RequireReceive(t, ch, 5*time.Second, "waiting for session")
func RequireReceive[T any](t TB, ch <-chan T, timeout time.Duration, message string) T {
	t.Helper()
	select {
	case value, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed without a value: %s", message)
		}
		return value
	case <-time.After(timeout):
		t.Fatalf("timed out after %v: %s", timeout, message)
	}
	panic("unreachable")
}

// RequireSend sends value on ch within timeout, or fails the test.
func RequireSend[T any](t TB, ch chan<- T, value T, timeout time.Duration, message string) {
	t.Helper()
	select {
	case ch <- value:
	case <-time.After(timeout):
		t.Fatalf("timed out after %v: %s", timeout, message)
	}
}

// RequireClosed waits for ch to close (or deliver) within timeout, or
// fails the test.
func RequireClosed(t TB, ch <-chan struct{}, timeout time.Duration, message string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(timeout):
		t.Fatalf("timed out after %v waiting for close: %s", timeout, message)
	}
}
