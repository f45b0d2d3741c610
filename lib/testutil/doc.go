// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// RequireReceive, RequireSend, and RequireClosed wrap channel
// operations with a wall-clock timeout so that a test exercising
// goroutine coordination fails with a message instead of hanging.
// They are the only place the test suite uses real time.After; tests
// that exercise scheduling behavior drive a lib/clock fake instead.
//
// All helpers call t.Fatalf on failure: test setup failures are not
// recoverable.
package testutil
