// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts time for testability. Production code
// injects Real(); tests inject Fake() and drive time with Advance.
//
// Every production function that would otherwise call time.Now,
// time.After, or time.AfterFunc accepts a Clock (or is a method on a
// struct with a Clock field) so that scheduling behavior is
// deterministic under test.
package clock
