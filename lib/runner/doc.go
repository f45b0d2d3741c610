// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

// Package runner is the scheduling and session core. It drives a
// single execution pass — generate plans, fan deliveries out, write
// results back — and owns the in-memory session registry that records
// every pass.
//
// # Session lifecycle
//
// A session is created pending and registered before generation
// begins, so a concurrent reader (a status-polling endpoint, say) can
// observe a pass in flight. The pass ends in confirmed or failed;
// completed is reserved for explicit external acknowledgement via
// SetSessionStatus and is never set automatically. No automatic
// transition leaves completed or failed.
//
// # Fan-out
//
// Deliveries are isolated from each other: a failed delivery is
// logged and skipped, and the pass continues. Only successful
// deliveries contribute identifiers to the session, so the gap
// between generated plans and recorded delivery IDs is the implicit
// failure count. A person with no destination mapping is skipped
// outright rather than delivered to a guessed recipient.
//
// # Scheduling
//
// Schedule arms a single-shot timer from a ScheduleConfig; firing
// triggers exactly one pass and does not re-arm. Recurring execution
// is the external caller's loop: re-arm after each fire. Cancelling is
// idempotent. There is no cross-process coordination — two processes
// running this core against the same external systems can deliver
// duplicates, which is out of scope to prevent.
package runner
