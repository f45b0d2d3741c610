// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

// Package cron evaluates minimal five-field schedule expressions to a
// single next run time.
//
//	┌───────────── minute (0-59)
//	│ ┌───────────── hour (0-23)
//	│ │ ┌───────────── day of month (1-31)
//	│ │ │ ┌───────────── month (1-12)
//	│ │ │ │ ┌───────────── day of week (0-6, 0=Sunday)
//	│ │ │ │ │
//	* * * * *
//
// Each field is a wildcard or a single integer. No lists, ranges,
// steps, or named values. Times are evaluated in the location of the
// time passed to Next.
//
// # Known limitation
//
// Next overwrites the base time field-by-field and then bumps it past
// now by one unit of the most specific constrained field. This
// reliably produces the correct next run for the common "fixed time of
// day or week" patterns, but it is not a recurrence calendar: in
// particular, simultaneous day-of-month and day-of-week constraints
// are applied in sequence rather than reconciled, so expressions that
// constrain both may skip valid occurrences. This is a documented
// limitation of the evaluator, kept deliberately; callers needing full
// cron semantics should substitute a standards-compliant evaluator
// behind the same Parse/Next surface.
package cron
