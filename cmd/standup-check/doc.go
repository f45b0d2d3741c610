// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

// Standup-check validates a schedule configuration file and prints the
// next run times it would produce.
//
// Operators run it before deploying a schedule change:
//
//	standup-check --config schedule.yaml --count 5
//
// A malformed expression, out-of-range field, unknown timezone, or
// missing admin identity exits non-zero with the validation error. The
// printed times use the schedule evaluator verbatim, so what this tool
// shows is exactly what the runner would arm.
package main
