// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

// Package plan classifies a person's tickets into finished,
// in-progress, and open buckets, enforces the per-person ticket cap,
// and produces narrative summaries plus team-level aggregates.
//
// Bucket membership is a pure function of the ticket's lifecycle
// state; the three buckets partition the filtered ticket set with no
// overlap. Truncation under the cap preserves finished work first,
// then in-progress, then open, and is deterministic given identical
// inputs.
//
// The engine reads from the tracker gateway and never writes:
// persisting results back into the tracking source is the write-back
// layer's job (lib/writeback).
package plan
