// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

// Package tracker defines the ticket-source boundary: the read-only
// Ticket and Person snapshots the core consumes, and the Gateway
// interface an external tracking-system adapter implements.
//
// The core treats the tracking source as authoritative and never
// caches across execution passes. Record updates (comments, custom
// fields) flow exclusively through the Gateway so that the write-back
// layer is the only component that touches source records.
package tracker
