// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

// Package session holds the execution-session entity, its status
// state machine, and the concurrency-safe in-memory registry.
//
// Sessions record one triggered execution pass each. The registry
// hands out copies on every read, so a status-polling caller can
// safely observe a session while the owning pass is still mutating it
// through the store's guarded Update.
//
// There is no persistence: the registry is process-local by design.
// The Store interface exists so a durable implementation can be
// substituted later without touching the orchestration logic.
package session
