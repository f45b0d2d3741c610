// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/standupd/standupd/lib/plan"
)

// Status is an execution session's lifecycle state.
//
// Transitions: a session is created pending. The pass that owns it
// moves it to confirmed (generation and fan-out completed without a
// top-level error) or failed (a top-level error escaped). Completed is
// set only by an explicit external status update, acknowledging that
// downstream consumers acted on the session — never automatically.
// Nothing transitions out of completed or failed automatically.
type Status string

// The four session states. Anything else is rejected at the boundary.
const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// ParseStatus validates a status value arriving from outside the core.
// Unrecognized values are rejected before any mutation.
func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusFailed:
		return Status(value), nil
	}
	return "", fmt.Errorf("session: unknown status %q (want pending, confirmed, completed, or failed)", value)
}

// Session records one triggered execution pass: the plans it produced,
// the deliveries that succeeded, and its final disposition. Sessions
// live in an in-memory store for the lifetime of the process (or until
// an age-based cleanup sweep removes them).
//
// A session is mutated only by the pass that owns it and by the
// store's guarded Update operation; readers always receive copies.
type Session struct {
	// ID uniquely identifies the session.
	ID string `json:"id"`

	// GeneratedAt is the session's creation time. Cleanup sweeps
	// measure age from here.
	GeneratedAt time.Time `json:"generated_at"`

	// Status is the current lifecycle state.
	Status Status `json:"status"`

	// AdminID identifies who (or what) triggered the execution.
	AdminID string `json:"admin_id"`

	// Team is the optional team scope. Empty means all people in
	// the source's scope and no team summary.
	Team string `json:"team,omitempty"`

	// Plans are the per-person plans generated by this pass.
	Plans []plan.ExecutionPlan `json:"plans"`

	// Summary is the team summary, present only when Team is set
	// and generation reached it.
	Summary *plan.TeamSummary `json:"summary,omitempty"`

	// DeliveryIDs accumulates identifiers of successful deliveries
	// in fan-out order. A failed delivery contributes nothing, so
	// len(Plans) - len(DeliveryIDs) is the implicit per-plan
	// failure count (summary delivery appends here too when it
	// succeeds).
	DeliveryIDs []string `json:"delivery_ids"`

	// ErrorMessage holds the top-level error when Status is failed.
	ErrorMessage string `json:"error_message,omitempty"`
}

// New creates a pending session owned by adminID, timestamped now.
func New(adminID, team string, now time.Time) Session {
	return Session{
		ID:          uuid.NewString(),
		GeneratedAt: now,
		Status:      StatusPending,
		AdminID:     adminID,
		Team:        team,
	}
}

// clone returns a copy safe to hand to concurrent readers. Slice and
// pointer fields are duplicated so a reader never observes in-flight
// mutation by the owning pass.
func (s Session) clone() Session {
	copied := s
	copied.Plans = append([]plan.ExecutionPlan(nil), s.Plans...)
	copied.DeliveryIDs = append([]string(nil), s.DeliveryIDs...)
	if s.Summary != nil {
		summary := *s.Summary
		summary.Plans = append([]plan.ExecutionPlan(nil), s.Summary.Plans...)
		copied.Summary = &summary
	}
	return copied
}
