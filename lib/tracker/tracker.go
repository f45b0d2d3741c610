// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

package tracker

import (
	"context"
	"time"
)

// State is a ticket's lifecycle state tag.
type State string

// Lifecycle states. Bucket classification in lib/plan is a pure
// function of this tag.
const (
	StateCompleted State = "completed"
	StateStarted   State = "started"
	StateUnstarted State = "unstarted"
	StateBacklog   State = "backlog"
	StateCanceled  State = "canceled"
)

// Valid reports whether s is one of the known lifecycle states.
func (s State) Valid() bool {
	switch s {
	case StateCompleted, StateStarted, StateUnstarted, StateBacklog, StateCanceled:
		return true
	}
	return false
}

// Ticket is a read-only snapshot of one work item in the tracking
// source. The core never mutates tickets; all writes go through the
// Gateway's record-update operations.
type Ticket struct {
	// ID is the source system's opaque identifier.
	ID string `json:"id"`

	// Code is the human-readable ticket code (e.g. "OPS-412").
	Code string `json:"code"`

	// Title is a short summary of the work item.
	Title string `json:"title"`

	// State is the lifecycle state tag.
	State State `json:"state"`

	// Priority is 0-4: 0=critical, 1=high, 2=medium, 3=low,
	// 4=backlog.
	Priority int `json:"priority"`

	// Estimate is the optional size estimate in the source's native
	// unit (points). Nil when the ticket is unestimated.
	Estimate *int `json:"estimate,omitempty"`

	// Assignee is the person identifier the ticket is assigned to.
	Assignee string `json:"assignee,omitempty"`

	// Team identifies the owning team.
	Team string `json:"team,omitempty"`

	// CreatedAt and UpdatedAt are source-system timestamps.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// CompletedAt is zero while the ticket is not completed.
	CompletedAt time.Time `json:"completed_at,omitzero"`
}

// Person is an immutable snapshot of one person in the tracking
// source, fetched fresh each execution pass.
type Person struct {
	// ID is the source system's person identifier.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Address is the person's contact address in the tracking
	// source (e.g. an email address).
	Address string `json:"address,omitempty"`
}

// FieldSpec describes the custom-field schema the write-back layer
// needs on a team's tickets before it can write plan metadata.
type FieldSpec struct {
	// Name is the field group name (e.g. "standup-plan").
	Name string `json:"name"`

	// Fields maps field keys to human-readable labels.
	Fields map[string]string `json:"fields"`
}

// Gateway is the ticket-source boundary the core consumes. It is
// implemented by an external collaborator; the core performs no
// retries on gateway errors and propagates them unchanged.
type Gateway interface {
	// QueryByAssignee returns all tickets assigned to the person.
	QueryByAssignee(ctx context.Context, personID string) ([]Ticket, error)

	// QueryByTeam returns all tickets owned by the team.
	QueryByTeam(ctx context.Context, teamID string) ([]Ticket, error)

	// ListPeople returns the people in scope. An empty team means
	// every person the source exposes. Order is significant: plan
	// generation preserves it.
	ListPeople(ctx context.Context, teamID string) ([]Person, error)

	// AppendComment appends a comment to a ticket's record.
	AppendComment(ctx context.Context, ticketID, text string) error

	// WriteCustomFields writes metadata fields on a ticket's record.
	WriteCustomFields(ctx context.Context, ticketID string, fields map[string]string) error

	// ReadCustomFields reads a ticket's metadata fields. Missing
	// fields are absent from the map, not an error.
	ReadCustomFields(ctx context.Context, ticketID string) (map[string]string, error)

	// EnsureFieldSchema makes sure the team's tickets carry the
	// custom-field schema described by spec, creating it if needed.
	EnsureFieldSchema(ctx context.Context, teamID string, spec FieldSpec) error
}
