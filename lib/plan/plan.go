// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"fmt"
	"math"
	"time"

	"github.com/standupd/standupd/lib/tracker"
)

// Bucket identifies which of a plan's three ticket sequences a ticket
// belongs to.
type Bucket string

// The three plan buckets. Membership is mutually exclusive and
// exhaustive over a person's filtered ticket set.
const (
	BucketFinished   Bucket = "finished"
	BucketInProgress Bucket = "in_progress"
	BucketOpen       Bucket = "open"
)

// BucketFor maps a lifecycle state to its plan bucket. The mapping is
// a pure function of the state tag: completed tickets are finished,
// started tickets are in progress, backlog and unstarted tickets are
// open. Canceled tickets are classified as finished; whether they are
// included at all is an inclusion-filter decision made before
// bucketing, not part of the mapping.
func BucketFor(state tracker.State) Bucket {
	switch state {
	case tracker.StateCompleted, tracker.StateCanceled:
		return BucketFinished
	case tracker.StateStarted:
		return BucketInProgress
	default:
		return BucketOpen
	}
}

// ExecutionPlan is one person's classified, capped, and summarized
// ticket set for a single execution pass. Plans are created fresh per
// pass and never mutated afterwards.
type ExecutionPlan struct {
	// ID uniquely identifies this plan.
	ID string `json:"id"`

	// PersonID and PersonName identify whose work the plan covers.
	PersonID   string `json:"person_id"`
	PersonName string `json:"person_name"`

	// Finished, InProgress, and Open are the three ticket buckets.
	// A ticket appears in at most one.
	Finished   []tracker.Ticket `json:"finished"`
	InProgress []tracker.Ticket `json:"in_progress"`
	Open       []tracker.Ticket `json:"open"`

	// Summary is the generated narrative line.
	Summary string `json:"summary"`

	// GeneratedAt is when the plan was computed.
	GeneratedAt time.Time `json:"generated_at"`
}

// TicketCount is the total number of tickets across all three buckets.
func (p ExecutionPlan) TicketCount() int {
	return len(p.Finished) + len(p.InProgress) + len(p.Open)
}

// Tickets returns all of the plan's tickets in bucket order: finished,
// then in progress, then open.
func (p ExecutionPlan) Tickets() []tracker.Ticket {
	tickets := make([]tracker.Ticket, 0, p.TicketCount())
	tickets = append(tickets, p.Finished...)
	tickets = append(tickets, p.InProgress...)
	tickets = append(tickets, p.Open...)
	return tickets
}

// TeamSummary aggregates a team's ticket counts for one execution
// pass. Counts come from the uncapped team-wide ticket set; Plans are
// the per-person capped plans. The two may legitimately disagree when
// the per-person cap is active.
type TeamSummary struct {
	// TeamID and TeamName identify the team. The tracking source
	// exposes only an identifier, so TeamName repeats it.
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`

	// Total, Completed, InProgress, and Open count the team's
	// tickets after inclusion filters but before any per-person cap.
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Open       int `json:"open"`

	// CompletionRate is Completed/Total*100, rounded to two
	// decimals. Zero when Total is zero.
	CompletionRate float64 `json:"completion_rate"`

	// Plans are the per-person plans that contributed to this
	// summary, in source-gateway person order.
	Plans []ExecutionPlan `json:"plans"`
}

// completionRate computes completed/total*100 rounded to two decimal
// places, with a zero total yielding zero rather than dividing.
func completionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	rate := float64(completed) / float64(total) * 100
	return math.Round(rate*100) / 100
}

// Narrative thresholds. First match wins, in this order.
const (
	manyInProgressThreshold = 5
	manyOpenThreshold       = 10
)

// narrative builds the plan's summary line from post-truncation bucket
// counts.
func narrative(finished, inProgress, open int) string {
	switch {
	case inProgress >= manyInProgressThreshold:
		return fmt.Sprintf("You have many tickets in progress (%d). Consider finishing current work before starting more.", inProgress)
	case open >= manyOpenThreshold:
		return fmt.Sprintf("You have many open tickets (%d). Consider prioritizing the most important ones.", open)
	default:
		total := finished + inProgress + open
		return fmt.Sprintf("You have %d total tickets: %d completed, %d in progress, %d open", total, finished, inProgress, open)
	}
}
