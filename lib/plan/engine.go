// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/standupd/standupd/lib/clock"
	"github.com/standupd/standupd/lib/tracker"
)

// Engine generates per-person execution plans and team summaries from
// the tracking source. It performs no retries: gateway errors
// propagate to the caller unchanged.
//
// Engine is safe for concurrent use. Configuration is guarded by a
// mutex and read through snapshots.
type Engine struct {
	gateway tracker.Gateway
	clock   clock.Clock
	logger  *slog.Logger

	mu     sync.Mutex
	config Config
}

// EngineOptions configures NewEngine. Gateway is required; zero-value
// Config, Clock, and Logger fall back to DefaultConfig(), Real(), and
// slog.Default().
type EngineOptions struct {
	Gateway tracker.Gateway
	Config  Config
	Clock   clock.Clock
	Logger  *slog.Logger
}

// NewEngine creates a plan generation engine.
func NewEngine(options EngineOptions) (*Engine, error) {
	if options.Gateway == nil {
		return nil, fmt.Errorf("plan: Gateway is required")
	}
	config := options.Config
	if config == (Config{}) {
		config = DefaultConfig()
	}
	if result := config.Validate(); !result.Valid {
		return nil, fmt.Errorf("plan: invalid config: %s", result.Errors[0])
	}
	clk := options.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		gateway: options.Gateway,
		clock:   clk,
		logger:  logger,
		config:  config,
	}, nil
}

// Config returns an immutable snapshot of the current configuration.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config
}

// UpdateConfig merges the patch's non-nil fields into the current
// configuration. The merged config is validated before any mutation;
// an invalid result leaves the configuration untouched.
func (e *Engine) UpdateConfig(patch ConfigPatch) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	merged := e.config.merge(patch)
	if result := merged.Validate(); !result.Valid {
		return fmt.Errorf("plan: invalid config: %s", result.Errors[0])
	}
	e.config = merged
	return nil
}

// ValidateConfig validates the current configuration.
func (e *Engine) ValidateConfig() ValidationResult {
	return e.Config().Validate()
}

// UserPlan generates one person's plan. Tickets are fetched by
// assignee, scoped to team when team is non-empty, filtered by the
// inclusion config, bucketed by state, deterministically ordered, and
// truncated to the per-person cap preserving finished work first.
// Returns (nil, nil) when the filtered, capped ticket set is empty.
func (e *Engine) UserPlan(ctx context.Context, person tracker.Person, team string) (*ExecutionPlan, error) {
	config := e.Config()

	tickets, err := e.gateway.QueryByAssignee(ctx, person.ID)
	if err != nil {
		return nil, err
	}

	var finished, inProgress, open []tracker.Ticket
	for _, ticket := range tickets {
		if team != "" && ticket.Team != team {
			continue
		}
		if !included(ticket.State, config) {
			continue
		}
		switch BucketFor(ticket.State) {
		case BucketFinished:
			finished = append(finished, ticket)
		case BucketInProgress:
			inProgress = append(inProgress, ticket)
		default:
			open = append(open, ticket)
		}
	}

	sortBucket(finished)
	sortBucket(inProgress)
	sortBucket(open)

	// Truncate across buckets in priority order: finished first,
	// then in-progress, then open. Completed work is preserved
	// preferentially over open work.
	remaining := config.MaxTicketsPerUser
	finished = capBucket(finished, &remaining)
	inProgress = capBucket(inProgress, &remaining)
	open = capBucket(open, &remaining)

	if len(finished)+len(inProgress)+len(open) == 0 {
		return nil, nil
	}

	return &ExecutionPlan{
		ID:          uuid.NewString(),
		PersonID:    person.ID,
		PersonName:  person.Name,
		Finished:    finished,
		InProgress:  inProgress,
		Open:        open,
		Summary:     narrative(len(finished), len(inProgress), len(open)),
		GeneratedAt: e.clock.Now(),
	}, nil
}

// IndividualPlans generates plans for every person in scope, in the
// order the source gateway returns them. People with an empty
// filtered ticket set contribute no plan.
func (e *Engine) IndividualPlans(ctx context.Context, team string) ([]ExecutionPlan, error) {
	people, err := e.gateway.ListPeople(ctx, team)
	if err != nil {
		return nil, err
	}

	var plans []ExecutionPlan
	for _, person := range people {
		userPlan, err := e.UserPlan(ctx, person, team)
		if err != nil {
			return nil, err
		}
		if userPlan == nil {
			e.logger.Debug("no tickets for person, skipping plan", "person_id", person.ID)
			continue
		}
		plans = append(plans, *userPlan)
	}
	return plans, nil
}

// TeamSummaryFor aggregates the whole team's ticket counts and
// attaches the per-person plans. Counts are computed from the raw
// team-wide ticket set (inclusion filters applied, no per-person cap),
// so the completion rate may disagree with the sum of the capped
// plans. That disagreement is intentional.
func (e *Engine) TeamSummaryFor(ctx context.Context, team string) (*TeamSummary, error) {
	config := e.Config()

	tickets, err := e.gateway.QueryByTeam(ctx, team)
	if err != nil {
		return nil, err
	}

	var completed, inProgress, open int
	for _, ticket := range tickets {
		if !included(ticket.State, config) {
			continue
		}
		switch BucketFor(ticket.State) {
		case BucketFinished:
			completed++
		case BucketInProgress:
			inProgress++
		default:
			open++
		}
	}
	total := completed + inProgress + open

	plans, err := e.IndividualPlans(ctx, team)
	if err != nil {
		return nil, err
	}

	return &TeamSummary{
		TeamID:         team,
		TeamName:       team,
		Total:          total,
		Completed:      completed,
		InProgress:     inProgress,
		Open:           open,
		CompletionRate: completionRate(completed, total),
		Plans:          plans,
	}, nil
}

// included applies the config's inclusion filters to a state tag.
func included(state tracker.State, config Config) bool {
	switch state {
	case tracker.StateCompleted:
		return config.IncludeCompleted
	case tracker.StateCanceled:
		return config.IncludeCanceled
	default:
		return true
	}
}

// sortBucket orders a bucket by priority (critical first), then
// creation time, then ID. This keeps truncation deterministic given
// identical inputs regardless of gateway ordering.
func sortBucket(tickets []tracker.Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		if tickets[i].Priority != tickets[j].Priority {
			return tickets[i].Priority < tickets[j].Priority
		}
		if !tickets[i].CreatedAt.Equal(tickets[j].CreatedAt) {
			return tickets[i].CreatedAt.Before(tickets[j].CreatedAt)
		}
		return tickets[i].ID < tickets[j].ID
	})
}

// capBucket takes up to *remaining tickets from the bucket and
// decrements *remaining by the number taken.
func capBucket(tickets []tracker.Ticket, remaining *int) []tracker.Ticket {
	if len(tickets) > *remaining {
		tickets = tickets[:*remaining]
	}
	*remaining -= len(tickets)
	return tickets
}
