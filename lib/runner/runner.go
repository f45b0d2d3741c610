// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/standupd/standupd/lib/clock"
	"github.com/standupd/standupd/lib/plan"
	"github.com/standupd/standupd/lib/session"
	"github.com/standupd/standupd/lib/writeback"
	"github.com/standupd/standupd/messaging"
)

// Options configures New. Engine and Messenger are required. A nil
// Store uses a fresh in-memory store; a nil Syncer disables write-back
// entirely; Clock and Logger default to Real() and slog.Default().
type Options struct {
	Engine    *plan.Engine
	Messenger messaging.Gateway
	Syncer    *writeback.Syncer
	Store     session.Store
	Clock     clock.Clock
	Logger    *slog.Logger
}

// Runner is the scheduling and session core. It owns the session
// registry, drives execution passes, and arms the single-shot
// schedule timer. All collaborators are injected at construction;
// there is no ambient state.
//
// Runner is safe for concurrent use. Multiple passes may be in flight
// at once (each owns its own session); registry reads are safe while
// a pass is mutating its session.
type Runner struct {
	engine    *plan.Engine
	messenger messaging.Gateway
	syncer    *writeback.Syncer
	store     session.Store
	clock     clock.Clock
	logger    *slog.Logger

	// timerMu guards the armed schedule timer. One timer at most:
	// scheduling replaces it, cancelling stops it.
	timerMu sync.Mutex
	timer   *clock.Timer
}

// New creates a Runner.
func New(options Options) (*Runner, error) {
	if options.Engine == nil {
		return nil, fmt.Errorf("runner: Engine is required")
	}
	if options.Messenger == nil {
		return nil, fmt.Errorf("runner: Messenger is required")
	}
	store := options.Store
	if store == nil {
		store = session.NewMemoryStore()
	}
	clk := options.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		engine:    options.Engine,
		messenger: options.Messenger,
		syncer:    options.Syncer,
		store:     store,
		clock:     clk,
		logger:    logger,
	}, nil
}

// Trigger runs one execution pass: generate plans (and the team
// summary when team is non-empty), fan deliveries out, and write
// results back to the tracking source. The session is registered in
// pending state before generation starts, so concurrent readers can
// observe the pass in flight.
//
// The returned session reflects the final state: confirmed on full
// success, failed (with ErrorMessage) when a top-level error escaped
// generation or fan-out setup. Individual delivery and write-back
// failures are isolated and never fail the pass. The returned error
// is non-nil exactly when the session failed.
func (r *Runner) Trigger(ctx context.Context, adminID, team string) (session.Session, error) {
	created := session.New(adminID, team, r.clock.Now())
	r.store.Put(created)

	logger := r.logger.With("session_id", created.ID, "admin_id", adminID)
	logger.Info("execution pass started", "team", team)

	passErr := r.executePass(ctx, created.ID, team)
	if passErr != nil {
		r.store.Update(created.ID, func(s *session.Session) {
			s.Status = session.StatusFailed
			s.ErrorMessage = passErr.Error()
		})
		logger.Error("execution pass failed", "error", passErr)
	} else {
		r.store.Update(created.ID, func(s *session.Session) {
			s.Status = session.StatusConfirmed
		})
		logger.Info("execution pass confirmed")
	}

	final, _ := r.store.Get(created.ID)
	return final, passErr
}

// executePass performs generation, fan-out, and write-back for one
// session. Any returned error is a top-level pass failure.
func (r *Runner) executePass(ctx context.Context, sessionID, team string) error {
	plans, err := r.engine.IndividualPlans(ctx, team)
	if err != nil {
		return fmt.Errorf("generating individual plans: %w", err)
	}

	var summary *plan.TeamSummary
	if team != "" {
		summary, err = r.engine.TeamSummaryFor(ctx, team)
		if err != nil {
			return fmt.Errorf("generating team summary: %w", err)
		}
	}

	// Record generation results before fan-out so a concurrent
	// reader polling the session sees what is being delivered.
	r.store.Update(sessionID, func(s *session.Session) {
		s.Plans = plans
		s.Summary = summary
	})

	if err := r.fanOut(ctx, sessionID, team, plans, summary); err != nil {
		return err
	}

	r.writeBack(ctx, sessionID, plans)
	return nil
}

// fanOut delivers each plan (and the summary, when present) through
// the messaging gateway. The connection is acquired once and released
// before returning, error or not. Each delivery attempt is isolated:
// a failure is logged and the remaining deliveries proceed. Successful
// delivery identifiers are appended to the session.
func (r *Runner) fanOut(ctx context.Context, sessionID, team string, plans []plan.ExecutionPlan, summary *plan.TeamSummary) error {
	if err := r.messenger.Connect(ctx); err != nil {
		return fmt.Errorf("connecting messenger: %w", err)
	}
	defer r.messenger.Disconnect()

	for _, p := range plans {
		destination, ok, err := r.messenger.ResolveDestinationForPerson(ctx, p.PersonID)
		if err != nil {
			r.logger.Warn("destination resolution failed, skipping delivery",
				"session_id", sessionID, "person_id", p.PersonID, "error", err)
			continue
		}
		if !ok {
			// No mapping is a first-class skip, not a wrong-recipient
			// guess.
			r.logger.Info("no destination mapping for person, skipping delivery",
				"session_id", sessionID, "person_id", p.PersonID)
			continue
		}

		deliveryID, err := r.messenger.SendPlanMessage(ctx, p, destination)
		if err != nil {
			r.logger.Warn("plan delivery failed",
				"session_id", sessionID, "person_id", p.PersonID, "error", err)
			continue
		}
		r.appendDelivery(sessionID, deliveryID)
	}

	if summary != nil {
		destination, ok, err := r.messenger.ResolveSummaryDestination(ctx, team)
		switch {
		case err != nil:
			r.logger.Warn("summary destination resolution failed",
				"session_id", sessionID, "team", team, "error", err)
		case !ok:
			r.logger.Info("no summary destination for team, skipping delivery",
				"session_id", sessionID, "team", team)
		default:
			deliveryID, err := r.messenger.SendSummaryMessage(ctx, *summary, destination)
			if err != nil {
				r.logger.Warn("summary delivery failed",
					"session_id", sessionID, "team", team, "error", err)
			} else {
				r.appendDelivery(sessionID, deliveryID)
			}
		}
	}

	return nil
}

// writeBack persists the plans into the tracking source. Write-back
// failures are partial-failure results, never pass failures.
func (r *Runner) writeBack(ctx context.Context, sessionID string, plans []plan.ExecutionPlan) {
	if r.syncer == nil || len(plans) == 0 {
		return
	}
	failed := 0
	for _, result := range r.syncer.StorePlans(ctx, plans) {
		if !result.Success {
			failed++
		}
	}
	if failed > 0 {
		r.logger.Warn("write-back completed with failed plans",
			"session_id", sessionID, "failed_plans", failed, "total_plans", len(plans))
	}
}

func (r *Runner) appendDelivery(sessionID string, deliveryID messaging.DeliveryID) {
	r.store.Update(sessionID, func(s *session.Session) {
		s.DeliveryIDs = append(s.DeliveryIDs, string(deliveryID))
	})
}
