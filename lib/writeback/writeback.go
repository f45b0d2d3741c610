// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

package writeback

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/standupd/standupd/lib/plan"
	"github.com/standupd/standupd/lib/tracker"
)

// Custom-field keys written under the configured prefix.
const (
	fieldPlanID      = "plan_id"
	fieldGeneratedAt = "generated_at"
)

// Config controls which write-back sub-operations run.
type Config struct {
	// EnableComments appends a plan comment to every ticket the
	// plan references.
	EnableComments bool `json:"enable_comments"`

	// EnableCustomFields ensures the field schema exists and writes
	// plan metadata fields on every referenced ticket.
	EnableCustomFields bool `json:"enable_custom_fields"`

	// FieldPrefix namespaces the custom-field keys. Defaults to
	// "standup".
	FieldPrefix string `json:"field_prefix,omitempty"`
}

// StorageResult reports the outcome of persisting one plan. Failures
// of individual sub-operations are accumulated in Errors rather than
// raised, so a mostly-succeeded write-back is reportable.
type StorageResult struct {
	// PlanID identifies the plan this result is for.
	PlanID string `json:"plan_id"`

	// Success is true iff Errors is empty after all applicable
	// sub-operations ran.
	Success bool `json:"success"`

	// TicketsUpdated counts appended comments. Custom-field writes
	// are metadata-level and deliberately do not count here.
	TicketsUpdated int `json:"tickets_updated"`

	// CustomFieldsUpdated counts successful custom-field writes.
	CustomFieldsUpdated int `json:"custom_fields_updated"`

	// Errors lists every sub-operation failure message.
	Errors []string `json:"errors,omitempty"`
}

// Metadata is the plan linkage read back from a ticket's custom
// fields.
type Metadata struct {
	PlanID      string    `json:"plan_id"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Syncer persists computed plans into the tracking source's native
// records: comments and custom fields. Each record write is
// independent; the Syncer never aborts a plan's write-back because one
// ticket failed.
type Syncer struct {
	gateway tracker.Gateway
	config  Config
	logger  *slog.Logger
}

// NewSyncer creates a write-back syncer. Gateway is required.
func NewSyncer(gateway tracker.Gateway, config Config, logger *slog.Logger) (*Syncer, error) {
	if gateway == nil {
		return nil, fmt.Errorf("writeback: gateway is required")
	}
	if config.FieldPrefix == "" {
		config.FieldPrefix = "standup"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{gateway: gateway, config: config, logger: logger}, nil
}

// StorePlan persists one plan. Up to three independent sub-operations
// run: field-schema provisioning (custom fields enabled), a comment
// per referenced ticket (comments enabled), and metadata field writes
// per referenced ticket (custom fields enabled). A sub-operation
// failure is recorded and does not block the others.
func (s *Syncer) StorePlan(ctx context.Context, p plan.ExecutionPlan) StorageResult {
	result := StorageResult{PlanID: p.ID}
	tickets := p.Tickets()

	if s.config.EnableCustomFields {
		s.ensureSchemas(ctx, tickets, &result)
	}

	if s.config.EnableComments {
		comment := fmt.Sprintf("Included in standup plan %s generated %s: %s",
			p.ID, p.GeneratedAt.Format(time.RFC3339), p.Summary)
		for _, ticket := range tickets {
			if err := s.gateway.AppendComment(ctx, ticket.ID, comment); err != nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("comment on ticket %s: %v", ticket.ID, err))
				continue
			}
			result.TicketsUpdated++
		}
	}

	if s.config.EnableCustomFields {
		fields := map[string]string{
			s.fieldKey(fieldPlanID):      p.ID,
			s.fieldKey(fieldGeneratedAt): p.GeneratedAt.Format(time.RFC3339),
		}
		for _, ticket := range tickets {
			if err := s.gateway.WriteCustomFields(ctx, ticket.ID, fields); err != nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("custom fields on ticket %s: %v", ticket.ID, err))
				continue
			}
			result.CustomFieldsUpdated++
		}
	}

	result.Success = len(result.Errors) == 0
	if !result.Success {
		s.logger.Warn("plan write-back completed with failures",
			"plan_id", p.ID,
			"failures", len(result.Errors),
		)
	}
	return result
}

// StorePlans persists plans independently in input order. A panic
// escaping one plan's processing becomes a failed result for that plan
// and does not halt the rest.
func (s *Syncer) StorePlans(ctx context.Context, plans []plan.ExecutionPlan) []StorageResult {
	results := make([]StorageResult, 0, len(plans))
	for _, p := range plans {
		results = append(results, s.storePlanIsolated(ctx, p))
	}
	return results
}

func (s *Syncer) storePlanIsolated(ctx context.Context, p plan.ExecutionPlan) (result StorageResult) {
	defer func() {
		if recovered := recover(); recovered != nil {
			result = StorageResult{
				PlanID: p.ID,
				Errors: []string{fmt.Sprintf("plan processing panicked: %v", recovered)},
			}
		}
	}()
	return s.StorePlan(ctx, p)
}

// PlanMetadata reads the plan linkage from a ticket's custom fields.
// ok is false when the ticket carries no plan metadata.
func (s *Syncer) PlanMetadata(ctx context.Context, ticketID string) (Metadata, bool, error) {
	fields, err := s.gateway.ReadCustomFields(ctx, ticketID)
	if err != nil {
		return Metadata{}, false, fmt.Errorf("writeback: reading fields for ticket %s: %w", ticketID, err)
	}

	planID, ok := fields[s.fieldKey(fieldPlanID)]
	if !ok || planID == "" {
		return Metadata{}, false, nil
	}
	metadata := Metadata{PlanID: planID}
	if raw, ok := fields[s.fieldKey(fieldGeneratedAt)]; ok {
		generatedAt, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return Metadata{}, false, fmt.Errorf("writeback: ticket %s has malformed %s field %q: %w",
				ticketID, s.fieldKey(fieldGeneratedAt), raw, err)
		}
		metadata.GeneratedAt = generatedAt
	}
	return metadata, true, nil
}

// ensureSchemas provisions the custom-field schema once per distinct
// team referenced by the plan's tickets.
func (s *Syncer) ensureSchemas(ctx context.Context, tickets []tracker.Ticket, result *StorageResult) {
	spec := tracker.FieldSpec{
		Name: s.config.FieldPrefix,
		Fields: map[string]string{
			s.fieldKey(fieldPlanID):      "Standup plan ID",
			s.fieldKey(fieldGeneratedAt): "Standup plan generation time",
		},
	}
	seen := make(map[string]bool)
	for _, ticket := range tickets {
		if ticket.Team == "" || seen[ticket.Team] {
			continue
		}
		seen[ticket.Team] = true
		if err := s.gateway.EnsureFieldSchema(ctx, ticket.Team, spec); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("field schema for team %s: %v", ticket.Team, err))
		}
	}
}

func (s *Syncer) fieldKey(name string) string {
	return s.config.FieldPrefix + "/" + name
}
