// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

package writeback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/standupd/standupd/lib/plan"
	"github.com/standupd/standupd/lib/tracker"
)

// recordingGateway records write-back calls and fails selectively.
type recordingGateway struct {
	comments     map[string][]string
	fields       map[string]map[string]string
	schemaCalls  []string
	commentErrs  map[string]error
	fieldErrs    map[string]error
	schemaErr    error
	readFields   map[string]map[string]string
	readErr      error
	panicComment string
}

func newRecordingGateway() *recordingGateway {
	return &recordingGateway{
		comments:    make(map[string][]string),
		fields:      make(map[string]map[string]string),
		commentErrs: make(map[string]error),
		fieldErrs:   make(map[string]error),
		readFields:  make(map[string]map[string]string),
	}
}

func (g *recordingGateway) QueryByAssignee(ctx context.Context, personID string) ([]tracker.Ticket, error) {
	return nil, fmt.Errorf("unexpected QueryByAssignee")
}

func (g *recordingGateway) QueryByTeam(ctx context.Context, teamID string) ([]tracker.Ticket, error) {
	return nil, fmt.Errorf("unexpected QueryByTeam")
}

func (g *recordingGateway) ListPeople(ctx context.Context, teamID string) ([]tracker.Person, error) {
	return nil, fmt.Errorf("unexpected ListPeople")
}

func (g *recordingGateway) AppendComment(ctx context.Context, ticketID, text string) error {
	if ticketID == g.panicComment {
		panic("gateway adapter bug")
	}
	if err := g.commentErrs[ticketID]; err != nil {
		return err
	}
	g.comments[ticketID] = append(g.comments[ticketID], text)
	return nil
}

func (g *recordingGateway) WriteCustomFields(ctx context.Context, ticketID string, fields map[string]string) error {
	if err := g.fieldErrs[ticketID]; err != nil {
		return err
	}
	g.fields[ticketID] = fields
	return nil
}

func (g *recordingGateway) ReadCustomFields(ctx context.Context, ticketID string) (map[string]string, error) {
	if g.readErr != nil {
		return nil, g.readErr
	}
	return g.readFields[ticketID], nil
}

func (g *recordingGateway) EnsureFieldSchema(ctx context.Context, teamID string, spec tracker.FieldSpec) error {
	g.schemaCalls = append(g.schemaCalls, teamID)
	return g.schemaErr
}

func testPlan(ticketIDs ...string) plan.ExecutionPlan {
	tickets := make([]tracker.Ticket, len(ticketIDs))
	for i, id := range ticketIDs {
		tickets[i] = tracker.Ticket{ID: id, State: tracker.StateStarted, Team: "ops"}
	}
	return plan.ExecutionPlan{
		ID:          "plan-1",
		PersonID:    "alice",
		InProgress:  tickets,
		Summary:     "You have 2 total tickets: 0 completed, 2 in progress, 0 open",
		GeneratedAt: time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC),
	}
}

func newSyncer(t *testing.T, gateway tracker.Gateway, config Config) *Syncer {
	t.Helper()
	syncer, err := NewSyncer(gateway, config, nil)
	if err != nil {
		t.Fatalf("NewSyncer: %v", err)
	}
	return syncer
}

func TestStorePlanCommentsOnly(t *testing.T) {
	gateway := newRecordingGateway()
	syncer := newSyncer(t, gateway, Config{EnableComments: true})

	result := syncer.StorePlan(context.Background(), testPlan("t1", "t2"))

	if !result.Success {
		t.Errorf("Success = false, errors: %v", result.Errors)
	}
	if result.TicketsUpdated != 2 {
		t.Errorf("TicketsUpdated = %d, want 2", result.TicketsUpdated)
	}
	if result.CustomFieldsUpdated != 0 {
		t.Errorf("CustomFieldsUpdated = %d, want 0 with custom fields disabled", result.CustomFieldsUpdated)
	}
	// Custom fields disabled: neither schema nor field operations run.
	if len(gateway.schemaCalls) != 0 {
		t.Errorf("schema calls = %v, want none", gateway.schemaCalls)
	}
	if len(gateway.fields) != 0 {
		t.Errorf("field writes = %v, want none", gateway.fields)
	}
	for _, id := range []string{"t1", "t2"} {
		texts := gateway.comments[id]
		if len(texts) != 1 || !strings.Contains(texts[0], "plan-1") {
			t.Errorf("comments[%s] = %v, want one comment naming plan-1", id, texts)
		}
	}
}

func TestStorePlanCustomFields(t *testing.T) {
	gateway := newRecordingGateway()
	syncer := newSyncer(t, gateway, Config{EnableCustomFields: true})

	result := syncer.StorePlan(context.Background(), testPlan("t1", "t2"))

	if !result.Success {
		t.Errorf("Success = false, errors: %v", result.Errors)
	}
	if result.TicketsUpdated != 0 {
		t.Errorf("TicketsUpdated = %d, want 0: field writes do not count as ticket updates", result.TicketsUpdated)
	}
	if result.CustomFieldsUpdated != 2 {
		t.Errorf("CustomFieldsUpdated = %d, want 2", result.CustomFieldsUpdated)
	}
	// One schema call for the single distinct team.
	if len(gateway.schemaCalls) != 1 || gateway.schemaCalls[0] != "ops" {
		t.Errorf("schema calls = %v, want [ops]", gateway.schemaCalls)
	}
	fields := gateway.fields["t1"]
	if fields["standup/plan_id"] != "plan-1" {
		t.Errorf("fields[t1] = %v, want standup/plan_id = plan-1", fields)
	}
	if _, err := time.Parse(time.RFC3339, fields["standup/generated_at"]); err != nil {
		t.Errorf("generated_at field %q is not RFC3339: %v", fields["standup/generated_at"], err)
	}
}

func TestStorePlanAccumulatesPartialFailures(t *testing.T) {
	gateway := newRecordingGateway()
	gateway.commentErrs["t2"] = errors.New("comment rejected")
	gateway.fieldErrs["t3"] = errors.New("field rejected")
	gateway.schemaErr = errors.New("schema denied")
	syncer := newSyncer(t, gateway, Config{EnableComments: true, EnableCustomFields: true})

	result := syncer.StorePlan(context.Background(), testPlan("t1", "t2", "t3"))

	if result.Success {
		t.Error("Success = true despite sub-operation failures")
	}
	if result.TicketsUpdated != 2 {
		t.Errorf("TicketsUpdated = %d, want 2 (t2 comment failed)", result.TicketsUpdated)
	}
	if result.CustomFieldsUpdated != 2 {
		t.Errorf("CustomFieldsUpdated = %d, want 2 (t3 field write failed)", result.CustomFieldsUpdated)
	}
	if len(result.Errors) != 3 {
		t.Errorf("Errors = %v, want 3 entries (schema, comment, field)", result.Errors)
	}
	// A failed schema sub-operation does not block the others.
	if len(gateway.comments["t1"]) != 1 {
		t.Error("comment sub-operation did not run after schema failure")
	}
}

func TestStorePlansIndependentAndOrdered(t *testing.T) {
	gateway := newRecordingGateway()
	gateway.panicComment = "boom"
	syncer := newSyncer(t, gateway, Config{EnableComments: true})

	first := testPlan("t1")
	poisoned := testPlan("boom")
	poisoned.ID = "plan-2"
	last := testPlan("t3")
	last.ID = "plan-3"

	results := syncer.StorePlans(context.Background(), []plan.ExecutionPlan{first, poisoned, last})

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].PlanID != "plan-1" || !results[0].Success {
		t.Errorf("results[0] = %+v, want successful plan-1", results[0])
	}
	if results[1].PlanID != "plan-2" || results[1].Success {
		t.Errorf("results[1] = %+v, want failed plan-2", results[1])
	}
	if len(results[1].Errors) == 0 || !strings.Contains(results[1].Errors[0], "panicked") {
		t.Errorf("results[1].Errors = %v, want a panic conversion", results[1].Errors)
	}
	if results[2].PlanID != "plan-3" || !results[2].Success {
		t.Errorf("results[2] = %+v, want successful plan-3 after the poisoned plan", results[2])
	}
}

func TestPlanMetadata(t *testing.T) {
	gateway := newRecordingGateway()
	gateway.readFields["t1"] = map[string]string{
		"standup/plan_id":      "plan-9",
		"standup/generated_at": "2026-03-02T09:00:00Z",
	}
	syncer := newSyncer(t, gateway, Config{EnableCustomFields: true})

	metadata, ok, err := syncer.PlanMetadata(context.Background(), "t1")
	if err != nil || !ok {
		t.Fatalf("PlanMetadata = ok=%v err=%v, want found", ok, err)
	}
	if metadata.PlanID != "plan-9" {
		t.Errorf("PlanID = %s, want plan-9", metadata.PlanID)
	}
	want := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	if !metadata.GeneratedAt.Equal(want) {
		t.Errorf("GeneratedAt = %v, want %v", metadata.GeneratedAt, want)
	}

	if _, ok, err := syncer.PlanMetadata(context.Background(), "untagged"); err != nil || ok {
		t.Errorf("PlanMetadata(untagged) = ok=%v err=%v, want absent without error", ok, err)
	}

	gateway.readErr = errors.New("tracker down")
	if _, _, err := syncer.PlanMetadata(context.Background(), "t1"); err == nil {
		t.Error("PlanMetadata did not propagate the gateway error")
	}
}
