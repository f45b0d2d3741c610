// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func enabledConfig() ScheduleConfig {
	return ScheduleConfig{
		Expression: "0 9 * * *",
		Enabled:    true,
		AdminID:    "admin-1",
	}
}

func TestScheduleConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ScheduleConfig)
		wantErr string
	}{
		{"valid", func(*ScheduleConfig) {}, ""},
		{"bad_expression", func(c *ScheduleConfig) { c.Expression = "99 * * * *" }, "out of range"},
		{"bad_timezone", func(c *ScheduleConfig) { c.Timezone = "Not/AZone" }, "invalid timezone"},
		{"missing_admin", func(c *ScheduleConfig) { c.AdminID = "" }, "admin_id is required"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := enabledConfig()
			test.mutate(&config)
			err := config.Validate()
			if test.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, test.wantErr)
			}
		})
	}
}

func TestScheduleArmsAndFiresOnce(t *testing.T) {
	h := newHarness(t, newFakeTracker("alice"), newFakeMessenger())

	// 08:00 now, daily 09:00 schedule: fires in one hour.
	next, err := h.runner.Schedule(enabledConfig())
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	want := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("next run = %v, want %v", next, want)
	}

	h.clock.Advance(59 * time.Minute)
	if got := len(h.runner.Sessions()); got != 0 {
		t.Fatalf("pass ran %d times before the fire time", got)
	}

	h.clock.Advance(time.Minute)
	sessions := h.runner.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("pass ran %d times at the fire time, want 1", len(sessions))
	}
	if sessions[0].AdminID != "admin-1" {
		t.Errorf("AdminID = %s, want the schedule's admin", sessions[0].AdminID)
	}

	// Single-shot: no re-arm, no further passes.
	h.clock.Advance(48 * time.Hour)
	if got := len(h.runner.Sessions()); got != 1 {
		t.Errorf("pass ran %d times after one arm, want exactly 1", got)
	}
}

func TestScheduleReplacesArmedTimer(t *testing.T) {
	h := newHarness(t, newFakeTracker("alice"), newFakeMessenger())

	if _, err := h.runner.Schedule(enabledConfig()); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	later := enabledConfig()
	later.Expression = "0 12 * * *"
	if _, err := h.runner.Schedule(later); err != nil {
		t.Fatalf("Schedule (replacement): %v", err)
	}

	// The first arm (09:00) was replaced; only the 12:00 arm fires.
	h.clock.Advance(2 * time.Hour)
	if got := len(h.runner.Sessions()); got != 0 {
		t.Fatalf("replaced timer fired: %d sessions", got)
	}
	h.clock.Advance(2 * time.Hour)
	if got := len(h.runner.Sessions()); got != 1 {
		t.Errorf("replacement timer fired %d times, want 1", got)
	}
}

func TestScheduleDisabledArmsNothing(t *testing.T) {
	h := newHarness(t, newFakeTracker("alice"), newFakeMessenger())

	config := enabledConfig()
	config.Enabled = false
	next, err := h.runner.Schedule(config)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if !next.IsZero() {
		t.Errorf("next run = %v for a disabled schedule, want zero", next)
	}
	h.clock.Advance(48 * time.Hour)
	if got := len(h.runner.Sessions()); got != 0 {
		t.Errorf("disabled schedule triggered %d passes", got)
	}
}

func TestScheduleRejectsInvalidBeforeArming(t *testing.T) {
	h := newHarness(t, newFakeTracker("alice"), newFakeMessenger())

	config := enabledConfig()
	config.Expression = "not a schedule"
	if _, err := h.runner.Schedule(config); err == nil {
		t.Fatal("Schedule accepted a malformed expression")
	}
	if h.clock.Pending() != 0 {
		t.Error("a timer was armed despite validation failure")
	}
}

func TestCancelScheduledIsIdempotent(t *testing.T) {
	h := newHarness(t, newFakeTracker("alice"), newFakeMessenger())

	// Cancelling with nothing armed is a no-op.
	h.runner.CancelScheduled()

	if _, err := h.runner.Schedule(enabledConfig()); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	h.runner.CancelScheduled()
	h.runner.CancelScheduled()

	h.clock.Advance(48 * time.Hour)
	if got := len(h.runner.Sessions()); got != 0 {
		t.Errorf("cancelled schedule triggered %d passes", got)
	}
}

func TestLoadScheduleConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.yaml")
	contents := strings.Join([]string{
		`expression: "30 18 * * 5"`,
		`timezone: UTC`,
		`enabled: true`,
		`admin_id: admin-1`,
		`team: ops`,
		`destinations:`,
		`  - "channel:standup"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	config, err := LoadScheduleConfig(path)
	if err != nil {
		t.Fatalf("LoadScheduleConfig: %v", err)
	}
	if config.Expression != "30 18 * * 5" || config.Team != "ops" || !config.Enabled {
		t.Errorf("config = %+v, want the file's values", config)
	}
	if len(config.Destinations) != 1 || config.Destinations[0] != "channel:standup" {
		t.Errorf("Destinations = %v, want [channel:standup]", config.Destinations)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	if _, err := LoadScheduleConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadScheduleConfig succeeded for a missing file")
	}
}
