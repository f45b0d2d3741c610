// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/standupd/standupd/lib/cron"
)

// ScheduleConfig is the value object describing one scheduled
// execution: the five-field schedule expression, the timezone it is
// evaluated in, and the identity and scope of the triggered pass.
// It is immutable once handed to Schedule for a given timer arm.
type ScheduleConfig struct {
	// Expression is a five-field schedule expression (see lib/cron).
	Expression string `yaml:"expression" json:"expression"`

	// Timezone is an IANA timezone name (e.g. "America/Mexico_City").
	// Empty means UTC.
	Timezone string `yaml:"timezone,omitempty" json:"timezone,omitempty"`

	// Enabled gates the schedule. Scheduling a disabled config arms
	// nothing.
	Enabled bool `yaml:"enabled" json:"enabled"`

	// AdminID is the identity recorded as the initiator of
	// timer-triggered passes.
	AdminID string `yaml:"admin_id" json:"admin_id"`

	// Team is the optional team scope for triggered passes.
	Team string `yaml:"team,omitempty" json:"team,omitempty"`

	// Destinations optionally pins delivery destinations. The core
	// does not interpret these; they are handed to the messaging
	// adapter's configuration.
	Destinations []string `yaml:"destinations,omitempty" json:"destinations,omitempty"`
}

// Validate checks the expression, timezone, and initiator identity.
// Validation errors are rejected before any timer is armed.
func (c ScheduleConfig) Validate() error {
	if _, err := cron.Parse(c.Expression); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("runner: invalid timezone %q: %w", c.Timezone, err)
	}
	if c.AdminID == "" {
		return fmt.Errorf("runner: admin_id is required")
	}
	return nil
}

// LoadScheduleConfig reads a ScheduleConfig from a YAML file.
func LoadScheduleConfig(path string) (ScheduleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ScheduleConfig{}, fmt.Errorf("runner: reading schedule config: %w", err)
	}
	var config ScheduleConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return ScheduleConfig{}, fmt.Errorf("runner: parsing schedule config %s: %w", path, err)
	}
	return config, nil
}

// NextRun evaluates the config's expression against now in the
// config's timezone.
func (c ScheduleConfig) NextRun(now time.Time) (time.Time, error) {
	expression, err := cron.Parse(c.Expression)
	if err != nil {
		return time.Time{}, err
	}
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("runner: invalid timezone %q: %w", c.Timezone, err)
	}
	return expression.Next(now.In(location)), nil
}

// Schedule validates the config and arms a single-shot timer for the
// next run time. Firing triggers exactly one execution pass and does
// not re-arm; recurring behavior is the caller re-scheduling after
// each fire. Scheduling replaces any previously armed timer. A
// disabled config arms nothing and returns the zero time.
//
// Returns the computed fire time.
func (r *Runner) Schedule(config ScheduleConfig) (time.Time, error) {
	if err := config.Validate(); err != nil {
		return time.Time{}, err
	}
	if !config.Enabled {
		r.logger.Info("schedule disabled, not arming timer", "expression", config.Expression)
		return time.Time{}, nil
	}

	now := r.clock.Now()
	next, err := config.NextRun(now)
	if err != nil {
		return time.Time{}, err
	}

	r.timerMu.Lock()
	defer r.timerMu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = r.clock.AfterFunc(next.Sub(now), func() {
		r.timerMu.Lock()
		r.timer = nil
		r.timerMu.Unlock()

		if _, err := r.Trigger(context.Background(), config.AdminID, config.Team); err != nil {
			r.logger.Error("scheduled execution failed", "error", err)
		}
	})

	r.logger.Info("execution scheduled",
		"expression", config.Expression,
		"timezone", config.Timezone,
		"next_run", next,
	)
	return next, nil
}

// CancelScheduled stops the armed timer, if any. Idempotent:
// cancelling twice, or with nothing armed, is a no-op.
func (r *Runner) CancelScheduled() {
	r.timerMu.Lock()
	defer r.timerMu.Unlock()
	if r.timer == nil {
		return
	}
	r.timer.Stop()
	r.timer = nil
	r.logger.Info("scheduled execution cancelled")
}
