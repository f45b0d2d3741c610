// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

package plan

// Config controls plan generation. The engine reads it as an immutable
// snapshot; mutation goes through Engine.UpdateConfig.
type Config struct {
	// MaxTicketsPerUser caps how many tickets one person's plan may
	// carry. Truncation preserves finished work first, then
	// in-progress, then open. Must be greater than zero.
	MaxTicketsPerUser int `json:"max_tickets_per_user"`

	// IncludeCompleted controls whether completed tickets appear in
	// plans at all.
	IncludeCompleted bool `json:"include_completed_tickets"`

	// IncludeCanceled controls whether canceled tickets appear in
	// plans. Included canceled tickets classify into the finished
	// bucket.
	IncludeCanceled bool `json:"include_canceled_tickets"`
}

// DefaultConfig returns the engine's defaults: ten tickets per person,
// completed work included, canceled work excluded.
func DefaultConfig() Config {
	return Config{
		MaxTicketsPerUser: 10,
		IncludeCompleted:  true,
		IncludeCanceled:   false,
	}
}

// ConfigPatch is a partial Config for merge-style updates. Nil fields
// leave the current value untouched.
type ConfigPatch struct {
	MaxTicketsPerUser *int  `json:"max_tickets_per_user,omitempty"`
	IncludeCompleted  *bool `json:"include_completed_tickets,omitempty"`
	IncludeCanceled   *bool `json:"include_canceled_tickets,omitempty"`
}

// merge applies the patch's non-nil fields on top of c.
func (c Config) merge(patch ConfigPatch) Config {
	if patch.MaxTicketsPerUser != nil {
		c.MaxTicketsPerUser = *patch.MaxTicketsPerUser
	}
	if patch.IncludeCompleted != nil {
		c.IncludeCompleted = *patch.IncludeCompleted
	}
	if patch.IncludeCanceled != nil {
		c.IncludeCanceled = *patch.IncludeCanceled
	}
	return c
}

// ValidationResult reports config validity. Valid is true iff Errors
// is empty.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Validate checks the config's value constraints.
func (c Config) Validate() ValidationResult {
	var errors []string
	if c.MaxTicketsPerUser <= 0 {
		errors = append(errors, "maxTicketsPerUser must be greater than 0")
	}
	return ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}
