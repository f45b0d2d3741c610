// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"time"

	"github.com/standupd/standupd/lib/session"
)

// Session returns a copy of the session with the given id.
func (r *Runner) Session(id string) (session.Session, bool) {
	return r.store.Get(id)
}

// Sessions returns copies of all registered sessions in insertion
// order.
func (r *Runner) Sessions() []session.Session {
	return r.store.List()
}

// SetSessionStatus applies an external status transition. The status
// value is validated against the enumerated set before any mutation;
// an unrecognized value is rejected. An unknown session id is a
// logged no-op, not an error.
func (r *Runner) SetSessionStatus(id, status, message string) error {
	parsed, err := session.ParseStatus(status)
	if err != nil {
		return err
	}
	updated := r.store.Update(id, func(s *session.Session) {
		s.Status = parsed
		if message != "" {
			s.ErrorMessage = message
		}
	})
	if !updated {
		r.logger.Warn("status update for unknown session", "session_id", id, "status", status)
	}
	return nil
}

// CleanupSessions removes sessions older than maxAge, measured from
// their generation timestamp against the runner's clock. Intended to
// be invoked periodically by an external caller. Returns how many
// sessions were removed.
func (r *Runner) CleanupSessions(maxAge time.Duration) int {
	return r.store.DeleteOlderThan(r.clock.Now().Add(-maxAge))
}

// Stats counts registered sessions per status. Computed fresh on each
// call.
func (r *Runner) Stats() session.Stats {
	return r.store.Stats()
}
