// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"context"

	"github.com/standupd/standupd/lib/plan"
)

// Destination identifies where a message is delivered (a channel or
// direct-message identifier in the destination system).
type Destination string

// DeliveryID is the destination system's identifier for one accepted
// message. Execution sessions accumulate these as fan-out proceeds.
type DeliveryID string

// Gateway is the messaging boundary the core consumes. Implementations
// adapt a concrete chat system; the core only orchestrates.
//
// Connect is acquired once per execution pass and Disconnect is always
// called before the pass returns, including on error. Implementations
// may make Connect a no-op for stateless transports.
type Gateway interface {
	// Connect acquires the messaging connection for one execution
	// pass.
	Connect(ctx context.Context) error

	// Disconnect releases the connection. Called exactly once per
	// successful Connect, error or not.
	Disconnect()

	// SendPlanMessage delivers one person's plan to a destination
	// and returns the delivery identifier.
	SendPlanMessage(ctx context.Context, p plan.ExecutionPlan, destination Destination) (DeliveryID, error)

	// SendSummaryMessage delivers a team summary to a destination.
	SendSummaryMessage(ctx context.Context, summary plan.TeamSummary, destination Destination) (DeliveryID, error)

	// ResolveDestinationForPerson maps a person to their delivery
	// destination. ok is false when no mapping exists; the caller
	// treats that as a skip, not an error.
	ResolveDestinationForPerson(ctx context.Context, personID string) (destination Destination, ok bool, err error)

	// ResolveSummaryDestination maps a team to the channel that
	// receives its summary. ok is false when no mapping exists.
	ResolveSummaryDestination(ctx context.Context, teamID string) (destination Destination, ok bool, err error)
}
