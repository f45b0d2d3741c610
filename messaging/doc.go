// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

// Package messaging defines the delivery boundary: the Gateway
// interface a concrete chat-system adapter implements, and the
// Destination and DeliveryID types that cross it.
//
// Message text and layout are the adapter's concern. The core hands
// the adapter structured plans and summaries and records only the
// delivery identifiers that come back.
package messaging
