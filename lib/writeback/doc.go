// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

// Package writeback persists computed execution plans into the
// tracking source's own records: a comment on every referenced ticket
// and plan-linkage custom fields, each behind its own enable switch.
//
// The layer is built around partial failure. Every record write is an
// independent sub-operation; failures accumulate in the
// StorageResult's error list instead of aborting the plan, and a
// result is successful only when that list is empty. Ticket linkage to
// a plan exists purely through these written fields — tickets carry no
// intrinsic plan reference.
package writeback
