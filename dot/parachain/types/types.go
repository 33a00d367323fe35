// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

import "fmt"

// BlockNumber is a relay chain block number.
type BlockNumber uint32

// SessionIndex is the index of a relay chain session.
type SessionIndex uint32

// CoreIndex is the index of an availability core.
type CoreIndex uint32

func (c CoreIndex) String() string {
	return fmt.Sprintf("core#%d", uint32(c))
}

// GroupIndex is the index of a validator group.
type GroupIndex uint32

// ValidatorIndex is the index of a validator in the active validator set.
type ValidatorIndex uint32

// ParaID is the identifier of a parachain or parathread.
type ParaID uint32

// ValidatorID is the sr25519 public key of a parachain validator.
type ValidatorID [32]byte

// CollatorID is the sr25519 public key of a collator.
type CollatorID [32]byte

// ScheduledCore is the information about a core which is currently
// free or about to be freed.
type ScheduledCore struct {
	// ParaID is the para scheduled onto the core.
	ParaID ParaID
	// Collator is the collator required to author the block, if any.
	Collator *CollatorID
}

// AvailabilityTimeoutStatus is the result of the availability
// timeout predicate for a core occupied since some block.
type AvailabilityTimeoutStatus struct {
	// TimedOut is true if the core has timed out.
	TimedOut bool
	// LiveUntil is the block number at which the core times out.
	// If TimedOut is true, this block number is in the past.
	LiveUntil BlockNumber
}

// FreedReason is the reason why an availability core was freed.
type FreedReason uint8

const (
	// FreedReasonConcluded means the core's work concluded and the
	// parablock assigned to it is considered available.
	FreedReasonConcluded FreedReason = iota
	// FreedReasonTimedOut means the core's work timed out.
	FreedReasonTimedOut
)

func (f FreedReason) String() string {
	switch f {
	case FreedReasonConcluded:
		return "concluded"
	case FreedReasonTimedOut:
		return "timed out"
	default:
		return fmt.Sprintf("unknown freed reason %d", uint8(f))
	}
}
