// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scheduler

import (
	parachaintypes "github.com/ChainSafe/parachain-scheduler/dot/parachain/types"
)

// GroupAssignedToCore returns the validator group assigned to the core
// at the given block number. It returns false if the block is before the
// session start or if the core has no group.
func (s *Scheduler) GroupAssignedToCore(core parachaintypes.CoreIndex,
	at parachaintypes.BlockNumber) (group parachaintypes.GroupIndex, ok bool) {
	sessionStart := s.state.SessionStartBlock
	if at < sessionStart {
		return 0, false
	}

	groupCount := uint64(len(s.state.ValidatorGroups))
	if uint64(core) >= groupCount {
		return 0, false
	}

	frequency := s.config.ActiveConfig().GroupRotationFrequency
	var rotations uint64
	if frequency != 0 {
		rotations = uint64((at - sessionStart) / frequency)
	}

	return parachaintypes.GroupIndex((uint64(core) + rotations) % groupCount), true
}

// GroupValidators returns a copy of the validator indices in the group,
// and false if there is no such group.
func (s *Scheduler) GroupValidators(group parachaintypes.GroupIndex) (
	validators []parachaintypes.ValidatorIndex, ok bool) {
	if uint64(group) >= uint64(len(s.state.ValidatorGroups)) {
		return nil, false
	}
	return append([]parachaintypes.ValidatorIndex(nil), s.state.ValidatorGroups[group]...), true
}

// GroupRotationInfo returns the group rotation information at the block
// number given.
func (s *Scheduler) GroupRotationInfo(now parachaintypes.BlockNumber) parachaintypes.GroupRotationInfo {
	return parachaintypes.GroupRotationInfo{
		SessionStartBlock:      s.state.SessionStartBlock,
		GroupRotationFrequency: s.config.ActiveConfig().GroupRotationFrequency,
		Now:                    now,
	}
}

// AvailabilityTimeoutPredicate returns whether a core occupied since
// the block number given has timed out, and until which block it lives.
type AvailabilityTimeoutPredicate func(pendingSince parachaintypes.BlockNumber) parachaintypes.AvailabilityTimeoutStatus

// AvailabilityTimeoutCheckRequired returns true if the next block is
// within the availability period following the last group rotation,
// in which case availability timeouts must be checked.
func (s *Scheduler) AvailabilityTimeoutCheckRequired() bool {
	period := s.config.ActiveConfig().ParasAvailabilityPeriod
	next := parachaintypes.SaturatingAdd(s.now, 1)
	lastRotation := s.GroupRotationInfo(next).LastRotationAt()
	return next < parachaintypes.SaturatingAdd(lastRotation, period)
}

// AvailabilityTimeoutPredicate returns the predicate deciding whether
// occupied cores have timed out at the current block.
// The configuration and block number are captured at call time.
func (s *Scheduler) AvailabilityTimeoutPredicate() AvailabilityTimeoutPredicate {
	now := s.now
	period := s.config.ActiveConfig().ParasAvailabilityPeriod
	checkRequired := s.AvailabilityTimeoutCheckRequired()
	nextRotation := s.GroupRotationInfo(now).NextRotationAt()

	return func(pendingSince parachaintypes.BlockNumber) parachaintypes.AvailabilityTimeoutStatus {
		var liveUntil parachaintypes.BlockNumber
		if checkRequired {
			liveUntil = parachaintypes.SaturatingAdd(pendingSince, period)
		} else {
			// Timeouts are only checked right after a rotation; until then
			// the core lives until the availability period after the next one.
			liveUntil = parachaintypes.SaturatingAdd(nextRotation, period)
		}

		return parachaintypes.AvailabilityTimeoutStatus{
			TimedOut:  liveUntil <= now,
			LiveUntil: liveUntil,
		}
	}
}
