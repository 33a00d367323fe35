// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scheduler

import (
	parachaintypes "github.com/ChainSafe/parachain-scheduler/dot/parachain/types"
)

// PositionInClaimQueue is the position of a claim in its core claim queue
// at the time the claim was moved onto the core.
type PositionInClaimQueue uint32

// freeCores frees the availability cores given, and returns the assignments
// of the cores which concluded and the entries of the cores which timed out.
// Free cores and core indices out of range are ignored.
func (s *Scheduler) freeCores(justFreed map[parachaintypes.CoreIndex]parachaintypes.FreedReason) (
	concluded map[parachaintypes.CoreIndex]parachaintypes.Assignment,
	timedOut map[parachaintypes.CoreIndex]parachaintypes.ParasEntry) {
	concluded = make(map[parachaintypes.CoreIndex]parachaintypes.Assignment)
	timedOut = make(map[parachaintypes.CoreIndex]parachaintypes.ParasEntry)

	for core, reason := range justFreed {
		if uint64(core) >= uint64(len(s.state.AvailabilityCores)) {
			logger.Debugf("ignoring freed %s out of range of %d cores", core, len(s.state.AvailabilityCores))
			continue
		}

		entry, occupied := s.state.AvailabilityCores[core].Entry()
		s.state.AvailabilityCores[core] = parachaintypes.FreeCore()
		if !occupied {
			continue
		}

		switch reason {
		case parachaintypes.FreedReasonConcluded:
			concluded[core] = entry.Assignment
		case parachaintypes.FreedReasonTimedOut:
			timedOut[core] = entry
		}
	}

	return concluded, timedOut
}

// FreeCoresAndFillClaimQueue frees the cores given, puts the claims of the
// cores which timed out back in their claim queue if they may still retry,
// and fills the claim queue of each session core from the assignment
// provider up to the scheduling lookahead. Assignments of concluded cores
// and of claims out of retries are reported processed to the provider.
// Without validator groups the cores are only freed.
func (s *Scheduler) FreeCoresAndFillClaimQueue(
	justFreed map[parachaintypes.CoreIndex]parachaintypes.FreedReason, now parachaintypes.BlockNumber) {
	concluded, timedOut := s.freeCores(justFreed)

	// Only possible right after a session change, when every claim
	// went back to the provider already.
	if len(s.state.ValidatorGroups) == 0 {
		return
	}

	sessionCores := s.provider.SessionCoreCount()
	lookahead := s.config.ActiveConfig().Lookahead()
	s.metrics.AddAvailabilityTimeouts(len(timedOut))

	for i := uint32(0); i < sessionCores; i++ {
		core := parachaintypes.CoreIndex(i)
		providerConfig := s.provider.GetProviderConfig(core)

		if entry, ok := timedOut[core]; ok {
			delete(timedOut, core)

			if entry.AvailabilityTimeouts < providerConfig.MaxAvailabilityTimeouts {
				// Retry: the claim goes to the back of the queue and the
				// queue is not topped up for this block.
				entry.AvailabilityTimeouts++
				entry.TTL = parachaintypes.SaturatingAdd(now, providerConfig.TTL)
				s.addToClaimQueue(core, entry)
				s.metrics.AddRequeuedClaims(1)
				logger.Debugf("requeued timed out claim %s on %s", entry, core)
				continue
			}

			logger.Debugf("dropping claim %s on %s out of availability retries", entry, core)
			concluded[core] = entry.Assignment
		}

		if assignment, ok := concluded[core]; ok {
			delete(concluded, core)
			s.reportProcessed(assignment)
		}

		// The occupied core counts as part of the claim queue.
		used := uint32(len(s.state.ClaimQueue[core]))
		if s.IsCoreOccupied(core) {
			used++
		}

		for ; used < lookahead; used++ {
			assignment, ok := s.provider.PopAssignmentForCore(core)
			if !ok {
				break
			}
			ttl := parachaintypes.SaturatingAdd(now, providerConfig.TTL)
			s.addToClaimQueue(core, parachaintypes.NewParasEntry(assignment, ttl))
		}
	}

	if len(timedOut) > 0 || len(concluded) > 0 {
		logger.Criticalf("freed cores beyond the %d session cores: %d timed out and %d concluded left unprocessed",
			sessionCores, len(timedOut), len(concluded))
	}
}

// Occupied moves the claims for the paras given from the front of their
// core claim queue onto the availability cores, and returns the position
// each claim had in its claim queue. Cores whose claim cannot be found are
// skipped. Expired claims are dropped from the claim queue afterwards.
func (s *Scheduler) Occupied(nowOccupied map[parachaintypes.CoreIndex]parachaintypes.ParaID) (
	positions map[parachaintypes.CoreIndex]PositionInClaimQueue) {
	logger.Debugf("occupied: %d cores now occupied", len(nowOccupied))

	positions = make(map[parachaintypes.CoreIndex]PositionInClaimQueue, len(nowOccupied))
	for _, core := range sortedCores(nowOccupied) {
		paraID := nowOccupied[core]

		position, entry, err := s.removeFromClaimQueue(core, paraID)
		if err != nil {
			logger.Debugf("cannot occupy core: %s", err)
			continue
		}

		s.state.AvailabilityCores[core] = parachaintypes.OccupiedBy(entry)
		positions[core] = position
	}

	s.dropExpiredClaimsFromClaimQueue()
	return positions
}

// removeFromClaimQueue removes the first claim for the para from the claim
// queue of the core, and returns it with the position it had.
func (s *Scheduler) removeFromClaimQueue(core parachaintypes.CoreIndex, paraID parachaintypes.ParaID) (
	position PositionInClaimQueue, entry parachaintypes.ParasEntry, err error) {
	if uint64(core) >= uint64(len(s.state.AvailabilityCores)) {
		return 0, entry, &ClaimQueueError{Core: core, ParaID: paraID, Err: ErrCoreOutOfRange}
	}

	if !s.state.AvailabilityCores[core].IsFree() {
		return 0, entry, &ClaimQueueError{Core: core, ParaID: paraID, Err: ErrCoreAlreadyOccupied}
	}

	queue, ok := s.state.ClaimQueue[core]
	if !ok {
		return 0, entry, &ClaimQueueError{Core: core, ParaID: paraID, Err: ErrCoreNotInClaimQueue}
	}

	for i, claim := range queue {
		if claim.ParaID() != paraID {
			continue
		}
		s.state.ClaimQueue[core] = append(queue[:i:i], queue[i+1:]...)
		return PositionInClaimQueue(i), claim, nil
	}

	return 0, entry, &ClaimQueueError{Core: core, ParaID: paraID, Err: ErrParaNotInClaimQueue}
}

// dropExpiredClaimsFromClaimQueue drops the claims whose TTL is behind the
// current block, reports them processed, and pops one new assignment from
// the provider for each claim dropped.
func (s *Scheduler) dropExpiredClaimsFromClaimQueue() {
	now := s.now
	expired := 0

	for i := range s.state.AvailabilityCores {
		core := parachaintypes.CoreIndex(i)
		queue, ok := s.state.ClaimQueue[core]
		if !ok {
			continue
		}

		kept := queue[:0:0]
		dropped := 0
		for _, entry := range queue {
			if entry.TTL < now {
				logger.Debugf("dropping expired claim %s on %s at block %d", entry, core, now)
				s.reportProcessed(entry.Assignment)
				dropped++
				continue
			}
			kept = append(kept, entry)
		}

		if dropped == 0 {
			continue
		}
		expired += dropped

		ttl := s.provider.GetProviderConfig(core).TTL
		for j := 0; j < dropped; j++ {
			assignment, ok := s.provider.PopAssignmentForCore(core)
			if !ok {
				break
			}
			kept = append(kept, parachaintypes.NewParasEntry(assignment, parachaintypes.SaturatingAdd(now, ttl)))
		}
		s.state.ClaimQueue[core] = kept
	}

	s.metrics.AddExpiredClaims(expired)
}

func (s *Scheduler) addToClaimQueue(core parachaintypes.CoreIndex, entry parachaintypes.ParasEntry) {
	s.state.ClaimQueue[core] = append(s.state.ClaimQueue[core], entry)
}

// IsCoreOccupied returns true if a claim occupies the core.
func (s *Scheduler) IsCoreOccupied(core parachaintypes.CoreIndex) bool {
	if uint64(core) >= uint64(len(s.state.AvailabilityCores)) {
		return false
	}
	return !s.state.AvailabilityCores[core].IsFree()
}

func (s *Scheduler) reportProcessed(assignment parachaintypes.Assignment) {
	s.provider.ReportProcessed(assignment)
	s.metrics.AddProcessedAssignments(1)
}
