// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scheduler

import (
	"github.com/ChainSafe/parachain-scheduler/dot/parachain/configuration"
	parachaintypes "github.com/ChainSafe/parachain-scheduler/dot/parachain/types"
)

// SessionChangeNotification holds the information of a session change.
type SessionChangeNotification struct {
	// Validators are the validators of the new session, after shuffling.
	Validators []parachaintypes.ValidatorID
	// Queued are the validators queued for the next session.
	Queued []parachaintypes.ValidatorID
	// PrevConfig is the host configuration of the previous session.
	PrevConfig configuration.HostConfiguration
	// NewConfig is the host configuration of the new session.
	NewConfig configuration.HostConfiguration
	// RandomSeed is the randomness seed for the new session.
	RandomSeed [32]byte
	// SessionIndex is the index of the new session.
	SessionIndex parachaintypes.SessionIndex
}

// PreNewSession is called before the session change is applied. The
// claims in the claim queues and on the cores which never timed out are
// pushed back to the assignment provider, the claim queue is cleared and
// all cores are freed.
func (s *Scheduler) PreNewSession() {
	pushedBack := 0

	for _, core := range sortedCores(s.state.ClaimQueue) {
		queue := s.state.ClaimQueue[core]
		// Reverse order so the provider gets them back front first.
		for i := len(queue) - 1; i >= 0; i-- {
			if s.maybePushBack(queue[i]) {
				pushedBack++
			}
		}
	}

	for i, core := range s.state.AvailabilityCores {
		entry, occupied := core.Entry()
		if !occupied {
			continue
		}
		if s.maybePushBack(entry) {
			pushedBack++
		}
		s.state.AvailabilityCores[i] = parachaintypes.FreeCore()
	}

	s.state.ClaimQueue = make(map[parachaintypes.CoreIndex][]parachaintypes.ParasEntry)
	s.metrics.AddPushedBackAssignments(pushedBack)

	logger.Debugf("pushed back %d assignments before new session", pushedBack)
}

// maybePushBack gives the assignment of the entry back to the provider,
// unless the entry already timed out in availability, in which case it
// is dropped without being pushed back nor reported.
func (s *Scheduler) maybePushBack(entry parachaintypes.ParasEntry) (pushed bool) {
	if entry.AvailabilityTimeouts != 0 {
		logger.Debugf("not pushing back claim %s which timed out already", entry)
		return false
	}
	s.provider.PushBackAssignment(entry.Assignment)
	return true
}

// InitializerOnNewSession is called when a new session starts. It resizes
// the availability cores and shuffles the validators into groups, one
// group per core.
func (s *Scheduler) InitializerOnNewSession(notification SessionChangeNotification) {
	config := notification.NewConfig
	validators := notification.Validators

	coreCount := s.provider.SessionCoreCount()
	if maxPerCore, ok := config.ValidatorsPerCore(); ok {
		if byValidators := uint32(len(validators)) / maxPerCore; byValidators > coreCount {
			coreCount = byValidators
		}
	}

	s.resizeAvailabilityCores(int(coreCount))
	s.state.ValidatorGroups = groupValidators(uint32(len(validators)), coreCount)
	s.state.SessionStartBlock = parachaintypes.SaturatingAdd(s.now, 1)

	logger.Debugf("new session %d starting at block %d: %d cores for %d validators",
		notification.SessionIndex, s.state.SessionStartBlock, coreCount, len(validators))

	s.reportState()
}

func (s *Scheduler) resizeAvailabilityCores(coreCount int) {
	if coreCount <= len(s.state.AvailabilityCores) {
		s.state.AvailabilityCores = s.state.AvailabilityCores[:coreCount]
		return
	}

	for len(s.state.AvailabilityCores) < coreCount {
		s.state.AvailabilityCores = append(s.state.AvailabilityCores, parachaintypes.FreeCore())
	}
}

// groupValidators splits the validators in groups of contiguous validator
// indices. When the validators do not split evenly, the first groups hold
// one validator more than the others.
func groupValidators(validatorCount, groupCount uint32) (groups [][]parachaintypes.ValidatorIndex) {
	if validatorCount == 0 || groupCount == 0 {
		return [][]parachaintypes.ValidatorIndex{}
	}

	baseSize := validatorCount / groupCount
	larger := validatorCount % groupCount

	groups = make([][]parachaintypes.ValidatorIndex, groupCount)
	next := parachaintypes.ValidatorIndex(0)
	for i := uint32(0); i < groupCount; i++ {
		size := baseSize
		if i < larger {
			size++
		}

		group := make([]parachaintypes.ValidatorIndex, size)
		for j := range group {
			group[j] = next
			next++
		}
		groups[i] = group
	}

	return groups
}
