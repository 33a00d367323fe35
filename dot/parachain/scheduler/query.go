// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scheduler

import (
	parachaintypes "github.com/ChainSafe/parachain-scheduler/dot/parachain/types"
)

// CorePara returns the para occupying the core, and false if the core
// is free or does not exist.
func (s *Scheduler) CorePara(core parachaintypes.CoreIndex) (paraID parachaintypes.ParaID, ok bool) {
	if uint64(core) >= uint64(len(s.state.AvailabilityCores)) {
		return 0, false
	}

	entry, occupied := s.state.AvailabilityCores[core].Entry()
	if !occupied {
		return 0, false
	}
	return entry.ParaID(), true
}

// NextUpOnAvailable returns the core scheduled next if the core becomes
// available, which is the front of its claim queue.
func (s *Scheduler) NextUpOnAvailable(core parachaintypes.CoreIndex) (scheduled parachaintypes.ScheduledCore, ok bool) {
	queue := s.state.ClaimQueue[core]
	if len(queue) == 0 {
		return scheduled, false
	}
	return toScheduledCore(queue[0]), true
}

// NextUpOnTimeOut returns the core scheduled next if the core times out.
// This is the front of its claim queue, or else the claim occupying the
// core if it may still retry.
func (s *Scheduler) NextUpOnTimeOut(core parachaintypes.CoreIndex) (scheduled parachaintypes.ScheduledCore, ok bool) {
	scheduled, ok = s.NextUpOnAvailable(core)
	if ok {
		return scheduled, true
	}

	if uint64(core) >= uint64(len(s.state.AvailabilityCores)) {
		return scheduled, false
	}

	entry, occupied := s.state.AvailabilityCores[core].Entry()
	if !occupied {
		return scheduled, false
	}

	maxTimeouts := s.provider.GetProviderConfig(core).MaxAvailabilityTimeouts
	if entry.AvailabilityTimeouts >= maxTimeouts {
		return scheduled, false
	}
	return toScheduledCore(entry), true
}

func toScheduledCore(entry parachaintypes.ParasEntry) parachaintypes.ScheduledCore {
	return parachaintypes.ScheduledCore{ParaID: entry.ParaID()}
}

// AvailabilityCores returns a copy of the availability cores.
func (s *Scheduler) AvailabilityCores() []parachaintypes.CoreOccupied {
	return s.state.Clone().AvailabilityCores
}

// ValidatorGroups returns a copy of the validator groups.
func (s *Scheduler) ValidatorGroups() [][]parachaintypes.ValidatorIndex {
	return s.state.Clone().ValidatorGroups
}

// ClaimQueue returns a copy of the claim queue.
func (s *Scheduler) ClaimQueue() map[parachaintypes.CoreIndex][]parachaintypes.ParasEntry {
	return s.state.Clone().ClaimQueue
}

// ClaimQueueLen returns the number of claims queued for the core.
func (s *Scheduler) ClaimQueueLen(core parachaintypes.CoreIndex) int {
	return len(s.state.ClaimQueue[core])
}

// SessionStartBlock returns the block number the current session started at.
func (s *Scheduler) SessionStartBlock() parachaintypes.BlockNumber {
	return s.state.SessionStartBlock
}

// ScheduledParas returns an iterator over the paras at the front of
// the claim queues, in core order. The iterator works on a snapshot
// taken at call time and can be consumed once.
func (s *Scheduler) ScheduledParas() *ScheduledParasIterator {
	cores := sortedCores(s.state.ClaimQueue)
	iterator := &ScheduledParasIterator{
		cores: make([]parachaintypes.CoreIndex, 0, len(cores)),
		paras: make([]parachaintypes.ParaID, 0, len(cores)),
	}

	for _, core := range cores {
		queue := s.state.ClaimQueue[core]
		if len(queue) == 0 {
			continue
		}
		iterator.cores = append(iterator.cores, core)
		iterator.paras = append(iterator.paras, queue[0].ParaID())
	}

	return iterator
}

// ScheduledParasIterator iterates over the scheduled paras of each core.
type ScheduledParasIterator struct {
	cores []parachaintypes.CoreIndex
	paras []parachaintypes.ParaID
	next  int
}

// Next returns the next core and its scheduled para,
// and false once the iterator is exhausted.
func (it *ScheduledParasIterator) Next() (core parachaintypes.CoreIndex, paraID parachaintypes.ParaID, ok bool) {
	if it.next >= len(it.cores) {
		return 0, 0, false
	}
	core, paraID = it.cores[it.next], it.paras[it.next]
	it.next++
	return core, paraID, true
}

// Len returns the number of scheduled paras left in the iterator.
func (it *ScheduledParasIterator) Len() int {
	return len(it.cores) - it.next
}
