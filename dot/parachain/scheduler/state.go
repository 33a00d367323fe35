// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scheduler

import (
	"sort"

	parachaintypes "github.com/ChainSafe/parachain-scheduler/dot/parachain/types"
)

// State is the storage owned by the scheduler.
type State struct {
	// ValidatorGroups are the validator groups of the session, as indices
	// into the session validators. There is one group per availability core.
	ValidatorGroups [][]parachaintypes.ValidatorIndex
	// AvailabilityCores are the occupancy states of the availability cores.
	AvailabilityCores []parachaintypes.CoreOccupied
	// ClaimQueue maps a core to its upcoming claims, front first.
	ClaimQueue map[parachaintypes.CoreIndex][]parachaintypes.ParasEntry
	// SessionStartBlock is the block number one after the block in which
	// the session change was applied. Group rotations are counted from it.
	SessionStartBlock parachaintypes.BlockNumber
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	cloned := State{
		SessionStartBlock: s.SessionStartBlock,
	}

	if s.ValidatorGroups != nil {
		cloned.ValidatorGroups = make([][]parachaintypes.ValidatorIndex, len(s.ValidatorGroups))
		for i, group := range s.ValidatorGroups {
			cloned.ValidatorGroups[i] = append([]parachaintypes.ValidatorIndex(nil), group...)
		}
	}

	if s.AvailabilityCores != nil {
		cloned.AvailabilityCores = make([]parachaintypes.CoreOccupied, len(s.AvailabilityCores))
		for i, core := range s.AvailabilityCores {
			cloned.AvailabilityCores[i] = parachaintypes.CoreOccupiedFromOption(core.ToOption())
		}
	}

	if s.ClaimQueue != nil {
		cloned.ClaimQueue = make(map[parachaintypes.CoreIndex][]parachaintypes.ParasEntry, len(s.ClaimQueue))
		for core, queue := range s.ClaimQueue {
			cloned.ClaimQueue[core] = append([]parachaintypes.ParasEntry(nil), queue...)
		}
	}

	return cloned
}

// sortedCores returns the cores of the map given in ascending order.
func sortedCores[V any](m map[parachaintypes.CoreIndex]V) []parachaintypes.CoreIndex {
	cores := make([]parachaintypes.CoreIndex, 0, len(m))
	for core := range m {
		cores = append(cores, core)
	}
	sort.Slice(cores, func(i, j int) bool { return cores[i] < cores[j] })
	return cores
}
