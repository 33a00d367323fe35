// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scheduler

import (
	"github.com/ChainSafe/parachain-scheduler/dot/parachain/configuration"
	parachaintypes "github.com/ChainSafe/parachain-scheduler/dot/parachain/types"
)

// AssignmentProvider provides the assignments the scheduler puts
// in the claim queue of each core, and is told back what happened
// to them.
type AssignmentProvider interface {
	// SessionCoreCount returns the number of cores the provider
	// serves assignments for in the current session.
	SessionCoreCount() uint32
	// PopAssignmentForCore pops the next assignment for the core,
	// and returns false if there is none.
	PopAssignmentForCore(core parachaintypes.CoreIndex) (parachaintypes.Assignment, bool)
	// ReportProcessed reports an assignment as processed, either
	// because it was backed and concluded, or because it finally failed.
	ReportProcessed(assignment parachaintypes.Assignment)
	// PushBackAssignment gives back an assignment which was popped
	// but not processed, so it can be handed out again.
	PushBackAssignment(assignment parachaintypes.Assignment)
	// GetProviderConfig returns the provider configuration for the core.
	GetProviderConfig(core parachaintypes.CoreIndex) parachaintypes.AssignmentProviderConfig
}

// Configuration gives read access to the active host configuration.
type Configuration interface {
	ActiveConfig() configuration.HostConfiguration
}

// Metrics records the scheduler state for monitoring.
type Metrics interface {
	SetOccupiedCores(count int)
	SetAvailabilityCores(count int)
	SetValidatorGroups(count int)
	SetClaimQueueDepth(core parachaintypes.CoreIndex, depth int)
	AddAvailabilityTimeouts(count int)
	AddRequeuedClaims(count int)
	AddExpiredClaims(count int)
	AddProcessedAssignments(count int)
	AddPushedBackAssignments(count int)
}
