// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scheduler

import parachaintypes "github.com/ChainSafe/parachain-scheduler/dot/parachain/types"

type noopMetrics struct{}

func (noopMetrics) SetOccupiedCores(int)                             {}
func (noopMetrics) SetAvailabilityCores(int)                         {}
func (noopMetrics) SetValidatorGroups(int)                           {}
func (noopMetrics) SetClaimQueueDepth(parachaintypes.CoreIndex, int) {}
func (noopMetrics) AddAvailabilityTimeouts(int)                      {}
func (noopMetrics) AddRequeuedClaims(int)                            {}
func (noopMetrics) AddExpiredClaims(int)                             {}
func (noopMetrics) AddProcessedAssignments(int)                      {}
func (noopMetrics) AddPushedBackAssignments(int)                     {}
