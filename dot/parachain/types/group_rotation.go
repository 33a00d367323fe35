// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

import "math"

// GroupRotationInfo is the information about the rotation of validator
// groups over the availability cores.
type GroupRotationInfo struct {
	// SessionStartBlock is the block number at which the session started.
	SessionStartBlock BlockNumber
	// GroupRotationFrequency indicates how often groups rotate. 0 means never.
	GroupRotationFrequency BlockNumber
	// Now indicates the current block number.
	Now BlockNumber
}

// GroupForCore returns the index of the group needed to validate the core
// at the given index, assuming the given number of cores.
func (g GroupRotationInfo) GroupForCore(core CoreIndex, cores uint) GroupIndex {
	if g.GroupRotationFrequency == 0 {
		return GroupIndex(core)
	}
	if cores == 0 {
		return 0
	}

	rotations := uint64(g.blocksSinceStart() / g.GroupRotationFrequency)
	return GroupIndex((uint64(core) + rotations) % uint64(cores))
}

// CoreForGroup returns the index of the core the group at the given
// index is assigned to, assuming the given number of cores.
func (g GroupRotationInfo) CoreForGroup(group GroupIndex, cores uint) CoreIndex {
	if g.GroupRotationFrequency == 0 {
		return CoreIndex(group)
	}
	if cores == 0 {
		return 0
	}

	rotations := uint64(g.blocksSinceStart()/g.GroupRotationFrequency) % uint64(cores)

	// g = c + r mod cores
	groupIndex := uint64(group)
	if groupIndex >= rotations {
		return CoreIndex(groupIndex - rotations)
	}
	return CoreIndex(uint64(cores) - rotations + groupIndex)
}

// BumpRotation returns the group rotation info for the next rotation.
func (g GroupRotationInfo) BumpRotation() GroupRotationInfo {
	g.Now = g.NextRotationAt()
	return g
}

// NextRotationAt returns the block number at which the next rotation
// happens. It returns the maximum block number if groups never rotate.
func (g GroupRotationInfo) NextRotationAt() BlockNumber {
	if g.GroupRotationFrequency == 0 {
		return math.MaxUint32
	}

	cycleOnce := SaturatingAdd(g.Now, g.GroupRotationFrequency)
	return cycleOnce - (SaturatingSub(cycleOnce, g.SessionStartBlock) % g.GroupRotationFrequency)
}

// LastRotationAt returns the block number of the last rotation, which
// is the session start block if groups never rotate.
func (g GroupRotationInfo) LastRotationAt() BlockNumber {
	if g.GroupRotationFrequency == 0 {
		if g.Now < g.SessionStartBlock {
			return g.Now
		}
		return g.SessionStartBlock
	}

	return g.Now - (g.blocksSinceStart() % g.GroupRotationFrequency)
}

func (g GroupRotationInfo) blocksSinceStart() BlockNumber {
	return SaturatingSub(g.Now, g.SessionStartBlock)
}

// SaturatingAdd returns a + b, or the maximum block number on overflow.
func SaturatingAdd(a, b BlockNumber) BlockNumber {
	if a > math.MaxUint32-b {
		return math.MaxUint32
	}
	return a + b
}

// SaturatingSub returns a - b, or 0 if b is greater than a.
func SaturatingSub(a, b BlockNumber) BlockNumber {
	if b > a {
		return 0
	}
	return a - b
}
