// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

import "fmt"

// AssignmentKind distinguishes on-demand pool assignments from
// bulk (leased) assignments.
type AssignmentKind uint8

const (
	// AssignmentKindPool is an on-demand assignment, popped for a
	// specific core from the on-demand pool.
	AssignmentKindPool AssignmentKind = iota
	// AssignmentKindBulk is a bulk assignment for a para owning the core.
	AssignmentKindBulk
)

// Assignment is a unit of work handed out by an assignment provider
// for a core. The scheduler only looks at the para it is for.
type Assignment struct {
	Kind AssignmentKind
	Para ParaID
	// Core is the core the pool assignment was popped for.
	// It is left to zero for bulk assignments.
	Core CoreIndex
}

// NewPoolAssignment returns an on-demand assignment of the
// para for the core given.
func NewPoolAssignment(para ParaID, core CoreIndex) Assignment {
	return Assignment{
		Kind: AssignmentKindPool,
		Para: para,
		Core: core,
	}
}

// NewBulkAssignment returns a bulk assignment for the para given.
func NewBulkAssignment(para ParaID) Assignment {
	return Assignment{
		Kind: AssignmentKindBulk,
		Para: para,
	}
}

// ParaID returns the para the assignment is for.
func (a Assignment) ParaID() ParaID {
	return a.Para
}

func (a Assignment) String() string {
	switch a.Kind {
	case AssignmentKindPool:
		return fmt.Sprintf("pool(para=%d, %s)", a.Para, a.Core)
	case AssignmentKindBulk:
		return fmt.Sprintf("bulk(para=%d)", a.Para)
	default:
		return fmt.Sprintf("unknown(para=%d)", a.Para)
	}
}

// AssignmentProviderConfig is the per core configuration of an
// assignment provider.
type AssignmentProviderConfig struct {
	// MaxAvailabilityTimeouts is how many times a claim can time out
	// on a core before it is dropped.
	MaxAvailabilityTimeouts uint32
	// TTL is how many blocks a claim stays in the claim queue
	// before it is dropped.
	TTL BlockNumber
}

// ParasEntry is a claim on a core for a para, held either in the
// claim queue or by an occupied availability core.
type ParasEntry struct {
	// Assignment is the underlying assignment.
	Assignment Assignment
	// AvailabilityTimeouts is the number of times the entry has timed
	// out in availability already.
	AvailabilityTimeouts uint32
	// TTL is the block height until which the entry can stay in the
	// claim queue. It is dropped from the queue once the block height
	// goes past it.
	TTL BlockNumber
}

// NewParasEntry returns an entry with no availability timeouts.
func NewParasEntry(assignment Assignment, ttl BlockNumber) ParasEntry {
	return ParasEntry{
		Assignment: assignment,
		TTL:        ttl,
	}
}

// ParaID returns the para the entry is for.
func (pe ParasEntry) ParaID() ParaID {
	return pe.Assignment.ParaID()
}

func (pe ParasEntry) String() string {
	return fmt.Sprintf("%s timeouts=%d ttl=%d", pe.Assignment, pe.AvailabilityTimeouts, pe.TTL)
}
