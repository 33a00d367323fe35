// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

// CoreOccupied is the occupancy state of an availability core.
// The zero value is a free core.
type CoreOccupied struct {
	entry *ParasEntry
}

// FreeCore returns a free core state.
func FreeCore() CoreOccupied {
	return CoreOccupied{}
}

// OccupiedBy returns a core state occupied by the entry given.
func OccupiedBy(entry ParasEntry) CoreOccupied {
	return CoreOccupied{entry: &entry}
}

// IsFree returns true if no entry occupies the core.
func (c CoreOccupied) IsFree() bool {
	return c.entry == nil
}

// Entry returns a copy of the entry occupying the core, and false
// if the core is free.
func (c CoreOccupied) Entry() (entry ParasEntry, ok bool) {
	if c.entry == nil {
		return ParasEntry{}, false
	}
	return *c.entry, true
}

// ToOption converts the core state to its storage form,
// where a nil entry is a free core.
func (c CoreOccupied) ToOption() *ParasEntry {
	if c.entry == nil {
		return nil
	}
	entry := *c.entry
	return &entry
}

// CoreOccupiedFromOption is the inverse of ToOption.
func CoreOccupiedFromOption(entry *ParasEntry) CoreOccupied {
	if entry == nil {
		return FreeCore()
	}
	return OccupiedBy(*entry)
}

func (c CoreOccupied) String() string {
	if c.entry == nil {
		return "free"
	}
	return "paras(" + c.entry.String() + ")"
}
