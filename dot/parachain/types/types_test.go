// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoreOccupied(t *testing.T) {
	t.Parallel()

	free := FreeCore()
	require.True(t, free.IsFree())
	_, ok := free.Entry()
	require.False(t, ok)
	require.Nil(t, free.ToOption())
	require.Equal(t, "free", free.String())

	entry := NewParasEntry(NewPoolAssignment(2000, 1), 15)
	occupied := OccupiedBy(entry)
	require.False(t, occupied.IsFree())
	got, ok := occupied.Entry()
	require.True(t, ok)
	require.Equal(t, entry, got)

	// mutating the returned entry does not mutate the core.
	got.AvailabilityTimeouts++
	again, _ := occupied.Entry()
	require.Equal(t, uint32(0), again.AvailabilityTimeouts)

	require.Equal(t, occupied, CoreOccupiedFromOption(occupied.ToOption()))
	require.Equal(t, free, CoreOccupiedFromOption(nil))
}

func TestStringers(t *testing.T) {
	t.Parallel()

	require.Equal(t, "core#3", CoreIndex(3).String())
	require.Equal(t, "timed out", FreedReasonTimedOut.String())
	require.Equal(t, "pool(para=5, core#1)", NewPoolAssignment(5, 1).String())
	require.Equal(t, "bulk(para=9)", NewBulkAssignment(9).String())
	require.Equal(t, "paras(bulk(para=9) timeouts=0 ttl=4)",
		OccupiedBy(NewParasEntry(NewBulkAssignment(9), 4)).String())
}
