// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package simulation

import (
	"testing"

	"github.com/ChainSafe/parachain-scheduler/dot/parachain/configuration"
	"github.com/ChainSafe/parachain-scheduler/dot/parachain/scheduler"
	parachaintypes "github.com/ChainSafe/parachain-scheduler/dot/parachain/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ scheduler.AssignmentProvider = (*Provider)(nil)

func Test_Provider(t *testing.T) {
	t.Parallel()

	config := configuration.Default()
	config.CoretimeCores = 2
	config.OnDemandRetries = 3
	config.OnDemandTTL = 7
	configStore, err := configuration.NewStore(config)
	require.NoError(t, err)

	provider := NewProvider(configStore, []parachaintypes.ParaID{1000})

	assert.Equal(t, uint32(3), provider.SessionCoreCount())

	assignment, ok := provider.PopAssignmentForCore(0)
	assert.True(t, ok)
	assert.Equal(t, parachaintypes.NewBulkAssignment(1000), assignment)

	_, ok = provider.PopAssignmentForCore(1)
	assert.False(t, ok)

	provider.PlaceOrder(2000)
	provider.PlaceOrder(2001)
	assert.Equal(t, 2, provider.PendingOrders())

	assignment, ok = provider.PopAssignmentForCore(2)
	assert.True(t, ok)
	assert.Equal(t, parachaintypes.NewPoolAssignment(2000, 2), assignment)

	provider.PushBackAssignment(assignment)
	provider.PushBackAssignment(parachaintypes.NewBulkAssignment(1000))
	assert.Equal(t, 2, provider.PendingOrders())

	assignment, ok = provider.PopAssignmentForCore(1)
	assert.True(t, ok)
	assert.Equal(t, parachaintypes.NewPoolAssignment(2000, 1), assignment)

	provider.ReportProcessed(assignment)
	provider.ReportProcessed(parachaintypes.NewBulkAssignment(1000))
	provider.ReportProcessed(parachaintypes.NewBulkAssignment(1000))
	assert.Equal(t, []ParaProcessed{
		{ParaID: 1000, Processed: 2},
		{ParaID: 2000, Processed: 1},
	}, provider.Processed())

	assert.Equal(t, parachaintypes.AssignmentProviderConfig{TTL: 10}, provider.GetProviderConfig(0))
	assert.Equal(t, parachaintypes.AssignmentProviderConfig{
		MaxAvailabilityTimeouts: 3,
		TTL:                     7,
	}, provider.GetProviderConfig(1))
}
