// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scheduler

import (
	"testing"

	"github.com/ChainSafe/parachain-scheduler/dot/parachain/configuration"
	parachaintypes "github.com/ChainSafe/parachain-scheduler/dot/parachain/types"
	"github.com/stretchr/testify/require"
)

// fakeProvider hands out assignments from a queue per core,
// and records what the scheduler reports back.
type fakeProvider struct {
	coreCount  uint32
	config     parachaintypes.AssignmentProviderConfig
	queues     map[parachaintypes.CoreIndex][]parachaintypes.Assignment
	processed  []parachaintypes.Assignment
	pushedBack []parachaintypes.Assignment
}

func newFakeProvider(coreCount uint32, maxTimeouts uint32, ttl parachaintypes.BlockNumber) *fakeProvider {
	return &fakeProvider{
		coreCount: coreCount,
		config: parachaintypes.AssignmentProviderConfig{
			MaxAvailabilityTimeouts: maxTimeouts,
			TTL:                     ttl,
		},
		queues: make(map[parachaintypes.CoreIndex][]parachaintypes.Assignment),
	}
}

func (f *fakeProvider) add(core parachaintypes.CoreIndex, paras ...parachaintypes.ParaID) {
	for _, para := range paras {
		f.queues[core] = append(f.queues[core], parachaintypes.NewPoolAssignment(para, core))
	}
}

func (f *fakeProvider) SessionCoreCount() uint32 { return f.coreCount }

func (f *fakeProvider) PopAssignmentForCore(core parachaintypes.CoreIndex) (parachaintypes.Assignment, bool) {
	queue := f.queues[core]
	if len(queue) == 0 {
		return parachaintypes.Assignment{}, false
	}
	f.queues[core] = queue[1:]
	return queue[0], true
}

func (f *fakeProvider) ReportProcessed(assignment parachaintypes.Assignment) {
	f.processed = append(f.processed, assignment)
}

func (f *fakeProvider) PushBackAssignment(assignment parachaintypes.Assignment) {
	f.pushedBack = append(f.pushedBack, assignment)
}

func (f *fakeProvider) GetProviderConfig(parachaintypes.CoreIndex) parachaintypes.AssignmentProviderConfig {
	return f.config
}

func newTestConfig() configuration.HostConfiguration {
	config := configuration.Default()
	config.GroupRotationFrequency = 10
	config.ParasAvailabilityPeriod = 5
	config.SchedulingLookahead = 2
	return config
}

func newTestScheduler(t *testing.T, provider AssignmentProvider,
	config configuration.HostConfiguration, options ...Option) *Scheduler {
	t.Helper()

	configStore, err := configuration.NewStore(config)
	require.NoError(t, err)

	s, err := New(provider, configStore, options...)
	require.NoError(t, err)
	return s
}

// startSession starts a new session with the number of validators given,
// in the block given.
func startSession(s *Scheduler, now parachaintypes.BlockNumber, validatorCount int,
	config configuration.HostConfiguration) {
	s.InitializerInitialize(now)
	s.PreNewSession()
	s.InitializerOnNewSession(SessionChangeNotification{
		Validators: make([]parachaintypes.ValidatorID, validatorCount),
		PrevConfig: config,
		NewConfig:  config,
	})
}

func poolEntry(para parachaintypes.ParaID, core parachaintypes.CoreIndex,
	ttl parachaintypes.BlockNumber) parachaintypes.ParasEntry {
	return parachaintypes.NewParasEntry(parachaintypes.NewPoolAssignment(para, core), ttl)
}

func validatorIndices(indices ...parachaintypes.ValidatorIndex) []parachaintypes.ValidatorIndex {
	return indices
}

// staticConfig serves a host configuration without validating it.
type staticConfig configuration.HostConfiguration

func (c staticConfig) ActiveConfig() configuration.HostConfiguration {
	return configuration.HostConfiguration(c)
}

func newStaticScheduler(t *testing.T, provider AssignmentProvider,
	config configuration.HostConfiguration, options ...Option) *Scheduler {
	t.Helper()

	s, err := New(provider, staticConfig(config), options...)
	require.NoError(t, err)
	return s
}
