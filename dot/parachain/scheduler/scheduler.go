// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scheduler

import (
	"fmt"

	parachaintypes "github.com/ChainSafe/parachain-scheduler/dot/parachain/types"
	"github.com/ChainSafe/parachain-scheduler/internal/log"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "parachain-scheduler"))

// Scheduler assigns parachain claims to availability cores and
// validator groups to the cores, block after block.
// It is not safe for concurrent use, and is driven by the block
// initializer hooks in sequence.
type Scheduler struct {
	provider AssignmentProvider
	config   Configuration
	metrics  Metrics
	store    *Store

	// now is the number of the block being built.
	now   parachaintypes.BlockNumber
	state State
}

// Option is a functional option for the scheduler.
type Option func(s *Scheduler)

// WithStore sets the store the scheduler state is loaded from
// and persisted to on finalization.
func WithStore(store *Store) Option {
	return func(s *Scheduler) {
		s.store = store
	}
}

// WithMetrics sets the metrics the scheduler reports to.
func WithMetrics(metrics Metrics) Option {
	return func(s *Scheduler) {
		s.metrics = metrics
	}
}

// WithState sets the initial state of the scheduler.
// It is overridden by the stored state if a store is set.
func WithState(state State) Option {
	return func(s *Scheduler) {
		s.state = state.Clone()
	}
}

// New creates a new scheduler using the assignment provider and
// configuration given. If a store is given, the state is loaded from it.
func New(provider AssignmentProvider, config Configuration, options ...Option) (*Scheduler, error) {
	s := &Scheduler{
		provider: provider,
		config:   config,
		metrics:  noopMetrics{},
	}

	for _, option := range options {
		option(s)
	}

	if s.store != nil {
		state, err := s.store.Load()
		if err != nil {
			return nil, fmt.Errorf("loading scheduler state: %w", err)
		}
		s.state = state
	}

	if s.state.ClaimQueue == nil {
		s.state.ClaimQueue = make(map[parachaintypes.CoreIndex][]parachaintypes.ParasEntry)
	}

	s.reportState()
	return s, nil
}

// InitializerInitialize is called at the start of the block with
// the number of the block being built.
func (s *Scheduler) InitializerInitialize(now parachaintypes.BlockNumber) {
	s.now = now
}

// InitializerFinalize is called at the end of the block, and persists
// the scheduler state if a store is set.
func (s *Scheduler) InitializerFinalize() error {
	s.reportState()

	if s.store == nil {
		return nil
	}

	err := s.store.Save(s.state)
	if err != nil {
		return fmt.Errorf("saving scheduler state at block %d: %w", s.now, err)
	}
	return nil
}

// Now returns the number of the block being built.
func (s *Scheduler) Now() parachaintypes.BlockNumber {
	return s.now
}

// State returns a deep copy of the scheduler state.
func (s *Scheduler) State() State {
	return s.state.Clone()
}

func (s *Scheduler) reportState() {
	occupied := 0
	for _, core := range s.state.AvailabilityCores {
		if !core.IsFree() {
			occupied++
		}
	}
	s.metrics.SetOccupiedCores(occupied)
	s.metrics.SetAvailabilityCores(len(s.state.AvailabilityCores))
	s.metrics.SetValidatorGroups(len(s.state.ValidatorGroups))
	for core := range s.state.AvailabilityCores {
		index := parachaintypes.CoreIndex(core)
		s.metrics.SetClaimQueueDepth(index, len(s.state.ClaimQueue[index]))
	}
}
