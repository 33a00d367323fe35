// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package simulation plays relay chain blocks against the parachain
// scheduler, standing in for the inclusion pipeline.
package simulation

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/ChainSafe/parachain-scheduler/dot/parachain/configuration"
	"github.com/ChainSafe/parachain-scheduler/dot/parachain/scheduler"
	parachaintypes "github.com/ChainSafe/parachain-scheduler/dot/parachain/types"
	"github.com/ChainSafe/parachain-scheduler/internal/log"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "simulation"))

// ConfigStore holds the active host configuration.
type ConfigStore interface {
	ActiveConfig() configuration.HostConfiguration
	SetActiveConfig(config configuration.HostConfiguration) error
}

// OrderPlacer places on-demand orders.
type OrderPlacer interface {
	PlaceOrder(paraID parachaintypes.ParaID)
}

// Report summarises a simulation run.
type Report struct {
	// LastBlock is the number of the last block played.
	LastBlock parachaintypes.BlockNumber
	Blocks    uint32
	Sessions  uint32
	Backed    uint64
	Concluded uint64
	TimedOut  uint64
	Orders    uint64
	// MaxClaimQueueDepth is the deepest claim queue seen at a block end,
	// counting the claim occupying the core.
	MaxClaimQueueDepth int
}

// Driver drives the scheduler block after block.
type Driver struct {
	settings  Settings
	scheduler *scheduler.Scheduler
	config    ConfigStore
	orders    OrderPlacer
	random    *rand.Rand

	// pendingSince maps an occupied core to the block it got occupied at.
	pendingSince map[parachaintypes.CoreIndex]parachaintypes.BlockNumber
	session      parachaintypes.SessionIndex

	pendingConfigMutex sync.Mutex
	pendingConfig      *configuration.HostConfiguration
}

// NewDriver creates a driver for the scheduler given.
func NewDriver(settings Settings, sched *scheduler.Scheduler,
	config ConfigStore, orders OrderPlacer) (*Driver, error) {
	settings.SetDefaults()
	err := settings.Validate()
	if err != nil {
		return nil, err
	}

	return &Driver{
		settings:     settings,
		scheduler:    sched,
		config:       config,
		orders:       orders,
		random:       rand.New(rand.NewSource(settings.Seed)), //nolint:gosec
		pendingSince: make(map[parachaintypes.CoreIndex]parachaintypes.BlockNumber),
	}, nil
}

// SetPendingConfig sets the host configuration activated
// at the next session change.
func (d *Driver) SetPendingConfig(config configuration.HostConfiguration) error {
	err := config.Validate()
	if err != nil {
		return err
	}

	d.pendingConfigMutex.Lock()
	defer d.pendingConfigMutex.Unlock()
	d.pendingConfig = &config
	return nil
}

// Run plays the blocks of the settings, and stops early
// with the context error if the context is canceled.
func (d *Driver) Run(ctx context.Context) (report Report, err error) {
	last := d.settings.FirstBlock + parachaintypes.BlockNumber(d.settings.Blocks) - 1
	for block := d.settings.FirstBlock; block <= last; block++ {
		select {
		case <-ctx.Done():
			return report, fmt.Errorf("stopped at block %d: %w", block, ctx.Err())
		default:
		}

		err = d.playBlock(block, &report)
		if err != nil {
			return report, fmt.Errorf("playing block %d: %w", block, err)
		}
	}

	logger.Infof("played %d blocks up to block %d: %d backed, %d concluded, %d timed out",
		report.Blocks, report.LastBlock, report.Backed, report.Concluded, report.TimedOut)
	return report, nil
}

func (d *Driver) playBlock(block parachaintypes.BlockNumber, report *Report) error {
	s := d.scheduler
	s.InitializerInitialize(block)

	if (block-d.settings.FirstBlock)%parachaintypes.BlockNumber(d.settings.SessionLength) == 0 {
		err := d.changeSession()
		if err != nil {
			return fmt.Errorf("changing session: %w", err)
		}
		report.Sessions++
	}

	// Availability: occupied cores either become available or time out.
	predicate := s.AvailabilityTimeoutPredicate()
	freed := make(map[parachaintypes.CoreIndex]parachaintypes.FreedReason)
	for i, core := range s.AvailabilityCores() {
		if core.IsFree() {
			continue
		}
		index := parachaintypes.CoreIndex(i)

		if d.random.Float64() < d.settings.AvailabilityProbability {
			freed[index] = parachaintypes.FreedReasonConcluded
			report.Concluded++
			continue
		}

		if predicate(d.pendingSince[index]).TimedOut {
			freed[index] = parachaintypes.FreedReasonTimedOut
			report.TimedOut++
		}
	}
	for core := range freed {
		delete(d.pendingSince, core)
	}

	s.FreeCoresAndFillClaimQueue(freed, block)

	// Backing: scheduled paras get a candidate backed on their free core.
	nowOccupied := make(map[parachaintypes.CoreIndex]parachaintypes.ParaID)
	scheduled := s.ScheduledParas()
	for {
		core, paraID, ok := scheduled.Next()
		if !ok {
			break
		}
		if s.IsCoreOccupied(core) || d.random.Float64() >= d.settings.BackingProbability {
			continue
		}
		nowOccupied[core] = paraID
	}

	positions := s.Occupied(nowOccupied)
	for core := range positions {
		d.pendingSince[core] = block
		report.Backed++
	}

	if len(d.settings.OnDemandParas) > 0 && d.random.Float64() < d.settings.OrderProbability {
		paraID := d.settings.OnDemandParas[d.random.Intn(len(d.settings.OnDemandParas))]
		d.orders.PlaceOrder(paraID)
		report.Orders++
	}

	err := s.InitializerFinalize()
	if err != nil {
		return fmt.Errorf("finalizing: %w", err)
	}

	for i := range s.AvailabilityCores() {
		core := parachaintypes.CoreIndex(i)
		depth := s.ClaimQueueLen(core)
		if s.IsCoreOccupied(core) {
			depth++
		}
		if depth > report.MaxClaimQueueDepth {
			report.MaxClaimQueueDepth = depth
		}
	}

	report.Blocks++
	report.LastBlock = block
	logger.Debugf("block %d: %d cores freed, %d cores occupied", block, len(freed), len(positions))
	return nil
}

func (d *Driver) changeSession() error {
	previous := d.config.ActiveConfig()
	next := previous

	d.pendingConfigMutex.Lock()
	if d.pendingConfig != nil {
		next = *d.pendingConfig
		d.pendingConfig = nil
	}
	d.pendingConfigMutex.Unlock()

	d.scheduler.PreNewSession()
	// Pushed back claims are not on the cores anymore.
	d.pendingSince = make(map[parachaintypes.CoreIndex]parachaintypes.BlockNumber)

	err := d.config.SetActiveConfig(next)
	if err != nil {
		return fmt.Errorf("activating configuration: %w", err)
	}

	d.scheduler.InitializerOnNewSession(scheduler.SessionChangeNotification{
		Validators:   make([]parachaintypes.ValidatorID, d.settings.Validators),
		PrevConfig:   previous,
		NewConfig:    next,
		SessionIndex: d.session,
	})

	logger.Infof("session %d started at block %d with %d cores",
		d.session, d.scheduler.SessionStartBlock(), len(d.scheduler.AvailabilityCores()))
	d.session++
	return nil
}
