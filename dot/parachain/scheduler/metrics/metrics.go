// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package metrics implements the parachain scheduler metrics with Prometheus.
package metrics

import (
	"errors"
	"fmt"
	"strconv"

	parachaintypes "github.com/ChainSafe/parachain-scheduler/dot/parachain/types"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "parachain_scheduler"

// Metrics holds the Prometheus collectors of the scheduler.
type Metrics struct {
	occupiedCores         prometheus.Gauge
	availabilityCores     prometheus.Gauge
	validatorGroups       prometheus.Gauge
	claimQueueDepth       *prometheus.GaugeVec
	availabilityTimeouts  prometheus.Counter
	requeuedClaims        prometheus.Counter
	expiredClaims         prometheus.Counter
	processedAssignments  prometheus.Counter
	pushedBackAssignments prometheus.Counter
}

// New creates the scheduler metrics and registers them on the registerer
// given. Collectors already registered are reused.
func New(registerer prometheus.Registerer) (metrics *Metrics, err error) {
	metrics = &Metrics{
		occupiedCores: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "occupied_cores",
			Help:      "number of availability cores occupied by a claim",
		}),
		availabilityCores: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "availability_cores",
			Help:      "number of availability cores in the session",
		}),
		validatorGroups: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "validator_groups",
			Help:      "number of validator groups in the session",
		}),
		claimQueueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "claim_queue_depth",
			Help:      "number of claims in the claim queue of a core",
		}, []string{"core"}),
		availabilityTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_timeouts_total",
			Help:      "total number of cores freed because availability timed out",
		}),
		requeuedClaims: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requeued_claims_total",
			Help:      "total number of timed out claims put back in the claim queue",
		}),
		expiredClaims: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expired_claims_total",
			Help:      "total number of claims dropped from the claim queue past their TTL",
		}),
		processedAssignments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "processed_assignments_total",
			Help:      "total number of assignments reported processed to the assignment provider",
		}),
		pushedBackAssignments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pushed_back_assignments_total",
			Help:      "total number of assignments pushed back to the assignment provider on session change",
		}),
	}

	err = metrics.register(registerer)
	if err != nil {
		return nil, err
	}

	return metrics, nil
}

func (m *Metrics) register(registerer prometheus.Registerer) (err error) {
	m.occupiedCores, err = register(registerer, m.occupiedCores)
	if err != nil {
		return fmt.Errorf("cannot register occupied cores gauge: %w", err)
	}
	m.availabilityCores, err = register(registerer, m.availabilityCores)
	if err != nil {
		return fmt.Errorf("cannot register availability cores gauge: %w", err)
	}
	m.validatorGroups, err = register(registerer, m.validatorGroups)
	if err != nil {
		return fmt.Errorf("cannot register validator groups gauge: %w", err)
	}
	m.claimQueueDepth, err = register(registerer, m.claimQueueDepth)
	if err != nil {
		return fmt.Errorf("cannot register claim queue depth gauge: %w", err)
	}
	m.availabilityTimeouts, err = register(registerer, m.availabilityTimeouts)
	if err != nil {
		return fmt.Errorf("cannot register availability timeouts counter: %w", err)
	}
	m.requeuedClaims, err = register(registerer, m.requeuedClaims)
	if err != nil {
		return fmt.Errorf("cannot register requeued claims counter: %w", err)
	}
	m.expiredClaims, err = register(registerer, m.expiredClaims)
	if err != nil {
		return fmt.Errorf("cannot register expired claims counter: %w", err)
	}
	m.processedAssignments, err = register(registerer, m.processedAssignments)
	if err != nil {
		return fmt.Errorf("cannot register processed assignments counter: %w", err)
	}
	m.pushedBackAssignments, err = register(registerer, m.pushedBackAssignments)
	if err != nil {
		return fmt.Errorf("cannot register pushed back assignments counter: %w", err)
	}
	return nil
}

// register registers the collector, or returns the collector
// already registered with the same description.
func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) (T, error) {
	err := registerer.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegistered prometheus.AlreadyRegisteredError
	if !errors.As(err, &alreadyRegistered) {
		return collector, err
	}

	existing, ok := alreadyRegistered.ExistingCollector.(T)
	if !ok {
		return collector, fmt.Errorf("%w: existing collector is %T", err, alreadyRegistered.ExistingCollector)
	}
	return existing, nil
}

// SetOccupiedCores sets the number of occupied cores.
func (m *Metrics) SetOccupiedCores(count int) {
	m.occupiedCores.Set(float64(count))
}

// SetAvailabilityCores sets the number of availability cores.
func (m *Metrics) SetAvailabilityCores(count int) {
	m.availabilityCores.Set(float64(count))
}

// SetValidatorGroups sets the number of validator groups.
func (m *Metrics) SetValidatorGroups(count int) {
	m.validatorGroups.Set(float64(count))
}

// SetClaimQueueDepth sets the number of claims queued for the core.
func (m *Metrics) SetClaimQueueDepth(core parachaintypes.CoreIndex, depth int) {
	m.claimQueueDepth.WithLabelValues(strconv.FormatUint(uint64(core), 10)).Set(float64(depth))
}

func (m *Metrics) AddAvailabilityTimeouts(count int) {
	m.availabilityTimeouts.Add(float64(count))
}

func (m *Metrics) AddRequeuedClaims(count int) {
	m.requeuedClaims.Add(float64(count))
}

func (m *Metrics) AddExpiredClaims(count int) {
	m.expiredClaims.Add(float64(count))
}

func (m *Metrics) AddProcessedAssignments(count int) {
	m.processedAssignments.Add(float64(count))
}

func (m *Metrics) AddPushedBackAssignments(count int) {
	m.pushedBackAssignments.Add(float64(count))
}
