// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package simulation

import (
	"sort"
	"sync"

	"github.com/ChainSafe/parachain-scheduler/dot/parachain/scheduler"
	parachaintypes "github.com/ChainSafe/parachain-scheduler/dot/parachain/types"
)

// Bulk cores keep their claims through a single availability timeout window
// and are never retried, since the next bulk claim is always available.
const (
	bulkMaxAvailabilityTimeouts = 0
	bulkTTL                     = 10
)

// Provider is an assignment provider where the first cores are leased
// to parachains in bulk, and the remaining cores serve on-demand orders
// from a shared queue. It is safe for concurrent use.
type Provider struct {
	config scheduler.Configuration

	mutex     sync.Mutex
	leases    []parachaintypes.ParaID
	orders    []parachaintypes.ParaID
	processed map[parachaintypes.ParaID]uint64
}

// NewProvider creates a provider leasing one core to each of the paras
// given, in order. The number of on-demand cores is taken from the
// coretime cores of the active configuration.
func NewProvider(config scheduler.Configuration, leases []parachaintypes.ParaID) *Provider {
	return &Provider{
		config:    config,
		leases:    append([]parachaintypes.ParaID(nil), leases...),
		processed: make(map[parachaintypes.ParaID]uint64),
	}
}

// SessionCoreCount returns the number of leased and on-demand cores.
func (p *Provider) SessionCoreCount() uint32 {
	return uint32(len(p.leases)) + p.config.ActiveConfig().CoretimeCores
}

// PlaceOrder queues an on-demand order for the para.
func (p *Provider) PlaceOrder(paraID parachaintypes.ParaID) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.orders = append(p.orders, paraID)
}

// PendingOrders returns the number of on-demand orders not popped yet.
func (p *Provider) PendingOrders() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.orders)
}

// PopAssignmentForCore returns the bulk assignment of a leased core, or
// the oldest on-demand order for an on-demand core.
func (p *Provider) PopAssignmentForCore(core parachaintypes.CoreIndex) (
	assignment parachaintypes.Assignment, ok bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if uint64(core) < uint64(len(p.leases)) {
		return parachaintypes.NewBulkAssignment(p.leases[core]), true
	}

	if len(p.orders) == 0 {
		return assignment, false
	}

	paraID := p.orders[0]
	p.orders = p.orders[1:]
	return parachaintypes.NewPoolAssignment(paraID, core), true
}

// ReportProcessed counts the assignment as processed for its para.
func (p *Provider) ReportProcessed(assignment parachaintypes.Assignment) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.processed[assignment.ParaID()]++
}

// PushBackAssignment puts an on-demand assignment back at the front of the
// order queue. Bulk assignments are dropped since the lease renews them.
func (p *Provider) PushBackAssignment(assignment parachaintypes.Assignment) {
	if assignment.Kind != parachaintypes.AssignmentKindPool {
		return
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.orders = append([]parachaintypes.ParaID{assignment.ParaID()}, p.orders...)
}

// GetProviderConfig returns the bulk provider configuration for leased
// cores, and the on-demand configuration from the active host
// configuration for the other cores.
func (p *Provider) GetProviderConfig(core parachaintypes.CoreIndex) parachaintypes.AssignmentProviderConfig {
	p.mutex.Lock()
	leased := uint64(core) < uint64(len(p.leases))
	p.mutex.Unlock()

	if leased {
		return parachaintypes.AssignmentProviderConfig{
			MaxAvailabilityTimeouts: bulkMaxAvailabilityTimeouts,
			TTL:                     bulkTTL,
		}
	}

	config := p.config.ActiveConfig()
	return parachaintypes.AssignmentProviderConfig{
		MaxAvailabilityTimeouts: config.OnDemandRetries,
		TTL:                     config.OnDemandTTL,
	}
}

// ParaProcessed is the number of assignments processed for a para.
type ParaProcessed struct {
	ParaID    parachaintypes.ParaID
	Processed uint64
}

// Processed returns the number of processed assignments per para,
// sorted by para id.
func (p *Provider) Processed() []ParaProcessed {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	processed := make([]ParaProcessed, 0, len(p.processed))
	for paraID, count := range p.processed {
		processed = append(processed, ParaProcessed{ParaID: paraID, Processed: count})
	}
	sort.Slice(processed, func(i, j int) bool { return processed[i].ParaID < processed[j].ParaID })
	return processed
}
