// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package scheduler

import (
	"errors"
	"fmt"

	parachaintypes "github.com/ChainSafe/parachain-scheduler/dot/parachain/types"
)

var (
	// ErrCoreOutOfRange is returned for a core index beyond the availability cores.
	ErrCoreOutOfRange = errors.New("core index out of range")
	// ErrCoreAlreadyOccupied is returned when occupying a core which is not free.
	ErrCoreAlreadyOccupied = errors.New("core already occupied")
	// ErrCoreNotInClaimQueue is returned when the core has no claim queue.
	ErrCoreNotInClaimQueue = errors.New("core index not found in claim queue")
	// ErrParaNotInClaimQueue is returned when the para has no claim in the core claim queue.
	ErrParaNotInClaimQueue = errors.New("para id not found in core claim queue")
)

// ClaimQueueError is the error returned when a core cannot be
// occupied with a claim from its claim queue.
type ClaimQueueError struct {
	Core   parachaintypes.CoreIndex
	ParaID parachaintypes.ParaID
	Err    error
}

func (e *ClaimQueueError) Error() string {
	return fmt.Sprintf("occupying %s with para %d: %s", e.Core, e.ParaID, e.Err)
}

func (e *ClaimQueueError) Unwrap() error {
	return e.Err
}
