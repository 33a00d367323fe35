// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package simulation

import (
	"errors"
	"fmt"
	"strings"

	parachaintypes "github.com/ChainSafe/parachain-scheduler/dot/parachain/types"
	"github.com/go-playground/validator/v10"
)

// ErrSettingsInvalid is returned when the simulation settings are invalid.
var ErrSettingsInvalid = errors.New("simulation settings invalid")

// Settings are the settings of a simulation run.
type Settings struct {
	// FirstBlock is the number of the first block played.
	// It starts the genesis session.
	FirstBlock parachaintypes.BlockNumber `validate:"gte=1"`
	// Blocks is the number of blocks to play.
	Blocks uint32 `validate:"gte=1"`
	// SessionLength is the number of blocks in a session.
	SessionLength uint32 `validate:"gte=1"`
	// Validators is the number of validators in every session.
	Validators uint32
	// BackingProbability is the probability a scheduled para gets a
	// candidate backed on its free core in a block.
	BackingProbability float64 `validate:"gte=0,lte=1"`
	// AvailabilityProbability is the probability an occupied core
	// becomes available in a block.
	AvailabilityProbability float64 `validate:"gte=0,lte=1"`
	// OrderProbability is the probability an on-demand order is placed
	// in a block, for a random para of OnDemandParas.
	OrderProbability float64 `validate:"gte=0,lte=1"`
	// OnDemandParas are the paras placing on-demand orders.
	OnDemandParas []parachaintypes.ParaID
	// Seed seeds the pseudo random decisions of the run.
	Seed int64
}

// SetDefaults sets the default values on unset fields.
func (s *Settings) SetDefaults() {
	if s.FirstBlock == 0 {
		s.FirstBlock = 1
	}
	if s.Blocks == 0 {
		s.Blocks = 100
	}
	if s.SessionLength == 0 {
		const defaultSessionLength = 50
		s.SessionLength = defaultSessionLength
	}
}

var validate = validator.New()

// Validate returns an error wrapping ErrSettingsInvalid
// if the settings are invalid.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %s", ErrSettingsInvalid, err)
	}

	messages := make([]string, len(validationErrs))
	for i, validationErr := range validationErrs {
		messages[i] = fmt.Sprintf("%s must be %s %s (got %v)", validationErr.Field(),
			validationErr.Tag(), validationErr.Param(), validationErr.Value())
	}
	return fmt.Errorf("%w: %s", ErrSettingsInvalid, strings.Join(messages, ", "))
}
