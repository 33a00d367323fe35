// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package configuration

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	parachaintypes "github.com/ChainSafe/parachain-scheduler/dot/parachain/types"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfiguration is returned when a host configuration fails validation.
var ErrInvalidConfiguration = errors.New("invalid host configuration")

// HostConfiguration is the subset of the relay chain host configuration
// read by the parachain scheduler.
type HostConfiguration struct {
	// GroupRotationFrequency is how often parachain groups should be rotated across parachains.
	GroupRotationFrequency parachaintypes.BlockNumber `mapstructure:"group-rotation-frequency" toml:"group-rotation-frequency,omitempty" validate:"gte=1"` //nolint:lll
	// ParasAvailabilityPeriod is the minimum period, in blocks, after which a candidate
	// that is not available yet can be timed out.
	ParasAvailabilityPeriod parachaintypes.BlockNumber `mapstructure:"paras-availability-period" toml:"paras-availability-period,omitempty" validate:"gte=1"` //nolint:lll
	// SchedulingLookahead is how many blocks ahead the scheduler fills the claim queue.
	// Values below 1 are treated as 1.
	SchedulingLookahead uint32 `mapstructure:"scheduling-lookahead" toml:"scheduling-lookahead,omitempty"`
	// OnDemandTTL is how many blocks an on-demand claim stays in the claim queue.
	OnDemandTTL parachaintypes.BlockNumber `mapstructure:"on-demand-ttl" toml:"on-demand-ttl,omitempty" validate:"gte=1"`
	// OnDemandRetries is how many times an on-demand claim can time out in availability.
	OnDemandRetries uint32 `mapstructure:"on-demand-retries" toml:"on-demand-retries,omitempty"`
	// MaxValidatorsPerCore is the maximum number of validators per core.
	// When unset or zero, the number of cores is only decided by the
	// assignment provider.
	MaxValidatorsPerCore *uint32 `mapstructure:"max-validators-per-core" toml:"max-validators-per-core,omitempty"`
	// CoretimeCores is the number of cores made available by the assignment provider.
	CoretimeCores uint32 `mapstructure:"coretime-cores" toml:"coretime-cores,omitempty"`
}

// Default returns the default host configuration, which matches the
// polkadot runtime genesis values.
func Default() HostConfiguration {
	return HostConfiguration{
		GroupRotationFrequency:  10,
		ParasAvailabilityPeriod: 5,
		SchedulingLookahead:     1,
		OnDemandTTL:             5,
		OnDemandRetries:         1,
		CoretimeCores:           1,
	}
}

// Lookahead returns the scheduling lookahead, which is at least 1.
func (c HostConfiguration) Lookahead() uint32 {
	if c.SchedulingLookahead == 0 {
		return 1
	}
	return c.SchedulingLookahead
}

// ValidatorsPerCore returns the maximum validators per core and true
// if it is set and non zero.
func (c HostConfiguration) ValidatorsPerCore() (maxPerCore uint32, ok bool) {
	if c.MaxValidatorsPerCore == nil || *c.MaxValidatorsPerCore == 0 {
		return 0, false
	}
	return *c.MaxValidatorsPerCore, true
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validate validates the host configuration.
func (c HostConfiguration) Validate() error {
	validateOnce.Do(func() {
		validate = validator.New()
	})

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validating host configuration: %w", err)
	}

	fields := make([]string, len(validationErrors))
	for i, fieldError := range validationErrors {
		fields[i] = fmt.Sprintf("%s must be %s %s (got %v)",
			fieldError.Field(), fieldError.Tag(), fieldError.Param(), fieldError.Value())
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, strings.Join(fields, ", "))
}

// Store holds the active host configuration.
// Its zero value has the zero host configuration active.
type Store struct {
	mutex  sync.RWMutex
	active HostConfiguration
}

// NewStore creates a store with the given active configuration.
func NewStore(active HostConfiguration) (*Store, error) {
	err := active.Validate()
	if err != nil {
		return nil, err
	}
	return &Store{active: active}, nil
}

// ActiveConfig returns the active host configuration.
func (s *Store) ActiveConfig() HostConfiguration {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.active
}

// SetActiveConfig validates and activates the configuration given.
// It is called on session changes, before the scheduler is notified.
func (s *Store) SetActiveConfig(config HostConfiguration) error {
	err := config.Validate()
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.active = config
	return nil
}
