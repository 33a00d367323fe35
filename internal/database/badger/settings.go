// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package badger

import (
	"errors"
	"fmt"
	"path/filepath"
)

var (
	// ErrPathSetInMemory is returned when a path is set for an in-memory database.
	ErrPathSetInMemory = errors.New("path cannot be set for an in-memory database")
	// ErrPathNotSet is returned when no path is set for an on-disk database.
	ErrPathNotSet = errors.New("path must be set for an on-disk database")
)

// Settings is the database settings.
type Settings struct {
	// Path is the database directory path, and must be
	// left empty for an in-memory database.
	Path string
	// InMemory is whether to keep the database in memory only.
	// It defaults to false.
	InMemory *bool
}

// SetDefaults sets the default values on the settings.
func (s *Settings) SetDefaults() {
	if s.InMemory == nil {
		inMemory := false
		s.InMemory = &inMemory
	}
}

// Validate validates the settings, and changes
// the path to an absolute path.
func (s *Settings) Validate() (err error) {
	switch {
	case *s.InMemory && s.Path != "":
		return fmt.Errorf("%w: %s", ErrPathSetInMemory, s.Path)
	case *s.InMemory:
		return nil
	case s.Path == "":
		return ErrPathNotSet
	}

	s.Path, err = filepath.Abs(s.Path)
	if err != nil {
		return fmt.Errorf("making path absolute: %w", err)
	}
	return nil
}
