// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package badger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrTo[T any](x T) *T { return &x }

func Test_Settings_Validate(t *testing.T) {
	t.Parallel()

	absolutePath, err := filepath.Abs("db")
	if err != nil {
		t.Fatal(err)
	}

	testCases := map[string]struct {
		settings   Settings
		validated  Settings
		errWrapped error
		errMessage string
	}{
		"in_memory": {
			settings:  Settings{InMemory: ptrTo(true)},
			validated: Settings{InMemory: ptrTo(true)},
		},
		"in_memory_with_path": {
			settings:   Settings{Path: "db", InMemory: ptrTo(true)},
			validated:  Settings{Path: "db", InMemory: ptrTo(true)},
			errWrapped: ErrPathSetInMemory,
			errMessage: "path cannot be set for an in-memory database: db",
		},
		"on_disk_without_path": {
			settings:   Settings{},
			validated:  Settings{InMemory: ptrTo(false)},
			errWrapped: ErrPathNotSet,
			errMessage: "path must be set for an on-disk database",
		},
		"relative_path": {
			settings:  Settings{Path: "db"},
			validated: Settings{Path: absolutePath, InMemory: ptrTo(false)},
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			settings := testCase.settings
			settings.SetDefaults()
			err := settings.Validate()

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped != nil {
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.validated, settings)
		})
	}
}
