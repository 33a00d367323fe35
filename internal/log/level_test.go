// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseLevel(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		s          string
		level      Level
		errWrapped error
		errMessage string
	}{
		"trace":    {s: "trace", level: Trace},
		"debug":    {s: "DEBUG", level: Debug},
		"numeric":  {s: "3", level: Warn},
		"critical": {s: " critical ", level: Critical},
		"invalid": {
			s:          "verbose",
			errWrapped: ErrLevelNotRecognised,
			errMessage: "level is not recognised: verbose",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			level, err := ParseLevel(testCase.s)

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped != nil {
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.level, level)
		})
	}
}

func Test_Level_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ERROR", Error.String())
	assert.Equal(t, "???", Level(42).String())
}

func Test_ParseFormat(t *testing.T) {
	t.Parallel()

	format, err := ParseFormat(" Plain ")
	assert.NoError(t, err)
	assert.Equal(t, FormatPlain, format)

	format, err = ParseFormat("console")
	assert.NoError(t, err)
	assert.Equal(t, FormatConsole, format)

	_, err = ParseFormat("json")
	assert.ErrorIs(t, err, ErrFormatNotRecognised)
	assert.EqualError(t, err, "format is not recognised: json")
}
