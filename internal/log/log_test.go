// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

// timePrefixRegex matches the RFC3339 time prefix of a log line.
const timePrefixRegex = `^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}` +
	`(Z|[+-][0-9]{2}:[0-9]{2}) `

func Test_Logger_log(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		options     []Option
		level       Level
		format      string
		args        []interface{}
		outputRegex string
	}{
		"log_at_trace": {
			options:     []Option{SetLevel(Trace)},
			level:       Trace,
			format:      "some words",
			outputRegex: timePrefixRegex + "TRACE    some words\n$",
		},
		"do_not_log_below_level": {
			options:     []Option{SetLevel(Debug)},
			level:       Trace,
			format:      "some words",
			outputRegex: "^$",
		},
		"format_string": {
			options:     []Option{SetLevel(Trace)},
			level:       Warn,
			format:      "core %d timed out",
			args:        []interface{}{3},
			outputRegex: timePrefixRegex + "WARN     core 3 timed out\n$",
		},
		"with_context": {
			options: []Option{
				AddContext("pkg", "parachain-scheduler"),
				AddContext("core", "1"),
				AddContext("core", "2"),
			},
			level:       Critical,
			format:      "claim queue corrupted",
			outputRegex: timePrefixRegex + "CRITICAL claim queue corrupted\tpkg=parachain-scheduler core=1,2\n$",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			buffer := bytes.NewBuffer(nil)
			options := append([]Option{SetWriter(buffer), SetFormat(FormatPlain)}, testCase.options...)
			logger := New(options...)

			logger.log(testCase.level, testCase.format, testCase.args...)

			regex := regexp.MustCompile(testCase.outputRegex)
			assert.Regexp(t, regex, buffer.String())
		})
	}
}

func Test_Logger_methods(t *testing.T) {
	t.Parallel()

	buffer := bytes.NewBuffer(nil)
	logger := New(SetWriter(buffer), SetFormat(FormatPlain), SetLevel(Trace))

	logger.Trace("trace")
	logger.Debugf("debug %d", 1)
	logger.Info("info")
	logger.Warnf("warn %s", "x")
	logger.Error("error")
	logger.Criticalf("critical %t", true)

	lines := regexp.MustCompile(`(?m)^\S+ (\S+)\s+(.+)$`).FindAllStringSubmatch(buffer.String(), -1)
	expected := [][2]string{
		{"TRACE", "trace"},
		{"DEBUG", "debug 1"},
		{"INFO", "info"},
		{"WARN", "warn x"},
		{"ERROR", "error"},
		{"CRITICAL", "critical true"},
	}
	if assert.Len(t, lines, len(expected)) {
		for i, line := range lines {
			assert.Equal(t, expected[i][0], line[1])
			assert.Equal(t, expected[i][1], line[2])
		}
	}
}
