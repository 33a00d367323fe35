// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Level is the level of the logger.
type Level uint8

const (
	// Trace is the trace (most verbose) level.
	Trace Level = iota
	// Debug is the debug level.
	Debug
	// Info is the info level.
	Info
	// Warn is the warn level.
	Warn
	// Error is the error level.
	Error
	// Critical is the critical level, for broken invariants.
	Critical
)

var levels = [...]struct {
	name   string
	colour color.Attribute
}{
	Trace:    {name: "TRACE", colour: color.FgHiCyan},
	Debug:    {name: "DEBUG", colour: color.FgHiBlue},
	Info:     {name: "INFO", colour: color.FgCyan},
	Warn:     {name: "WARN", colour: color.FgYellow},
	Error:    {name: "ERROR", colour: color.FgHiRed},
	Critical: {name: "CRITICAL", colour: color.FgRed},
}

// levelWidth is the width of the longest level name.
const levelWidth = len("CRITICAL")

func (level Level) String() string {
	if int(level) >= len(levels) {
		return "???"
	}
	return levels[level].name
}

// ColouredString returns the level name coloured for terminals.
func (level Level) ColouredString() string {
	if int(level) >= len(levels) {
		return level.String()
	}
	return color.New(levels[level].colour).Sprint(levels[level].name)
}

// ErrLevelNotRecognised is returned by ParseLevel for unknown levels.
var ErrLevelNotRecognised = errors.New("level is not recognised")

// ParseLevel parses a level name, case insensitively,
// or its numeric value, for example "debug" or "1".
func ParseLevel(s string) (level Level, err error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, info := range levels {
		if name == info.name || name == strconv.Itoa(i) {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrLevelNotRecognised, s)
}
