// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"errors"
	"fmt"
	"strings"
)

// Format is the format of the logger output.
type Format uint8

const (
	// FormatConsole is the human readable format with coloured levels.
	FormatConsole Format = iota
	// FormatPlain is the console format without colours,
	// suitable for files and test assertions.
	FormatPlain
)

func (f Format) String() string {
	switch f {
	case FormatConsole:
		return "console"
	case FormatPlain:
		return "plain"
	default:
		return "???"
	}
}

// ErrFormatNotRecognised is returned by ParseFormat for unknown formats.
var ErrFormatNotRecognised = errors.New("format is not recognised")

// ParseFormat parses a format name, case insensitively.
func ParseFormat(s string) (format Format, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case FormatConsole.String():
		return FormatConsole, nil
	case FormatPlain.String():
		return FormatPlain, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrFormatNotRecognised, s)
}
