// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"io"
	"os"
)

// Option modifies the settings of a logger.
type Option func(s *settings)

// SetLevel sets the level of the logger, Info by default.
func SetLevel(level Level) Option {
	return func(s *settings) {
		s.level = &level
	}
}

// SetFormat sets the format of the logger, FormatConsole by default.
func SetFormat(format Format) Option {
	return func(s *settings) {
		s.format = &format
	}
}

// SetWriter sets the writer of the logger, os.Stdout by default.
func SetWriter(writer io.Writer) Option {
	return func(s *settings) {
		s.writer = writer
	}
}

// AddContext adds a key value pair printed after each message.
// Values of a key added more than once are joined with commas.
func AddContext(key, value string) Option {
	return func(s *settings) {
		s.addContext(key, value)
	}
}

type settings struct {
	writer  io.Writer
	level   *Level
	format  *Format
	context []contextKeyValues
}

type contextKeyValues struct {
	key    string
	values []string
}

func newSettings(options []Option) (s settings) {
	for _, option := range options {
		option(&s)
	}
	return s
}

func (s *settings) addContext(key, value string) {
	for i := range s.context {
		if s.context[i].key == key {
			s.context[i].values = append(s.context[i].values, value)
			return
		}
	}
	s.context = append(s.context, contextKeyValues{key: key, values: []string{value}})
}

// inherit fills the unset fields from the parent settings,
// and prepends the parent context.
func (s *settings) inherit(parent settings) {
	if s.writer == nil {
		s.writer = parent.writer
	}
	if s.level == nil && parent.level != nil {
		level := *parent.level
		s.level = &level
	}
	if s.format == nil && parent.format != nil {
		format := *parent.format
		s.format = &format
	}

	own := s.context
	s.context = make([]contextKeyValues, 0, len(parent.context)+len(own))
	for _, kv := range parent.context {
		values := make([]string, len(kv.values))
		copy(values, kv.values)
		s.context = append(s.context, contextKeyValues{key: kv.key, values: values})
	}
	s.context = append(s.context, own...)
}

// patch overrides the fields set in the patch settings.
func (s *settings) patch(patch settings) {
	if patch.writer != nil {
		s.writer = patch.writer
	}
	if patch.level != nil {
		level := *patch.level
		s.level = &level
	}
	if patch.format != nil {
		format := *patch.format
		s.format = &format
	}
	for _, kv := range patch.context {
		for _, value := range kv.values {
			s.addContext(kv.key, value)
		}
	}
}

func (s *settings) setDefaults() {
	if s.writer == nil {
		s.writer = os.Stdout
	}
	if s.level == nil {
		level := Info
		s.level = &level
	}
	if s.format == nil {
		format := FormatConsole
		s.format = &format
	}
}
