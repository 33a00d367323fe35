// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"sync"
)

// Logger is a leveled logger safe for concurrent use.
// Child loggers share the mutex of their parent and
// are patched together with it.
type Logger struct {
	settings settings
	children []*Logger
	mutex    *sync.Mutex
}

// New creates a new root logger. Loggers writing to the same
// writer should be children of the same root logger.
func New(options ...Option) *Logger {
	s := newSettings(options)
	s.setDefaults()
	return &Logger{
		settings: s,
		mutex:    new(sync.Mutex),
	}
}

// New creates a child logger inheriting the settings
// of its parent for the options not given.
func (l *Logger) New(options ...Option) *Logger {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	s := newSettings(options)
	s.inherit(l.settings)
	s.setDefaults()

	child := &Logger{
		settings: s,
		mutex:    l.mutex,
	}
	l.children = append(l.children, child)
	return child
}

// Patch overrides the settings of the logger and
// of all its children with the options given.
func (l *Logger) Patch(options ...Option) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.patch(newSettings(options))
}

// PatchLevel sets the level of the logger and of all its children.
func (l *Logger) PatchLevel(level Level) {
	l.Patch(SetLevel(level))
}

func (l *Logger) patch(patch settings) {
	l.settings.patch(patch)
	for _, child := range l.children {
		child.patch(patch)
	}
}

var globalLogger = New()

// NewFromGlobal creates a child logger of the global logger.
func NewFromGlobal(options ...Option) *Logger {
	return globalLogger.New(options...)
}

// Patch patches the global logger and every logger created from it.
func Patch(options ...Option) {
	globalLogger.Patch(options...)
}

// PatchLevel sets the level of the global logger and
// of every logger created from it.
func PatchLevel(level Level) {
	globalLogger.PatchLevel(level)
}
