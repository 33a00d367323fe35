// Copyright 2021 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"fmt"
	"strings"
	"time"
)

var timeNow = time.Now

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if level < *l.settings.level {
		return
	}

	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}

	var line strings.Builder
	line.WriteString(timeNow().Format(time.RFC3339))
	line.WriteByte(' ')
	if *l.settings.format == FormatConsole {
		line.WriteString(level.ColouredString())
	} else {
		line.WriteString(level.String())
	}
	line.WriteString(strings.Repeat(" ", levelWidth+1-len(level.String())))
	line.WriteString(message)

	for i, kv := range l.settings.context {
		if i == 0 {
			line.WriteByte('\t')
		} else {
			line.WriteByte(' ')
		}
		line.WriteString(kv.key + "=" + strings.Join(kv.values, ","))
	}
	line.WriteByte('\n')

	_, _ = l.settings.writer.Write([]byte(line.String()))
}

// Trace logs with the TRACE level.
func (l *Logger) Trace(s string) { l.log(Trace, s) }

// Debug logs with the DEBUG level.
func (l *Logger) Debug(s string) { l.log(Debug, s) }

// Info logs with the INFO level.
func (l *Logger) Info(s string) { l.log(Info, s) }

// Warn logs with the WARN level.
func (l *Logger) Warn(s string) { l.log(Warn, s) }

// Error logs with the ERROR level.
func (l *Logger) Error(s string) { l.log(Error, s) }

// Critical logs with the CRITICAL level.
func (l *Logger) Critical(s string) { l.log(Critical, s) }

// Tracef formats and logs at the TRACE level.
func (l *Logger) Tracef(format string, args ...interface{}) { l.log(Trace, format, args...) }

// Debugf formats and logs at the DEBUG level.
func (l *Logger) Debugf(format string, args ...interface{}) { l.log(Debug, format, args...) }

// Infof formats and logs at the INFO level.
func (l *Logger) Infof(format string, args ...interface{}) { l.log(Info, format, args...) }

// Warnf formats and logs at the WARN level.
func (l *Logger) Warnf(format string, args ...interface{}) { l.log(Warn, format, args...) }

// Errorf formats and logs at the ERROR level.
func (l *Logger) Errorf(format string, args ...interface{}) { l.log(Error, format, args...) }

// Criticalf formats and logs at the CRITICAL level.
func (l *Logger) Criticalf(format string, args ...interface{}) { l.log(Critical, format, args...) }
