// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var _ Logger = (*DefaultLogger)(nil)

// LoggerOptions configures a DefaultLogger.
type LoggerOptions struct {
	// Level is the minimum level written.
	Level LogLevel
	// Format selects the built-in formatter. Ignored when Formatter is set.
	Format LogFormat
	// Formatter overrides Format.
	Formatter Formatter
	// Output defaults to os.Stderr.
	Output io.Writer
	// TimeFormat adds a timestamp to text output when non-empty.
	TimeFormat string
	// ShowLevel prefixes text output with the level, e.g. [WARN].
	ShowLevel bool
}

// DefaultLoggerOptions returns info-level text options writing to stderr.
func DefaultLoggerOptions() LoggerOptions {
	return LoggerOptions{
		Level:     LevelInfo,
		Format:    FormatText,
		Output:    os.Stderr,
		ShowLevel: true,
	}
}

// output is shared by a logger and every logger derived from it with
// WithField, so writes from all of them are serialized.
type output struct {
	mu        sync.Mutex
	level     LogLevel
	formatter Formatter
	w         io.Writer
}

// DefaultLogger is the built-in Logger.
type DefaultLogger struct {
	out    *output
	fields map[string]interface{}
}

// NewLogger returns a text logger writing to stderr at debug level when
// verbose is set, info level otherwise.
func NewLogger(verbose bool) *DefaultLogger {
	opts := DefaultLoggerOptions()
	if verbose {
		opts.Level = LevelDebug
	}
	return NewLoggerWithOptions(opts)
}

// NewLoggerWithOptions returns a logger configured by opts.
func NewLoggerWithOptions(opts LoggerOptions) *DefaultLogger {
	w := opts.Output
	if w == nil {
		w = os.Stderr
	}
	formatter := opts.Formatter
	if formatter == nil {
		if opts.Format == FormatJSON {
			formatter = &JSONFormatter{TimeFormat: opts.TimeFormat}
		} else {
			formatter = &TextFormatter{TimeFormat: opts.TimeFormat, ShowLevel: opts.ShowLevel}
		}
	}
	return &DefaultLogger{out: &output{level: opts.Level, formatter: formatter, w: w}}
}

// WithFields returns a logger carrying the union of the current fields and
// fields. The receiver is not modified.
func (l *DefaultLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &DefaultLogger{out: l.out, fields: merged}
}

// WithField returns a logger carrying one more field.
func (l *DefaultLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// SetLevel changes the minimum level for this logger and its derivatives.
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	l.out.level = level
}

// GetLevel returns the minimum level written.
func (l *DefaultLogger) GetLevel() LogLevel {
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	return l.out.level
}

// SetFormatter replaces the formatter.
func (l *DefaultLogger) SetFormatter(f Formatter) {
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	l.out.formatter = f
}

// SetOutput replaces the destination writer.
func (l *DefaultLogger) SetOutput(w io.Writer) {
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	l.out.w = w
}

// Silent reports whether debug output is suppressed.
func (l *DefaultLogger) Silent() bool {
	return l.GetLevel() > LevelDebug
}

// IsLevelEnabled reports whether level would produce output.
func (l *DefaultLogger) IsLevelEnabled(level LogLevel) bool {
	return level < LevelSilent && level >= l.GetLevel()
}

func (l *DefaultLogger) log(level LogLevel, msg string) {
	o := l.out
	o.mu.Lock()
	defer o.mu.Unlock()

	if level < o.level || o.level == LevelSilent {
		return
	}
	data, err := o.formatter.Format(LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   msg,
		Fields:    l.fields,
	})
	if err != nil {
		fmt.Fprintf(o.w, "logging error: %v\n", err)
		return
	}
	_, _ = o.w.Write(data)
}

func (l *DefaultLogger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Debugln(msg string) { l.log(LevelDebug, msg) }

func (l *DefaultLogger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Infoln(msg string) { l.log(LevelInfo, msg) }

func (l *DefaultLogger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Warnln(msg string) { l.log(LevelWarn, msg) }

func (l *DefaultLogger) Error(format string, args ...interface{}) {
	l.log(LevelError, fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Errorln(msg string) { l.log(LevelError, msg) }
