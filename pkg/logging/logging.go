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

// Package logging is the leveled, structured logger used across rhash.
//
// Library packages accept a Logger and default to Discard, so embedding a
// session in another program stays quiet unless the caller opts in. The
// CLI builds a DefaultLogger writing to stderr, keeping stdout for digests.
// NewLogrusLogger routes everything into an existing logrus setup.
package logging

import "strings"

// LogLevel is the severity of a log message.
type LogLevel int

const (
	// LevelDebug reports session lifecycle events and per-file progress.
	LevelDebug LogLevel = iota
	// LevelInfo reports run summaries.
	LevelInfo
	// LevelWarn reports recoverable problems such as unreadable files.
	LevelWarn
	// LevelError reports failures.
	LevelError
	// LevelSilent disables all output.
	LevelSilent
)

// String returns the lowercase name of the level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelSilent:
		return "silent"
	default:
		return "unknown"
	}
}

// ParseLogLevel parses a level name. Unrecognized names yield LevelInfo.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "silent", "none", "off", "quiet":
		return LevelSilent
	default:
		return LevelInfo
	}
}

// LogFormat selects how entries are rendered.
type LogFormat int

const (
	// FormatText renders "message key=value ..." lines.
	FormatText LogFormat = iota
	// FormatJSON renders one JSON object per line.
	FormatJSON
)

// String returns the name of the format.
func (f LogFormat) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseLogFormat parses a format name. Unrecognized names yield FormatText.
func ParseLogFormat(s string) LogFormat {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}
	return FormatText
}

// Logger is the logging contract used by every rhash package.
type Logger interface {
	Debug(format string, args ...interface{})
	Debugln(msg string)
	Info(format string, args ...interface{})
	Infoln(msg string)
	Warn(format string, args ...interface{})
	Warnln(msg string)
	Error(format string, args ...interface{})
	Errorln(msg string)

	// GetLevel returns the minimum level that produces output.
	GetLevel() LogLevel
	// Silent reports whether debug output is suppressed.
	Silent() bool

	// WithField returns a Logger that attaches key=value to every entry.
	WithField(key string, value interface{}) Logger
	// WithFields returns a Logger that attaches all fields to every entry.
	WithFields(fields map[string]interface{}) Logger
}

// Default returns an info-level text logger writing to stderr.
func Default() Logger {
	return NewLogger(false)
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	return nopLogger{}
}

// EnsureLogger returns l, or Discard when l is nil.
func EnsureLogger(l Logger) Logger {
	if l == nil {
		return Discard()
	}
	return l
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Debugln(string) {}
func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Infoln(string) {}
func (nopLogger) Warn(string, ...interface{}) {}
func (nopLogger) Warnln(string) {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Errorln(string) {}
func (nopLogger) GetLevel() LogLevel { return LevelSilent }
func (nopLogger) Silent() bool { return true }
func (n nopLogger) WithField(string, interface{}) Logger { return n }
func (n nopLogger) WithFields(map[string]interface{}) Logger { return n }
