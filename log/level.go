package log

//go:generate go tool stringer --linecomment --type Level,Format --output level_string.go

import (
	"iter"
	"log/slog"
	"slices"
	"strings"
)

// Level represents the severity of a log message.
type Level slog.Level

const levelTraceMask = -8

const (
	LevelTrace Level = Level(levelTraceMask)  // trace
	LevelDebug Level = Level(slog.LevelDebug) // debug
	LevelInfo  Level = Level(slog.LevelInfo)  // info
	LevelWarn  Level = Level(slog.LevelWarn)  // warn
	LevelError Level = Level(slog.LevelError) // error
)

// DefaultLevel is the default log level.
const DefaultLevel = LevelInfo

var levels = []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}

// Levels returns an iterator over the names of all defined log levels.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, level := range levels {
			if !yield(level.String()) {
				return
			}
		}
	}
}

// ParseLevel parses a level name, case-insensitively. Besides "trace", any
// text accepted by [slog.Level.UnmarshalText] is valid, such as "info" or
// "warn+2". Unrecognized text yields [DefaultLevel].
func ParseLevel(s string) Level {
	if l, ok := parseLevel(s); ok {
		return l
	}

	return DefaultLevel
}

func parseLevel(s string) (Level, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, LevelTrace.String()) {
		return LevelTrace, true
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel, false
	}

	return Level(l), true
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	level, ok := parseLevel(string(text))
	if !ok {
		return &invalidError{what: "level", text: string(text), valid: slices.Collect(Levels())}
	}

	*l = level

	return nil
}

// Format represents the output format for log messages.
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
)

// DefaultFormat is the default log message format.
const DefaultFormat = FormatText

// Formats returns an iterator over the names of all defined log formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, format := range []Format{FormatText, FormatJSON} {
			if !yield(format.String()) {
				return
			}
		}
	}
}

// ParseFormat parses a format name, case-insensitively.
// Unrecognized text yields [DefaultFormat].
func ParseFormat(s string) Format {
	if f, ok := parseFormat(s); ok {
		return f
	}

	return DefaultFormat
}

func parseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case FormatText.String():
		return FormatText, true

	case FormatJSON.String():
		return FormatJSON, true

	default:
		return DefaultFormat, false
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	format, ok := parseFormat(string(text))
	if !ok {
		return &invalidError{what: "format", text: string(text), valid: slices.Collect(Formats())}
	}

	*f = format

	return nil
}

type invalidError struct {
	what  string
	text  string
	valid []string
}

func (e *invalidError) Error() string {
	return "invalid log " + e.what + " " + `"` + e.text + `"` +
		" (valid: " + strings.Join(e.valid, ", ") + ")"
}
