package log

//go:generate go tool stringer --linecomment --type Format --output level_string.go

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// Level represents the severity of a log message.
type Level slog.Level

const (
	LevelTrace Level = Level(slog.LevelDebug - 4) // trace
	LevelDebug Level = Level(slog.LevelDebug)     // debug
	LevelInfo  Level = Level(slog.LevelInfo)      // info
	LevelWarn  Level = Level(slog.LevelWarn)      // warn
	LevelError Level = Level(slog.LevelError)     // error
)

// DefaultLevel is the default log level.
const DefaultLevel = LevelInfo

// levels lists the named levels from least to most severe.
var levels = []struct {
	Level
	name string
}{
	{LevelTrace, "trace"},
	{LevelDebug, "debug"},
	{LevelInfo, "info"},
	{LevelWarn, "warn"},
	{LevelError, "error"},
}

// String returns the lowercase name of l. Levels between the named ones are
// described relative to the nearest lower named level, e.g. "info+2".
func (l Level) String() string {
	base := levels[0]

	for _, n := range levels {
		if n.Level <= l {
			base = n
		}
	}

	if d := int(l - base.Level); d != 0 {
		return fmt.Sprintf("%s%+d", base.name, d)
	}

	return base.name
}

// Levels returns an iterator over the names of the defined log levels.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, n := range levels {
			if !yield(n.name) {
				return
			}
		}
	}
}

// ParseLevel parses a level name, case-insensitively, optionally followed
// by a signed offset ("debug+2"). Unknown names yield [DefaultLevel].
func ParseLevel(s string) Level {
	s = strings.ToLower(strings.TrimSpace(s))

	name, off := s, 0

	if i := strings.IndexAny(s, "+-"); i > 0 {
		n, err := strconv.Atoi(s[i:])
		if err != nil {
			return DefaultLevel
		}

		name, off = s[:i], n
	}

	for _, n := range levels {
		if n.name == name {
			return n.Level + Level(off)
		}
	}

	return DefaultLevel
}

// Format represents the output format for log messages.
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
)

// DefaultFormat is the default log message format.
const DefaultFormat = FormatJSON

// Formats returns an iterator over all defined log formats.
func Formats() iter.Seq[string] {
	return slices.Values([]string{FormatJSON.String(), FormatText.String()})
}

// ParseFormat parses a string representation of a log format.
// Valid format strings are "json" and "text".
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return FormatText
	case "json":
		return FormatJSON
	default:
		return DefaultFormat
	}
}
