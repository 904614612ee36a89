package log

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// DefaultTimeLayout is the timestamp layout of a new [Logger].
const DefaultTimeLayout = time.RFC3339

// DefaultCaller reports whether a new [Logger] records the call site.
const DefaultCaller = false

// DefaultPretty reports whether a new [Logger] colorizes its output.
const DefaultPretty = true

// Option modifies a copy of a logger configuration.
type Option func(config) config

// config is an immutable logger configuration. Each [Option] returns a new
// value, so a config may be shared freely between loggers.
type config struct {
	output io.Writer
	layout string // empty disables timestamps
	level  Level
	format Format
	caller bool
	pretty bool
}

func defaultConfig(w io.Writer) config {
	if w == nil {
		w = io.Discard
	}

	return config{
		output: w,
		layout: DefaultTimeLayout,
		level:  DefaultLevel,
		format: DefaultFormat,
		caller: DefaultCaller,
		pretty: DefaultPretty,
	}
}

func (c config) with(opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}

// formatTime renders t with the configured layout, or returns the empty
// string if timestamps are disabled.
func (c config) formatTime(t time.Time) string {
	if c.layout == "" {
		return ""
	}

	return t.Format(c.layout)
}

// replaceAttr rewrites the time and level attributes of each record.
func (c config) replaceAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		t, ok := a.Value.Any().(time.Time)
		if !ok {
			return a
		}

		s := c.formatTime(t)
		if s == "" {
			return slog.Attr{}
		}

		a.Value = slog.StringValue(s)

	case slog.LevelKey:
		if l, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(strings.ToUpper(Level(l).String()))
		}
	}

	return a
}

func (c config) handler() slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource:   c.caller,
		Level:       slog.Level(c.level),
		ReplaceAttr: c.replaceAttr,
	}

	switch {
	case c.format == FormatJSON && c.pretty:
		return newPrettyJSONHandler(c.output, opts)
	case c.format == FormatJSON:
		return slog.NewJSONHandler(c.output, opts)
	case c.format == FormatText && c.pretty:
		return newPrettyTextHandler(c.output, opts)
	case c.format == FormatText:
		return slog.NewTextHandler(c.output, opts)
	default:
		return slog.DiscardHandler
	}
}

// WithOutput directs log messages to w. A nil w discards them.
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		if w == nil {
			w = io.Discard
		}

		c.output = w

		return c
	}
}

// WithLevel sets the minimum level of messages written.
func WithLevel(level Level) Option {
	return func(c config) config {
		c.level = level

		return c
	}
}

// WithFormat selects the JSON or text encoding.
func WithFormat(format Format) Option {
	return func(c config) config {
		c.format = format

		return c
	}
}

// WithTimeLayout sets the timestamp layout.
//
// The layout may name one of the [time] package layouts, ignoring case and
// punctuation ("rfc3339", "Kitchen", "stamp-milli"). Any other non-blank
// layout is passed verbatim to [time.Time.Format]. A blank layout or "none"
// omits timestamps.
func WithTimeLayout(layout string) Option {
	return func(c config) config {
		c.layout = resolveLayout(layout)

		return c
	}
}

// WithCaller includes the source file and line of each call site.
func WithCaller(enable bool) Option {
	return func(c config) config {
		c.caller = enable

		return c
	}
}

// WithPretty enables colorized output. Text records are written without
// quoting and JSON records are indented.
func WithPretty(enable bool) Option {
	return func(c config) config {
		c.pretty = enable

		return c
	}
}

var namedLayouts = map[string]string{
	"none":        "",
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"rfc822":      time.RFC822,
	"rfc822z":     time.RFC822Z,
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"kitchen":     time.Kitchen,
	"datetime":    time.DateTime,
	"stamp":       time.Stamp,
	"stampmilli":  time.StampMilli,
	"stampmicro":  time.StampMicro,
	"ms":          time.StampMilli,
	"us":          time.StampMicro,
}

func resolveLayout(layout string) string {
	key := strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', '0' <= r && r <= '9':
			return r
		case 'A' <= r && r <= 'Z':
			return r + 'a' - 'A'
		}

		return -1
	}, layout)

	if key == "" {
		return ""
	}

	if std, ok := namedLayouts[key]; ok {
		return std
	}

	return layout
}
