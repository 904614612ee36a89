package log

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestOptions(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		name  string
		opt   Option
		check func(config) bool
	}{
		{"level", WithLevel(LevelWarn), func(c config) bool { return c.level == LevelWarn }},
		{"format", WithFormat(FormatText), func(c config) bool { return c.format == FormatText }},
		{"caller", WithCaller(true), func(c config) bool { return c.caller }},
		{"pretty off", WithPretty(false), func(c config) bool { return !c.pretty }},
		{"output", WithOutput(&buf), func(c config) bool { return c.output == &buf }},
		{"nil output", WithOutput(nil), func(c config) bool { return c.output != nil }},
		{"layout", WithTimeLayout("kitchen"), func(c config) bool { return c.layout == time.Kitchen }},
		{"nil option", nil, func(c config) bool { return c == defaultConfig(&buf) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := defaultConfig(&buf)

			if got := base.with(tt.opt); !tt.check(got) {
				t.Errorf("option not applied: %+v", got)
			}

			if base != defaultConfig(&buf) {
				t.Error("option modified its receiver")
			}
		})
	}
}

func TestConfig_formatTime(t *testing.T) {
	now := time.Date(2025, 3, 9, 17, 5, 2, 123456789, time.UTC)

	tests := []struct {
		layout, want string
	}{
		{"RFC3339", "2025-03-09T17:05:02Z"},
		{"rfc3339nano", "2025-03-09T17:05:02.123456789Z"},
		{"Kitchen", "5:05PM"},
		{"stamp-milli", "Mar  9 17:05:02.123"},
		{"  2006/01/02", "  2025/03/09"},
		{"none", ""},
		{"", ""},
		{" \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			if got := WithTimeLayout(tt.layout)(config{}).formatTime(now); got != tt.want {
				t.Errorf("formatTime = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfig_replaceAttr(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithPretty(false), WithFormat(FormatText),
		WithLevel(LevelTrace), WithTimeLayout("none")).Trace("x")

	if got := buf.String(); !strings.HasPrefix(got, "level=TRACE ") {
		t.Errorf("output = %q", got)
	}
}

func BenchmarkConfig_formatTime(b *testing.B) {
	c := WithTimeLayout("RFC3339Nano")(config{})
	now := time.Now()

	for b.Loop() {
		_ = c.formatTime(now)
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelTrace, "trace"},
		{LevelTrace + 1, "trace+1"},
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelInfo + 2, "info+2"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", int(tt.level), got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"Warn", LevelWarn},
		{"error", LevelError},
		{"debug+2", LevelDebug + 2},
		{"info-1", LevelInfo - 1},
		{"warn+x", DefaultLevel},
		{"bogus", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormat_StringAndParse(t *testing.T) {
	for f := range Formats() {
		if got := ParseFormat(f).String(); got != f {
			t.Errorf("ParseFormat(%q).String() = %q", f, got)
		}
	}

	if got := ParseFormat(" TEXT "); got != FormatText {
		t.Errorf("ParseFormat(TEXT) = %v", got)
	}

	if got := Format(9).String(); got != "Format(9)" {
		t.Errorf("Format(9).String() = %q", got)
	}
}

func TestLevels(t *testing.T) {
	var got []string
	for l := range Levels() {
		got = append(got, l)
	}

	if want := "trace,debug,info,warn,error"; strings.Join(got, ",") != want {
		t.Errorf("Levels = %v, want %s", got, want)
	}
}

func TestResolveLayout(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Kitchen", time.Kitchen},
		{"rfc-3339", time.RFC3339},
		{"stamp_milli", time.StampMilli},
		{"DateTime", time.DateTime},
		{"none", ""},
		{" ", ""},
		{"15:04", "15:04"},
	}

	for _, tt := range tests {
		if got := resolveLayout(tt.in); got != tt.want {
			t.Errorf("resolveLayout(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
