package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestMake_Defaults(t *testing.T) {
	logger := Make(&bytes.Buffer{})

	if logger.Level() != DefaultLevel {
		t.Errorf("Level = %v, want %v", logger.Level(), DefaultLevel)
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("Format = %v, want %v", logger.Format(), DefaultFormat)
	}

	if logger.caller != DefaultCaller || logger.pretty != DefaultPretty {
		t.Errorf("caller = %v, pretty = %v", logger.caller, logger.pretty)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name   string
		log    func(Logger, string, ...slog.Attr)
		floor  Level
		logged bool
	}{
		{"trace at trace", Logger.Trace, LevelTrace, true},
		{"trace at debug", Logger.Trace, LevelDebug, false},
		{"debug at debug", Logger.Debug, LevelDebug, true},
		{"debug at info", Logger.Debug, LevelInfo, false},
		{"info at warn", Logger.Info, LevelWarn, false},
		{"warn at warn", Logger.Warn, LevelWarn, true},
		{"error at debug", Logger.Error, LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf, WithLevel(tt.floor)), "message")

			if logged := buf.Len() > 0; logged != tt.logged {
				t.Errorf("logged = %v, want %v: %s", logged, tt.logged, buf.String())
			}
		})
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithPretty(false), WithLevel(LevelTrace))
	logger.Trace("built page", slog.String("path", "blog/a.md"), slog.Int("bytes", 12))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode: %v: %s", err, buf.String())
	}

	if entry["level"] != "TRACE" || entry["msg"] != "built page" ||
		entry["path"] != "blog/a.md" || entry["bytes"] != float64(12) {
		t.Errorf("entry = %v", entry)
	}
}

func TestLogger_Text(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText), WithPretty(false), WithTimeLayout("none"))
	logger.Warn("slow render", slog.String("view", "page"))

	if got, want := buf.String(), "level=WARN msg=\"slow render\" view=page\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestLogger_Caller(t *testing.T) {
	for _, enable := range []bool{true, false} {
		var buf bytes.Buffer

		Make(&buf, WithCaller(enable), WithPretty(false)).Info("x")

		if got := strings.Contains(buf.String(), `"source"`); got != enable {
			t.Errorf("WithCaller(%v): source present = %v", enable, got)
		}
	}
}

func TestLogger_TimeLayout(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithTimeLayout("none"), WithPretty(false)).Info("x")

	if strings.Contains(buf.String(), `"time"`) {
		t.Errorf("time present: %s", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(false)).With(slog.String("build", "b-1"))
	logger.Info("done")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}

	if entry["build"] != "b-1" {
		t.Errorf("entry = %v", entry)
	}
}

func TestLogger_Wrap(t *testing.T) {
	var first, second bytes.Buffer

	base := Make(&first, WithLevel(LevelWarn))
	wrapped := base.Wrap(WithOutput(&second), WithLevel(LevelDebug))

	wrapped.Debug("wrapped")
	base.Debug("base")

	if first.Len() != 0 {
		t.Errorf("base logged below its level: %s", first.String())
	}

	if !strings.Contains(second.String(), "wrapped") {
		t.Errorf("wrapped logger output = %q", second.String())
	}

	if base.Level() != LevelWarn || wrapped.Level() != LevelDebug {
		t.Errorf("levels = %v, %v", base.Level(), wrapped.Level())
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	l.Trace("x")
	l.Debug("x")
	l.InfoContext(context.Background(), "x")
	l.Warn("x")
	l.Error("x")

	if l.With(slog.String("k", "v")).Logger != nil {
		t.Error("With on zero value created a logger")
	}

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Errorf("zero value level = %v, format = %v", l.Level(), l.Format())
	}
}

func TestLogger_Concurrent(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(false))

	var wg sync.WaitGroup

	for i := range 100 {
		wg.Go(func() {
			logger.Info("concurrent", slog.Int("id", i))
		})
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "\n"); n != 100 {
		t.Errorf("got %d lines, want 100", n)
	}
}

func TestPrettyText(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatText), WithTimeLayout("none"), WithLevel(LevelTrace))

	logger = logger.With(slog.String("build", "b-1"))
	logger.Trace("rendered",
		slog.Group("page", slog.String("path", "a.md"), slog.Int("bytes", 3)),
		slog.Bool("cached", false),
	)

	want := "level=TRACE msg=rendered build=b-1 page.path=a.md page.bytes=3 cached=false\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

type secret string

func (secret) LogValue() slog.Value { return slog.StringValue("***") }

func TestPrettyJSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithTimeLayout("none"))

	h := logger.Handler().WithGroup("req").WithAttrs([]slog.Attr{slog.String("id", "7")})
	slog.New(h).Error("failed",
		slog.Any("error", errors.New("boom")),
		slog.Any("token", secret("hunter2")),
	)

	want := `{
  level: ERROR,
  msg: failed,
  req: {
    id: 7
  },
  req: {
    error: boom,
    token: ***
  }
}
`
	if got := buf.String(); got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
}

func TestPackageFunctions(t *testing.T) {
	original := Default()
	t.Cleanup(func() { SetDefault(original) })

	var buf bytes.Buffer

	SetDefault(Make(&buf, WithPretty(false)))
	Config(WithLevel(LevelTrace))

	tests := []struct {
		name  string
		log   func()
		level string
	}{
		{"TraceContext", func() { TraceContext(context.Background(), "m") }, "TRACE"},
		{"DebugContext", func() { DebugContext(context.Background(), "m") }, "DEBUG"},
		{"Debug", func() { Debug("m") }, "DEBUG"},
		{"Info", func() { Info("m") }, "INFO"},
		{"InfoContext", func() { InfoContext(context.Background(), "m") }, "INFO"},
		{"Warn", func() { Warn("m") }, "WARN"},
		{"WarnContext", func() { WarnContext(context.Background(), "m") }, "WARN"},
		{"Error", func() { Error("m") }, "ERROR"},
		{"ErrorContext", func() { ErrorContext(context.Background(), "m") }, "ERROR"},
		{"With", func() { With(slog.String("k", "v")).Info("m") }, "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log()

			if !strings.Contains(buf.String(), `"level":"`+tt.level+`"`) {
				t.Errorf("output = %s", buf.String())
			}
		})
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	logger := Make(&bytes.Buffer{}, WithPretty(false))

	for i := 0; b.Loop(); i++ {
		logger.Info("benchmark", slog.Int("iteration", i))
	}
}

func BenchmarkLogger_InfoPretty(b *testing.B) {
	logger := Make(&bytes.Buffer{}).With(slog.String("component", "bench"))

	for i := 0; b.Loop(); i++ {
		logger.Info("benchmark", slog.Int("iteration", i))
	}
}

func TestLogger_Component(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithPretty(false), WithTimeLayout("none")).
		Component("serve").Info("listening")

	want := `{"level":"INFO","msg":"listening","component":"serve"}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestLogger_WrapZeroValue(t *testing.T) {
	var buf bytes.Buffer

	var l Logger

	l.Wrap(WithOutput(&buf), WithPretty(false)).Info("x")

	if buf.Len() == 0 {
		t.Error("wrapped zero value logger wrote nothing")
	}
}
