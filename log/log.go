package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// ComponentKey is the attribute key added by [Logger.Component].
const ComponentKey = "component"

// Logger is a leveled structured logger. Its configuration is fixed when it
// is made, so a Logger may be copied and used from multiple goroutines.
//
// The zero Logger discards everything.
type Logger struct {
	*slog.Logger
	config
}

// Make returns a [Logger] writing to w, configured with [DefaultFormat],
// [DefaultLevel], [DefaultTimeLayout], [DefaultCaller] and [DefaultPretty]
// unless overridden by opts.
func Make(w io.Writer, opts ...Option) Logger {
	return newLogger(defaultConfig(w).with(opts...))
}

func newLogger(c config) Logger {
	return Logger{Logger: slog.New(c.handler()), config: c}
}

// Wrap returns a copy of l reconfigured with opts. Attributes added with
// [Logger.With] are not carried over.
func (l Logger) Wrap(opts ...Option) Logger {
	if l.Logger == nil {
		return newLogger(defaultConfig(nil).with(opts...))
	}

	return newLogger(l.with(opts...))
}

// With returns a copy of l that adds attrs to every message.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.Logger == nil || len(attrs) == 0 {
		return l
	}

	l.Logger = slog.New(l.Handler().WithAttrs(attrs))

	return l
}

// Component returns a copy of l that tags every message with the name of the
// subsystem writing it.
func (l Logger) Component(name string) Logger {
	return l.With(slog.String(ComponentKey, name))
}

// Level returns the minimum level of messages written by l.
func (l Logger) Level() Level {
	if l.Logger == nil {
		return DefaultLevel
	}

	return l.level
}

// Format returns the encoding used by l.
func (l Logger) Format() Format {
	if l.Logger == nil {
		return DefaultFormat
	}

	return l.format
}

// TraceContext logs msg at [LevelTrace].
func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logContext(ctx, LevelTrace, msg, attrs...)
}

// DebugContext logs msg at [LevelDebug].
func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logContext(ctx, LevelDebug, msg, attrs...)
}

// InfoContext logs msg at [LevelInfo].
func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logContext(ctx, LevelInfo, msg, attrs...)
}

// WarnContext logs msg at [LevelWarn].
func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logContext(ctx, LevelWarn, msg, attrs...)
}

// ErrorContext logs msg at [LevelError].
func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logContext(ctx, LevelError, msg, attrs...)
}

// Trace is [Logger.TraceContext] with the [DefaultContextProvider] context.
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.logContext(DefaultContextProvider(), LevelTrace, msg, attrs...)
}

// Debug is [Logger.DebugContext] with the [DefaultContextProvider] context.
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.logContext(DefaultContextProvider(), LevelDebug, msg, attrs...)
}

// Info is [Logger.InfoContext] with the [DefaultContextProvider] context.
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.logContext(DefaultContextProvider(), LevelInfo, msg, attrs...)
}

// Warn is [Logger.WarnContext] with the [DefaultContextProvider] context.
func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.logContext(DefaultContextProvider(), LevelWarn, msg, attrs...)
}

// Error is [Logger.ErrorContext] with the [DefaultContextProvider] context.
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.logContext(DefaultContextProvider(), LevelError, msg, attrs...)
}

// callerSkip is the number of frames between runtime.Callers and the code
// that called one of the exported logging methods or functions.
const callerSkip = 3

// logContext must be called directly by an exported logging method or
// function so that callerSkip identifies the right frame.
func (l Logger) logContext(
	ctx context.Context,
	level Level,
	msg string,
	attrs ...slog.Attr,
) {
	if l.Logger == nil || !l.Enabled(ctx, slog.Level(level)) {
		return
	}

	var pc uintptr

	if l.caller {
		var pcs [1]uintptr

		runtime.Callers(callerSkip, pcs[:])
		pc = pcs[0]
	}

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pc)
	r.AddAttrs(attrs...)

	_ = l.Handler().Handle(ctx, r)
}
