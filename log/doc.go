// Package log writes leveled, structured records through [log/slog].
//
// A [Logger] is a value. Its configuration is fixed by the options given to
// [Make] or [Logger.Wrap], so loggers are copied into the build workers and
// the server without locking:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Info("site generated", slog.Int("pages", 12))
//
// Records from one subsystem carry its name under [ComponentKey]:
//
//	render := logger.Component("render")
//	render.WarnContext(ctx, "layout missing", slog.String("page", p.Path))
//
// Every level has a method taking a context and one that does not; the
// latter uses [DefaultContextProvider]. [LevelTrace] sits below
// [slog.LevelDebug] and is used for per-token and per-keypress detail.
// [ParseLevel] accepts offsets such as "debug+2".
//
// Time layouts may name a [time] package constant, ignoring case and
// punctuation ("RFC3339", "stamp-milli"), or give a layout verbatim. "none"
// drops the timestamp.
//
// The JSON and text formats are colorized unless [WithPretty] turns that
// off, in which case the [log/slog] handlers are used unchanged.
//
// The functions [Info], [WarnContext] and the rest write to a package-level
// logger that the CLI reconfigures from its flags with [Config].
package log
