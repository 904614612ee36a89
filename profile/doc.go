// Package profile records runtime profiles of fddl with [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof -o fddl .
//	fddl --pprof-mode cpu generate
//
// Each run writes its profile to a directory named after the subcommand
// beneath the configured output directory, so profiles of a one-shot
// generate and a long-running serve do not overwrite each other:
//
//	~/.cache/fddl/pprof/generate/cpu.pprof
//	~/.cache/fddl/pprof/serve/cpu.pprof
//
// Inspect the result with go tool pprof:
//
//	go tool pprof -http=: ./fddl ~/.cache/fddl/pprof/generate/cpu.pprof
//
// The pprof build also registers the [net/http/pprof] handlers on
// [net/http.DefaultServeMux].
//
// Without the build tag, [Modes] is empty and [Profiler.Start] does nothing.
package profile
