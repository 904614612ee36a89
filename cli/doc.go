// Package cli contains the command line interface for fddl.
//
// # Usage
//
//	fddl [flags] <command> [command flags]
//
// Commands:
//
//   - generate: build the site from contents/ and templates/<name>/ into
//     output/ (the default command)
//   - serve: generate, then serve output/ with live reload while watching
//     contents/ and templates/ for changes
//   - render: evaluate template source against a single markdown page
//   - repl: render templates interactively, with completion of key paths and
//     filter names and a live preview
//   - fmt: check template source and print it normalized or as a node tree
//   - version: print the program version and the latest build identifier
//   - init: write the current flag values to the user configuration file,
//     or to fddl.yml in the working directory with --project
//
// # Configuration Files
//
// Flag values are read from two YAML files, the user configuration file
// under the config directory (see [pkg.ConfigDir]) and fddl.yml in the
// working directory. Keys name flags without leading dashes; nested mappings
// are joined with hyphens:
//
//	log:
//	  level: debug
//	template: blog
//
// The config and cache directories may be moved with the FDDL_CONFIG_DIR and
// FDDL_CACHE_DIR environment variables.
//
// # Logging Options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: log output format (json, text)
//   - --log-time-layout: timestamp layout (Kitchen, RFC3339, etc.)
//   - --log-caller: include caller information in log output
//   - --log-pretty: colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o fddl .
//
//   - --pprof-mode: enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: profile output directory (default ~/.cache/fddl/pprof);
//     each command writes to its own subdirectory, e.g. pprof/serve
//
// # Examples
//
//	# Build the blog template with drafts
//	fddl generate -t blog --drafts
//
//	# Serve on all interfaces with debug logging
//	fddl --log-level=debug serve --host 0.0.0.0 -p 3000
//
//	# Print the context a page would render with
//	fddl render --page contents/about.md --context
package cli
