package profile

import (
	"path/filepath"
	"strings"
)

// Tag is the build tag that enables profiling.
const Tag = `pprof`

// Session is a running profile.
type Session interface {
	// Stop flushes the profile to disk. It is safe to call more than once.
	Stop()
}

// Profiler describes a profile to record.
type Profiler struct {
	// Mode is one of [Modes]. An empty Mode disables profiling.
	Mode string
	// Dir is the root output directory.
	Dir string
	// Label names the subdirectory of Dir receiving the profile, usually the
	// command being profiled. Spaces become hyphens.
	Label string
	// Quiet suppresses the start and stop messages of the profiler.
	Quiet bool
}

// Path returns the directory the profile is written to.
func (p Profiler) Path() string {
	if p.Label == "" {
		return p.Dir
	}

	return filepath.Join(p.Dir, strings.ReplaceAll(strings.TrimSpace(p.Label), " ", "-"))
}

// Start begins recording. The returned Session is never nil.
func (p Profiler) Start() Session {
	if p.Mode == "" {
		return nop{}
	}

	return start(p.Mode, p.Path(), p.Quiet)
}

type nop struct{}

func (nop) Stop() {}
