// Package pkg identifies the fddl program and holds the helpers shared by
// its packages: error values and the user directories.
package pkg

import (
	_ "embed"
	"runtime/debug"
	"strings"
	"sync"
)

const (
	Name        = "fddl"
	Description = "Static site generator"
)

//go:embed VERSION
var release string

// Version returns the release number, followed by the short VCS revision
// when the binary was built from a checkout, e.g. "0.1.0 (3f2a9c1)". A
// modified checkout is marked with "+dirty".
var Version = sync.OnceValue(func() string {
	v := strings.TrimSpace(release)

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}

	var rev, dirty string

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value[:min(7, len(s.Value))]
		case "vcs.modified":
			if s.Value == "true" {
				dirty = "+dirty"
			}
		}
	}

	if rev == "" {
		return v
	}

	return v + " (" + rev + dirty + ")"
})
