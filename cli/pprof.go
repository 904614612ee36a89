//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/fddl/log"
	"github.com/ardnew/fddl/pkg"
	"github.com/ardnew/fddl/profile"
)

type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Enable profiling"         placeholder:"${enum}"`
	Dir  string `default:"${pprofDir}"                          help:"Profile output directory"                                 type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      filepath.Join(pkg.CacheDir(), profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: "pprof", Title: "Profiling (pprof)"}
}

// start profiles the named command until the returned function is called.
func (f pprofConfig) start(ctx context.Context, command string) (stop func()) {
	p := profile.Profiler{Mode: f.Mode, Dir: f.Dir, Label: command, Quiet: true}
	if p.Mode == "" {
		return func() {}
	}

	attrs := []slog.Attr{
		slog.String("mode", p.Mode),
		slog.String("dir", p.Path()),
	}

	log.DebugContext(ctx, "pprof start", attrs...)

	s := p.Start()

	return func() {
		s.Stop()
		log.InfoContext(ctx, "pprof written", attrs...)
	}
}
