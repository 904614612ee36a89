package pkg

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Environment variables overriding [ConfigDir] and [CacheDir].
const (
	EnvConfigDir = "FDDL_CONFIG_DIR"
	EnvCacheDir  = "FDDL_CACHE_DIR"
)

// Prefix returns the name of the per-user configuration and cache
// directories. It is the name fddl was invoked as, so that a renamed or
// symlinked binary such as fddl-dev keeps separate settings. Test and
// debugger binaries use [Name].
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string { return prefixOf(os.Args[0]) })

func prefixOf(arg0 string) string {
	base := strings.TrimSuffix(filepath.Base(arg0), ".exe")

	if strings.HasSuffix(base, ".test") || strings.HasPrefix(base, "__debug_bin") {
		return Name
	}

	if base = strings.TrimLeft(base, "."); base == "" {
		return Name
	}

	return base
}

// ConfigDir returns the directory holding the user configuration file.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(EnvConfigDir, os.UserConfigDir, ".config")
})

// CacheDir returns the directory holding transient files such as REPL
// history, scratch pages and profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(EnvCacheDir, os.UserCacheDir, ".cache")
})

// userDir returns the value of env if set. Otherwise it returns [Prefix]
// beneath the platform directory reported by base, or beneath fallback in the
// home directory, or beneath the temporary directory.
func userDir(env string, base func() (string, error), fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Clean(dir)
	}

	dir, err := base()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return filepath.Join(os.TempDir(), Prefix())
		}

		dir = filepath.Join(home, fallback)
	}

	return filepath.Join(dir, Prefix())
}
