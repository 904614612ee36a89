package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/fddl/pkg"
)

// baseConfig is the base name of the user configuration file.
const baseConfig = "config"

// configExt is the extension of every configuration file.
const configExt = ".yml"

// projectConfig is the configuration file read from the working directory
// after the user configuration file.
const projectConfig = pkg.Name + configExt

// DefaultDirMode is the default permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// configPath returns the absolute path to a file or directory formed by joining
// the global configuration directory path with the given path elements.
//
// If no elements are given, it is equivalent to calling [pkg.ConfigDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	err := os.MkdirAll(pkg.ConfigDir(), defaultDirMode)
	if err != nil {
		return err
	}

	return os.MkdirAll(pkg.CacheDir(), defaultDirMode)
}
