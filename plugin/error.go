package plugin

import "github.com/ardnew/fddl/pkg"

// Errors returned by plugins and the plugin manager.
var (
	ErrHook        = pkg.NewError("plugin hook failed")
	ErrWriteOutput = pkg.NewError("failed to write plugin output")
)
