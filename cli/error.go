package cli

import "github.com/ardnew/fddl/pkg"

// Errors returned while reading configuration.
var (
	ErrConfigFile = pkg.NewError("invalid configuration file")
)
