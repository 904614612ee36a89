package repl

import "github.com/ardnew/fddl/pkg"

// Errors returned by a [Session].
var (
	ErrNoLoader    = pkg.NewError("no context loader")
	ErrBadVariable = pkg.NewError("variable must be key=value")
)
