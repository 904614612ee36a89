package build

import "github.com/ardnew/fddl/pkg"

// Errors returned by [Generator.Generate].
var (
	ErrMissingContents = pkg.NewError("contents directory not found")
	ErrMissingTemplate = pkg.NewError("template directory not found")
	ErrProcessPage     = pkg.NewError("failed to process page")
	ErrOutput          = pkg.NewError("failed to generate output")
)
