package render

import "github.com/ardnew/fddl/pkg"

// Errors returned while rendering outputs.
var (
	ErrWriteOutput   = pkg.NewError("failed to write output")
	ErrOutsideOutput = pkg.NewError("output path escapes output directory")
	ErrRenderPage    = pkg.NewError("failed to render page")
	ErrEncodeJSON    = pkg.NewError("failed to encode JSON")
)
