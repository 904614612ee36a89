package site

import "github.com/ardnew/fddl/pkg"

// Errors returned while loading templates and page metadata.
var (
	ErrConfigurationNotFound  = pkg.NewError("template configuration not found")
	ErrOutputTemplateNotFound = pkg.NewError("output template not found")
	ErrViewNotFound           = pkg.NewError("view template not found")
	ErrDecodeConfiguration    = pkg.NewError("invalid template configuration")
	ErrInvalidDate            = pkg.NewError("invalid date")
	ErrSelectorCompile        = pkg.NewError("where expression compilation failed")
	ErrSelectorEvaluate       = pkg.NewError("where expression evaluation failed")
	ErrBuildInfo              = pkg.NewError("build info")
)
