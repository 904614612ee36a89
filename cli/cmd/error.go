package cmd

import "github.com/ardnew/fddl/pkg"

// Errors returned by commands.
var (
	ErrYAMLMarshal   = pkg.NewError("marshal YAML")
	ErrWriteConfig   = pkg.NewError("write configuration file")
	ErrFileExists    = pkg.NewError("file exists (use --force to overwrite)")
	ErrNoConfigPath  = pkg.NewError("configuration path undefined")
	ErrNoSource      = pkg.NewError("no template source")
	ErrReadSource    = pkg.NewError("read template source")
	ErrParseTemplate = pkg.NewError("parse template")
)
