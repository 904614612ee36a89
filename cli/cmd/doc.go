// Package cmd implements the fddl subcommands.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the user configuration file.
	ConfigIdentifier = "config"

	// ProjectIdentifier is the kong variable identifier containing the path
	// to the project configuration file, relative to the working directory.
	ProjectIdentifier = "project"

	// TemplateIdentifier is the kong variable identifier containing the
	// default template name.
	TemplateIdentifier = "template"
)
