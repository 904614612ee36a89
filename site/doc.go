// Package site holds the domain model of a generated site: pages and their
// front matter, the template and output configuration loaded from YAML, and
// the build identity stamped on each generation.
//
// # Layout
//
// A project directory contains:
//
//	contents/            markdown sources (*.md, *.markdown)
//	templates/<name>/    a template: template.yml, <format>.yml, views, assets/
//	output/              generated files
//	.fddl-build          identifier of the most recent build
//
// # Configuration
//
// [LoadConfiguration] decodes template.yml into a [TemplateConfiguration].
// [LoadOutputTemplate] decodes an output configuration such as html.yml into
// an [OutputTemplate], whose optional where expression is compiled into a
// [Selector] that chooses which pages the output renders.
package site
