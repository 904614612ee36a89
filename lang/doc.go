// Package lang implements the fddl template language.
//
// A template is plain text with directives between double braces:
//
//	{{ page.title }}                  interpolate a value
//	{{ page.date | formatDate }}      interpolate a filtered value
//	{{#each site.pages}}…{{/each}}    repeat once per element, binding "this"
//	{{#if page.description}}…{{/if}} include only when the value is truthy
//
// Key paths are dot-separated. The first segment selects a namespace: "this"
// (the current loop element), "page" (the page being rendered) or "site" (the
// whole site). Any other path is looked up verbatim in the variable map of the
// [Context].
//
// Parsing is strict: unbalanced delimiters and blocks are reported as a
// [*ParseError]. Evaluation is not: a path that does not resolve produces no
// output, and [Engine.Render] returns malformed source unchanged.
//
// Built-in filters are formatDate, uppercase, lowercase and capitalize.
package lang
