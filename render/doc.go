// Package render writes the files of a generated site.
//
// A [Renderer] evaluates a template's views with [lang.Engine] for each page
// ([Renderer.HTML]), each content directory ([Renderer.Index]) and each tag
// ([Renderer.Taxonomy]), encodes the site as JSON ([Renderer.JSON]), and
// produces the 404 document ([Renderer.NotFound]). All files are written
// through a [Writer], which keeps them inside the output directory and
// replaces them atomically.
package render
