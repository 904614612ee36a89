// Package content turns a contents directory into [site.Page] values.
//
// [Scan] lists the markdown sources below a directory, [Processor] converts
// one source into a page, and [CopyAssets] mirrors a template's static files
// into the output tree.
package content
