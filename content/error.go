package content

import "github.com/ardnew/fddl/pkg"

// Errors returned while reading content.
var (
	ErrScan        = pkg.NewError("failed to scan contents")
	ErrReadSource  = pkg.NewError("failed to read markdown source")
	ErrFrontMatter = pkg.NewError("invalid front matter")
	ErrMarkdown    = pkg.NewError("failed to convert markdown")
	ErrTransform   = pkg.NewError("markdown transform failed")
	ErrCopyAssets  = pkg.NewError("failed to copy assets")
)
