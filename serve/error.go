package serve

import "github.com/ardnew/fddl/pkg"

// Errors returned by the development server.
var (
	ErrWatch  = pkg.NewError("failed to watch directory")
	ErrServe  = pkg.NewError("failed to serve site")
	ErrReload = pkg.NewError("live reload unavailable")
)
