package render

import (
	"context"
	"time"

	"github.com/ardnew/fddl/site"
)

// DefaultNotFoundOutput is used when a template has no 404.yml.
var DefaultNotFoundOutput = site.OutputTemplate{
	Format:     "notFound",
	Extension:  ".html",
	OutputPath: ".",
	View:       "views/404.html",
}

// NotFound renders the "page not found" document to 404.html below out's
// output path.
func (r *Renderer) NotFound(ctx context.Context, s *site.Site, out site.OutputTemplate) error {
	err := r.render(ctx, s, page{
		src: &site.Page{
			Path: "404.md",
			FrontMatter: site.FrontMatter{
				Title:  "Page Not Found",
				Layout: "404",
			},
			ModifiedDate: time.Now(),
		},
		view:      out.ViewFor("404"),
		name:      outputName(out, "404.html"),
		variables: variables(out, nil),
	})
	if err != nil {
		return err
	}

	r.logger.InfoContext(ctx, "rendered not found page")

	return nil
}

