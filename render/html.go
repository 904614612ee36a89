package render

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/fddl/site"
)

// HTML renders every page of s selected by out's where expression and
// returns the number of pages written. Pages are rendered concurrently; the
// first failure cancels the rest.
func (r *Renderer) HTML(ctx context.Context, s *site.Site, out site.OutputTemplate) (int, error) {
	sel, err := out.Selector()
	if err != nil {
		return 0, err
	}

	pages, err := sel.Filter(s.Pages)
	if err != nil {
		return 0, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)

	vars := variables(out, nil)

	for _, p := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			src := p

			if r.hooks != nil {
				var err error

				src, err = r.hooks.BeforePageRender(ctx, p)
				if err != nil {
					return ErrRenderPage.With(slog.String("page", p.Path)).Wrap(err)
				}
			}

			return r.render(ctx, s, page{
				src:       src,
				view:      out.ViewFor(src.FrontMatter.Layout),
				name:      outputName(out, src.OutputPath(out.Extension)),
				variables: vars,
			})
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	r.logger.InfoContext(ctx, "rendered pages",
		slog.String("output", out.Format),
		slog.Int("pages", len(pages)),
	)

	return len(pages), nil
}
