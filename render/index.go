package render

import (
	"context"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/ardnew/fddl/lang"
	"github.com/ardnew/fddl/site"
)

// Index renders a listing page for every directory containing selected
// pages, unless the directory has its own index source. It returns the
// number of pages written.
func (r *Renderer) Index(ctx context.Context, s *site.Site, out site.OutputTemplate) (int, error) {
	sel, err := out.Selector()
	if err != nil {
		return 0, err
	}

	pages, err := sel.Filter(s.Pages)
	if err != nil {
		return 0, err
	}

	authored := make(map[string]bool)
	for _, p := range s.Pages {
		authored[site.TrimMarkdownExt(p.Path)] = true
	}

	n := 0

	for _, dir := range site.Directories(pages) {
		if err := ctx.Err(); err != nil {
			return n, err
		}

		if authored[dir+"index"] {
			r.logger.DebugContext(ctx, "skipping generated index",
				slog.String("directory", dir))

			continue
		}

		err := r.render(ctx, s, page{
			src:       indexPage(dir),
			view:      out.IndexViewOrDefault(),
			name:      outputName(out, dir+"index"+out.Extension),
			variables: variables(out, nil),
			opts:      []lang.ContextOption{lang.WithDirectory(dir)},
		})
		if err != nil {
			return n, err
		}

		n++
	}

	r.logger.InfoContext(ctx, "rendered directory indexes", slog.Int("pages", n))

	return n, nil
}

// indexPage returns the virtual page listing dir, which ends in "/".
func indexPage(dir string) *site.Page {
	title := "Index"
	if parts := strings.Split(strings.Trim(dir, "/"), "/"); len(parts) > 0 {
		if last := parts[len(parts)-1]; last != "" {
			title = site.TitleFromName(last)
		}
	}

	return &site.Page{
		Path: path.Join(dir, "index.md"),
		FrontMatter: site.FrontMatter{
			Title:       title,
			Description: "Index of " + dir,
		},
		ModifiedDate: time.Now(),
	}
}
