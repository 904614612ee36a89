package render

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/ardnew/fddl/site"
)

// Taxonomy renders a page for every tag of the selected pages, at
// tags/<tag>, and a tag listing at tags/index. It returns the number of
// pages written.
func (r *Renderer) Taxonomy(ctx context.Context, s *site.Site, out site.OutputTemplate) (int, error) {
	sel, err := out.Selector()
	if err != nil {
		return 0, err
	}

	pages, err := sel.Filter(s.Pages)
	if err != nil {
		return 0, err
	}

	counts := site.TagCounts(pages)
	view := out.IndexViewOrDefault()
	n := 0

	for _, tc := range counts {
		if err := ctx.Err(); err != nil {
			return n, err
		}

		err := r.render(ctx, s, page{
			src:  tagPage(tc.Tag),
			view: view,
			name: outputName(out, "tags/"+tc.Tag+out.Extension),
			variables: variables(out, map[string]string{
				"tag":       tc.Tag,
				"pageCount": strconv.Itoa(tc.Count),
			}),
		})
		if err != nil {
			return n, err
		}

		n++
	}

	extra := map[string]string{"totalTags": strconv.Itoa(len(counts))}
	for _, tc := range counts {
		extra["tag_"+tc.Tag+"_count"] = strconv.Itoa(tc.Count)
	}

	err = r.render(ctx, s, page{
		src: &site.Page{
			Path: "tags/index.md",
			FrontMatter: site.FrontMatter{
				Title:       "All Tags",
				Description: "Browse content by tag",
			},
			ModifiedDate: time.Now(),
		},
		view:      view,
		name:      outputName(out, "tags/index"+out.Extension),
		variables: variables(out, extra),
	})
	if err != nil {
		return n, err
	}

	n++

	r.logger.InfoContext(ctx, "rendered tag pages",
		slog.Int("tags", len(counts)),
		slog.Int("pages", n),
	)

	return n, nil
}

func tagPage(tag string) *site.Page {
	return &site.Page{
		Path: "tags/" + tag + ".md",
		FrontMatter: site.FrontMatter{
			Title:       "Tag: " + tag,
			Description: "All posts tagged with '" + tag + "'",
			Tags:        []string{tag},
		},
		ModifiedDate: time.Now(),
	}
}
