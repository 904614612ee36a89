package plugin

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/ardnew/fddl/site"
)

// Number of markdown characters kept per search entry.
const searchExcerptLen = 500

// SearchEntry is one element of search-index.json.
type SearchEntry struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Tags        string `json:"tags"`
}

// Search writes search-index.json describing every rendered page.
type Search struct {
	info
	collector
}

// NewSearch returns the search index plugin.
func NewSearch(site.PluginConfig) Plugin {
	return &Search{info: info{SearchID, "Search Index Generator", "1.0.0"}}
}

func (s *Search) BeforePageRender(
	_ context.Context, pc *Context, p *site.Page,
) (*site.Page, error) {
	return s.collector.BeforePageRender(pc, p), nil
}

func (s *Search) AfterBuild(ctx context.Context, pc *Context) error {
	pages := s.sorted()
	entries := make([]SearchEntry, 0, len(pages))

	for _, p := range pages {
		entries = append(entries, SearchEntry{
			Title:       p.DisplayTitle(),
			URL:         p.URLPath(),
			Description: p.FrontMatter.Description,
			Content:     excerpt(p.RawMarkdown, searchExcerptLen),
			Tags:        strings.Join(p.FrontMatter.Tags, ", "),
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	err = pc.WriteOutput("search-index.json", data)
	if err != nil {
		return err
	}

	pc.Logger.InfoContext(ctx, "generated search index",
		slog.Int("entries", len(entries)))

	return nil
}

// excerpt returns the first n runes of s.
func excerpt(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}

		n--
	}

	return s
}
