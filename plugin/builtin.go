package plugin

import (
	"maps"
	"slices"
	"strings"

	"github.com/ardnew/fddl/site"
)

// Built-in plugin identifiers.
const (
	SitemapID     = "sitemap"
	RSSID         = "rss"
	SearchID      = "search"
	AnalyticsID   = "analytics"
	ReadingTimeID = "reading-time"
	RobotsID      = "robots"
)

// Default base URL of generated absolute links.
const defaultBaseURL = "https://example.com"

// info implements [Plugin] for the built-ins.
type info struct {
	id, name, version string
}

func (i info) ID() string      { return i.id }
func (i info) Name() string    { return i.name }
func (i info) Version() string { return i.version }

// collector remembers each page passed to BeforePageRender. A page rendered
// by more than one output is kept once.
type collector struct {
	pages map[string]*site.Page
}

func (c *collector) BeforePageRender(_ *Context, p *site.Page) *site.Page {
	if c.pages == nil {
		c.pages = make(map[string]*site.Page)
	}

	c.pages[p.Path] = p

	return p
}

// sorted returns the collected pages ordered by path.
func (c *collector) sorted() []*site.Page {
	out := make([]*site.Page, 0, len(c.pages))
	for _, k := range slices.Sorted(maps.Keys(c.pages)) {
		out = append(out, c.pages[k])
	}

	return out
}

// joinURL joins base and a slash-separated path with exactly one "/".
func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
