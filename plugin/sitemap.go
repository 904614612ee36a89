package plugin

import (
	"context"
	"encoding/xml"
	"log/slog"
	"time"

	"github.com/ardnew/fddl/site"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap writes sitemap.xml listing every rendered page.
//
// Options:
//
//	base_url  prefix of each location (default https://example.com)
type Sitemap struct {
	info
	collector

	baseURL string
}

// NewSitemap returns the sitemap plugin.
func NewSitemap(cfg site.PluginConfig) Plugin {
	return &Sitemap{
		info:    info{SitemapID, "Sitemap Generator", "1.0.0"},
		baseURL: cfg.Option("base_url", defaultBaseURL),
	}
}

func (s *Sitemap) BeforePageRender(
	_ context.Context, pc *Context, p *site.Page,
) (*site.Page, error) {
	return s.collector.BeforePageRender(pc, p), nil
}

func (s *Sitemap) AfterBuild(ctx context.Context, pc *Context) error {
	set := sitemapURLSet{XMLNS: sitemapNamespace}

	for _, p := range s.sorted() {
		u := sitemapURL{Loc: joinURL(s.baseURL, p.URLPath())}
		if !p.ModifiedDate.IsZero() {
			u.LastMod = p.ModifiedDate.UTC().Format(time.RFC3339)
		}

		set.URLs = append(set.URLs, u)
	}

	data, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}

	err = pc.WriteOutput("sitemap.xml", append([]byte(xml.Header), data...))
	if err != nil {
		return err
	}

	pc.Logger.InfoContext(ctx, "generated sitemap", slog.Int("urls", len(set.URLs)))

	return nil
}
