package plugin

import (
	"context"
	"encoding/xml"
	"log/slog"
	"strconv"
	"time"

	"github.com/ardnew/fddl/site"
)

const (
	rssVersion   = "2.0"
	atomNS       = "http://www.w3.org/2005/Atom"
	rssFile      = "feed.xml"
	rssMediaType = "application/rss+xml"

	defaultFeedLimit = 20
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Self        atomLink  `xml:"atom:link"`
	Items       []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// RSS writes an RSS 2.0 feed of the dated pages, newest first.
//
// Options:
//
//	site_title   channel title (default "My Site")
//	site_url     channel link and item prefix (default https://example.com)
//	description  channel description (default "Site feed")
//	limit        maximum number of items (default 20)
type RSS struct {
	info
	collector

	title       string
	url         string
	description string
	limit       int
}

// NewRSS returns the feed plugin.
func NewRSS(cfg site.PluginConfig) Plugin {
	limit, err := strconv.Atoi(cfg.Option("limit", ""))
	if err != nil || limit <= 0 {
		limit = defaultFeedLimit
	}

	return &RSS{
		info:        info{RSSID, "RSS Feed Generator", "1.0.0"},
		title:       cfg.Option("site_title", "My Site"),
		url:         cfg.Option("site_url", defaultBaseURL),
		description: cfg.Option("description", "Site feed"),
		limit:       limit,
	}
}

func (r *RSS) BeforePageRender(
	_ context.Context, pc *Context, p *site.Page,
) (*site.Page, error) {
	return r.collector.BeforePageRender(pc, p), nil
}

func (r *RSS) AfterBuild(ctx context.Context, pc *Context) error {
	feed := rssXML{
		Version: rssVersion,
		Atom:    atomNS,
		Channel: rssChannel{
			Title:       r.title,
			Link:        r.url,
			Description: r.description,
			Self: atomLink{
				Href: joinURL(r.url, rssFile),
				Rel:  "self",
				Type: rssMediaType,
			},
		},
	}

	for _, p := range site.RecentPages(r.sorted(), r.limit) {
		link := joinURL(r.url, p.URLPath())
		feed.Channel.Items = append(feed.Channel.Items, rssItem{
			Title:       p.DisplayTitle(),
			Link:        link,
			Description: p.FrontMatter.Description,
			PubDate:     p.FrontMatter.DateOrZero().Format(time.RFC1123Z),
			GUID:        link,
		})
	}

	data, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return err
	}

	err = pc.WriteOutput(rssFile, append([]byte(xml.Header), data...))
	if err != nil {
		return err
	}

	pc.Logger.InfoContext(ctx, "generated feed",
		slog.Int("items", len(feed.Channel.Items)))

	return nil
}
