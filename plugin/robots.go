package plugin

import (
	"context"
	"strings"

	"github.com/ardnew/fddl/site"
)

// Robots writes a robots.txt allowing all crawlers.
//
// Options:
//
//	sitemap_url  absolute URL of the sitemap, announced when set
//	disallow     comma-separated path prefixes to exclude
type Robots struct {
	info

	sitemap  string
	disallow []string
}

// NewRobots returns the robots.txt plugin.
func NewRobots(cfg site.PluginConfig) Plugin {
	r := &Robots{
		info:    info{RobotsID, "Robots Generator", "1.0.0"},
		sitemap: cfg.Option("sitemap_url", ""),
	}

	for d := range strings.SplitSeq(cfg.Option("disallow", ""), ",") {
		if d = strings.TrimSpace(d); d != "" {
			r.disallow = append(r.disallow, d)
		}
	}

	return r
}

// Text returns the robots.txt content.
func (r *Robots) Text() string {
	var b strings.Builder

	b.WriteString("User-agent: *\n")

	if len(r.disallow) == 0 {
		b.WriteString("Allow: /\n")
	}

	for _, d := range r.disallow {
		b.WriteString("Disallow: " + d + "\n")
	}

	if r.sitemap != "" {
		b.WriteString("\nSitemap: " + r.sitemap + "\n")
	}

	return b.String()
}

func (r *Robots) AfterBuild(ctx context.Context, pc *Context) error {
	err := pc.WriteOutput("robots.txt", []byte(r.Text()))
	if err != nil {
		return err
	}

	pc.Logger.DebugContext(ctx, "generated robots.txt")

	return nil
}
