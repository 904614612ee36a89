package plugin

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/ardnew/fddl/site"
)

// Analytics providers.
const (
	ProviderGoogle    = "google"
	ProviderPlausible = "plausible"
)

const googleSnippet = `<!-- Google Analytics -->
<script async src="https://www.googletagmanager.com/gtag/js?id=%[1]s"></script>
<script>
  window.dataLayer = window.dataLayer || [];
  function gtag(){dataLayer.push(arguments);}
  gtag('js', new Date());
  gtag('config', '%[1]s');
</script>
`

const plausibleSnippet = `<script defer data-domain="%s" src="https://plausible.io/js/script.js"></script>
`

// Analytics inserts a tracking snippet before the closing head tag of each
// rendered page. Nothing is inserted unless tracking_id is set.
//
// Options:
//
//	tracking_id  required
//	provider     google (default) or plausible
//	domain       site domain reported to plausible
type Analytics struct {
	info

	snippet string
}

// NewAnalytics returns the analytics plugin.
func NewAnalytics(cfg site.PluginConfig) Plugin {
	a := &Analytics{info: info{AnalyticsID, "Analytics Injector", "1.0.0"}}

	id := cfg.Option("tracking_id", "")
	if id == "" {
		return a
	}

	switch cfg.Option("provider", ProviderGoogle) {
	case ProviderGoogle:
		a.snippet = fmt.Sprintf(googleSnippet, html.EscapeString(id))
	case ProviderPlausible:
		a.snippet = fmt.Sprintf(plausibleSnippet,
			html.EscapeString(cfg.Option("domain", "")))
	}

	return a
}

func (a *Analytics) AfterPageRender(
	_ context.Context, _ *Context, _ *site.Page, doc string,
) (string, error) {
	if a.snippet == "" {
		return doc, nil
	}

	i := indexFold(doc, "</head>")
	if i < 0 {
		return doc, nil
	}

	return doc[:i] + a.snippet + doc[i:], nil
}

// indexFold returns the index of the first case-insensitive match of tag in
// s, or -1.
func indexFold(s, tag string) int {
	for i := 0; i+len(tag) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(tag)], tag) {
			return i
		}
	}

	return -1
}
