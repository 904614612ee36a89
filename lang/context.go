package lang

import (
	"slices"
	"strings"

	"github.com/goodsign/monday"

	"github.com/ardnew/fddl/site"
)

// RecentPostsLimit is the maximum number of entries in site.recentPosts.
const RecentPostsLimit = 5

// Property names resolvable under "page" and "site".
var (
	PageKeys = []string{"title", "content", "path", "url", "description", "date", "tags"}
	SiteKeys = []string{
		"name", "buildID", "commitHash", "generatedDate", "pages",
		"navigation", "recentPosts", "allTags", "postsInDirectory",
	}
)

// PageContext is the projection of one page visible under "page".
type PageContext struct {
	Title       string   `json:"title"       yaml:"title"`
	Content     string   `json:"content"     yaml:"content"`
	Path        string   `json:"path"        yaml:"path"`
	URL         string   `json:"url"         yaml:"url"`
	Description string   `json:"description" yaml:"description"`
	Date        string   `json:"date"        yaml:"date"`
	Tags        []string `json:"tags"        yaml:"tags"`
}

// SiteContext is the projection of the whole site visible under "site".
type SiteContext struct {
	Name             string                `json:"name"                       yaml:"name"`
	BuildID          string                `json:"buildID"                    yaml:"buildID"`
	CommitHash       string                `json:"commitHash"                 yaml:"commitHash"`
	GeneratedDate    string                `json:"generatedDate"              yaml:"generatedDate"`
	Pages            []PageContext         `json:"pages"                      yaml:"pages"`
	Navigation       []site.NavigationItem `json:"navigation"                 yaml:"navigation"`
	RecentPosts      []PageContext         `json:"recentPosts"                yaml:"recentPosts"`
	AllTags          []string              `json:"allTags"                    yaml:"allTags"`
	PostsInDirectory []PageContext         `json:"postsInDirectory,omitempty" yaml:"postsInDirectory,omitempty"`
}

// Context is the read-only namespace available to one evaluation.
type Context struct {
	Page      PageContext       `json:"page"      yaml:"page"`
	Site      SiteContext       `json:"site"      yaml:"site"`
	Variables map[string]string `json:"variables" yaml:"variables"`

	this  Value
	bound bool
}

// ContextOption configures [BuildContext].
type ContextOption func(*contextConfig)

type contextConfig struct {
	directory string
	hasDir    bool
}

// WithDirectory populates site.postsInDirectory with the pages whose path
// starts with dir. It is used when rendering a directory index.
func WithDirectory(dir string) ContextOption {
	return func(c *contextConfig) {
		c.directory = dir
		c.hasDir = true
	}
}

// BuildContext projects s and p into a fresh [Context]. The variables map is
// copied; neither s nor p is retained.
func BuildContext(
	s *site.Site,
	p *site.Page,
	variables map[string]string,
	opts ...ContextOption,
) *Context {
	var cfg contextConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	locale := s.Configuration.Locale()

	ctx := &Context{
		Page: projectPage(p, locale),
		Site: SiteContext{
			Name:          s.Configuration.Name,
			BuildID:       s.BuildID,
			CommitHash:    s.CommitHash,
			GeneratedDate: s.FormattedDate(),
			Pages:         make([]PageContext, 0, len(s.Pages)),
			Navigation:    slices.Clone(s.Configuration.Navigation),
			AllTags:       site.AllTags(s.Pages),
		},
		Variables: make(map[string]string, len(variables)),
	}

	for _, sp := range s.Pages {
		ctx.Site.Pages = append(ctx.Site.Pages, projectPage(sp, locale))
	}

	ctx.Site.RecentPosts = recentPosts(ctx.Site.Pages)

	if cfg.hasDir {
		ctx.Site.PostsInDirectory = []PageContext{}

		for _, pc := range ctx.Site.Pages {
			if strings.HasPrefix(pc.Path, cfg.directory) {
				ctx.Site.PostsInDirectory = append(ctx.Site.PostsInDirectory, pc)
			}
		}
	}

	for k, v := range variables {
		ctx.Variables[k] = v
	}

	return ctx
}

func projectPage(p *site.Page, locale monday.Locale) PageContext {
	pc := PageContext{
		Title:       p.DisplayTitle(),
		Content:     p.Content,
		Path:        p.Path,
		URL:         "/" + p.URLPath(),
		Description: p.FrontMatter.Description,
		Tags:        slices.Clone(p.FrontMatter.Tags),
	}

	if p.FrontMatter.HasDate() {
		pc.Date = site.FormatDate(p.FrontMatter.Date.Time, locale)
	}

	return pc
}

// recentPosts selects dated pages ordered by their formatted date string,
// descending.
func recentPosts(pages []PageContext) []PageContext {
	dated := make([]PageContext, 0, len(pages))

	for _, pc := range pages {
		if pc.Date != "" {
			dated = append(dated, pc)
		}
	}

	slices.SortStableFunc(dated, func(a, b PageContext) int {
		return strings.Compare(b.Date, a.Date)
	})

	if len(dated) > RecentPostsLimit {
		dated = dated[:RecentPostsLimit]
	}

	return dated
}

// with returns a copy of c with "this" bound to v.
func (c *Context) with(v Value) *Context {
	var cp Context
	if c != nil {
		cp = *c
	}

	cp.this = v
	cp.bound = true

	return &cp
}

// Resolve returns the value addressed by keyPath. The second result is false
// if the path does not resolve. A nil Context resolves nothing.
func (c *Context) Resolve(keyPath string) (Value, bool) {
	if c == nil {
		return Value{}, false
	}

	segs := strings.FieldsFunc(keyPath, func(r rune) bool { return r == '.' })
	if len(segs) == 0 {
		return Value{}, false
	}

	switch namespaceOf(segs[0]) {
	case namespaceThis:
		return c.resolveThis(segs[1:])
	case namespacePage:
		if len(segs) < 2 {
			return Value{}, false
		}

		return c.Page.property(segs[1])
	case namespaceSite:
		if len(segs) < 2 {
			return Value{}, false
		}

		return c.Site.property(segs[1])
	default:
		s, ok := c.Variables[keyPath]

		return String(s), ok
	}
}

// namespace selects the resolution strategy for a key path.
type namespace int

const (
	namespaceVariable namespace = iota
	namespaceThis
	namespacePage
	namespaceSite
)

// namespaceOf selects the namespace named by the first segment of a key
// path. The page and site namespaces read only the segment after it, so a
// bare "page" is unresolved and "page.title.x" is the title. Neither ever
// consults the variables.
func namespaceOf(first string) namespace {
	switch first {
	case "this":
		return namespaceThis
	case "page":
		return namespacePage
	case "site":
		return namespaceSite
	default:
		return namespaceVariable
	}
}

func (c *Context) resolveThis(rest []string) (Value, bool) {
	if !c.bound {
		return Value{}, false
	}

	v := c.this

	for _, key := range rest {
		next, ok := v.Lookup(key)
		if !ok {
			return Value{}, false
		}

		v = next
	}

	return v, true
}

func (p PageContext) property(name string) (Value, bool) {
	switch name {
	case "title":
		return String(p.Title), true
	case "content":
		return String(p.Content), true
	case "path":
		return String(p.Path), true
	case "url":
		return String(p.URL), true
	case "description":
		return String(p.Description), true
	case "date":
		return String(p.Date), true
	case "tags":
		return Strings(p.Tags), true
	default:
		return Value{}, false
	}
}

func (s SiteContext) property(name string) (Value, bool) {
	switch name {
	case "name":
		return String(s.Name), true
	case "buildID", "buildId":
		return String(s.BuildID), true
	case "commitHash":
		return String(s.CommitHash), true
	case "generatedDate":
		return String(s.GeneratedDate), true
	case "pages":
		return pageSequence(s.Pages, "title", "url", "path", "description", "date", "tags"), true
	case "navigation":
		items := make([]Value, len(s.Navigation))
		for i, n := range s.Navigation {
			items[i] = Mapping(map[string]Value{
				"label": String(n.Label),
				"url":   String(n.URL),
			})
		}

		return Sequence(items...), true
	case "recentPosts":
		return pageSequence(s.RecentPosts, "title", "url", "date"), true
	case "allTags":
		return Strings(s.AllTags), true
	case "postsInDirectory":
		return pageSequence(s.PostsInDirectory, "title", "url", "description", "date", "tags"), true
	default:
		return Value{}, false
	}
}

// pageSequence projects pages into a sequence of mappings holding only keys.
func pageSequence(pages []PageContext, keys ...string) Value {
	items := make([]Value, len(pages))

	for i, p := range pages {
		m := make(map[string]Value, len(keys))

		for _, k := range keys {
			m[k], _ = p.property(k)
		}

		items[i] = Mapping(m)
	}

	return Sequence(items...)
}
