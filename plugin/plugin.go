package plugin

import (
	"bytes"
	"context"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/ardnew/fddl/log"
	"github.com/ardnew/fddl/site"
)

// Plugin identifies a build extension. A plugin takes part in a build by
// also implementing one or more of the hook interfaces below.
type Plugin interface {
	ID() string
	Name() string
	Version() string
}

// Loader is notified once when its plugin is loaded.
type Loader interface {
	DidLoad(pc *Context)
}

// BeforeBuilder runs before any content is processed.
type BeforeBuilder interface {
	BeforeBuild(ctx context.Context, pc *Context) error
}

// AfterBuilder runs once every output has been written.
type AfterBuilder interface {
	AfterBuild(ctx context.Context, pc *Context) error
}

// PageTransformer may replace a page before it is rendered.
type PageTransformer interface {
	BeforePageRender(ctx context.Context, pc *Context, p *site.Page) (*site.Page, error)
}

// HTMLTransformer may rewrite a rendered page.
type HTMLTransformer interface {
	AfterPageRender(ctx context.Context, pc *Context, p *site.Page, html string) (string, error)
}

// MarkdownPreprocessor may rewrite a markdown source before conversion.
type MarkdownPreprocessor interface {
	BeforeMarkdown(ctx context.Context, pc *Context, path, markdown string) (string, error)
}

// HTMLPostprocessor may rewrite the HTML converted from a markdown source.
type HTMLPostprocessor interface {
	AfterMarkdown(ctx context.Context, pc *Context, path, html string) (string, error)
}

// Context is the environment shared by all plugins of one build.
type Context struct {
	WorkingDir  string
	OutputDir   string
	TemplateDir string

	// Logger reports plugin activity. The zero value discards.
	Logger log.Logger

	mu   sync.Mutex
	data map[string]any
}

// NewContext returns a Context for a build rooted at workingDir.
func NewContext(workingDir, outputDir, templateDir string) *Context {
	return &Context{
		WorkingDir:  workingDir,
		OutputDir:   outputDir,
		TemplateDir: templateDir,
		data:        make(map[string]any),
	}
}

// Set stores value under key in the shared data.
func (c *Context) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.data == nil {
		c.data = make(map[string]any)
	}

	c.data[key] = value
}

// Get returns the shared value stored under key.
func (c *Context) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.data[key]

	return v, ok
}

// WriteOutput atomically writes data to name below the output directory.
func (c *Context) WriteOutput(name string, data []byte) error {
	path := filepath.Join(c.OutputDir, filepath.FromSlash(name))

	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err == nil {
		err = atomic.WriteFile(path, bytes.NewReader(data))
	}

	if err != nil {
		return ErrWriteOutput.With(slog.String("path", path)).Wrap(err)
	}

	return nil
}

// Factory creates a plugin from its configuration.
type Factory func(cfg site.PluginConfig) Plugin

// Registry maps plugin identifiers to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns a Registry holding the built-in plugins.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}

	r.Register(SitemapID, NewSitemap)
	r.Register(RSSID, NewRSS)
	r.Register(SearchID, NewSearch)
	r.Register(AnalyticsID, NewAnalytics)
	r.Register(ReadingTimeID, NewReadingTime)
	r.Register(RobotsID, NewRobots)

	return r
}

// Register adds or replaces the factory for id.
func (r *Registry) Register(id string, f Factory) {
	r.factories[id] = f
}

// Create instantiates the plugin named by cfg. The second result is false if
// no factory is registered for it.
func (r *Registry) Create(cfg site.PluginConfig) (Plugin, bool) {
	f, ok := r.factories[cfg.Identifier]
	if !ok {
		return nil, false
	}

	return f(cfg), true
}

// Available returns the registered identifiers, sorted.
func (r *Registry) Available() []string {
	return slices.Sorted(maps.Keys(r.factories))
}
