package plugin

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/fddl/log"
	"github.com/ardnew/fddl/site"
)

// Manager runs the hooks of the loaded plugins in load order. Hook calls are
// serialized, so plugins may keep unsynchronized state.
//
// A nil *Manager has no plugins; every hook returns its input unchanged.
type Manager struct {
	mu       sync.Mutex
	plugins  []Plugin
	registry *Registry
	pc       *Context
	logger   log.Logger
}

// Option configures a [Manager].
type Option func(*Manager)

// WithRegistry replaces the built-in registry.
func WithRegistry(r *Registry) Option {
	return func(m *Manager) { m.registry = r }
}

// WithLogger sets the logger used to report plugin loading.
func WithLogger(logger log.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// NewManager returns a Manager whose plugins share pc.
func NewManager(pc *Context, opts ...Option) *Manager {
	m := &Manager{pc: pc}

	for _, opt := range opts {
		opt(m)
	}

	if m.registry == nil {
		m.registry = NewRegistry()
	}

	return m
}

// Context returns the shared plugin context.
func (m *Manager) Context() *Context { return m.pc }

// Load instantiates the enabled plugins of configs. Disabled and unknown
// plugins are skipped.
func (m *Manager) Load(ctx context.Context, configs []site.PluginConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, cfg := range configs {
		if !cfg.IsEnabled() {
			m.logger.DebugContext(ctx, "plugin disabled",
				slog.String("plugin", cfg.Identifier))

			continue
		}

		p, ok := m.registry.Create(cfg)
		if !ok {
			attrs := []slog.Attr{slog.String("plugin", cfg.Identifier)}
			if matches := fuzzy.Find(cfg.Identifier, m.registry.Available()); len(matches) > 0 {
				attrs = append(attrs, slog.String("suggest", matches[0].Str))
			}

			m.logger.WarnContext(ctx, "unknown plugin", attrs...)

			continue
		}

		m.plugins = append(m.plugins, p)

		if l, ok := p.(Loader); ok {
			l.DidLoad(m.pc)
		}

		m.logger.InfoContext(ctx, "loaded plugin",
			slog.String("plugin", p.Name()),
			slog.String("version", p.Version()),
		)
	}
}

// Plugins returns the loaded plugins in load order.
func (m *Manager) Plugins() []Plugin {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Plugin, len(m.plugins))
	copy(out, m.plugins)

	return out
}

// BeforeBuild runs every [BeforeBuilder] hook.
func (m *Manager) BeforeBuild(ctx context.Context) error {
	return each(m, func(p BeforeBuilder) error {
		return p.BeforeBuild(ctx, m.pc)
	})
}

// AfterBuild runs every [AfterBuilder] hook.
func (m *Manager) AfterBuild(ctx context.Context) error {
	return each(m, func(p AfterBuilder) error {
		return p.AfterBuild(ctx, m.pc)
	})
}

// BeforePageRender passes p through every [PageTransformer].
func (m *Manager) BeforePageRender(ctx context.Context, p *site.Page) (*site.Page, error) {
	err := each(m, func(t PageTransformer) (err error) {
		p, err = t.BeforePageRender(ctx, m.pc, p)

		return err
	})

	return p, err
}

// AfterPageRender passes html through every [HTMLTransformer].
func (m *Manager) AfterPageRender(ctx context.Context, p *site.Page, html string) (string, error) {
	err := each(m, func(t HTMLTransformer) (err error) {
		html, err = t.AfterPageRender(ctx, m.pc, p, html)

		return err
	})

	return html, err
}

// PreprocessMarkdown passes markdown through every [MarkdownPreprocessor].
func (m *Manager) PreprocessMarkdown(ctx context.Context, path, markdown string) (string, error) {
	err := each(m, func(t MarkdownPreprocessor) (err error) {
		markdown, err = t.BeforeMarkdown(ctx, m.pc, path, markdown)

		return err
	})

	return markdown, err
}

// PostprocessHTML passes html through every [HTMLPostprocessor].
func (m *Manager) PostprocessHTML(ctx context.Context, path, html string) (string, error) {
	err := each(m, func(t HTMLPostprocessor) (err error) {
		html, err = t.AfterMarkdown(ctx, m.pc, path, html)

		return err
	})

	return html, err
}

// each calls fn for every loaded plugin implementing T, stopping at the first
// error.
func each[T any](m *Manager, fn func(T) error) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.plugins {
		hook, ok := p.(T)
		if !ok {
			continue
		}

		err := fn(hook)
		if err != nil {
			return ErrHook.With(slog.String("plugin", p.ID())).Wrap(err)
		}
	}

	return nil
}
