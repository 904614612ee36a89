package lang

import (
	"context"
	"log/slog"
	"strings"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"

	"github.com/ardnew/fddl/log"
	"github.com/ardnew/fddl/site"
)

// Engine parses and evaluates templates.
//
// An Engine holds no per-render state and is safe for concurrent use.
type Engine struct {
	filters filters
	logger  log.Logger
	locale  monday.Locale
	tag     language.Tag
}

// Option configures an [Engine].
type Option func(*Engine)

// WithLogger sets the logger used to report parse failures and unknown
// filters. The zero [log.Logger] discards everything.
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithLocale sets the locale used by date formatting and the case filters.
func WithLocale(locale monday.Locale) Option {
	return func(e *Engine) {
		e.locale = locale
		e.tag = site.LanguageTag(locale)
	}
}

// New returns an Engine with its filter registry built from opts.
func New(opts ...Option) *Engine {
	e := &Engine{
		locale: site.DefaultLocale,
		tag:    site.LanguageTag(site.DefaultLocale),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.filters = makeFilters(e.locale, e.tag)

	return e
}

// Filters returns the names of the registered filters in sorted order.
func (e *Engine) Filters() []string { return e.filters.names() }

// Render parses source and evaluates it against data.
//
// Render never fails. If source is malformed the failure is logged and source
// is returned unchanged.
func (e *Engine) Render(ctx context.Context, source string, data *Context) string {
	nodes, err := Parse(source)
	if err != nil {
		e.logger.WarnContext(ctx, "template parse failed", slog.Any("error", err))

		return source
	}

	return e.evaluate(ctx, nodes, data)
}

// Evaluate renders parsed nodes against data.
func (e *Engine) Evaluate(nodes []Node, data *Context) string {
	return e.evaluate(context.Background(), nodes, data)
}

func (e *Engine) evaluate(ctx context.Context, nodes []Node, data *Context) string {
	var sb strings.Builder

	e.write(ctx, &sb, nodes, data)

	return sb.String()
}

func (e *Engine) write(
	ctx context.Context,
	sb *strings.Builder,
	nodes []Node,
	data *Context,
) {
	for _, n := range nodes {
		switch n := n.(type) {
		case Text:
			sb.WriteString(n.Literal)

		case Variable:
			if v, ok := data.Resolve(n.Path); ok {
				sb.WriteString(v.text(e.locale))
			}

		case Filter:
			v, ok := data.Resolve(n.Path)
			if !ok {
				continue
			}

			if fn, ok := e.filters[n.Name]; ok {
				sb.WriteString(fn(v))

				continue
			}

			e.logger.DebugContext(ctx, "unknown filter",
				slog.String("filter", n.Name),
				slog.String("suggest", e.filters.suggest(n.Name)),
			)
			sb.WriteString(v.text(e.locale))

		case Each:
			v, _ := data.Resolve(n.Path)

			items, ok := v.Items()
			if !ok {
				continue
			}

			for _, item := range items {
				e.write(ctx, sb, n.Body, data.with(item))
			}

		case If:
			if v, ok := data.Resolve(n.Path); ok && v.Truthy() {
				e.write(ctx, sb, n.Body, data)
			}
		}
	}
}
