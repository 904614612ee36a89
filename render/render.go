package render

import (
	"context"
	"errors"
	"log/slog"
	"path"
	"runtime"

	"github.com/ardnew/fddl/lang"
	"github.com/ardnew/fddl/log"
	"github.com/ardnew/fddl/site"
)

// Default page variables, overridden by an output's variables.
var defaultVariables = map[string]string{
	"charset":  "utf-8",
	"language": "en",
}

// Hooks are run around each page render. [plugin.Manager] implements Hooks;
// a nil Hooks runs nothing.
type Hooks interface {
	BeforePageRender(ctx context.Context, p *site.Page) (*site.Page, error)
	AfterPageRender(ctx context.Context, p *site.Page, html string) (string, error)
}

// Renderer turns a [site.Site] into files below an output directory using
// the views of one template.
type Renderer struct {
	engine      *lang.Engine
	templateDir string
	out         *Writer
	hooks       Hooks
	logger      log.Logger
	jobs        int
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithEngine sets the template engine. The default engine uses the default
// locale and no logger.
func WithEngine(e *lang.Engine) Option {
	return func(r *Renderer) { r.engine = e }
}

// WithHooks installs page render hooks.
func WithHooks(h Hooks) Option {
	return func(r *Renderer) { r.hooks = h }
}

// WithLogger sets the logger reporting written files.
func WithLogger(logger log.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

// WithConcurrency bounds the number of pages rendered at once. Values below
// one select the number of CPUs.
func WithConcurrency(n int) Option {
	return func(r *Renderer) { r.jobs = n }
}

// New returns a Renderer reading views from templateDir and writing below
// outputDir.
func New(templateDir, outputDir string, opts ...Option) *Renderer {
	r := &Renderer{
		templateDir: templateDir,
		out:         NewWriter(outputDir),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.engine == nil {
		r.engine = lang.New()
	}

	if r.jobs < 1 {
		r.jobs = runtime.NumCPU()
	}

	return r
}

// OutputDir returns the directory files are written below.
func (r *Renderer) OutputDir() string { return r.out.Root() }

// LoadOutput loads the output configuration name from the template
// directory, or returns def if the template does not declare it.
func (r *Renderer) LoadOutput(name string, def site.OutputTemplate) (site.OutputTemplate, error) {
	out, err := site.LoadOutputTemplate(r.templateDir, name)
	if err == nil {
		return out, nil
	}

	if !errors.Is(err, site.ErrOutputTemplateNotFound) {
		return out, err
	}

	r.logger.Debug("using default output configuration", slog.String("output", name))

	return def, nil
}

// page describes one file produced from a view.
type page struct {
	src       *site.Page
	view      string
	name      string
	variables map[string]string
	opts      []lang.ContextOption
}

// render evaluates pg's view against s, applies the after-render hook, and
// writes the result.
func (r *Renderer) render(ctx context.Context, s *site.Site, pg page) error {
	view, err := site.LoadView(r.templateDir, pg.view)
	if err != nil {
		return err
	}

	data := lang.BuildContext(s, pg.src, pg.variables, pg.opts...)
	html := r.engine.Render(ctx, view, data)

	if r.hooks != nil {
		html, err = r.hooks.AfterPageRender(ctx, pg.src, html)
		if err != nil {
			return ErrRenderPage.With(slog.String("page", pg.src.Path)).Wrap(err)
		}
	}

	file, err := r.out.WriteString(pg.name, html)
	if err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "wrote page",
		slog.String("page", pg.src.Path),
		slog.String("file", file),
	)

	return nil
}

// variables merges the defaults, the output's variables, and extra, later
// maps taking precedence.
func variables(out site.OutputTemplate, extra map[string]string) map[string]string {
	vars := make(map[string]string, len(defaultVariables)+len(out.Variables)+len(extra))

	for _, m := range []map[string]string{defaultVariables, out.Variables, extra} {
		for k, v := range m {
			vars[k] = v
		}
	}

	return vars
}

// outputName joins an output's path with a page-relative name.
func outputName(out site.OutputTemplate, name string) string {
	return path.Join(out.OutputPath, name)
}
