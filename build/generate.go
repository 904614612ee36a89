package build

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"golang.org/x/sync/errgroup"

	"github.com/ardnew/fddl/content"
	"github.com/ardnew/fddl/lang"
	"github.com/ardnew/fddl/log"
	"github.com/ardnew/fddl/plugin"
	"github.com/ardnew/fddl/render"
	"github.com/ardnew/fddl/site"
)

// Project layout, relative to the working directory.
const (
	ContentsDir  = "contents"
	TemplatesDir = "templates"
	OutputDir    = "output"
	AssetsDir    = "assets"
)

// DefaultTemplate is the template used when none is named.
const DefaultTemplate = "default"

// Output formats recognized in a template's outputs list.
const (
	OutputHTML     = "html"
	OutputAPI      = "api"
	OutputNotFound = "404"
	outputNotFound = "notFound"
)

// Generator builds the site of one working directory.
type Generator struct {
	dir      string
	logger   log.Logger
	jobs     int
	drafts   bool
	registry *plugin.Registry
}

// Option configures a [Generator].
type Option func(*Generator)

// WithLogger sets the logger reporting build progress.
func WithLogger(logger log.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// WithConcurrency bounds the number of pages processed or rendered at once.
// Values below one select the number of CPUs.
func WithConcurrency(n int) Option {
	return func(g *Generator) { g.jobs = n }
}

// WithDrafts includes pages whose front matter sets draft.
func WithDrafts(include bool) Option {
	return func(g *Generator) { g.drafts = include }
}

// WithRegistry replaces the registry plugins are created from.
func WithRegistry(r *plugin.Registry) Option {
	return func(g *Generator) { g.registry = r }
}

// NewGenerator returns a Generator for the project in dir.
func NewGenerator(dir string, opts ...Option) *Generator {
	g := &Generator{dir: dir}

	for _, opt := range opts {
		opt(g)
	}

	if g.jobs < 1 {
		g.jobs = runtime.NumCPU()
	}

	if g.registry == nil {
		g.registry = plugin.NewRegistry()
	}

	return g
}

// Result summarizes a completed build.
type Result struct {
	Pages     int
	Files     int
	BuildID   string
	OutputDir string
	Duration  time.Duration
}

// LogValue implements slog.LogValuer.
func (r Result) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("pages", r.Pages),
		slog.Int("files", r.Files),
		slog.String("build", r.BuildID),
		slog.String("output", r.OutputDir),
		slog.Duration("duration", r.Duration),
	)
}

// Dirs returns the contents and template directories of a build using
// template name.
func (g *Generator) Dirs(name string) (contents, template string) {
	return filepath.Join(g.dir, ContentsDir), filepath.Join(g.dir, TemplatesDir, name)
}

// Generate builds the site with the named template into the output
// directory. Cancelling ctx stops the build before its next stage.
func (g *Generator) Generate(ctx context.Context, name string) (Result, error) {
	start := time.Now()

	if name == "" {
		name = DefaultTemplate
	}

	contentsDir, templateDir := g.Dirs(name)
	outputDir := filepath.Join(g.dir, OutputDir)

	res := Result{OutputDir: outputDir}

	err := g.validate(contentsDir, templateDir, name)
	if err != nil {
		return res, err
	}

	cfg, err := site.LoadConfiguration(templateDir)
	if err != nil {
		return res, err
	}

	g.logger.InfoContext(ctx, "loaded template",
		slog.String("template", cfg.Name),
		slog.String("version", cfg.Version),
	)

	pc := plugin.NewContext(g.dir, outputDir, templateDir)
	pc.Logger = g.logger.Component("plugin")

	plugins := plugin.NewManager(pc,
		plugin.WithRegistry(g.registry),
		plugin.WithLogger(g.logger.Component("plugin")),
	)
	plugins.Load(ctx, cfg.Plugins)

	err = plugins.BeforeBuild(ctx)
	if err != nil {
		return res, err
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	pages, err := g.process(ctx, contentsDir, plugins)
	if err != nil {
		return res, err
	}

	res.Pages = len(pages)

	res.BuildID, err = site.GenerateBuildID(g.dir)
	if err != nil {
		return res, err
	}

	s := &site.Site{
		Pages:         pages,
		Configuration: cfg,
		BuildID:       res.BuildID,
		CommitHash:    site.CommitHash(ctx, g.dir),
		GeneratedDate: time.Now(),
	}

	r := render.New(templateDir, outputDir,
		render.WithEngine(lang.New(
			lang.WithLogger(g.logger.Component("lang")),
			lang.WithLocale(cfg.Locale()),
		)),
		render.WithHooks(plugins),
		render.WithLogger(g.logger.Component("render")),
		render.WithConcurrency(g.jobs),
	)

	for _, format := range cfg.Outputs {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		n, err := g.output(ctx, r, s, templateDir, format)
		if err != nil {
			return res, ErrOutput.With(slog.String("output", format)).Wrap(err)
		}

		res.Files += n
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	assets, err := content.CopyAssets(
		filepath.Join(templateDir, AssetsDir),
		filepath.Join(outputDir, AssetsDir),
	)
	if err != nil {
		return res, err
	}

	g.logger.DebugContext(ctx, "copied assets", slog.Int("files", assets))

	res.Files += assets

	err = plugins.AfterBuild(ctx)
	if err != nil {
		return res, err
	}

	res.Duration = time.Since(start)

	g.logger.InfoContext(ctx, "generated site", slog.Any("result", res))

	return res, nil
}

func (g *Generator) validate(contentsDir, templateDir, name string) error {
	if !isDir(contentsDir) {
		return ErrMissingContents.With(slog.String("path", contentsDir))
	}

	if isDir(templateDir) {
		return nil
	}

	attrs := []slog.Attr{
		slog.String("template", name),
		slog.String("path", templateDir),
	}

	if alt := g.suggestTemplate(name); alt != "" {
		attrs = append(attrs, slog.String("suggest", alt))
	}

	return ErrMissingTemplate.With(attrs...)
}

// Templates returns the names of the templates available in the project.
func (g *Generator) Templates() []string {
	entries, err := os.ReadDir(filepath.Join(g.dir, TemplatesDir))
	if err != nil {
		return nil
	}

	var names []string

	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}

	return names
}

func (g *Generator) suggestTemplate(name string) string {
	matches := fuzzy.Find(name, g.Templates())
	if len(matches) == 0 {
		return ""
	}

	return matches[0].Str
}

// process converts every markdown source below contentsDir into a page.
// Pages keep the scan order.
func (g *Generator) process(
	ctx context.Context,
	contentsDir string,
	hooks content.Transformer,
) ([]*site.Page, error) {
	files, err := content.Scan(contentsDir)
	if err != nil {
		return nil, err
	}

	g.logger.DebugContext(ctx, "found markdown sources", slog.Int("files", len(files)))

	proc := content.NewProcessor(
		content.WithLogger(g.logger.Component("content")),
		content.WithTransformer(hooks),
	)

	pages := make([]*site.Page, len(files))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.jobs)

	for i, rel := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			p, err := proc.Process(ctx, contentsDir, rel)
			if err != nil {
				return ErrProcessPage.With(slog.String("path", rel)).Wrap(err)
			}

			pages[i] = p

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if g.drafts {
		return pages, nil
	}

	published := pages[:0]

	for _, p := range pages {
		if !p.FrontMatter.Draft {
			published = append(published, p)
		}
	}

	if skipped := len(pages) - len(published); skipped > 0 {
		g.logger.InfoContext(ctx, "skipped drafts", slog.Int("pages", skipped))
	}

	return published, nil
}

// output renders one entry of the template's outputs list and returns the
// number of files written.
func (g *Generator) output(
	ctx context.Context,
	r *render.Renderer,
	s *site.Site,
	templateDir, format string,
) (int, error) {
	switch format {
	case OutputHTML:
		out, err := site.LoadOutputTemplate(templateDir, OutputHTML)
		if err != nil {
			return 0, err
		}

		return htmlOutputs(ctx, r, s, rooted(out))

	case OutputAPI:
		out, err := r.LoadOutput(OutputAPI, render.DefaultAPIOutput)
		if err != nil {
			return 0, err
		}

		return r.JSON(ctx, s, rooted(out))

	case OutputNotFound, outputNotFound:
		out, err := r.LoadOutput(OutputNotFound, render.DefaultNotFoundOutput)
		if err != nil {
			return 0, err
		}

		return 1, r.NotFound(ctx, s, rooted(out))

	default:
		g.logger.WarnContext(ctx, "unknown output format", slog.String("output", format))

		return 0, nil
	}
}

func htmlOutputs(
	ctx context.Context,
	r *render.Renderer,
	s *site.Site,
	out site.OutputTemplate,
) (int, error) {
	total := 0

	for _, step := range []func(context.Context, *site.Site, site.OutputTemplate) (int, error){
		r.HTML, r.Index, r.Taxonomy,
	} {
		n, err := step(ctx, s, out)
		total += n

		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// rooted makes out's output path relative to the output directory. A
// leading "output" element, as written by templates that address the
// project directory, is dropped.
func rooted(out site.OutputTemplate) site.OutputTemplate {
	p := path.Clean("/" + strings.TrimSpace(out.OutputPath))
	p = strings.TrimPrefix(p, "/")

	if p == OutputDir {
		p = ""
	} else {
		p = strings.TrimPrefix(p, OutputDir+"/")
	}

	out.OutputPath = p

	return out
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}
