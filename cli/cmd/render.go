package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/ardnew/fddl/content"
	"github.com/ardnew/fddl/lang"
	"github.com/ardnew/fddl/log"
	"github.com/ardnew/fddl/site"
)

// contextIndent is the indentation of a printed context.
const contextIndent = 2

// Render evaluates template source against a single page.
type Render struct {
	Source  []string          `help:"Template source file(s) or '-' for stdin" short:"s" default:"-"`
	Page    string            `help:"Markdown page bound to the page namespace" type:"existingfile"`
	Var     map[string]string `help:"Template variable as key=value"`
	Locale  string            `help:"Locale for dates and case filters"`
	Context bool              `help:"Print the resolved context instead of rendering"`
	JSON    bool              `help:"Print the context as JSON rather than YAML"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) error {
	pc := pageContext{locale: r.Locale}

	data, err := pc.load(ctx, r.Page, r.Var)
	if err != nil {
		return err
	}

	w := stdout(ctx)

	if r.Context {
		enc := lang.EncodingYAML
		if r.JSON {
			enc = lang.EncodingJSON
		}

		return data.Encode(ctx, w, enc, contextIndent)
	}

	src := buildSourceFiles(r.Source)
	if src == nil {
		return ErrNoSource.With(slog.Any("source", r.Source))
	}

	text, err := src.ReadAll()
	if err != nil {
		return ErrReadSource.Wrap(err)
	}

	_, err = fmt.Fprint(w, pc.engine().Render(ctx, string(text), data))

	return err
}

// pageContext builds template contexts for single pages outside a project
// build. The site holds only that page.
type pageContext struct {
	locale string
}

func (pc pageContext) configuration() site.TemplateConfiguration {
	cfg := site.DefaultConfiguration()
	cfg.LocaleName = pc.locale

	return cfg
}

func (pc pageContext) engine() *lang.Engine {
	cfg := pc.configuration()

	return lang.New(
		lang.WithLogger(log.Default()),
		lang.WithLocale(cfg.Locale()),
	)
}

// load reads the markdown page at path, or uses an empty page at index.md if
// path is empty, and projects it with vars into a context.
func (pc pageContext) load(
	ctx context.Context,
	path string,
	vars map[string]string,
) (*lang.Context, error) {
	p := &site.Page{Path: "index.md", ModifiedDate: time.Now()}

	if path != "" {
		proc := content.NewProcessor(content.WithLogger(log.Default()))

		var err error

		p, err = proc.Process(ctx, filepath.Dir(path), filepath.Base(path))
		if err != nil {
			return nil, err
		}
	}

	s := &site.Site{
		Pages:         []*site.Page{p},
		Configuration: pc.configuration(),
		GeneratedDate: time.Now(),
	}

	return lang.BuildContext(s, p, vars), nil
}
