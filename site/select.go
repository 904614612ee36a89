package site

import (
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Selector chooses the pages an output renders. It is compiled once from an
// output's where expression and is safe for concurrent use.
//
// The expression sees the page fields title, path, url, description, date
// (time, zero if absent), hasDate, tags, layout, draft and dir, for example:
//
//	where: 'not draft && "go" in tags'
//	where: 'hasDate && date.Year() >= 2024'
type Selector struct {
	source  string
	program *vm.Program
}

// Selector compiles the output's where expression. An empty expression
// yields a nil *Selector, which selects every page.
func (o *OutputTemplate) Selector() (*Selector, error) {
	return NewSelector(o.Where)
}

// NewSelector compiles source. An empty source yields a nil *Selector.
func NewSelector(source string) (*Selector, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, nil //nolint:nilnil
	}

	program, err := expr.Compile(source, expr.Env(selectorEnv(&Page{})), expr.AsBool())
	if err != nil {
		return nil, ErrSelectorCompile.Wrap(err).
			With(slog.String("source", source))
	}

	return &Selector{source: source, program: program}, nil
}

// Match reports whether p is selected. A nil Selector matches every page.
func (s *Selector) Match(p *Page) (bool, error) {
	if s == nil {
		return true, nil
	}

	result, err := vm.Run(s.program, selectorEnv(p))
	if err != nil {
		return false, ErrSelectorEvaluate.Wrap(err).
			With(slog.String("source", s.source), slog.String("page", p.Path))
	}

	ok, _ := result.(bool)

	return ok, nil
}

// Filter returns the pages matched by s, in order.
func (s *Selector) Filter(pages []*Page) ([]*Page, error) {
	if s == nil {
		return pages, nil
	}

	out := make([]*Page, 0, len(pages))

	for _, p := range pages {
		ok, err := s.Match(p)
		if err != nil {
			return nil, err
		}

		if ok {
			out = append(out, p)
		}
	}

	return out, nil
}

func selectorEnv(p *Page) map[string]any {
	tags := p.FrontMatter.Tags
	if tags == nil {
		tags = []string{}
	}

	dir := ""
	if i := strings.LastIndexByte(p.Path, '/'); i >= 0 {
		dir = p.Path[:i+1]
	}

	return map[string]any{
		"title":       p.DisplayTitle(),
		"path":        p.Path,
		"url":         "/" + p.URLPath(),
		"description": p.FrontMatter.Description,
		"date":        p.FrontMatter.DateOrZero(),
		"hasDate":     p.FrontMatter.HasDate(),
		"tags":        tags,
		"layout":      p.FrontMatter.Layout,
		"draft":       p.FrontMatter.Draft,
		"dir":         dir,
	}
}
