package repl

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/ardnew/fddl/lang"
)

// Loader builds the context for the page at path with vars bound. An empty
// path selects no page.
type Loader func(
	ctx context.Context,
	path string,
	vars map[string]string,
) (*lang.Context, error)

// Session holds the page and variables templates are rendered against.
type Session struct {
	engine *lang.Engine
	load   Loader
	page   string
	vars   map[string]string
	data   *lang.Context
}

// Entry is one resolvable key path and its text.
type Entry struct {
	Path  string
	Value string
}

// NewSession returns a session for page. Call [Session.Reload] before
// rendering.
func NewSession(
	engine *lang.Engine,
	load Loader,
	page string,
	vars map[string]string,
) *Session {
	if engine == nil {
		engine = lang.New()
	}

	return &Session{
		engine: engine,
		load:   load,
		page:   page,
		vars:   maps.Clone(vars),
	}
}

// Page returns the current page file, if any.
func (s *Session) Page() string { return s.page }

// Reload rebuilds the context from the current page and variables.
func (s *Session) Reload(ctx context.Context) error {
	if s.load == nil {
		return ErrNoLoader
	}

	data, err := s.load(ctx, s.page, s.vars)
	if err != nil {
		return err
	}

	s.data = data

	return nil
}

// SetPage switches to the page at path. The previous page is kept if the new
// one cannot be loaded.
func (s *Session) SetPage(ctx context.Context, path string) error {
	prev := s.page
	s.page = path

	if err := s.Reload(ctx); err != nil {
		s.page = prev

		return err
	}

	return nil
}

// Set binds a template variable from a "key=value" assignment.
func (s *Session) Set(ctx context.Context, assign string) error {
	key, value, ok := strings.Cut(assign, "=")
	if key = strings.TrimSpace(key); !ok || key == "" {
		return ErrBadVariable.With(slog.String("input", assign))
	}

	if s.vars == nil {
		s.vars = make(map[string]string)
	}

	s.vars[key] = value

	return s.Reload(ctx)
}

// Render evaluates input against the session context. Input without any
// "{{" is taken as a single key path, so "page.title | uppercase" is
// shorthand for "{{page.title | uppercase}}".
//
// Unlike [lang.Engine.Render], a malformed template is reported as an error.
func (s *Session) Render(input string) (string, error) {
	if !strings.Contains(input, "{{") {
		input = "{{" + input + "}}"
	}

	nodes, err := lang.Parse(input)
	if err != nil {
		return "", err
	}

	return s.engine.Evaluate(nodes, s.data), nil
}

// Filters returns the filter names known to the engine.
func (s *Session) Filters() []string { return s.engine.Filters() }

// Candidates returns the key path segments that may follow parent.
func (s *Session) Candidates(parent string) []string {
	switch parent {
	case "":
		names := []string{"page", "site", "this"}

		return append(names, slices.Sorted(maps.Keys(s.vars))...)
	case "page", "this":
		return lang.PageKeys
	case "site":
		return lang.SiteKeys
	default:
		return nil
	}
}

// Entries lists every page and site property and variable with its value.
// Collections are summarized by their length.
func (s *Session) Entries() []Entry {
	var out []Entry

	add := func(path string) {
		v, ok := s.data.Resolve(path)
		if !ok {
			return
		}

		text := v.String()
		if items, ok := v.Items(); ok {
			text = fmt.Sprintf("[%d items]", len(items))
		}

		out = append(out, Entry{Path: path, Value: text})
	}

	for _, k := range lang.PageKeys {
		add("page." + k)
	}

	for _, k := range lang.SiteKeys {
		add("site." + k)
	}

	for _, k := range slices.Sorted(maps.Keys(s.vars)) {
		add(k)
	}

	return out
}
