package render

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ardnew/fddl/site"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	return string(data)
}

func testTemplate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "views/page.html"),
		`<html lang="{{language}}" charset="{{charset}}"><h1>{{page.title}}</h1>{{page.content}}</html>`)
	writeFile(t, filepath.Join(dir, "views/post.html"),
		`<article>{{page.title}} {{page.date}}</article>`)
	writeFile(t, filepath.Join(dir, "views/index.html"),
		`{{page.title}}|{{page.description}}|{{tag}}/{{pageCount}}/{{totalTags}}/{{tag_go_count}}|`+
			`{{#each site.postsInDirectory}}{{this.title}};{{/each}}`)
	writeFile(t, filepath.Join(dir, "views/404.html"),
		`<html><head></head><h1>{{page.title}}</h1></html>`)

	return dir
}

func testSite() *site.Site {
	day := func(s string) *site.Date {
		t, _ := time.Parse(time.DateOnly, s)

		return site.NewDate(t)
	}

	return &site.Site{
		Pages: []*site.Page{
			{Path: "index.md", Content: "<p>home</p>"},
			{
				Path:        "blog/first-post.md",
				FrontMatter: site.FrontMatter{Layout: "post", Date: day("2024-03-05"), Tags: []string{"go"}},
			},
			{
				Path:        "blog/second.md",
				FrontMatter: site.FrontMatter{Title: "Second", Tags: []string{"go", "web"}},
				Content:     "<p>two</p>",
			},
			{Path: "docs/index.md", FrontMatter: site.FrontMatter{Title: "Docs"}},
			{Path: "docs/setup.md", FrontMatter: site.FrontMatter{Draft: true, Tags: []string{"draft"}}},
		},
		Configuration: site.TemplateConfiguration{Name: "Test"},
		BuildID:       "b-1",
		GeneratedDate: time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC),
	}
}

func htmlOutput() site.OutputTemplate {
	return site.OutputTemplate{
		Format:    "html",
		Extension: ".html",
		View:      "views/page.html",
		IndexView: "views/index.html",
		Layouts:   map[string]string{"post": "views/post.html"},
		Variables: map[string]string{"language": "fr"},
		Where:     "not draft",
	}
}

type recorder struct {
	mu     sync.Mutex
	before []string
	after  []string
}

func (h *recorder) BeforePageRender(_ context.Context, p *site.Page) (*site.Page, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.before = append(h.before, p.Path)

	return p, nil
}

func (h *recorder) AfterPageRender(_ context.Context, p *site.Page, html string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.after = append(h.after, p.Path)

	return html + "<!-- " + p.Path + " -->", nil
}

type failHooks struct{ recorder }

var errHook = errors.New("hook failed")

func (*failHooks) AfterPageRender(context.Context, *site.Page, string) (string, error) {
	return "", errHook
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)

	path, err := w.WriteString("a/b/c.html", "x")
	if err != nil {
		t.Fatalf("WriteString error: %v", err)
	}

	if want := filepath.Join(root, "a", "b", "c.html"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	if got := readFile(t, path); got != "x" {
		t.Errorf("content = %q", got)
	}

	for _, name := range []string{"../escape.html", "a/../../escape.html", "/abs.html", ""} {
		if _, err := w.WriteString(name, "x"); !errors.Is(err, ErrOutsideOutput) {
			t.Errorf("WriteString(%q) error = %v, want ErrOutsideOutput", name, err)
		}
	}
}

func TestRenderer_HTML(t *testing.T) {
	out := t.TempDir()
	hooks := &recorder{}
	r := New(testTemplate(t), out, WithHooks(hooks), WithConcurrency(2))

	n, err := r.HTML(context.Background(), testSite(), htmlOutput())
	if err != nil {
		t.Fatalf("HTML error: %v", err)
	}

	if n != 4 {
		t.Errorf("rendered %d pages, want 4", n)
	}

	tests := []struct {
		file string
		want string
	}{
		{
			"index.html",
			`<html lang="fr" charset="utf-8"><h1>Index</h1><p>home</p></html><!-- index.md -->`,
		},
		{
			"blog/first-post.html",
			`<article>First Post Mar 5, 2024</article><!-- blog/first-post.md -->`,
		},
		{
			"blog/second.html",
			`<html lang="fr" charset="utf-8"><h1>Second</h1><p>two</p></html><!-- blog/second.md -->`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			if got := readFile(t, filepath.Join(out, tt.file)); got != tt.want {
				t.Errorf("got %q\nwant %q", got, tt.want)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(out, "docs/setup.html")); !os.IsNotExist(err) {
		t.Error("draft page was rendered")
	}

	slices.Sort(hooks.before)
	slices.Sort(hooks.after)

	want := []string{"blog/first-post.md", "blog/second.md", "docs/index.md", "index.md"}
	if !slices.Equal(hooks.before, want) || !slices.Equal(hooks.after, want) {
		t.Errorf("hooks saw before=%v after=%v", hooks.before, hooks.after)
	}
}

func TestRenderer_HTMLOutputPath(t *testing.T) {
	out := t.TempDir()
	r := New(testTemplate(t), out)

	o := htmlOutput()
	o.OutputPath = "public"
	o.Extension = ".htm"
	o.Where = `path == "index.md"`

	if _, err := r.HTML(context.Background(), testSite(), o); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(out, "public", "index.htm")); err != nil {
		t.Errorf("expected public/index.htm: %v", err)
	}
}

func TestRenderer_HTMLErrors(t *testing.T) {
	t.Run("missing view", func(t *testing.T) {
		o := htmlOutput()
		o.View = "views/nope.html"

		_, err := New(testTemplate(t), t.TempDir()).HTML(context.Background(), testSite(), o)
		if !errors.Is(err, site.ErrViewNotFound) {
			t.Errorf("error = %v, want ErrViewNotFound", err)
		}
	})

	t.Run("hook failure", func(t *testing.T) {
		r := New(testTemplate(t), t.TempDir(), WithHooks(&failHooks{}))

		_, err := r.HTML(context.Background(), testSite(), htmlOutput())
		if !errors.Is(err, ErrRenderPage) || !errors.Is(err, errHook) {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("bad where", func(t *testing.T) {
		o := htmlOutput()
		o.Where = "title +"

		_, err := New(testTemplate(t), t.TempDir()).HTML(context.Background(), testSite(), o)
		if !errors.Is(err, site.ErrSelectorCompile) {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := New(testTemplate(t), t.TempDir()).HTML(ctx, testSite(), htmlOutput())
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v", err)
		}
	})
}

func TestRenderer_Index(t *testing.T) {
	out := t.TempDir()
	r := New(testTemplate(t), out)

	n, err := r.Index(context.Background(), testSite(), htmlOutput())
	if err != nil {
		t.Fatalf("Index error: %v", err)
	}

	if n != 1 {
		t.Errorf("rendered %d indexes, want 1", n)
	}

	want := "Blog|Index of blog/|///|First Post;Second;"
	if got := readFile(t, filepath.Join(out, "blog/index.html")); got != want {
		t.Errorf("blog index = %q, want %q", got, want)
	}

	if _, err := os.Stat(filepath.Join(out, "docs/index.html")); !os.IsNotExist(err) {
		t.Error("generated index replaced authored docs/index.md")
	}
}

func TestIndexPage(t *testing.T) {
	tests := []struct {
		dir, path, title string
	}{
		{"blog/", "blog/index.md", "Blog"},
		{"notes/daily_log/", "notes/daily_log/index.md", "Daily Log"},
		{"/", "index.md", "Index"},
	}

	for _, tt := range tests {
		p := indexPage(tt.dir)
		if p.Path != tt.path || p.FrontMatter.Title != tt.title {
			t.Errorf("indexPage(%q) = %q %q", tt.dir, p.Path, p.FrontMatter.Title)
		}
	}
}

func TestRenderer_Taxonomy(t *testing.T) {
	out := t.TempDir()
	r := New(testTemplate(t), out)

	n, err := r.Taxonomy(context.Background(), testSite(), htmlOutput())
	if err != nil {
		t.Fatalf("Taxonomy error: %v", err)
	}

	if n != 3 {
		t.Errorf("rendered %d pages, want 3", n)
	}

	tests := []struct {
		file, want string
	}{
		{"tags/go.html", "Tag: go|All posts tagged with 'go'|go/2//|"},
		{"tags/web.html", "Tag: web|All posts tagged with 'web'|web/1//|"},
		{"tags/index.html", "All Tags|Browse content by tag|//2/2|"},
	}

	for _, tt := range tests {
		if got := readFile(t, filepath.Join(out, tt.file)); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.file, got, tt.want)
		}
	}

	if _, err := os.Stat(filepath.Join(out, "tags/draft.html")); !os.IsNotExist(err) {
		t.Error("tag of unselected page was rendered")
	}
}

func TestRenderer_JSON(t *testing.T) {
	out := t.TempDir()
	r := New(testTemplate(t), out)

	n, err := r.JSON(context.Background(), testSite(), DefaultAPIOutput)
	if err != nil {
		t.Fatalf("JSON error: %v", err)
	}

	if n != 6 {
		t.Errorf("wrote %d files, want 6", n)
	}

	var got struct {
		Pages         []site.Page `json:"pages"`
		BuildID       string      `json:"buildID"`
		GeneratedDate string      `json:"generatedDate"`
	}

	if err := json.Unmarshal([]byte(readFile(t, filepath.Join(out, "api/site.json"))), &got); err != nil {
		t.Fatalf("decode site.json: %v", err)
	}

	if len(got.Pages) != 5 || got.BuildID != "b-1" || got.GeneratedDate != "2024-03-06T09:00:00Z" {
		t.Errorf("site.json = %+v", got)
	}

	page := readFile(t, filepath.Join(out, "api/pages/blog/second.json"))
	if !strings.Contains(page, `"path": "blog/second.md"`) {
		t.Errorf("page json = %s", page)
	}
}

func TestRenderer_NotFound(t *testing.T) {
	out := t.TempDir()
	r := New(testTemplate(t), out, WithHooks(&recorder{}))

	if err := r.NotFound(context.Background(), testSite(), DefaultNotFoundOutput); err != nil {
		t.Fatalf("NotFound error: %v", err)
	}

	want := "<html><head></head><h1>Page Not Found</h1></html><!-- 404.md -->"
	if got := readFile(t, filepath.Join(out, "404.html")); got != want {
		t.Errorf("404.html = %q, want %q", got, want)
	}
}

func TestRenderer_LoadOutput(t *testing.T) {
	dir := testTemplate(t)
	writeFile(t, filepath.Join(dir, "api.yml"), "outputPath: data\n")

	r := New(dir, t.TempDir())

	api, err := r.LoadOutput("api", DefaultAPIOutput)
	if err != nil || api.OutputPath != "data" || api.Format != "api" {
		t.Errorf("LoadOutput(api) = %+v, %v", api, err)
	}

	nf, err := r.LoadOutput("404", DefaultNotFoundOutput)
	if err != nil || nf.View != DefaultNotFoundOutput.View {
		t.Errorf("LoadOutput(404) = %+v, %v", nf, err)
	}

	writeFile(t, filepath.Join(dir, "bad.yml"), "view: [\n")

	if _, err := r.LoadOutput("bad", DefaultAPIOutput); !errors.Is(err, site.ErrDecodeConfiguration) {
		t.Errorf("LoadOutput(bad) error = %v", err)
	}
}
