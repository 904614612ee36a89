package site

import (
	"path"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Markdown source extensions recognized by the content scanner.
var MarkdownExtensions = []string{".md", ".markdown"}

// Page is a single markdown source and its rendered content.
type Page struct {
	// Path is relative to the contents directory and always uses "/".
	Path        string      `json:"path"`
	FrontMatter FrontMatter `json:"frontMatter"`
	// Content is the rendered HTML.
	Content      string    `json:"content"`
	RawMarkdown  string    `json:"rawMarkdown"`
	ModifiedDate time.Time `json:"modifiedDate"`
}

// FrontMatter is the metadata block at the head of a markdown source.
type FrontMatter struct {
	Title       string   `json:"title,omitempty"       yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Date        *Date    `json:"date,omitempty"        yaml:"date"`
	Tags        []string `json:"tags,omitempty"        yaml:"tags"`
	Layout      string   `json:"layout,omitempty"      yaml:"layout"`
	Draft       bool     `json:"draft,omitempty"       yaml:"draft"`
}

// Date is a front-matter date accepting the forms listed by [ParseDate].
type Date struct {
	time.Time
}

// NewDate returns a *Date holding t.
func NewDate(t time.Time) *Date { return &Date{Time: t} }

// UnmarshalYAML implements yaml.BytesUnmarshaler.
func (d *Date) UnmarshalYAML(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"'`)

	t, err := ParseDate(s)
	if err != nil {
		return err
	}

	d.Time = t

	return nil
}

// HasDate reports whether the front matter declares a date.
func (f FrontMatter) HasDate() bool { return f.Date != nil && !f.Date.IsZero() }

// DateOrZero returns the declared date, or the zero time.
func (f FrontMatter) DateOrZero() time.Time {
	if f.Date == nil {
		return time.Time{}
	}

	return f.Date.Time
}

// HasTag reports whether tag is among the page's tags.
func (f FrontMatter) HasTag(tag string) bool {
	return slices.Contains(f.Tags, tag)
}

// OutputPath returns the page path with its markdown extension replaced by
// ext, e.g. "blog/post.md" → "blog/post.html".
func (p *Page) OutputPath(ext string) string {
	return TrimMarkdownExt(p.Path) + ext
}

// URLPath returns the path of the generated HTML file.
func (p *Page) URLPath() string { return p.OutputPath(".html") }

// DisplayTitle returns the front-matter title, or a title derived from the
// file name.
func (p *Page) DisplayTitle() string {
	if p.FrontMatter.Title != "" {
		return p.FrontMatter.Title
	}

	return TitleFromName(TrimMarkdownExt(path.Base(p.Path)))
}

// TrimMarkdownExt removes a trailing markdown extension from name.
func TrimMarkdownExt(name string) string {
	for _, ext := range MarkdownExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}

	return name
}

// IsMarkdown reports whether name has a markdown extension (any case).
func IsMarkdown(name string) bool {
	return slices.Contains(MarkdownExtensions, strings.ToLower(path.Ext(name)))
}

// TitleFromName converts a file or directory name into a display title:
// "blog-posts" → "Blog Posts".
func TitleFromName(name string) string {
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)

	return cases.Title(language.English).String(name)
}
