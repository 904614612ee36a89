package content

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/frontmatter"
	"github.com/goccy/go-yaml"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ardnew/fddl/log"
	"github.com/ardnew/fddl/site"
)

// Front-matter delimiter.
const frontMatterDelim = "---"

// Transformer rewrites a page's source before conversion and its HTML after.
type Transformer interface {
	PreprocessMarkdown(ctx context.Context, path, markdown string) (string, error)
	PostprocessHTML(ctx context.Context, path, html string) (string, error)
}

// Processor converts markdown sources into pages. It is safe for concurrent
// use.
type Processor struct {
	md        goldmark.Markdown
	logger    log.Logger
	transform Transformer
}

// Option configures a [Processor].
type Option func(*Processor)

// WithLogger sets the logger used to report recoverable problems.
func WithLogger(logger log.Logger) Option {
	return func(p *Processor) { p.logger = logger }
}

// WithTransformer installs hooks run around markdown conversion.
func WithTransformer(t Transformer) Option {
	return func(p *Processor) { p.transform = t }
}

// NewProcessor returns a Processor rendering GitHub-flavored markdown with
// automatic heading IDs. Raw HTML in sources is passed through.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Process reads root/rel and returns the page it describes. A front-matter
// block that cannot be decoded is logged and replaced by empty front matter.
func (p *Processor) Process(ctx context.Context, root, rel string) (*site.Page, error) {
	path := filepath.Join(root, filepath.FromSlash(rel))

	info, err := os.Stat(path)
	if err != nil {
		return nil, ErrReadSource.With(slog.String("path", path)).Wrap(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrReadSource.With(slog.String("path", path)).Wrap(err)
	}

	fm, body, err := SplitFrontMatter(data)
	if err != nil {
		p.logger.WarnContext(ctx, "ignoring front matter",
			slog.String("path", rel),
			slog.Any("error", err),
		)
	}

	markdown := string(body)

	if p.transform != nil {
		markdown, err = p.transform.PreprocessMarkdown(ctx, rel, markdown)
		if err != nil {
			return nil, ErrTransform.With(slog.String("path", rel)).Wrap(err)
		}
	}

	content, err := p.Convert(markdown)
	if err != nil {
		return nil, ErrMarkdown.With(slog.String("path", rel)).Wrap(err)
	}

	if p.transform != nil {
		content, err = p.transform.PostprocessHTML(ctx, rel, content)
		if err != nil {
			return nil, ErrTransform.With(slog.String("path", rel)).Wrap(err)
		}
	}

	p.logger.TraceContext(ctx, "processed page",
		slog.String("path", rel),
		slog.Int("bytes", len(content)),
	)

	return &site.Page{
		Path:         rel,
		FrontMatter:  fm,
		Content:      content,
		RawMarkdown:  markdown,
		ModifiedDate: info.ModTime(),
	}, nil
}

// Convert renders markdown as HTML.
func (p *Processor) Convert(markdown string) (string, error) {
	var buf bytes.Buffer

	err := p.md.Convert([]byte(markdown), &buf)
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

// yamlFormat decodes "---" delimited front matter with goccy/go-yaml.
var yamlFormat = frontmatter.NewFormat(frontMatterDelim, frontMatterDelim, yaml.Unmarshal)

// skipFormat recognizes the same block but decodes nothing.
var skipFormat = frontmatter.NewFormat(frontMatterDelim, frontMatterDelim,
	func([]byte, any) error { return nil })

// SplitFrontMatter separates a leading front-matter block from the markdown
// body. Sources without a block yield empty front matter and the full source.
// If the block is malformed the body is still returned, along with an error
// wrapping [ErrFrontMatter].
func SplitFrontMatter(data []byte) (site.FrontMatter, []byte, error) {
	var fm site.FrontMatter

	body, err := frontmatter.Parse(bytes.NewReader(data), &fm, yamlFormat)
	if err == nil {
		return fm, body, nil
	}

	var discard struct{}

	body, skipErr := frontmatter.Parse(bytes.NewReader(data), &discard, skipFormat)
	if skipErr != nil {
		body = data
	}

	return site.FrontMatter{}, body, ErrFrontMatter.Wrap(err)
}
