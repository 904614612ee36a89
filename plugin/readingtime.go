package plugin

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ardnew/fddl/site"
)

const defaultWordsPerMinute = 200

// ReadingTimeKey returns the shared data key holding the reading time, in
// minutes, of the page at path.
func ReadingTimeKey(path string) string { return "reading_time_" + path }

// ReadingTime estimates how long each page takes to read and inserts the
// estimate after the page's first h1 element.
//
// Options:
//
//	words_per_minute  reading speed (default 200)
type ReadingTime struct {
	info

	wpm int
}

// NewReadingTime returns the reading time plugin.
func NewReadingTime(cfg site.PluginConfig) Plugin {
	wpm, err := strconv.Atoi(cfg.Option("words_per_minute", ""))
	if err != nil || wpm <= 0 {
		wpm = defaultWordsPerMinute
	}

	return &ReadingTime{
		info: info{ReadingTimeID, "Reading Time Calculator", "1.0.0"},
		wpm:  wpm,
	}
}

// Minutes returns the reading time of markdown, at least one minute.
func (r *ReadingTime) Minutes(markdown string) int {
	return max(1, len(strings.Fields(markdown))/r.wpm)
}

func (r *ReadingTime) BeforePageRender(
	_ context.Context, pc *Context, p *site.Page,
) (*site.Page, error) {
	pc.Set(ReadingTimeKey(p.Path), r.Minutes(p.RawMarkdown))

	return p, nil
}

func (r *ReadingTime) AfterPageRender(
	_ context.Context, pc *Context, p *site.Page, doc string,
) (string, error) {
	v, ok := pc.Get(ReadingTimeKey(p.Path))
	if !ok {
		return doc, nil
	}

	minutes, ok := v.(int)
	if !ok {
		return doc, nil
	}

	const closeH1 = "</h1>"

	i := indexFold(doc, closeH1)
	if i < 0 {
		return doc, nil
	}

	i += len(closeH1)

	return doc[:i] +
		fmt.Sprintf(`<span class="reading-time">%d min read</span>`, minutes) +
		doc[i:], nil
}
