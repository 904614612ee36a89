package site

import (
	"cmp"
	"maps"
	"slices"
	"strings"
)

// SortOrder selects the ordering applied by [Sorted].
type SortOrder int

const (
	DateDescending SortOrder = iota
	DateAscending
	TitleAscending
	TitleDescending
)

// DefaultRecentLimit is the number of pages returned by [RecentPages] when
// the limit is not positive.
const DefaultRecentLimit = 5

// PagesWithTag returns the pages tagged with tag, in order.
func PagesWithTag(pages []*Page, tag string) []*Page {
	var out []*Page

	for _, p := range pages {
		if p.FrontMatter.HasTag(tag) {
			out = append(out, p)
		}
	}

	return out
}

// PagesInDirectory returns the pages below dir, in order. A trailing "/" is
// added to dir if missing.
func PagesInDirectory(pages []*Page, dir string) []*Page {
	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}

	var out []*Page

	for _, p := range pages {
		if strings.HasPrefix(p.Path, dir) {
			out = append(out, p)
		}
	}

	return out
}

// RecentPages returns up to limit dated pages, newest first.
func RecentPages(pages []*Page, limit int) []*Page {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	var dated []*Page

	for _, p := range pages {
		if p.FrontMatter.HasDate() {
			dated = append(dated, p)
		}
	}

	dated = Sorted(dated, DateDescending)

	return dated[:min(limit, len(dated))]
}

// Sorted returns a sorted copy of pages. Undated pages sort as the earliest
// possible date. The sort is stable.
func Sorted(pages []*Page, order SortOrder) []*Page {
	out := slices.Clone(pages)

	slices.SortStableFunc(out, func(a, b *Page) int {
		switch order {
		case DateAscending:
			return a.FrontMatter.DateOrZero().Compare(b.FrontMatter.DateOrZero())
		case TitleAscending:
			return cmp.Compare(a.DisplayTitle(), b.DisplayTitle())
		case TitleDescending:
			return cmp.Compare(b.DisplayTitle(), a.DisplayTitle())
		default:
			return b.FrontMatter.DateOrZero().Compare(a.FrontMatter.DateOrZero())
		}
	})

	return out
}

// AllTags returns every distinct tag, sorted.
func AllTags(pages []*Page) []string {
	set := make(map[string]struct{})

	for _, p := range pages {
		for _, t := range p.FrontMatter.Tags {
			set[t] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(set))
}

// TagCount is the number of pages carrying a tag.
type TagCount struct {
	Tag   string
	Count int
}

// TagCounts returns the page count of every tag, sorted by tag.
func TagCounts(pages []*Page) []TagCount {
	counts := make(map[string]int)

	for _, p := range pages {
		for _, t := range p.FrontMatter.Tags {
			counts[t]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for _, tag := range slices.Sorted(maps.Keys(counts)) {
		out = append(out, TagCount{Tag: tag, Count: counts[tag]})
	}

	return out
}

// PagesByYear groups dated pages by the year of their date.
func PagesByYear(pages []*Page) map[int][]*Page {
	out := make(map[int][]*Page)

	for _, p := range pages {
		if !p.FrontMatter.HasDate() {
			continue
		}

		year := p.FrontMatter.Date.Year()
		out[year] = append(out[year], p)
	}

	return out
}

// Directories returns every distinct directory containing a page, each with a
// trailing "/", sorted. Pages at the root contribute nothing.
func Directories(pages []*Page) []string {
	set := make(map[string]struct{})

	for _, p := range pages {
		i := strings.LastIndexByte(p.Path, '/')
		if i <= 0 {
			continue
		}

		set[p.Path[:i+1]] = struct{}{}
	}

	return slices.Sorted(maps.Keys(set))
}
