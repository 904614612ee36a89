package site

import (
	"reflect"
	"testing"
	"time"
)

func helperPages() []*Page {
	date := func(y int, m time.Month, d int) *Date {
		return NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	}

	return []*Page{
		{Path: "index.md", FrontMatter: FrontMatter{Title: "Home"}},
		{Path: "blog/a.md", FrontMatter: FrontMatter{Title: "Bravo", Date: date(2023, 5, 1), Tags: []string{"go", "cli"}}},
		{Path: "blog/b.md", FrontMatter: FrontMatter{Title: "Alpha", Date: date(2024, 2, 1), Tags: []string{"go"}}},
		{Path: "blog/deep/c.md", FrontMatter: FrontMatter{Title: "Charlie", Date: date(2024, 9, 9)}},
		{Path: "blogroll/d.md", FrontMatter: FrontMatter{Title: "Delta", Tags: []string{"links"}}},
	}
}

func paths(pages []*Page) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.Path
	}

	return out
}

func TestPagesWithTag(t *testing.T) {
	got := paths(PagesWithTag(helperPages(), "go"))
	if want := []string{"blog/a.md", "blog/b.md"}; !reflect.DeepEqual(got, want) {
		t.Errorf("PagesWithTag = %v, want %v", got, want)
	}
}

func TestPagesInDirectory(t *testing.T) {
	for _, dir := range []string{"blog", "blog/"} {
		got := paths(PagesInDirectory(helperPages(), dir))

		want := []string{"blog/a.md", "blog/b.md", "blog/deep/c.md"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("PagesInDirectory(%q) = %v, want %v", dir, got, want)
		}
	}
}

func TestRecentPages(t *testing.T) {
	pages := helperPages()

	got := paths(RecentPages(pages, 2))
	if want := []string{"blog/deep/c.md", "blog/b.md"}; !reflect.DeepEqual(got, want) {
		t.Errorf("RecentPages(2) = %v, want %v", got, want)
	}

	if got := RecentPages(pages, 0); len(got) != 3 {
		t.Errorf("RecentPages(0) returned %d pages", len(got))
	}
}

func TestSorted(t *testing.T) {
	tests := []struct {
		order SortOrder
		want  []string
	}{
		{DateDescending, []string{"blog/deep/c.md", "blog/b.md", "blog/a.md", "index.md", "blogroll/d.md"}},
		{DateAscending, []string{"index.md", "blogroll/d.md", "blog/a.md", "blog/b.md", "blog/deep/c.md"}},
		{TitleAscending, []string{"blog/b.md", "blog/a.md", "blog/deep/c.md", "blogroll/d.md", "index.md"}},
		{TitleDescending, []string{"index.md", "blogroll/d.md", "blog/deep/c.md", "blog/a.md", "blog/b.md"}},
	}

	for _, tt := range tests {
		pages := helperPages()
		before := paths(pages)

		got := paths(Sorted(pages, tt.order))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Sorted(%d) = %v, want %v", tt.order, got, tt.want)
		}

		if !reflect.DeepEqual(paths(pages), before) {
			t.Errorf("Sorted(%d) modified its input", tt.order)
		}
	}
}

func TestTags(t *testing.T) {
	pages := helperPages()

	if got, want := AllTags(pages), []string{"cli", "go", "links"}; !reflect.DeepEqual(got, want) {
		t.Errorf("AllTags = %v, want %v", got, want)
	}

	want := []TagCount{{"cli", 1}, {"go", 2}, {"links", 1}}
	if got := TagCounts(pages); !reflect.DeepEqual(got, want) {
		t.Errorf("TagCounts = %v, want %v", got, want)
	}
}

func TestPagesByYear(t *testing.T) {
	got := PagesByYear(helperPages())

	if len(got) != 2 || len(got[2023]) != 1 || len(got[2024]) != 2 {
		t.Errorf("PagesByYear = %v", got)
	}
}

func TestDirectories(t *testing.T) {
	got := Directories(helperPages())
	if want := []string{"blog/", "blog/deep/", "blogroll/"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Directories = %v, want %v", got, want)
	}
}
