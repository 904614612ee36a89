package site

import (
	"errors"
	"testing"
	"time"
)

func TestSelector(t *testing.T) {
	pages := []*Page{
		{Path: "a.md", FrontMatter: FrontMatter{Tags: []string{"go"}}},
		{Path: "blog/b.md", FrontMatter: FrontMatter{Draft: true, Tags: []string{"go"}}},
		{Path: "blog/c.md", FrontMatter: FrontMatter{Date: NewDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))}},
		{Path: "blog/d.md", FrontMatter: FrontMatter{Layout: "post"}},
	}

	tests := []struct {
		where string
		want  []string
	}{
		{"", []string{"a.md", "blog/b.md", "blog/c.md", "blog/d.md"}},
		{"not draft", []string{"a.md", "blog/c.md", "blog/d.md"}},
		{`"go" in tags`, []string{"a.md", "blog/b.md"}},
		{`dir == "blog/" && !draft`, []string{"blog/c.md", "blog/d.md"}},
		{`hasDate && date.Year() >= 2024`, []string{"blog/c.md"}},
		{`layout == "post"`, []string{"blog/d.md"}},
		{`url startsWith "/blog/"`, []string{"blog/b.md", "blog/c.md", "blog/d.md"}},
	}

	for _, tt := range tests {
		t.Run(tt.where, func(t *testing.T) {
			o := OutputTemplate{Where: tt.where}

			sel, err := o.Selector()
			if err != nil {
				t.Fatalf("Selector error: %v", err)
			}

			got, err := sel.Filter(pages)
			if err != nil {
				t.Fatalf("Filter error: %v", err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("Filter selected %d pages, want %d", len(got), len(tt.want))
			}

			for i, p := range got {
				if p.Path != tt.want[i] {
					t.Errorf("page %d = %q, want %q", i, p.Path, tt.want[i])
				}
			}
		})
	}
}

func TestSelector_Errors(t *testing.T) {
	for _, src := range []string{"title +", "title", "unknown == 1"} {
		if _, err := NewSelector(src); !errors.Is(err, ErrSelectorCompile) {
			t.Errorf("NewSelector(%q) error = %v", src, err)
		}
	}
}
