package lang

import (
	"context"
	"strings"
	"testing"
)

// FuzzRender checks that text without an opening delimiter renders to
// itself, and that no input makes rendering panic.
func FuzzRender(f *testing.F) {
	f.Add("")
	f.Add("<html>no directives</html>")
	f.Add("closing only }} and { braces }")
	f.Add("line one\nline two\t| pipe # hash / slash")
	f.Add("unicode ✔ 日本語  ")
	f.Add("{{page.title}}")
	f.Add("{{#each site.pages}}{{this.url}}{{/each}}")
	f.Add("{{#if page.date}}{{page.date | formatDate}}")
	f.Add("{{ unterminated")

	engine := New()
	data := testContext()

	f.Fuzz(func(t *testing.T, src string) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("Render(%q) panicked: %v", src, r)
			}
		}()

		got := engine.Render(context.Background(), src, data)

		if !strings.Contains(src, delimOpen) && got != src {
			t.Errorf("Render(%q) = %q, want the input unchanged", src, got)
		}
	})
}
