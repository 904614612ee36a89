package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// directives are the block names that may follow "{{#" or "{{/".
var directives = []string{"each", "if"}

// completion is the state of the candidate bar for the word under the
// cursor. sel is the highlighted candidate while cycling with Tab, or -1.
type completion struct {
	matches    fuzzy.Matches
	start, end int // byte bounds of the word
	sel        int
	saved      string // input before cycling began
	savedAt    int
}

func (c completion) cycling() bool { return c.sel >= 0 }

// delimits reports whether r ends a completable word. Hyphens and
// underscores belong to variable names.
func delimits(r rune) bool {
	return strings.ContainsRune(". \t|{}#/=", r)
}

// wordAt returns the word around byte offset cursor and its bounds.
func wordAt(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))
	start, end = cursor, cursor

	for start > 0 {
		r, n := utf8.DecodeLastRuneInString(input[:start])
		if delimits(r) {
			break
		}

		start -= n
	}

	for end < len(input) {
		r, n := utf8.DecodeRuneInString(input[end:])
		if delimits(r) {
			break
		}

		end += n
	}

	return input[start:end], start, end
}

// keyPathBefore returns the dotted key path that the word at start extends,
// so "{{#each site.pa" with the word at 13 gives "site". A word not preceded
// by a dot gives "".
func keyPathBefore(input string, start int) string {
	head, ok := strings.CutSuffix(input[:start], ".")
	if !ok {
		return ""
	}

	head = strings.TrimRight(head, ".")

	i := strings.LastIndexFunc(head, func(r rune) bool {
		return r != '.' && delimits(r)
	})

	return head[i+1:]
}

// slot is the grammatical position of the word being completed.
type slot int

const (
	slotKeyPath slot = iota
	slotFilter
	slotDirective
)

// slotAt reports what may be typed at start: a filter name after "|", a
// block name after "{{#" or "{{/", and a key path otherwise.
func slotAt(input string, start int) slot {
	head := strings.TrimRight(input[:start], " \t")

	if strings.HasSuffix(head, "|") {
		return slotFilter
	}

	if strings.HasSuffix(head, "{{#") || strings.HasSuffix(head, "{{/") {
		return slotDirective
	}

	return slotKeyPath
}

// complete returns the candidates for the word at cursor, ranked best first.
// An empty word lists every candidate after a dot, a pipe or a block opener
// and nothing elsewhere.
func complete(s *Session, mode inputMode, input string, cursor int) completion {
	word, start, end := wordAt(input, cursor)
	c := completion{start: start, end: end, sel: -1}

	var (
		pool   []string
		browse bool
	)

	switch {
	case mode == modeCtrl:
		pool = commandNames()
	case slotAt(input, start) == slotFilter:
		pool, browse = s.Filters(), true
	case slotAt(input, start) == slotDirective:
		pool, browse = directives, true
	default:
		parent := keyPathBefore(input, start)
		pool, browse = s.Candidates(parent), parent != ""
	}

	switch {
	case len(pool) == 0:
	case word != "":
		c.matches = fuzzy.Find(word, pool)
	case browse:
		c.matches = make(fuzzy.Matches, len(pool))
		for i, p := range pool {
			c.matches[i] = fuzzy.Match{Str: p, Index: i}
		}
	}

	return c
}

// bar renders the matches on one line no wider than width, ending in "..."
// if some do not fit.
func (c completion) bar(width int) string {
	if len(c.matches) == 0 || width <= 0 {
		return ""
	}

	const gap = "  "

	more := hintStyle.Render("...")

	var (
		b    strings.Builder
		used int
	)

	for i, m := range c.matches {
		item := highlight(m, i == c.sel)

		w := lipgloss.Width(item)
		if i > 0 {
			w += len(gap)

			if used+w+lipgloss.Width(more) > width {
				b.WriteString(gap + more)

				break
			}

			b.WriteString(gap)
		}

		b.WriteString(item)

		used += w
	}

	return b.String()
}

// highlight renders m with its matched characters in bold.
func highlight(m fuzzy.Match, selected bool) string {
	style := suggestionStyle
	if selected {
		style = selectedStyle
	}

	bold := style.Bold(true)
	next := 0

	var b strings.Builder

	for i, r := range m.Str {
		if next < len(m.MatchedIndexes) && m.MatchedIndexes[next] == i {
			b.WriteString(bold.Render(string(r)))

			next++

			continue
		}

		b.WriteString(style.Render(string(r)))
	}

	return b.String()
}

// ellipsize shortens s to at most width cells, marking the cut with "...".
// Line breaks are shown as "⏎".
func ellipsize(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", "⏎")

	if width <= 3 || lipgloss.Width(s) <= width {
		return s
	}

	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}

	return string(runes) + "..."
}
