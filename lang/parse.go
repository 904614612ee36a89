package lang

import (
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/fddl/pkg"
)

// Directive syntax.
const (
	delimOpen     = "{{"
	delimClose    = "}}"
	directiveEach = "#each "
	directiveIf   = "#if "
	closeEach     = "/each"
	closeIf       = "/if"
	closePrefix   = "/"
	filterSep     = "|"
)

// ParseReader parses a template read from r.
func ParseReader(r io.Reader) ([]Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadTemplate.Wrap(err)
	}

	return Parse(string(data))
}

// Parse parses template source into an ordered sequence of nodes.
//
// Block directives are matched to their closing tag by nesting depth, counted
// independently for each directive type. The returned error, if any, is a
// *[ParseError].
func Parse(source string) ([]Node, error) {
	p := &parser{input: source}

	return p.parseRange(0, len(source))
}

// parser holds the parser state.
type parser struct {
	input string
}

// tag is a single delimited directive.
type tag struct {
	start   int    // offset of the opening delimiter
	end     int    // offset just past the closing delimiter
	content string // trimmed text between the delimiters
}

// next returns the first tag starting at or after pos that closes before
// limit. The second result is false if no opening delimiter remains.
func (p *parser) next(pos, limit int) (tag, bool, error) {
	i := strings.Index(p.input[pos:limit], delimOpen)
	if i < 0 {
		return tag{}, false, nil
	}

	start := pos + i
	inner := start + len(delimOpen)

	j := strings.Index(p.input[inner:limit], delimClose)
	if j < 0 {
		return tag{}, false, p.errorAt(ErrUnmatchedDelimiter, start, "")
	}

	return tag{
		start:   start,
		end:     inner + j + len(delimClose),
		content: trimBlank(p.input[inner : inner+j]),
	}, true, nil
}

// parseRange parses input[pos:limit] as a sequence of nodes.
func (p *parser) parseRange(pos, limit int) ([]Node, error) {
	var nodes []Node

	for pos < limit {
		t, ok, err := p.next(pos, limit)
		if err != nil {
			return nil, err
		}

		if !ok {
			nodes = appendText(nodes, p.input[pos:limit])

			break
		}

		nodes = appendText(nodes, p.input[pos:t.start])
		pos = t.end

		switch {
		case strings.HasPrefix(t.content, directiveEach):
			body, end, err := p.parseBlock(t, directiveEach, closeEach, limit)
			if err != nil {
				return nil, err
			}

			nodes = append(nodes, Each{Path: blockPath(t, directiveEach), Body: body})
			pos = end

		case strings.HasPrefix(t.content, directiveIf):
			body, end, err := p.parseBlock(t, directiveIf, closeIf, limit)
			if err != nil {
				return nil, err
			}

			nodes = append(nodes, If{Path: blockPath(t, directiveIf), Body: body})
			pos = end

		case strings.Contains(t.content, filterSep):
			path, name, _ := strings.Cut(t.content, filterSep)
			nodes = append(nodes, Filter{
				Path: trimBlank(path),
				Name: trimBlank(name),
			})

		case strings.HasPrefix(t.content, closePrefix):
			// Closing tags are consumed by parseBlock; one reached here has no
			// opening directive.
			return nil, p.errorAt(ErrUnexpectedClosingTag, t.start, t.content)

		default:
			nodes = append(nodes, Variable{Path: t.content})
		}
	}

	return nodes, nil
}

// parseBlock parses the body of the block opened by open and returns it with
// the offset just past its matching closing tag.
func (p *parser) parseBlock(
	open tag,
	directive, closing string,
	limit int,
) ([]Node, int, error) {
	end, ok, err := p.matchClose(open.end, limit, directive, closing)
	if err != nil {
		return nil, 0, err
	}

	if !ok {
		return nil, 0, p.errorAt(ErrUnmatchedBlock, open.start, open.content)
	}

	body, err := p.parseRange(open.end, end.start)
	if err != nil {
		return nil, 0, err
	}

	return body, end.end, nil
}

// matchClose scans forward from pos for the closing tag that brings the
// nesting depth of directive back to zero. Other directive types do not
// affect the depth.
func (p *parser) matchClose(
	pos, limit int,
	directive, closing string,
) (tag, bool, error) {
	depth := 1

	for pos < limit {
		t, ok, err := p.next(pos, limit)
		if err != nil || !ok {
			return tag{}, false, err
		}

		switch {
		case strings.HasPrefix(t.content, directive):
			depth++
		case t.content == closing:
			depth--
			if depth == 0 {
				return t, true, nil
			}
		}

		pos = t.end
	}

	return tag{}, false, nil
}

func (p *parser) errorAt(kind *pkg.Error, offset int, directive string) *ParseError {
	return &ParseError{
		Kind:      kind,
		Pos:       p.position(offset),
		Directive: directive,
		Source:    p.input,
	}
}

func (p *parser) position(offset int) Position {
	before := p.input[:offset]
	line := strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1

	return Position{
		Offset: offset,
		Line:   line,
		Column: utf8.RuneCountInString(before[lineStart:]) + 1,
	}
}

func blockPath(t tag, directive string) string {
	return trimBlank(strings.TrimPrefix(t.content, directive))
}

func appendText(nodes []Node, s string) []Node {
	if s == "" {
		return nodes
	}

	return append(nodes, Text{Literal: s})
}

// trimBlank removes the tabs and space separators around s. Line breaks are
// kept, so a tag split across lines does not name a key path.
func trimBlank(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r == '\t' || unicode.Is(unicode.Zs, r)
	})
}
