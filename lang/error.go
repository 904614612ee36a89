package lang

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/fddl/pkg"
)

// Parse error kinds. A [*ParseError] unwraps to one of the first three.
var (
	ErrUnmatchedDelimiter   = pkg.NewError("unmatched delimiter")
	ErrUnmatchedBlock       = pkg.NewError("unmatched block")
	ErrUnexpectedClosingTag = pkg.NewError("unexpected closing tag")
	ErrReadTemplate         = pkg.NewError("failed to read template")
)

// Position is a location in template source.
type Position struct {
	Offset int // byte offset, 0-based
	Line   int // 1-based
	Column int // 1-based, in runes
}

func (p Position) String() string {
	return "line " + strconv.Itoa(p.Line) + ", column " + strconv.Itoa(p.Column)
}

// ParseError reports malformed template structure.
//
// Use [errors.Is] with [ErrUnmatchedDelimiter], [ErrUnmatchedBlock] or
// [ErrUnexpectedClosingTag] to test its kind.
type ParseError struct {
	Kind      *pkg.Error // one of the parse sentinels
	Pos       Position   // location of the offending delimiter
	Directive string     // trimmed directive content, if any
	Source    string     // the complete template source
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var buf strings.Builder

	buf.WriteString(e.Kind.Error())
	buf.WriteString(" at ")
	buf.WriteString(e.Pos.String())

	if e.Directive != "" {
		buf.WriteString(" (")
		buf.WriteString(strconv.Quote(e.Directive))
		buf.WriteString(")")
	}

	if snippet := e.Snippet(); snippet != "" {
		buf.WriteString(":\n")
		buf.WriteString(snippet)
	}

	return buf.String()
}

// Unwrap returns the sentinel identifying the error kind.
func (e *ParseError) Unwrap() error { return e.Kind }

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", e.Kind.Error()),
		slog.Int("line", e.Pos.Line),
		slog.Int("column", e.Pos.Column),
	}

	if e.Directive != "" {
		attrs = append(attrs, slog.String("directive", e.Directive))
	}

	return slog.GroupValue(attrs...)
}

// Snippet returns the source line containing the error followed by a caret
// marking its column. It is empty if the position is outside the source.
func (e *ParseError) Snippet() string {
	lines := strings.Split(e.Source, "\n")
	if e.Pos.Line < 1 || e.Pos.Line > len(lines) {
		return ""
	}

	var src strings.Builder

	num := strconv.Itoa(e.Pos.Line)

	src.WriteString("  ")
	src.WriteString(num)
	src.WriteString(" | ")
	src.WriteString(lines[e.Pos.Line-1])
	src.WriteRune('\n')

	// 2 leading spaces + " | "
	padding := strings.Repeat(" ", len(num)+5)
	if e.Pos.Column > 0 {
		padding += strings.Repeat(" ", e.Pos.Column-1)
	}

	src.WriteString(padding + "^\n")

	return src.String()
}
