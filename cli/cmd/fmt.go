package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/fddl/lang"
)

// Fmt parses template source and prints it in the chosen form. A malformed
// template is reported as an error rather than passed through.
type Fmt struct {
	Source FmtSource `cmd:"" default:"withargs" help:"Print normalized template source (default)."`
	Tree   FmtTree   `cmd:""                    help:"Print the parsed template tree."`
}

// FmtSource prints template source with directive spacing normalized.
type FmtSource struct {
	Source []string `arg:"" default:"-" help:"Template file(s) or '-' for stdin." name:"source"`
}

// Run executes the fmt source command.
func (f *FmtSource) Run(ctx context.Context) error {
	nodes, err := parseSources(f.Source)
	if err != nil {
		return err
	}

	_, err = io.WriteString(stdout(ctx), lang.Source(nodes))

	return err
}

// FmtTree prints one line per template node, indented by block depth.
type FmtTree struct {
	Indent int      `default:"2" help:"Indent width per block level" short:"i"`
	Source []string `arg:"" default:"-" help:"Template file(s) or '-' for stdin." name:"source"`
}

// Run executes the fmt tree command.
func (f *FmtTree) Run(ctx context.Context) error {
	nodes, err := parseSources(f.Source)
	if err != nil {
		return err
	}

	return writeTree(stdout(ctx), nodes, strings.Repeat(" ", max(f.Indent, 0)), 0)
}

func parseSources(sources []string) ([]lang.Node, error) {
	src := buildSourceFiles(sources)
	if src == nil {
		return nil, ErrNoSource.With(slog.Any("source", sources))
	}

	text, err := src.ReadAll()
	if err != nil {
		return nil, ErrReadSource.Wrap(err)
	}

	nodes, err := lang.Parse(string(text))
	if err != nil {
		return nil, ErrParseTemplate.With(slog.Any("source", src.Paths())).Wrap(err)
	}

	return nodes, nil
}

func writeTree(w io.Writer, nodes []lang.Node, indent string, depth int) error {
	pad := strings.Repeat(indent, depth)

	for _, n := range nodes {
		var (
			line string
			body []lang.Node
		)

		switch n := n.(type) {
		case lang.Text:
			line = "text " + strconv.Quote(n.Literal)
		case lang.Variable:
			line = "variable " + n.Path
		case lang.Filter:
			line = "filter " + n.Path + " | " + n.Name
		case lang.Each:
			line, body = "each "+n.Path, n.Body
		case lang.If:
			line, body = "if "+n.Path, n.Body
		}

		if _, err := fmt.Fprintln(w, pad+line); err != nil {
			return err
		}

		if err := writeTree(w, body, indent, depth+1); err != nil {
			return err
		}
	}

	return nil
}
