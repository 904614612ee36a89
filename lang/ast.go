package lang

import "strings"

// Node is an element of a parsed template.
//
// The concrete node types are [Text], [Variable], [Filter], [Each] and [If].
// Block nodes own their body exclusively; a parsed template is always a tree.
type Node interface {
	node()
}

// Text is literal template text copied to the output verbatim.
type Text struct {
	Literal string
}

// Variable interpolates the string form of the value at Path.
type Variable struct {
	Path string
}

// Filter interpolates the value at Path transformed by the filter Name.
type Filter struct {
	Path string
	Name string
}

// Each evaluates Body once per element of the sequence at Path, binding
// "this" to the element.
type Each struct {
	Path string
	Body []Node
}

// If evaluates Body once when the value at Path is truthy.
type If struct {
	Path string
	Body []Node
}

func (Text) node()     {}
func (Variable) node() {}
func (Filter) node()   {}
func (Each) node()     {}
func (If) node()       {}

// Walk calls fn for each node in nodes in depth-first order, descending into
// block bodies. Walk stops early if fn returns false.
func Walk(nodes []Node, fn func(Node) bool) bool {
	for _, n := range nodes {
		if !fn(n) {
			return false
		}

		switch b := n.(type) {
		case Each:
			if !Walk(b.Body, fn) {
				return false
			}
		case If:
			if !Walk(b.Body, fn) {
				return false
			}
		}
	}

	return true
}

// Source reconstructs template source equivalent to nodes. Directive spacing
// is normalized.
func Source(nodes []Node) string {
	var sb strings.Builder

	writeSource(&sb, nodes)

	return sb.String()
}

func writeSource(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case Text:
			sb.WriteString(n.Literal)
		case Variable:
			sb.WriteString(delimOpen + " " + n.Path + " " + delimClose)
		case Filter:
			sb.WriteString(delimOpen + " " + n.Path + " | " + n.Name + " " + delimClose)
		case Each:
			sb.WriteString(delimOpen + directiveEach + n.Path + delimClose)
			writeSource(sb, n.Body)
			sb.WriteString(delimOpen + closeEach + delimClose)
		case If:
			sb.WriteString(delimOpen + directiveIf + n.Path + delimClose)
			writeSource(sb, n.Body)
			sb.WriteString(delimOpen + closeIf + delimClose)
		}
	}
}
