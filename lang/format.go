package lang

//go:generate go tool stringer --linecomment --type Encoding --output format_string.go

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Encoding selects the document format written by [Context.Encode].
type Encoding int

// Encodings.
const (
	EncodingYAML Encoding = iota // yaml
	EncodingJSON                 // json
)

// Encode writes the page, site and variables of c to w.
//
// YAML is written in block style indented by indent spaces, or in flow style
// if indent is not positive. JSON is written on one line if indent is not
// positive. Either way the document ends with a newline.
func (c *Context) Encode(ctx context.Context, w io.Writer, enc Encoding, indent int) error {
	if enc == EncodingJSON {
		je := json.NewEncoder(w)
		je.SetEscapeHTML(false)

		if indent > 0 {
			je.SetIndent("", strings.Repeat(" ", indent))
		}

		return je.Encode(c)
	}

	opt := yaml.Flow(true)
	if indent > 0 {
		opt = yaml.Indent(indent)
	}

	return yaml.NewEncoder(w, opt).EncodeContext(ctx, c)
}
