package lang

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Node
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "text only",
			input: "<p>plain text</p>",
			want:  []Node{Text{"<p>plain text</p>"}},
		},
		{
			name:  "variable",
			input: "Hello {{page.title}}!",
			want: []Node{
				Text{"Hello "},
				Variable{"page.title"},
				Text{"!"},
			},
		},
		{
			name:  "variable trims spaces",
			input: "{{   site.name \t}}",
			want:  []Node{Variable{"site.name"}},
		},
		{
			name:  "variable trims space separators",
			input: "{{\u00a0page.title\u2003}}",
			want:  []Node{Variable{"page.title"}},
		},
		{
			name:  "variable keeps line breaks",
			input: "{{\npage.title\n}}",
			want:  []Node{Variable{"\npage.title\n"}},
		},
		{
			name:  "filter keeps line breaks",
			input: "{{ a\n|\tupper }}",
			want:  []Node{Filter{Path: "a\n", Name: "upper"}},
		},
		{
			name:  "adjacent directives",
			input: "{{a}}{{b}}",
			want:  []Node{Variable{"a"}, Variable{"b"}},
		},
		{
			name:  "filter",
			input: "{{ page.date | formatDate }}",
			want:  []Node{Filter{Path: "page.date", Name: "formatDate"}},
		},
		{
			name:  "filter takes first pipe only",
			input: "{{ a | b | c }}",
			want:  []Node{Filter{Path: "a", Name: "b | c"}},
		},
		{
			name:  "each",
			input: "<ul>{{#each site.allTags}}<li>{{this}}</li>{{/each}}</ul>",
			want: []Node{
				Text{"<ul>"},
				Each{Path: "site.allTags", Body: []Node{
					Text{"<li>"},
					Variable{"this"},
					Text{"</li>"},
				}},
				Text{"</ul>"},
			},
		},
		{
			name:  "if",
			input: "{{#if page.description}}<p>{{page.description}}</p>{{/if}}",
			want: []Node{
				If{Path: "page.description", Body: []Node{
					Text{"<p>"},
					Variable{"page.description"},
					Text{"</p>"},
				}},
			},
		},
		{
			name:  "empty block body",
			input: "{{#if x}}{{/if}}",
			want:  []Node{If{Path: "x"}},
		},
		{
			name:  "nested same type closes at matching depth",
			input: "{{#each a}}{{#each b}}X{{/each}}Y{{/each}}Z",
			want: []Node{
				Each{Path: "a", Body: []Node{
					Each{Path: "b", Body: []Node{Text{"X"}}},
					Text{"Y"},
				}},
				Text{"Z"},
			},
		},
		{
			name:  "nested different types",
			input: "{{#each site.pages}}{{#if this.description}}{{this.title}}{{/if}}{{/each}}",
			want: []Node{
				Each{Path: "site.pages", Body: []Node{
					If{Path: "this.description", Body: []Node{
						Variable{"this.title"},
					}},
				}},
			},
		},
		{
			name:  "if nested in if",
			input: "{{#if a}}1{{#if b}}2{{/if}}3{{/if}}",
			want: []Node{
				If{Path: "a", Body: []Node{
					Text{"1"},
					If{Path: "b", Body: []Node{Text{"2"}}},
					Text{"3"},
				}},
			},
		},
		{
			name:  "stray close delimiter is text",
			input: "a }} b",
			want:  []Node{Text{"a }} b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q)\n got: %#v\nwant: %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		kind      error
		line      int
		column    int
		directive string
	}{
		{
			name:   "unmatched delimiter",
			input:  "Hello {{ page.title",
			kind:   ErrUnmatchedDelimiter,
			line:   1,
			column: 7,
		},
		{
			name:   "unmatched delimiter on later line",
			input:  "one\ntwo {{",
			kind:   ErrUnmatchedDelimiter,
			line:   2,
			column: 5,
		},
		{
			name:   "unterminated directive swallows closing tag",
			input:  "{{#if x}}{{ y {{/if}}",
			kind:   ErrUnmatchedBlock,
			line:   1,
			column: 1,
		},
		{
			name:      "unmatched each",
			input:     "{{#each site.pages}}{{this.title}}",
			kind:      ErrUnmatchedBlock,
			line:      1,
			column:    1,
			directive: "#each site.pages",
		},
		{
			name:      "inner block unmatched within outer",
			input:     "{{#each a}}{{#if b}}X{{/each}}{{/if}}",
			kind:      ErrUnmatchedBlock,
			line:      1,
			column:    12,
			directive: "#if b",
		},
		{
			name:      "unexpected closing tag",
			input:     "text {{/if}}",
			kind:      ErrUnexpectedClosingTag,
			line:      1,
			column:    6,
			directive: "/if",
		},
		{
			name:      "extra closing each",
			input:     "{{#each a}}{{/each}}{{/each}}",
			kind:      ErrUnexpectedClosingTag,
			line:      1,
			column:    21,
			directive: "/each",
		},
		{
			name:      "column counts runes",
			input:     "é {{/x}}",
			kind:      ErrUnexpectedClosingTag,
			line:      1,
			column:    3,
			directive: "/x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", tt.input)
			}

			if !errors.Is(err, tt.kind) {
				t.Errorf("error %v is not %v", err, tt.kind)
			}

			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not *ParseError", err)
			}

			if pe.Pos.Line != tt.line || pe.Pos.Column != tt.column {
				t.Errorf("position = %v, want line %d, column %d",
					pe.Pos, tt.line, tt.column)
			}

			if tt.directive != "" && pe.Directive != tt.directive {
				t.Errorf("directive = %q, want %q", pe.Directive, tt.directive)
			}
		})
	}
}

func TestParseError_Error(t *testing.T) {
	_, err := Parse("line one\nbad {{/if}} here")
	if err == nil {
		t.Fatal("expected error")
	}

	msg := err.Error()

	for _, want := range []string{
		"unexpected closing tag",
		"line 2, column 5",
		`"/if"`,
		"2 | bad {{/if}} here",
		"^",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q missing %q", msg, want)
		}
	}
}

func TestParseReader(t *testing.T) {
	nodes, err := ParseReader(strings.NewReader("a{{b}}"))
	if err != nil {
		t.Fatalf("ParseReader error: %v", err)
	}

	if len(nodes) != 2 {
		t.Errorf("got %d nodes, want 2", len(nodes))
	}
}

func TestSource_RoundTrip(t *testing.T) {
	inputs := []string{
		"plain",
		"a {{ x }} b",
		"{{ d | formatDate }}",
		"{{#each site.pages}}[{{ this.title }}]{{/each}}",
		"{{#if a}}{{#each b}}{{ this }}{{/each}}{{/if}}",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first, err := Parse(in)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}

			second, err := Parse(Source(first))
			if err != nil {
				t.Fatalf("Parse(Source) error: %v", err)
			}

			if !reflect.DeepEqual(first, second) {
				t.Errorf("round trip mismatch\n got: %#v\nwant: %#v", second, first)
			}
		})
	}
}

func TestWalk(t *testing.T) {
	nodes, err := Parse("{{#each a}}{{#if b}}{{c}}{{/if}}{{/each}}{{d}}")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	var paths []string

	Walk(nodes, func(n Node) bool {
		switch n := n.(type) {
		case Each:
			paths = append(paths, n.Path)
		case If:
			paths = append(paths, n.Path)
		case Variable:
			paths = append(paths, n.Path)
		}

		return true
	})

	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("Walk visited %v, want %v", paths, want)
	}

	count := 0

	completed := Walk(nodes, func(Node) bool {
		count++

		return count < 2
	})

	if completed || count != 2 {
		t.Errorf("Walk did not stop early: completed=%v count=%d", completed, count)
	}
}
