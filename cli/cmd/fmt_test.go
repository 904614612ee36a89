package cmd

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ardnew/fddl/lang"
)

func TestFmt(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.html")
	bad := filepath.Join(dir, "bad.html")

	writeFile(t, good, "<ul>{{#each   site.pages}}<li>{{this.title|uppercase}}</li>{{/each}}</ul>{{#if page.tags}}{{page.date}}{{/if}}")
	writeFile(t, bad, "<p>{{#if page.tags}}open")

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{
			name: "source",
			args: []string{"fmt", good},
			want: "<ul>{{#each site.pages}}<li>{{ this.title | uppercase }}</li>{{/each}}</ul>" +
				"{{#if page.tags}}{{ page.date }}{{/if}}",
		},
		{
			name: "tree",
			args: []string{"fmt", "tree", "-i", "1", good},
			want: "text \"<ul>\"\n" +
				"each site.pages\n" +
				" text \"<li>\"\n" +
				" filter this.title | uppercase\n" +
				" text \"</li>\"\n" +
				"text \"</ul>\"\n" +
				"if page.tags\n" +
				" variable page.date\n",
		},
		{
			name:    "malformed",
			args:    []string{"fmt", "source", bad},
			wantErr: lang.ErrUnmatchedBlock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cli struct {
				Fmt Fmt `cmd:""`
			}

			ctx, out := parse(t, &cli, tt.args...)

			var err error
			if len(tt.args) > 1 && tt.args[1] == "tree" {
				err = cli.Fmt.Tree.Run(ctx)
			} else {
				err = cli.Fmt.Source.Run(ctx)
			}

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrParseTemplate) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Run error: %v", err)
			}

			if got := out.String(); got != tt.want {
				t.Errorf("output:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}
