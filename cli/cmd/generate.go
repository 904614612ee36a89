package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/fddl/build"
	"github.com/ardnew/fddl/log"
)

// Project selects the project directory and template of a build.
type Project struct {
	Template  string `default:"${template}" help:"Template name under templates/" short:"t"`
	Directory string `default:"."           help:"Project directory"             short:"d" type:"existingdir"`
	Drafts    bool   `                      help:"Include draft pages"`
	Jobs      int    `default:"0"           help:"Pages processed at once (0 uses every CPU)"`
}

func (p *Project) generator() *build.Generator {
	return build.NewGenerator(p.Directory,
		build.WithLogger(log.Default().Component("build")),
		build.WithConcurrency(p.Jobs),
		build.WithDrafts(p.Drafts),
	)
}

// Generate builds the site once.
type Generate struct {
	Project `embed:""`
}

// Run executes the generate command.
func (g *Generate) Run(ctx context.Context) error {
	res, err := g.generator().Generate(ctx, g.Template)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "site ready",
		slog.String("output", res.OutputDir),
		slog.Int("pages", res.Pages),
		slog.Duration("elapsed", res.Duration),
	)

	return nil
}
