package cli

import (
	"context"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/fddl/build"
	"github.com/ardnew/fddl/cli/cmd"
	"github.com/ardnew/fddl/pkg"
)

// CLI is the top-level command-line interface for fddl.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Generate cmd.Generate `cmd:"" default:"1" help:"Generate the site into output/"`
	Serve    cmd.Serve    `cmd:""             help:"Serve the site and rebuild on change"`
	Render   cmd.Render   `cmd:""             help:"Render template source against a page"`
	Repl     cmd.Repl     `cmd:""             help:"Render templates interactively against a page"`
	Fmt      cmd.Fmt      `cmd:""             help:"Check and print parsed template source"`
	Version  cmd.Version  `cmd:""             help:"Print version and latest build"`
	Init     cmd.Init     `cmd:""             help:"Write current flag values to a configuration file"`
}

// Run parses args and executes the selected command. Parse errors print
// usage and call exit; command errors are returned.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	if err := mkdirAllRequired(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var cli CLI

	// Logging flags take effect before parsing, so that configuration file
	// errors are reported the way the user asked.
	cli.Log.scan(args)

	parser, err := cli.parser(ctx, exit)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	cli.Log.start(ctx)
	defer cli.Pprof.start(ctx, commandName(ktx))()

	return ktx.Run(ctx, &cli)
}

// parser returns a kong parser for cli that loads flag values from the user
// and project configuration files, in that order.
func (cli *CLI) parser(ctx context.Context, exit func(int)) (*kong.Kong, error) {
	userConfig := configPath(baseConfig + configExt)

	vars := kong.Vars{
		cmd.ConfigIdentifier:   userConfig,
		cmd.ProjectIdentifier:  projectConfig,
		cmd.CacheIdentifier:    pkg.CacheDir(),
		cmd.TemplateIdentifier: build.DefaultTemplate,
	}

	return kong.New(cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Pprof.group()}),
		kong.BindSingletonProvider(func() context.Context { return ctx }),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			Tree:                true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(resolve, userConfig, projectConfig),
		vars.CloneWith(cli.Log.vars()).CloneWith(cli.Pprof.vars()),
	)
}

// commandName returns the selected subcommand path without its positional
// argument placeholders, e.g. "fmt tree".
func commandName(ktx *kong.Context) string {
	var words []string

	for w := range strings.FieldsSeq(ktx.Command()) {
		if !strings.HasPrefix(w, "<") {
			words = append(words, w)
		}
	}

	return strings.Join(words, " ")
}
