package cmd

import (
	"context"

	"github.com/ardnew/fddl/cli/cmd/repl"
	"github.com/ardnew/fddl/log"
	"github.com/ardnew/fddl/pkg"
)

// Repl renders templates interactively against a single page.
type Repl struct {
	Page   string            `help:"Markdown page bound to the page namespace" type:"existingfile"`
	Var    map[string]string `help:"Template variable as key=value"`
	Locale string            `help:"Locale for dates and case filters"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	cacheDir := pkg.CacheDir()
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	pc := pageContext{locale: r.Locale}
	session := repl.NewSession(pc.engine(), pc.load, r.Page, r.Var)

	return repl.Run(ctx, session, cacheDir, log.Default())
}
