package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/fddl/pkg"
	"github.com/ardnew/fddl/site"
)

// Version prints the program version and the project's latest build.
type Version struct {
	Directory string `default:"." help:"Project directory" short:"d" type:"existingdir"`
}

// Run executes the version command.
func (v *Version) Run(ctx context.Context) error {
	w := stdout(ctx)

	fmt.Fprintf(w, "%s %s\n", pkg.Name, pkg.Version())

	id, ok, err := site.CurrentBuildID(v.Directory)
	if err != nil {
		return err
	}

	if !ok {
		fmt.Fprintln(w, "build: no builds yet")

		return nil
	}

	fmt.Fprintf(w, "build: %s\n", id)

	return nil
}
