package repl

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ardnew/fddl/log"
)

const defaultEditor = "vi"

// scratchPage is the page edited when the session has none.
const (
	scratchPage    = "scratch.md"
	scratchContent = "---\ntitle: Scratch\ntags: [draft]\n---\n\n# Scratch\n"
)

// editPageCommand implements [tea.ExecCommand]. It opens the session page in
// the user's editor, creating a scratch page first if the session has none.
type editPageCommand struct {
	path    string
	ctxFunc func() context.Context
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// newEditPageCommand returns a command editing page, or the scratch page
// under dir if page is empty.
func newEditPageCommand(
	ctxFunc func() context.Context,
	page, dir string,
	logger log.Logger,
) *editPageCommand {
	if page == "" {
		page = filepath.Join(dir, scratchPage)
	}

	return &editPageCommand{path: page, ctxFunc: ctxFunc, logger: logger}
}

// SetStdin sets the stdin reader for the command.
func (c *editPageCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editPageCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editPageCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run opens the editor and waits for it to exit.
func (c *editPageCommand) Run() error {
	ctx := c.ctxFunc()

	if _, err := os.Stat(c.path); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(c.path, []byte(scratchContent), 0o600); err != nil {
			return err
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	c.logger.TraceContext(
		ctx,
		"repl edit page",
		slog.String("editor", editor),
		slog.String("path", c.path),
	)

	cmd := exec.CommandContext(ctx, editor, c.path)
	cmd.Stdin = c.stdin
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	return cmd.Run()
}
