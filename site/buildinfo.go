package site

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"
)

// BuildInfoFile records the identifier of the most recent build.
const BuildInfoFile = ".fddl-build"

// GenerateBuildID creates a new build identifier and records it in
// dir/.fddl-build.
func GenerateBuildID(dir string) (string, error) {
	id := uuid.NewString()
	path := filepath.Join(dir, BuildInfoFile)

	err := atomic.WriteFile(path, strings.NewReader(id))
	if err != nil {
		return "", ErrBuildInfo.
			With(slog.String("path", path)).
			Wrap(err)
	}

	return id, nil
}

// CurrentBuildID returns the identifier recorded in dir/.fddl-build. The
// second result is false if no build has been recorded.
func CurrentBuildID(dir string) (string, bool, error) {
	data, err := os.ReadFile(filepath.Join(dir, BuildInfoFile))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}

	if err != nil {
		return "", false, ErrBuildInfo.Wrap(err)
	}

	id := strings.TrimSpace(string(data))

	return id, id != "", nil
}

// CommitHash returns the abbreviated hash of the commit checked out in dir,
// or the empty string if dir is not in a git work tree or git is unavailable.
func CommitHash(ctx context.Context, dir string) string {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--short", "HEAD")
	cmd.Dir = dir

	out, err := cmd.Output()
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(out))
}
