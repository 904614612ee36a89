package content

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ardnew/fddl/site"
)

// Scan returns the markdown sources below root as "/"-separated paths
// relative to root, sorted. Hidden files and directories are skipped.
func Scan(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if !d.Type().IsRegular() || !site.IsMarkdown(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		files = append(files, filepath.ToSlash(rel))

		return nil
	})
	if err != nil {
		return nil, ErrScan.With(slog.String("root", root)).Wrap(err)
	}

	slices.Sort(files)

	return files, nil
}
