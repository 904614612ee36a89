package content

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// CopyAssets replaces dst with a recursive copy of src and returns the number
// of files copied. A missing src copies nothing and is not an error.
func CopyAssets(src, dst string) (int, error) {
	info, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}

	if err != nil {
		return 0, ErrCopyAssets.With(slog.String("src", src)).Wrap(err)
	}

	if !info.IsDir() {
		return 0, ErrCopyAssets.With(slog.String("src", src)).
			Wrap(fs.ErrInvalid)
	}

	err = os.RemoveAll(dst)
	if err != nil {
		return 0, ErrCopyAssets.With(slog.String("dst", dst)).Wrap(err)
	}

	count := 0

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		if !d.Type().IsRegular() {
			return nil
		}

		err = copyFile(path, target)
		if err != nil {
			return err
		}

		count++

		return nil
	})
	if err != nil {
		return count, ErrCopyAssets.
			With(slog.String("src", src), slog.String("dst", dst)).
			Wrap(err)
	}

	return count, nil
}

func copyFile(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	return atomic.WriteFile(dst, f)
}
