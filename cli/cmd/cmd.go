package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/alecthomas/kong"
)

type contextKey struct{}

// WithContext returns ctx carrying the parsed command line ktx.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer commands print results to.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stdinSource names standard input among template sources.
const stdinSource = "-"

// templateSource is the ordered list of template files named on the command
// line. Each file appears once however it was named; standard input, if
// named, is read after all files.
type templateSource struct {
	paths []string
	stdin bool
}

// buildSourceFiles resolves args to a templateSource. Arguments that do not
// name a readable regular file are skipped. It returns nil if nothing
// remains.
func buildSourceFiles(args []string) *templateSource {
	var (
		src  templateSource
		seen []os.FileInfo
	)

	for _, arg := range args {
		if arg == stdinSource {
			src.stdin = true

			continue
		}

		path, err := filepath.EvalSymlinks(arg)
		if err != nil {
			continue
		}

		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		if slices.ContainsFunc(seen, func(fi os.FileInfo) bool { return os.SameFile(fi, info) }) {
			continue
		}

		seen = append(seen, info)
		src.paths = append(src.paths, path)
	}

	if len(src.paths) == 0 && !src.stdin {
		return nil
	}

	return &src
}

// Paths returns the resolved file paths in read order, excluding stdin.
func (s *templateSource) Paths() []string { return s.paths }

// Stdin reports whether standard input is read after the files.
func (s *templateSource) Stdin() bool { return s.stdin }

// WriteTo copies every source to w in order. Files are opened one at a time.
func (s *templateSource) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, path := range s.paths {
		n, err := copyFile(w, path)
		total += n

		if err != nil {
			return total, err
		}
	}

	if s.stdin {
		n, err := io.Copy(w, os.Stdin)

		return total + n, err
	}

	return total, nil
}

// ReadAll returns the concatenated sources.
func (s *templateSource) ReadAll() ([]byte, error) {
	var buf bytes.Buffer

	_, err := s.WriteTo(&buf)

	return buf.Bytes(), err
}

func copyFile(w io.Writer, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return io.Copy(w, f)
}
