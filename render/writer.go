package render

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// Writer writes generated files below a root directory. Each file is
// replaced atomically, so a reader never sees a partial page.
type Writer struct {
	root string
}

// NewWriter returns a Writer rooted at dir.
func NewWriter(dir string) *Writer { return &Writer{root: dir} }

// Root returns the directory files are written below.
func (w *Writer) Root() string { return w.root }

// Path returns the file path of the slash-separated name. Names that are
// absolute or climb above the root are rejected.
func (w *Writer) Path(name string) (string, error) {
	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) {
		return "", ErrOutsideOutput.With(slog.String("name", name))
	}

	return filepath.Join(w.root, local), nil
}

// WriteString writes data to name, creating parent directories as needed,
// and returns the file path.
func (w *Writer) WriteString(name, data string) (string, error) {
	path, err := w.Path(name)
	if err != nil {
		return "", err
	}

	err = os.MkdirAll(filepath.Dir(path), 0o755)
	if err == nil {
		err = atomic.WriteFile(path, strings.NewReader(data))
	}

	if err != nil {
		return "", ErrWriteOutput.With(slog.String("path", path)).Wrap(err)
	}

	return path, nil
}

// Write is like [Writer.WriteString] for a byte slice.
func (w *Writer) Write(name string, data []byte) (string, error) {
	return w.WriteString(name, string(data))
}
