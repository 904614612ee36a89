package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/natefinch/atomic"
)

const (
	baseHistory  = "repl.history"
	historyLimit = 500
)

// HistoryEntry is one line of input and the mode it was entered in.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// String returns the entry as stored in the history file. Command lines are
// prefixed with ':'. Template lines starting with ':' or '\' are escaped
// with '\'.
func (e HistoryEntry) String() string {
	if e.Mode == modeCtrl {
		return ":" + e.Line
	}

	if strings.HasPrefix(e.Line, ":") || strings.HasPrefix(e.Line, `\`) {
		return `\` + e.Line
	}

	return e.Line
}

func parseEntry(s string) HistoryEntry {
	if line, ok := strings.CutPrefix(s, ":"); ok {
		return HistoryEntry{Line: line, Mode: modeCtrl}
	}

	line, _ := strings.CutPrefix(s, `\`)

	return HistoryEntry{Line: line, Mode: modeEval}
}

// History holds the most recent REPL input, oldest first. Re-entering a line
// moves it to the end. When path is set the file is rewritten after each
// change.
type History struct {
	path    string
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory returns an empty History saved to path, or kept in memory if
// path is empty.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load replaces the entries with the contents of the history file. A missing
// file is not an error.
func (h *History) Load() error {
	if h.path == "" {
		return nil
	}

	f, err := os.Open(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	defer f.Close()

	var entries []HistoryEntry

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			entries = append(entries, parseEntry(s))
		}
	}

	if err := sc.Err(); err != nil {
		return err
	}

	h.mu.Lock()
	h.entries = trim(entries)
	h.mu.Unlock()

	return nil
}

// Add records line as the newest entry.
func (h *History) Add(line string, mode inputMode) error {
	e := HistoryEntry{Line: strings.TrimSpace(line), Mode: mode}
	if e.Line == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == e {
		return nil
	}

	h.entries = trim(append(slices.DeleteFunc(h.entries, func(o HistoryEntry) bool {
		return o == e
	}), e))

	if h.path == "" {
		return nil
	}

	var b strings.Builder
	for _, e := range h.entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}

	return atomic.WriteFile(h.path, strings.NewReader(b.String()))
}

// Entry returns the entry at index i, where 0 is the oldest.
func (h *History) Entry(i int) (HistoryEntry, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, false
	}

	return h.entries[i], true
}

// Step searches from index from in direction dir (-1 older, +1 newer) for
// the next entry, skipping entries of other modes if mode is not nil. It
// reports false if the search runs off either end.
func (h *History) Step(from, dir int, mode *inputMode) (int, HistoryEntry, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for i := from + dir; i >= 0 && i < len(h.entries); i += dir {
		if mode == nil || h.entries[i].Mode == *mode {
			return i, h.entries[i], true
		}
	}

	return 0, HistoryEntry{}, false
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

func trim(entries []HistoryEntry) []HistoryEntry {
	if n := len(entries); n > historyLimit {
		return slices.Clone(entries[n-historyLimit:])
	}

	return entries
}
