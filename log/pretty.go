package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles of one pretty handler. Styles render plain text
// when the output is not a color terminal.
type palette struct {
	key, str, num, boolean, null, when, span lipgloss.Style
	trace, debug, info, warn, fail           lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	s := r.NewStyle()

	return palette{
		key:     s.Foreground(lipgloss.Color("8")),
		str:     s.Foreground(lipgloss.Color("6")),
		num:     s.Foreground(lipgloss.Color("3")),
		boolean: s.Foreground(lipgloss.Color("2")),
		null:    s.Foreground(lipgloss.Color("8")),
		when:    s.Foreground(lipgloss.Color("4")),
		span:    s.Foreground(lipgloss.Color("5")),
		trace:   s.Foreground(lipgloss.Color("8")),
		debug:   s.Foreground(lipgloss.Color("4")),
		info:    s.Foreground(lipgloss.Color("2")).Bold(true),
		warn:    s.Foreground(lipgloss.Color("3")).Bold(true),
		fail:    s.Foreground(lipgloss.Color("1")).Bold(true),
	}
}

func (p palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.fail
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// prettyHandler writes colorized records either as one key=value line or
// as an indented JSON-like block.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	style  palette
	block  bool
	attrs  []slog.Attr
	groups []string
}

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return newPrettyHandler(w, opts, false)
}

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return newPrettyHandler(w, opts, true)
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions, block bool) *prettyHandler {
	return &prettyHandler{
		opts:  *opts,
		mu:    &sync.Mutex{},
		w:     w,
		style: newPalette(w),
		block: block,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var fields []slog.Attr

	if !r.Time.IsZero() {
		fields = h.appendBuiltin(fields, slog.Time(slog.TimeKey, r.Time))
	}

	// Level is styled by severity, so it bypasses ReplaceAttr.
	fields = append(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = h.appendBuiltin(fields,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	fields = h.appendBuiltin(fields, slog.String(slog.MessageKey, r.Message))

	var own []slog.Attr

	r.Attrs(func(a slog.Attr) bool {
		own = append(own, a)

		return true
	})

	fields = append(fields, h.attrs...)
	fields = append(fields, nest(h.groups, own)...)

	buf := new(bytes.Buffer)
	if h.block {
		h.writeBlock(buf, fields, 1)
	} else {
		h.writeLine(buf, "", fields)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h
	c.attrs = append(slices.Clip(h.attrs), nest(h.groups, attrs)...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(slices.Clip(h.groups), name)

	return &c
}

// appendBuiltin adds a record field after applying ReplaceAttr.
func (h *prettyHandler) appendBuiltin(fields []slog.Attr, a slog.Attr) []slog.Attr {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	if a.Equal(slog.Attr{}) {
		return fields
	}

	return append(fields, a)
}

// nest wraps attrs in the open groups, innermost last.
func nest(groups []string, attrs []slog.Attr) []slog.Attr {
	if len(attrs) == 0 {
		return nil
	}

	for i := len(groups) - 1; i >= 0; i-- {
		attrs = []slog.Attr{{Key: groups[i], Value: slog.GroupValue(attrs...)}}
	}

	return attrs
}

func (h *prettyHandler) writeLine(buf *bytes.Buffer, prefix string, attrs []slog.Attr) {
	for _, a := range attrs {
		a.Value = a.Value.Resolve()
		if a.Equal(slog.Attr{}) {
			continue
		}

		if a.Value.Kind() == slog.KindGroup {
			h.writeLine(buf, prefix+a.Key+".", a.Value.Group())

			continue
		}

		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.style.key.Render(prefix + a.Key))
		buf.WriteByte('=')
		buf.WriteString(h.value(a.Value))
	}
}

func (h *prettyHandler) writeBlock(buf *bytes.Buffer, attrs []slog.Attr, depth int) {
	indent := strings.Repeat("  ", depth)

	buf.WriteString("{\n")

	first := true

	for _, a := range attrs {
		a.Value = a.Value.Resolve()
		if a.Equal(slog.Attr{}) {
			continue
		}

		if !first {
			buf.WriteString(",\n")
		}

		first = false

		buf.WriteString(indent)
		buf.WriteString(h.style.key.Render(a.Key))
		buf.WriteString(": ")

		if a.Value.Kind() == slog.KindGroup {
			h.writeBlock(buf, a.Value.Group(), depth+1)

			continue
		}

		buf.WriteString(h.value(a.Value))
	}

	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat("  ", depth-1))
	buf.WriteByte('}')
}

func (h *prettyHandler) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return h.style.str.Render(v.String())

	case slog.KindInt64:
		return h.style.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return h.style.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return h.style.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return h.style.boolean.Render("true")
		}

		return h.style.fail.UnsetBold().Render("false")

	case slog.KindDuration:
		return h.style.span.Render(v.Duration().String())

	case slog.KindTime:
		return h.style.when.Render(v.Time().Format(time.RFC3339))

	case slog.KindAny:
		switch a := v.Any().(type) {
		case slog.Level:
			return h.style.level(a).Render(strings.ToUpper(Level(a).String()))
		case nil:
			return h.style.null.Render("null")
		case error:
			return h.style.fail.UnsetBold().Render(a.Error())
		}
	}

	return h.style.str.Render(v.String())
}
