package pkg

import (
	"log/slog"
	"slices"
)

// Error is a sentinel error that can be annotated with structured attributes
// and a cause without losing its identity: errors derived from a sentinel
// with [Error.With] or [Error.Wrap] satisfy errors.Is against it.
//
// Error implements [slog.LogValuer], logging as a group of the message, the
// cause and the attributes.
type Error struct {
	origin *Error
	cause  error
	msg    string
	attrs  []slog.Attr
}

// NewError returns a new sentinel error.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.origin = e

	return e
}

func (e *Error) Error() string {
	switch {
	case e.cause == nil:
		return e.msg
	case e.msg == "":
		return e.cause.Error()
	default:
		return e.msg + ": " + e.cause.Error()
	}
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports whether e and target derive from the same sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.origin != nil && t.origin == e.origin
}

func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)
	attrs = append(attrs, slog.String("error", e.msg))

	if e.cause != nil {
		attrs = append(attrs, slog.Any("cause", e.cause))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e caused by err.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.cause = err

	return &c
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := *e
	c.attrs = append(slices.Clip(e.attrs), attrs...)

	return &c
}
