package site

import (
	"log/slog"
	"strings"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// Date layouts.
const (
	MediumDateLayout = "Jan 2, 2006"
	ShortTimeLayout  = "3:04 PM"
)

// DefaultLocale is used when a template does not configure one.
const DefaultLocale = monday.LocaleEnUS

// dateLayouts are the accepted front-matter date forms, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
}

// ParseDate parses a front-matter date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrInvalidDate.With(slog.String("date", s))
}

// FormatDate formats t in the medium date style of locale, e.g. "Jan 2, 2006".
func FormatDate(t time.Time, locale monday.Locale) string {
	if locale == "" {
		locale = DefaultLocale
	}

	return monday.Format(t, MediumDateLayout, locale)
}

// FormatDateTime formats t as a medium date followed by a short time, e.g.
// "Jan 2, 2006 at 3:04 PM".
func FormatDateTime(t time.Time, locale monday.Locale) string {
	if locale == "" {
		locale = DefaultLocale
	}

	return monday.Format(t, MediumDateLayout, locale) + " at " +
		monday.Format(t, ShortTimeLayout, locale)
}

// Locale returns the configured locale, or [DefaultLocale].
func (c *TemplateConfiguration) Locale() monday.Locale {
	if c == nil || c.LocaleName == "" {
		return DefaultLocale
	}

	return monday.Locale(c.LocaleName)
}

// LanguageTag returns the BCP 47 language of locale, e.g. en-US for en_US.
func LanguageTag(locale monday.Locale) language.Tag {
	tag, err := language.Parse(strings.ReplaceAll(string(locale), "_", "-"))
	if err != nil {
		return language.English
	}

	return tag
}
