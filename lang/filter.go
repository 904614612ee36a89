package lang

import (
	"maps"
	"slices"

	"github.com/goodsign/monday"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ardnew/fddl/site"
)

// FilterFunc transforms a resolved value into output text. Filters never fail.
type FilterFunc func(Value) string

// Built-in filter names.
const (
	FilterFormatDate = "formatDate"
	FilterUppercase  = "uppercase"
	FilterLowercase  = "lowercase"
	FilterCapitalize = "capitalize"
)

// filters is the read-only registry built once by [New].
type filters map[string]FilterFunc

// makeFilters builds the fixed filter registry for the given locale.
//
// A [cases.Caser] is stateful, so each invocation creates its own.
func makeFilters(locale monday.Locale, tag language.Tag) filters {
	return filters{
		FilterFormatDate: func(v Value) string {
			if t, ok := v.Time(); ok {
				return site.FormatDate(t, locale)
			}

			if v.Kind() == KindString {
				return v.str
			}

			return ""
		},
		FilterUppercase: func(v Value) string {
			return cases.Upper(tag).String(v.text(locale))
		},
		FilterLowercase: func(v Value) string {
			return cases.Lower(tag).String(v.text(locale))
		},
		FilterCapitalize: func(v Value) string {
			return Capitalize(v.text(locale), tag)
		},
	}
}

// names returns the registered filter names in sorted order.
func (f filters) names() []string {
	return slices.Sorted(maps.Keys(f))
}

// suggest returns the registered filter name closest to name, or the empty
// string if nothing is similar.
func (f filters) suggest(name string) string {
	matches := fuzzy.Find(name, f.names())
	if len(matches) == 0 {
		return ""
	}

	return matches[0].Str
}

// Capitalize converts s to title case: the first letter of each word is
// upper case and the remaining letters are lower case.
func Capitalize(s string, tag language.Tag) string {
	return cases.Title(tag).String(s)
}
