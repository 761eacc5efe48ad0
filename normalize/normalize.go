// Package normalize folds strings into a canonical form for loose equality
// checks between values scraped from HTML-ish sources.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var entities = strings.NewReplacer(
	"&amp;", "&",
	"&nbsp;", " ",
)

// String decodes the &amp; and &nbsp; entities, trims surrounding
// whitespace and lower-cases s.
func String(s string) string {
	if s == "" {
		return s
	}
	s = strings.TrimSpace(entities.Replace(s))
	// A Caser keeps state between calls and must not be shared.
	return cases.Lower(language.Und).String(s)
}

// Equal reports whether a and b are equal after normalization.
func Equal(a, b string) bool {
	return String(a) == String(b)
}
