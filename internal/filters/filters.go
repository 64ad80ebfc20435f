// Package filters narrows entity lists by free text and a categorical selector.
package filters

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// All is the selector value that matches every record.
const All = "all"

// Fold lowercases s for comparison. A new Caser is created per call
// since cases.Caser keeps state and is not safe for concurrent use.
func Fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// MatchesSearch reports whether any field contains term, ignoring case.
// An empty term matches. Whitespace in term is significant.
func MatchesSearch(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	needle := Fold(term)
	for _, f := range fields {
		if strings.Contains(Fold(f), needle) {
			return true
		}
	}
	return false
}

// MatchesSelector reports whether value equals selector. "all" and an
// empty selector are wildcards.
func MatchesSelector(selector, value string) bool {
	if selector == "" || selector == All {
		return true
	}
	return selector == value
}

// Entities returns the items of list whose search fields contain search and
// whose category equals filter, in their original order. category may be
// nil when the list has no categorical selector.
func Entities[T any](list []T, search, filter string, fields func(T) []string, category func(T) string) []T {
	out := make([]T, 0, len(list))
	for _, item := range list {
		if category != nil && !MatchesSelector(filter, category(item)) {
			continue
		}
		if !MatchesSearch(search, fields(item)...) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Where keeps the items for which keep returns true, in order.
func Where[T any](list []T, keep func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, item := range list {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
