package inventory

import (
	"strings"

	"golang.org/x/text/cases"
)

// Matches reports whether any field of the item contains the search
// term, compared with Unicode case folding.
func Matches(it Item, term string) bool {
	if term == "" {
		return true
	}
	// Casers are stateful transformers, so build one per call.
	fold := cases.Fold()
	needle := fold.String(term)
	for _, field := range it.Row() {
		if strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}

// Filter returns the items whose fields contain the search term. An
// empty term returns a copy of the full slice.
func Filter(items []Item, term string) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if Matches(it, term) {
			out = append(out, it)
		}
	}
	return out
}
