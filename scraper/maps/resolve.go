package maps

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// resolveFirst tries each candidate selector against scope, in the given
// order, and returns the first that yields at least one match together with
// the selector that won. Invalid selector syntax matches nothing (goquery
// compiles failing selectors into a never-matching matcher), so a broken
// candidate degrades to "no match" instead of an error.
func resolveFirst(scope *goquery.Selection, candidates []string) (*goquery.Selection, string, bool) {
	for _, sel := range candidates {
		found := scope.Find(sel)
		if found.Length() > 0 {
			return found, sel, true
		}
	}
	return nil, "", false
}

// resolveText resolves the first matching candidate within scope and
// returns the trimmed text of its first match. Attribute fallback: when the
// match has no text but carries an aria-label, the label is used instead.
func resolveText(scope *goquery.Selection, candidates []string) string {
	found, _, ok := resolveFirst(scope, candidates)
	if !ok {
		return ""
	}
	first := found.First()
	if text := strings.TrimSpace(first.Text()); text != "" {
		return text
	}
	if label, exists := first.Attr("aria-label"); exists {
		return strings.TrimSpace(label)
	}
	return ""
}

// resolveAttr resolves the first matching candidate within scope and
// returns the named attribute of its first match.
func resolveAttr(scope *goquery.Selection, candidates []string, attr string) string {
	found, _, ok := resolveFirst(scope, candidates)
	if !ok {
		return ""
	}
	val, _ := found.First().Attr(attr)
	return strings.TrimSpace(val)
}
