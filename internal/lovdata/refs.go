package lovdata

import (
	"regexp"
	"strings"
)

// lawRefExpr matches canonical law identifiers anywhere in a regulation,
// with an optional NL/ namespace prefix. Coincidental matches in unrelated
// prose are accepted as a known limitation.
var lawRefExpr = regexp.MustCompile(`(?:NL/)?lov/\d{4}-\d{2}-\d{2}(?:-\d+)?`)

// LawReferences scans raw regulation bytes for law identifiers, strips the
// namespace prefix and returns them deduplicated in first-seen order.
func LawReferences(raw []byte) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range lawRefExpr.FindAllString(string(raw), -1) {
		ref := strings.TrimPrefix(m, "NL/")
		if seen[ref] {
			continue
		}
		seen[ref] = true
		out = append(out, ref)
	}
	return out
}
