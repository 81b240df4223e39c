// Package classify decides whether a legal document is currently binding.
//
// The decision procedure is a strict, ordered gate sequence over heterogeneous
// evidence: structured entry-into-force tags, dates mined from free text, the
// raw force-status flag, and a handful of fixed Norwegian phrases. The gate
// order is semantically load-bearing; see Classify.
package classify

import (
	"strings"
	"time"

	"LovdataScanner/internal/domain"
)

// Evidence is the raw signal bag extracted from one law document.
type Evidence struct {
	// InForceRaw is the free-text force-status flag field.
	InForceRaw string
	// AccessRemovedDate, when set, means the document was withdrawn upstream.
	AccessRemovedDate string
	// TagDates holds values of the entry-into-force tag aliases. Last-amended
	// dates must not be included here; they track amendments, not the
	// original entry into force.
	TagDates []string
	// FullText is the plain-text rendering of the whole document, used for
	// free-text date mining and phrase predicates.
	FullText string
}

// Result pairs the assigned status with a human-auditable reason naming the
// rule that fired.
type Result struct {
	Status Status
	Reason string

	// PositiveCandidates is the deduplicated union of tag and mined dates
	// that drove the decision, kept for audit output.
	PositiveCandidates []string
}

// Status re-exports the domain status for package-local readability.
type Status = domain.Status

var falseTokens = map[string]bool{"false": true, "0": true, "no": true, "nei": true}
var trueTokens = map[string]bool{"true": true, "1": true, "yes": true, "ja": true}

// Classify assigns a legal-force status. The gates run in a fixed order and
// the first match wins:
//
//  1. explicit "not in force" phrasing with no past/today positive date
//  2. any past/today positive entry-into-force date (authoritative: a real
//     past date overrides every other signal)
//  3. entry into force not yet fixed (Kongen fastsetter/bestemmer)
//  4. any future positive entry-into-force date
//  5. fall back to the raw force flag, else ambiguous
//
// today is compared at day granularity; callers pass the current wall date.
func Classify(ev Evidence, today time.Time) Result {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	positive := dedupeTrimmed(append(append([]string{}, ev.TagDates...), MineEffectiveDates(ev.FullText)...))

	textLC := strings.ToLower(ev.FullText)
	rawLC := strings.ToLower(strings.TrimSpace(ev.InForceRaw))

	explicitNotInForce := strings.Contains(textLC, "ikke i kraft") ||
		strings.Contains(textLC, "ikkje i kraft") ||
		falseTokens[rawLC]

	hasPastOrToday := anyPastOrToday(positive, today)
	hasFuture := anyFuture(positive, today)

	res := Result{PositiveCandidates: positive}

	switch {
	case explicitNotInForce && !hasPastOrToday:
		res.Status = domain.StatusNotInForce
		res.Reason = "explicit ikke/ikkje i kraft and no past/today positive entry-into-force date"
	case hasPastOrToday:
		res.Status = domain.StatusInForce
		res.Reason = "positive entry-into-force date <= today found (tags or text)"
	case EffectiveDateNotFixed(ev.FullText):
		res.Status = domain.StatusFuture
		res.Reason = "entry into force not fixed (Kongen fastsetter/bestemmer)"
	case hasFuture:
		res.Status = domain.StatusFuture
		res.Reason = "future positive entry-into-force date found (tags or text)"
	default:
		res.Status, res.Reason = classifyFromRawFlag(rawLC, ev.AccessRemovedDate)
	}

	return res
}

func classifyFromRawFlag(rawLC, accessRemovedDate string) (Status, string) {
	rawSaysNot := strings.Contains(rawLC, "ikke i kraft") || strings.Contains(rawLC, "ikkje i kraft")
	rawSaysInForce := trueTokens[rawLC] ||
		(strings.Contains(rawLC, "i kraft") && !strings.Contains(rawLC, "ikke") && !strings.Contains(rawLC, "ikkje"))

	switch {
	case rawSaysNot || strings.TrimSpace(accessRemovedDate) != "":
		return domain.StatusNotInForce, "raw inForce indicates not in force / accessRemovedDate"
	case rawSaysInForce:
		return domain.StatusInForce, "raw inForce indicates in force"
	default:
		return domain.StatusAmbiguous, "no clear inForce + no effective date match"
	}
}

func dedupeTrimmed(values []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
