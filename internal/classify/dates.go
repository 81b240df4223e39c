package classify

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const isoLayout = "2006-01-02"

// monthNumbers maps Norwegian month names (lowercase) to two-digit numbers.
var monthNumbers = map[string]string{
	"januar":    "01",
	"februar":   "02",
	"mars":      "03",
	"april":     "04",
	"mai":       "05",
	"juni":      "06",
	"juli":      "07",
	"august":    "08",
	"september": "09",
	"oktober":   "10",
	"november":  "11",
	"desember":  "12",
}

var (
	// "I kraft fra 2020-01-01" in both written languages, whitespace optional.
	inForceSingleExpr = regexp.MustCompile(`(?i)I\s*kraft\s*(?:fra|frå)\s*(\d{4}-\d{2}-\d{2})`)

	// "I kraft fra 2020-01-01, 2021-07-01" comma-separated variant.
	inForceListExpr = regexp.MustCompile(`(?i)I\s*kraft\s*(?:fra|frå)\s*((?:\d{4}-\d{2}-\d{2})(?:\s*,\s*\d{4}-\d{2}-\d{2})+)`)

	// "Fra 1. juli 2024" day-name-year variant.
	inForceSpelledExpr = regexp.MustCompile(`(?i)Fra\s+(\d{1,2})\.\s*([A-Za-zæøåÆØÅ]+)\s+(\d{4})`)

	isoTokenExpr = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

	// Phrasings meaning the entry-into-force date will be set later by royal
	// decree ("Kongen fastsetter/bestemmer").
	notFixedExprs = []*regexp.Regexp{
		regexp.MustCompile(`i\s*kraft\s*(?:fra|frå)\s*kongen\s*fastset`),
		regexp.MustCompile(`i\s*kraft\s*(?:fra|frå)\s*kongen\s*fastsetter`),
		regexp.MustCompile(`(?:frå|fra)\s*den\s*tid\s*kongen\s*fastset`),
		regexp.MustCompile(`(?:frå|fra)\s*den\s*tid\s*kongen\s*fastsetter`),
		regexp.MustCompile(`(?:frå|fra)\s*den\s*tid\s*kongen\s*bestemmer`),
		regexp.MustCompile(`kongen\s*bestemmer`),
		regexp.MustCompile(`kongen\s*fastset`),
		regexp.MustCompile(`kongen\s*fastsetter`),
	}
)

// MineEffectiveDates extracts ISO entry-into-force dates from free-form
// document text. The three phrasing rules are applied independently and
// unioned; duplicates are kept in first-seen order and left to the caller.
// Unparseable month names are silently dropped.
func MineEffectiveDates(text string) []string {
	var found []string

	for _, m := range inForceSingleExpr.FindAllStringSubmatch(text, -1) {
		found = append(found, m[1])
	}

	for _, m := range inForceListExpr.FindAllStringSubmatch(text, -1) {
		found = append(found, isoTokenExpr.FindAllString(m[1], -1)...)
	}

	for _, m := range inForceSpelledExpr.FindAllStringSubmatch(text, -1) {
		day := m[1]
		if len(day) == 1 {
			day = "0" + day
		}
		month, ok := monthNumbers[strings.ToLower(m[2])]
		if !ok {
			continue
		}
		found = append(found, fmt.Sprintf("%s-%s-%s", m[3], month, day))
	}

	return found
}

// EffectiveDateNotFixed reports whether the text says entry into force is not
// yet fixed and will be decided later by decree.
func EffectiveDateNotFixed(text string) bool {
	t := strings.ToLower(text)
	for _, expr := range notFixedExprs {
		if expr.MatchString(t) {
			return true
		}
	}
	return false
}

// ParseISODate parses YYYY-MM-DD, returning ok=false for anything else.
func ParseISODate(value string) (time.Time, bool) {
	d, err := time.Parse(isoLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func anyPastOrToday(dates []string, today time.Time) bool {
	for _, v := range dates {
		if d, ok := ParseISODate(v); ok && !d.After(today) {
			return true
		}
	}
	return false
}

func anyFuture(dates []string, today time.Time) bool {
	for _, v := range dates {
		if d, ok := ParseISODate(v); ok && d.After(today) {
			return true
		}
	}
	return false
}
