package lovdata

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Canonical archive filenames look like nl-20240115-3.xml (laws) and
// sf-20240115-3.xml (regulations): prefix, promulgation date, numeric suffix.
var (
	lawFileExpr = regexp.MustCompile(`nl-(\d{8})-(\d+)\.xml$`)
	regFileExpr = regexp.MustCompile(`sf-(\d{8})-(\d+)\.xml$`)
)

const (
	documentBaseURL = "https://lovdata.no/dokument/"
	lawURLPrefix    = documentBaseURL + "NL/"
	regURLPrefix    = documentBaseURL + "SF/"
)

func dateAndSuffix(filename string, expr *regexp.Regexp) (isoDate, suffix string) {
	if filename == "" {
		return "", ""
	}
	fn := strings.ToLower(filename)
	if i := strings.LastIndex(fn, "/"); i >= 0 {
		fn = fn[i+1:]
	}
	m := expr.FindStringSubmatch(fn)
	if m == nil {
		return "", ""
	}
	d := m[1]
	return fmt.Sprintf("%s-%s-%s", d[:4], d[4:6], d[6:8]), m[2]
}

func identFrom(filename string, expr *regexp.Regexp, kind string) string {
	isoDate, suffix := dateAndSuffix(filename, expr)
	if isoDate == "" {
		return ""
	}
	id := kind + "/" + isoDate
	if n, err := strconv.Atoi(suffix); err == nil && n != 0 {
		id += "-" + strconv.Itoa(n)
	}
	return id
}

// LawIDFromFilename derives the canonical law identifier (lov/YYYY-MM-DD[-n])
// from an archive filename, or "" when the name does not match.
func LawIDFromFilename(filename string) string {
	return identFrom(filename, lawFileExpr, "lov")
}

// RegIDFromFilename derives the canonical regulation identifier
// (forskrift/YYYY-MM-DD[-n]) from an archive filename.
func RegIDFromFilename(filename string) string {
	return identFrom(filename, regFileExpr, "forskrift")
}

// LawDateFromFilename returns the ISO promulgation date embedded in a law
// archive filename, or "".
func LawDateFromFilename(filename string) string {
	d, _ := dateAndSuffix(filename, lawFileExpr)
	return d
}

// RegDateFromFilename returns the ISO promulgation date embedded in a
// regulation archive filename, or "".
func RegDateFromFilename(filename string) string {
	d, _ := dateAndSuffix(filename, regFileExpr)
	return d
}

// LawURL builds the canonical public URL for a law. The filename wins when it
// matches the archive pattern; otherwise the declared document id is used with
// known alias prefixes normalized. Empty result means no derivation is
// possible and callers must skip URL-based matching for the document.
func LawURL(docID, filename string) string {
	if ref := LawIDFromFilename(filename); ref != "" {
		return lawURLPrefix + ref
	}

	docID = strings.ReplaceAll(strings.TrimSpace(docID), " ", "")
	if docID == "" {
		return ""
	}
	if strings.HasPrefix(docID, "NL/") {
		return documentBaseURL + docID
	}
	return lawURLPrefix + docID
}

// RegURL builds the canonical public URL for a regulation, mirroring LawURL.
func RegURL(docID, filename string) string {
	if ref := RegIDFromFilename(filename); ref != "" {
		return regURLPrefix + ref
	}

	docID = strings.TrimSpace(docID)
	if docID == "" {
		return ""
	}
	if strings.HasPrefix(docID, "SF/") {
		return documentBaseURL + docID
	}
	if strings.HasPrefix(docID, "sf/") {
		return regURLPrefix + strings.TrimPrefix(docID, "sf/")
	}
	if strings.HasPrefix(docID, "forskrift/") {
		return regURLPrefix + docID
	}
	return documentBaseURL + docID
}
