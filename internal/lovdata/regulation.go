package lovdata

import (
	"regexp"

	"LovdataScanner/internal/domain"
)

var isoInDatokodeExpr = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// normalizeDatokode pulls the ISO date out of a Datokode value, falling back
// to the raw value when none is embedded.
func normalizeDatokode(datokode string) string {
	if datokode == "" {
		return ""
	}
	if iso := isoInDatokodeExpr.FindString(datokode); iso != "" {
		return iso
	}
	return datokode
}

// ParseRegulation decodes one regulation document. Regulations carry no force
// status of their own; they inherit placement from the laws they reference.
func ParseRegulation(filename string, raw []byte) (domain.Document, error) {
	fields, err := ParseFields(raw)
	if err != nil {
		return domain.Document{}, err
	}

	id := fields.FirstText(docIDAliases...)
	if id == "" {
		id = fields.FirstText(refIDAliases...)
	}
	if id == "" {
		id = fields.FirstText(anyIDAliases...)
	}
	if id == "" {
		id = RegIDFromFilename(filename)
	}

	date := normalizeDatokode(fields.FirstText(promulgatedAliases...))
	if date == "" {
		date = RegDateFromFilename(filename)
	}

	return domain.Document{
		Kind:       domain.KindRegulation,
		Filename:   filename,
		Title:      fields.FirstText(titleAliases...),
		ShortTitle: fields.FirstText(shortTitleAliases...),
		ID:         id,
		Date:       date,
		URL:        RegURL(id, filename),
	}, nil
}
