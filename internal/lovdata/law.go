// Package lovdata turns raw archive documents from the Lovdata public-data
// API into classified domain documents.
package lovdata

import (
	"time"

	"LovdataScanner/internal/classify"
	"LovdataScanner/internal/domain"
)

// Alias lists for structured-field lookup. The archives mix English and
// Norwegian (bokmål and nynorsk) tag names across schema generations; every
// recognized alias for a logical field is enumerated here so the lookup is
// testable rather than scattered over call sites.
var (
	titleAliases      = []string{"title", "Titel", "Tittel"}
	shortTitleAliases = []string{"shortTitle", "Korttittel"}

	docIDAliases = []string{"dokID", "DokumentID", "dokumentID"}
	refIDAliases = []string{"refID", "RefID"}
	anyIDAliases = []string{"id"}

	promulgatedAliases   = []string{"datePromulgated", "Datokode", "datokode"}
	accessRemovedAliases = []string{"accessRemovedDate", "access_removedDate"}

	inForceRawAliases = []string{"inForce", "Ikke i kraft", "Ikkje i kraft", "Ikrafttredelse", "Ikrafttreding"}

	// Tags naming the original entry-into-force date. Deliberately excludes
	// the last-amended aliases below: those track subsequent amendments, not
	// the original entry into force.
	inForceFromAliases = []string{
		"inForceFrom", "effectiveFrom", "ikrafttredelse",
		"ikraftFra", "ikraftFraDato", "iKraftFra", "ikrafttredelseDato",
	}
	lastAmendedInForceAliases = []string{
		"lastAmendedInForceFrom", "Ikrafttredelse av siste endring", "Ikrafttreding av siste endring",
	}
)

// ParseLaw decodes one law document, gathers force-status evidence and
// classifies it. today is the classification reference date.
func ParseLaw(filename string, raw []byte, today time.Time) (domain.Document, error) {
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
		id = LawIDFromFilename(filename)
	}

	date := fields.FirstText(promulgatedAliases...)
	if date == "" {
		date = LawDateFromFilename(filename)
	}

	result := classify.Classify(classify.Evidence{
		InForceRaw:        fields.FirstText(inForceRawAliases...),
		AccessRemovedDate: fields.FirstText(accessRemovedAliases...),
		TagDates:          fields.AllText(inForceFromAliases...),
		FullText:          fields.FullText(),
	}, today)

	return domain.Document{
		Kind:       domain.KindLaw,
		Filename:   filename,
		Title:      fields.FirstText(titleAliases...),
		ShortTitle: fields.FirstText(shortTitleAliases...),
		ID:         id,
		Date:       date,
		URL:        LawURL(id, filename),
		Status:     result.Status,
		Reason:     result.Reason,
	}, nil
}
