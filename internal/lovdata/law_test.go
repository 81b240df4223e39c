package lovdata

import (
	"testing"
	"time"

	"LovdataScanner/internal/domain"
)

var testToday = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func TestParseLaw(t *testing.T) {
	t.Parallel()

	raw := []byte(`<dokument>
	  <Tittel>Lov om testing av ting</Tittel>
	  <Korttittel>Testloven</Korttittel>
	  <dokID>NL/lov/2020-05-07-31</dokID>
	  <datePromulgated>2020-05-07</datePromulgated>
	  <ikraftFra>2020-07-01</ikraftFra>
	</dokument>`)

	law, err := ParseLaw("nl-20200507-31.xml", raw, testToday)
	if err != nil {
		t.Fatalf("ParseLaw error: %v", err)
	}

	if law.Kind != domain.KindLaw {
		t.Fatalf("unexpected kind: %s", law.Kind)
	}
	if law.Title != "Lov om testing av ting" {
		t.Fatalf("unexpected title: %q", law.Title)
	}
	if law.ShortTitle != "Testloven" {
		t.Fatalf("unexpected short title: %q", law.ShortTitle)
	}
	if law.ID != "NL/lov/2020-05-07-31" {
		t.Fatalf("unexpected id: %q", law.ID)
	}
	if law.Date != "2020-05-07" {
		t.Fatalf("unexpected date: %q", law.Date)
	}
	if law.URL != "https://lovdata.no/dokument/NL/lov/2020-05-07-31" {
		t.Fatalf("unexpected url: %q", law.URL)
	}
	if law.Status != domain.StatusInForce {
		t.Fatalf("unexpected status: %s (%s)", law.Status, law.Reason)
	}
}

func TestParseLawFallsBackToFilename(t *testing.T) {
	t.Parallel()

	raw := []byte(`<dokument><Tittel>Lov uten metadata</Tittel></dokument>`)

	law, err := ParseLaw("nl-20240115-3.xml", raw, testToday)
	if err != nil {
		t.Fatalf("ParseLaw error: %v", err)
	}

	if law.ID != "lov/2024-01-15-3" {
		t.Fatalf("unexpected id: %q", law.ID)
	}
	if law.Date != "2024-01-15" {
		t.Fatalf("unexpected date: %q", law.Date)
	}
	if law.URL != "https://lovdata.no/dokument/NL/lov/2024-01-15-3" {
		t.Fatalf("unexpected url: %q", law.URL)
	}
	if law.Status != domain.StatusAmbiguous {
		t.Fatalf("unexpected status: %s", law.Status)
	}
}

func TestParseLawFutureByDecree(t *testing.T) {
	t.Parallel()

	raw := []byte(`<dokument>
	  <Tittel>Lov som venter</Tittel>
	  <p>Loven gjelder fra den tid Kongen bestemmer.</p>
	</dokument>`)

	law, err := ParseLaw("nl-20240115-3.xml", raw, testToday)
	if err != nil {
		t.Fatalf("ParseLaw error: %v", err)
	}

	if law.Status != domain.StatusFuture {
		t.Fatalf("unexpected status: %s (%s)", law.Status, law.Reason)
	}
}

func TestParseRegulation(t *testing.T) {
	t.Parallel()

	raw := []byte(`<forskrift>
	  <Tittel>Forskrift om testing</Tittel>
	  <Datokode>FOR-2023-06-01-12</Datokode>
	</forskrift>`)

	reg, err := ParseRegulation("sf-20230601-12.xml", raw)
	if err != nil {
		t.Fatalf("ParseRegulation error: %v", err)
	}

	if reg.Kind != domain.KindRegulation {
		t.Fatalf("unexpected kind: %s", reg.Kind)
	}
	if reg.Date != "2023-06-01" {
		t.Fatalf("expected ISO date pulled out of Datokode, got %q", reg.Date)
	}
	if reg.ID != "forskrift/2023-06-01-12" {
		t.Fatalf("unexpected id: %q", reg.ID)
	}
	if reg.URL != "https://lovdata.no/dokument/SF/forskrift/2023-06-01-12" {
		t.Fatalf("unexpected url: %q", reg.URL)
	}
}
