package domain

import "time"

// Status enumerates the legal-force states assigned by the classifier.
type Status string

const (
	StatusInForce    Status = "in_force"
	StatusNotInForce Status = "not_in_force"
	StatusFuture     Status = "future"
	StatusAmbiguous  Status = "ambiguous"
)

// Kind separates statute-like documents from the regulations attached to them.
type Kind string

const (
	KindLaw        Kind = "law"
	KindRegulation Kind = "reg"
)

// Document is a core entity built fresh from source bytes on every run.
// It is never mutated after classification and is discarded at end of run;
// only its derived ledger row is persisted.
type Document struct {
	Kind       Kind
	Filename   string
	Title      string
	ShortTitle string
	ID         string
	Date       string // ISO YYYY-MM-DD
	URL        string
	Status     Status
	Reason     string
}

// RunSummary is the structured result of one scrape run.
type RunSummary struct {
	LawsKept        int
	RowsWritten     int
	AmbiguousMarked int
	StaleMarked     int
	StartedAt       time.Time
	FinishedAt      time.Time
}
