package domain

// Role marks a ledger row as the anchor of a block or a member of one.
type Role string

const (
	RolePrimary   Role = "Primary"
	RoleSecondary Role = "Secondary"
)

// KindLabelRegulation is written to the kind column for Secondary rows.
// Primary rows leave the kind column blank.
const KindLabelRegulation = "Rule/Regulation (non-EU)"

// LedgerRow is one persisted tuple of the tabular ledger.
type LedgerRow struct {
	Title string
	Date  string
	URL   string
	Role  Role
}

// RowInsert asks the ledger table for Count blank rows starting at Row
// (1-based), formatted like the template row.
type RowInsert struct {
	Row   int
	Count int
}

// ColumnSegment is a vertical run of cell values written into one column
// starting at StartRow.
type ColumnSegment struct {
	Column   string
	StartRow int
	Values   []string
}

// ReconcileOutcome reports what one reconciliation pass changed.
type ReconcileOutcome struct {
	RowsWritten     int
	AmbiguousMarked int
	StaleMarked     int
}

// RowColor is an RGB background marker applied to whole ledger rows.
type RowColor struct {
	Red   float64
	Green float64
	Blue  float64
}

// Markers for rows needing attention: ambiguous rows are flagged for manual
// review, stale rows no longer exist upstream.
var (
	ColorAmbiguous = RowColor{Red: 1.0, Green: 0.85, Blue: 0.4}
	ColorStale     = RowColor{Red: 0, Green: 0, Blue: 0}
)
