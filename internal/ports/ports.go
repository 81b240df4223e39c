package ports

import (
	"context"
	"time"

	"LovdataScanner/internal/domain"
)

// ArchiveSource downloads one named public-data package and extracts it into
// a filename -> raw bytes mapping.
type ArchiveSource interface {
	FetchPackage(ctx context.Context, name string) (map[string][]byte, error)
}

// LedgerTable is the remote tabular store the reconciler writes to. All rows
// are 1-based within a single named tab.
type LedgerTable interface {
	// ReadColumns returns, per requested column letter, the cell values from
	// startRow through endRow. endRow <= 0 reads to the end of the column.
	// Trailing empty cells may be omitted by the backend; callers index
	// defensively.
	ReadColumns(ctx context.Context, cols []string, startRow, endRow int) (map[string][]string, error)

	// InsertRows executes all structural inserts in one batch, copying
	// formatting from the template row. Ops must already be ordered
	// bottom-to-top by the caller.
	InsertRows(ctx context.Context, ops []domain.RowInsert) error

	// WriteCells executes all cell-value writes in one batch.
	WriteCells(ctx context.Context, segments []domain.ColumnSegment) error

	// ColorRows sets the background color of whole rows.
	ColorRows(ctx context.Context, rows []int, color domain.RowColor) error
}

// LedgerReconciler merges one run's classified laws and their attached
// regulations into the persisted ledger without duplicating rows.
type LedgerReconciler interface {
	Reconcile(ctx context.Context, laws []domain.Document, regsByLaw map[string][]domain.Document) (domain.ReconcileOutcome, error)
}

// RunRepository persists run summaries and per-document classification audit
// records for history and debugging.
type RunRepository interface {
	SaveRun(ctx context.Context, run domain.RunSummary) error
	SaveClassifications(ctx context.Context, docs []domain.Document) error
}

// Notifier streams run digests to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
