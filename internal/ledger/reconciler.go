package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"LovdataScanner/internal/domain"
	"LovdataScanner/internal/ports"
)

// Reconciler executes one read-plan-write cycle against the ledger table.
// Writes happen as two batched calls: one structural (row inserts with
// template formatting), one for cell values. The two calls are not atomic
// with respect to each other; a crash between them leaves inserted rows
// unpopulated until the next run. Remote failures are not retried.
type Reconciler struct {
	table  ports.LedgerTable
	logger *slog.Logger
}

var _ ports.LedgerReconciler = (*Reconciler)(nil)

// NewReconciler wires the ledger table adapter.
func NewReconciler(table ports.LedgerTable, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{table: table, logger: logger}
}

// Reconcile reads the current ledger state, builds the full plan in memory
// and executes it.
func (r *Reconciler) Reconcile(ctx context.Context, laws []domain.Document, regsByLaw map[string][]domain.Document) (domain.ReconcileOutcome, error) {
	snap, err := ReadSnapshot(ctx, r.table)
	if err != nil {
		return domain.ReconcileOutcome{}, fmt.Errorf("read ledger snapshot: %w", err)
	}
	r.logger.Info("ledger snapshot read",
		"last_row", snap.LastRow,
		"primary_blocks", len(snap.Blocks),
		"url_rows", len(snap.URLRows))

	plan := BuildPlan(snap, laws, regsByLaw)
	r.logger.Info("write plan built",
		"block_inserts", len(plan.Inserts),
		"rows_to_write", plan.RowsWritten(),
		"ambiguous", len(plan.AmbiguousRows),
		"stale", len(plan.StaleRows))

	ops := append([]domain.RowInsert{}, plan.Inserts...)
	if plan.AppendInsert != nil {
		ops = append(ops, *plan.AppendInsert)
	}
	if len(ops) > 0 {
		if err := r.table.InsertRows(ctx, ops); err != nil {
			return domain.ReconcileOutcome{}, fmt.Errorf("insert rows: %w", err)
		}
	}

	var segments []domain.ColumnSegment
	for _, s := range plan.InsertSegments {
		segments = append(segments, columnSegments(ShiftNewSegmentStart(s.StartRow, plan.Inserts), s.Rows)...)
	}
	for _, s := range plan.AppendSegments {
		segments = append(segments, columnSegments(s.StartRow, s.Rows)...)
	}
	if len(segments) > 0 {
		if err := r.table.WriteCells(ctx, segments); err != nil {
			return domain.ReconcileOutcome{}, fmt.Errorf("write cells: %w", err)
		}
	}

	if len(plan.AmbiguousRows) > 0 {
		if err := r.table.ColorRows(ctx, plan.AmbiguousRows, domain.ColorAmbiguous); err != nil {
			return domain.ReconcileOutcome{}, fmt.Errorf("mark ambiguous rows: %w", err)
		}
	}
	if len(plan.StaleRows) > 0 {
		if err := r.table.ColorRows(ctx, plan.StaleRows, domain.ColorStale); err != nil {
			return domain.ReconcileOutcome{}, fmt.Errorf("mark stale rows: %w", err)
		}
	}

	return domain.ReconcileOutcome{
		RowsWritten:     plan.RowsWritten(),
		AmbiguousMarked: len(plan.AmbiguousRows),
		StaleMarked:     len(plan.StaleRows),
	}, nil
}

// columnSegments turns one row segment into per-column value runs for the
// batched write.
func columnSegments(start int, rows []domain.LedgerRow) []domain.ColumnSegment {
	titles := make([]string, len(rows))
	dates := make([]string, len(rows))
	urls := make([]string, len(rows))
	roles := make([]string, len(rows))
	kinds := make([]string, len(rows))

	for i, row := range rows {
		titles[i] = row.Title
		dates[i] = row.Date
		urls[i] = row.URL
		roles[i] = string(row.Role)
		if row.Role == domain.RoleSecondary {
			kinds[i] = domain.KindLabelRegulation
		}
	}

	return []domain.ColumnSegment{
		{Column: ColumnTitle, StartRow: start, Values: titles},
		{Column: ColumnDate, StartRow: start, Values: dates},
		{Column: ColumnURL, StartRow: start, Values: urls},
		{Column: ColumnRole, StartRow: start, Values: roles},
		{Column: ColumnKind, StartRow: start, Values: kinds},
	}
}
