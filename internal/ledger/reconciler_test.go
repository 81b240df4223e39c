package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"LovdataScanner/internal/domain"
)

// fakeTable is an in-memory LedgerTable. It applies inserts and writes to a
// real grid so reconciliation can be replayed against its own output.
type fakeTable struct {
	grid map[string][]string // row 1 at index 0

	insertBatches [][]domain.RowInsert
	writeBatches  int
	colored       map[domain.RowColor][]int
}

func newFakeTable() *fakeTable {
	grid := map[string][]string{}
	for _, col := range trackedColumns {
		grid[col] = nil
	}
	return &fakeTable{grid: grid, colored: map[domain.RowColor][]int{}}
}

func (f *fakeTable) ensure(col string, rows int) {
	for len(f.grid[col]) < rows {
		f.grid[col] = append(f.grid[col], "")
	}
}

func (f *fakeTable) ReadColumns(_ context.Context, cols []string, startRow, endRow int) (map[string][]string, error) {
	out := map[string][]string{}
	for _, col := range cols {
		vals := f.grid[col]
		end := endRow
		if end <= 0 || end > len(vals) {
			end = len(vals)
		}
		if startRow-1 >= end {
			out[col] = nil
			continue
		}
		out[col] = append([]string{}, vals[startRow-1:end]...)
	}
	return out, nil
}

func (f *fakeTable) InsertRows(_ context.Context, ops []domain.RowInsert) error {
	f.insertBatches = append(f.insertBatches, append([]domain.RowInsert{}, ops...))
	for _, op := range ops {
		for col := range f.grid {
			f.ensure(col, op.Row-1)
			blanks := make([]string, op.Count)
			f.grid[col] = append(f.grid[col][:op.Row-1], append(blanks, f.grid[col][op.Row-1:]...)...)
		}
	}
	return nil
}

func (f *fakeTable) WriteCells(_ context.Context, segments []domain.ColumnSegment) error {
	f.writeBatches++
	for _, seg := range segments {
		f.ensure(seg.Column, seg.StartRow-1+len(seg.Values))
		copy(f.grid[seg.Column][seg.StartRow-1:], seg.Values)
	}
	return nil
}

func (f *fakeTable) ColorRows(_ context.Context, rows []int, color domain.RowColor) error {
	f.colored[color] = append(f.colored[color], rows...)
	return nil
}

func (f *fakeTable) cell(col string, row int) string {
	if row-1 < len(f.grid[col]) {
		return f.grid[col][row-1]
	}
	return ""
}

func inForceLaw(title, date, url, id string) domain.Document {
	return domain.Document{
		Kind: domain.KindLaw, Title: title, Date: date, URL: url, ID: id,
		Status: domain.StatusInForce,
	}
}

func TestReconcilerPopulatesEmptyLedger(t *testing.T) {
	t.Parallel()

	table := newFakeTable()
	rec := NewReconciler(table, nil)

	laws := []domain.Document{
		inForceLaw("Lov A", "2024-01-01", "uA", "lov/a"),
		{Kind: domain.KindLaw, Title: "Lov B", Date: "2023-01-01", URL: "uB", ID: "lov/b",
			Status: domain.StatusAmbiguous},
	}
	regs := map[string][]domain.Document{
		"lov/a": {{Kind: domain.KindRegulation, Title: "Forskrift A1", Date: "2024-02-01", URL: "rA1"}},
	}

	outcome, err := rec.Reconcile(context.Background(), laws, regs)
	require.NoError(t, err)
	require.Equal(t, domain.ReconcileOutcome{RowsWritten: 3, AmbiguousMarked: 1}, outcome)

	// Rows 3-5: Lov A, its regulation, Lov B.
	require.Equal(t, "Lov A", table.cell(ColumnTitle, 3))
	require.Equal(t, "2024-01-01", table.cell(ColumnDate, 3))
	require.Equal(t, "uA", table.cell(ColumnURL, 3))
	require.Equal(t, "Primary", table.cell(ColumnRole, 3))
	require.Equal(t, "", table.cell(ColumnKind, 3))

	require.Equal(t, "Forskrift A1", table.cell(ColumnTitle, 4))
	require.Equal(t, "Secondary", table.cell(ColumnRole, 4))
	require.Equal(t, domain.KindLabelRegulation, table.cell(ColumnKind, 4))

	require.Equal(t, "uB", table.cell(ColumnURL, 5))
	require.Equal(t, "Primary", table.cell(ColumnRole, 5))

	require.Equal(t, []int{5}, table.colored[domain.ColorAmbiguous])
	require.Empty(t, table.colored[domain.ColorStale])
}

func TestReconcilerSecondRunIsIdempotent(t *testing.T) {
	t.Parallel()

	table := newFakeTable()
	rec := NewReconciler(table, nil)

	laws := []domain.Document{
		inForceLaw("Lov A", "2024-01-01", "uA", "lov/a"),
		inForceLaw("Lov B", "2023-01-01", "uB", "lov/b"),
	}
	regs := map[string][]domain.Document{
		"lov/a": {{Kind: domain.KindRegulation, Title: "Forskrift A1", URL: "rA1"}},
	}

	_, err := rec.Reconcile(context.Background(), laws, regs)
	require.NoError(t, err)

	outcome, err := rec.Reconcile(context.Background(), laws, regs)
	require.NoError(t, err)
	require.Equal(t, domain.ReconcileOutcome{}, outcome)

	// No second structural or value batch was issued.
	require.Len(t, table.insertBatches, 1)
	require.Equal(t, 1, table.writeBatches)
}

func TestReconcilerInsertsRegulationUnderExistingBlock(t *testing.T) {
	t.Parallel()

	table := newFakeTable()
	rec := NewReconciler(table, nil)

	laws := []domain.Document{
		inForceLaw("Lov A", "2024-01-01", "uA", "lov/a"),
		inForceLaw("Lov B", "2023-01-01", "uB", "lov/b"),
	}
	regs := map[string][]domain.Document{
		"lov/a": {{Kind: domain.KindRegulation, Title: "Forskrift A1", URL: "rA1"}},
	}
	_, err := rec.Reconcile(context.Background(), laws, regs)
	require.NoError(t, err)

	// A new regulation appears under Lov A.
	regs["lov/a"] = append(regs["lov/a"],
		domain.Document{Kind: domain.KindRegulation, Title: "Forskrift A2", URL: "rA2"})

	outcome, err := rec.Reconcile(context.Background(), laws, regs)
	require.NoError(t, err)
	require.Equal(t, domain.ReconcileOutcome{RowsWritten: 1}, outcome)

	// Lov A's block was rows 3-4; the insert lands at 5 and pushes Lov B
	// down to 6.
	require.Equal(t, [][]domain.RowInsert{
		{{Row: 3, Count: 3}},
		{{Row: 5, Count: 1}},
	}, table.insertBatches)

	require.Equal(t, "Forskrift A2", table.cell(ColumnTitle, 5))
	require.Equal(t, "rA2", table.cell(ColumnURL, 5))
	require.Equal(t, "Secondary", table.cell(ColumnRole, 5))
	require.Equal(t, domain.KindLabelRegulation, table.cell(ColumnKind, 5))

	require.Equal(t, "uB", table.cell(ColumnURL, 6))
}

func TestReconcilerMarksVanishedRowsStale(t *testing.T) {
	t.Parallel()

	table := newFakeTable()
	rec := NewReconciler(table, nil)

	laws := []domain.Document{
		inForceLaw("Lov A", "2024-01-01", "uA", "lov/a"),
		inForceLaw("Lov B", "2023-01-01", "uB", "lov/b"),
	}
	regs := map[string][]domain.Document{
		"lov/a": {{Kind: domain.KindRegulation, Title: "Forskrift A1", URL: "rA1"}},
	}
	_, err := rec.Reconcile(context.Background(), laws, regs)
	require.NoError(t, err)

	// Lov B disappears from the upstream package.
	outcome, err := rec.Reconcile(context.Background(), laws[:1], regs)
	require.NoError(t, err)
	require.Equal(t, domain.ReconcileOutcome{StaleMarked: 1}, outcome)

	// Layout was uA(3), rA1(4), uB(5): only uB's row is marked.
	require.Equal(t, []int{5}, table.colored[domain.ColorStale])
}
