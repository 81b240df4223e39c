package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadSnapshotEmptyLedger(t *testing.T) {
	t.Parallel()

	snap, err := ReadSnapshot(context.Background(), newFakeTable())
	require.NoError(t, err)

	require.Equal(t, TemplateRow, snap.LastRow)
	require.Empty(t, snap.PrimaryPairs)
	require.Empty(t, snap.Blocks)
	require.Empty(t, snap.URLRows)
}

func TestReadSnapshotBuildsBlocks(t *testing.T) {
	t.Parallel()

	table := newFakeTable()
	// Rows 3-6: primary uA with two secondaries, then primary uB alone.
	table.grid[ColumnDate] = []string{"", "", "2024-01-01", "", "2024-02-01", "2023-01-01"}
	table.grid[ColumnURL] = []string{"", "", "uA", "rA1", "rA2", "uB"}
	table.grid[ColumnRole] = []string{"", "", "Primary", "Secondary", "Secondary", "Primary"}
	table.grid[ColumnTitle] = []string{"", "", "Lov A", "Forskrift A1", "Forskrift A2", "Lov B"}

	snap, err := ReadSnapshot(context.Background(), table)
	require.NoError(t, err)

	require.Equal(t, 6, snap.LastRow)

	require.True(t, snap.PrimaryPairs[PrimaryKey{Date: "2024-01-01", URL: "uA"}])
	require.True(t, snap.PrimaryPairs[PrimaryKey{Date: "2023-01-01", URL: "uB"}])
	require.Len(t, snap.PrimaryPairs, 2)

	require.Equal(t, map[string]bool{"rA1": true, "rA2": true}, snap.SecondariesByPrimary["uA"])
	require.Empty(t, snap.SecondariesByPrimary["uB"])

	require.Equal(t, []PrimaryBlock{
		{URL: "uA", Row: 3, EndRow: 5},
		{URL: "uB", Row: 6, EndRow: 6},
	}, snap.Blocks)

	blockA, ok := snap.BlockFor("uA")
	require.True(t, ok)
	require.Equal(t, 5, blockA.EndRow)

	require.Equal(t, []URLRow{{3, "uA"}, {4, "rA1"}, {5, "rA2"}, {6, "uB"}}, snap.URLRows)
}
