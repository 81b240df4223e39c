// Package ledger reconciles a freshly classified document set into the
// persisted tabular ledger. The ledger is a flat ordered sequence of rows,
// semantically organized into contiguous blocks: one Primary row followed by
// the Secondary rows belonging to it. Block membership is positional, so the
// reconciler rebuilds an explicit block model on every run instead of
// mutating positions in place.
package ledger

import (
	"context"
	"fmt"
	"strings"

	"LovdataScanner/internal/ports"
)

// Ledger column letters within the tab.
const (
	ColumnTitle = "C"
	ColumnKind  = "E"
	ColumnDate  = "H"
	ColumnRole  = "M"
	ColumnURL   = "S"
)

const (
	// TemplateRow supplies formatting for inserted rows.
	TemplateRow = 2
	// FirstDataRow is where ledger content starts.
	FirstDataRow = 3
)

// trackedColumns decide the last used row: the highest row with a value in
// any of them.
var trackedColumns = []string{ColumnTitle, ColumnDate, ColumnURL, ColumnRole, ColumnKind}

// PrimaryKey is the dedup identity of a Primary row.
type PrimaryKey struct {
	Date string
	URL  string
}

// URLRow records where a url currently sits, for staleness marking.
type URLRow struct {
	Row int
	URL string
}

// PrimaryBlock is one Primary row plus the span of Secondary rows under it.
// EndRow is the last row of the block (inclusive).
type PrimaryBlock struct {
	URL    string
	Row    int
	EndRow int
}

// Snapshot is the in-memory view of the persisted ledger, read once per run
// and mutated only in memory while the plan is built.
type Snapshot struct {
	LastRow              int
	PrimaryPairs         map[PrimaryKey]bool
	SecondariesByPrimary map[string]map[string]bool
	URLRows              []URLRow
	Blocks               []PrimaryBlock

	blockByURL map[string]PrimaryBlock
}

// BlockFor locates the existing block anchored by a Primary url.
func (s *Snapshot) BlockFor(url string) (PrimaryBlock, bool) {
	b, ok := s.blockByURL[url]
	return b, ok
}

func newSnapshot(lastRow int) *Snapshot {
	return &Snapshot{
		LastRow:              lastRow,
		PrimaryPairs:         map[PrimaryKey]bool{},
		SecondariesByPrimary: map[string]map[string]bool{},
		blockByURL:           map[string]PrimaryBlock{},
	}
}

// ReadSnapshot loads the current ledger state: last used row, Primary dedup
// pairs, Secondary urls grouped by enclosing Primary, url positions and the
// block spans. Rows are walked top to bottom tracking the current enclosing
// Primary.
func ReadSnapshot(ctx context.Context, table ports.LedgerTable) (*Snapshot, error) {
	tracked, err := table.ReadColumns(ctx, trackedColumns, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("read tracked columns: %w", err)
	}

	lastRow := TemplateRow
	for _, col := range tracked {
		for i, v := range col {
			if strings.TrimSpace(v) != "" && i+1 > lastRow {
				lastRow = i + 1
			}
		}
	}

	snap := newSnapshot(lastRow)
	if lastRow < FirstDataRow {
		return snap, nil
	}

	data, err := table.ReadColumns(ctx, []string{ColumnDate, ColumnURL, ColumnRole}, FirstDataRow, lastRow)
	if err != nil {
		return nil, fmt.Errorf("read ledger rows: %w", err)
	}

	dates := data[ColumnDate]
	urls := data[ColumnURL]
	roles := data[ColumnRole]

	currentPrimaryURL := ""
	var primaryRows []URLRow

	n := max(len(dates), max(len(urls), len(roles)))
	for i := 0; i < n; i++ {
		row := FirstDataRow + i
		date := at(dates, i)
		url := at(urls, i)
		role := strings.ToLower(at(roles, i))

		if url != "" {
			snap.URLRows = append(snap.URLRows, URLRow{Row: row, URL: url})
		}

		if role == "primary" {
			currentPrimaryURL = url
			if date != "" && url != "" {
				snap.PrimaryPairs[PrimaryKey{Date: date, URL: url}] = true
			}
			if url != "" && snap.SecondariesByPrimary[url] == nil {
				snap.SecondariesByPrimary[url] = map[string]bool{}
			}
			primaryRows = append(primaryRows, URLRow{Row: row, URL: url})
			continue
		}

		if currentPrimaryURL != "" && url != "" {
			if snap.SecondariesByPrimary[currentPrimaryURL] == nil {
				snap.SecondariesByPrimary[currentPrimaryURL] = map[string]bool{}
			}
			snap.SecondariesByPrimary[currentPrimaryURL][url] = true
		}
	}

	for i, p := range primaryRows {
		endRow := lastRow
		if i+1 < len(primaryRows) {
			endRow = primaryRows[i+1].Row - 1
		}
		block := PrimaryBlock{URL: p.URL, Row: p.Row, EndRow: endRow}
		snap.Blocks = append(snap.Blocks, block)
		if p.URL != "" {
			snap.blockByURL[p.URL] = block
		}
	}

	return snap, nil
}

func at(values []string, i int) string {
	if i < len(values) {
		return strings.TrimSpace(values[i])
	}
	return ""
}
