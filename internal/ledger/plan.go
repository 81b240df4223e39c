package ledger

import (
	"sort"
	"strings"

	"LovdataScanner/internal/domain"
)

// Segment is a contiguous run of rows written starting at StartRow.
type Segment struct {
	StartRow int
	Rows     []domain.LedgerRow
}

// Plan is the full set of writes one run performs against the ledger,
// computed in memory before anything is executed. Coordinate shifting is a
// pure function over Inserts (see ShiftNewSegmentStart / ShiftExistingRow),
// never an implicit side effect.
type Plan struct {
	// Inserts are the structural row inserts under existing Primary blocks,
	// ordered bottom-to-top so earlier-computed row numbers for lower
	// insertions stay valid when the batch executes.
	Inserts []domain.RowInsert

	// InsertSegments carry the values for Inserts, addressed by their
	// original (pre-shift) start rows.
	InsertSegments []Segment

	// AppendInsert reserves rows for the append block at the bottom, already
	// at final coordinates.
	AppendInsert *domain.RowInsert

	// AppendSegments carry the appended values, at final coordinates.
	AppendSegments []Segment

	// AmbiguousRows and StaleRows are final row coordinates to mark.
	AmbiguousRows []int
	StaleRows     []int
}

// RowsWritten counts every row the plan will populate.
func (p *Plan) RowsWritten() int {
	n := 0
	for _, s := range p.InsertSegments {
		n += len(s.Rows)
	}
	for _, s := range p.AppendSegments {
		n += len(s.Rows)
	}
	return n
}

// ShiftNewSegmentStart resolves the final start row of a newly inserted
// segment planned at start: only inserts strictly above it shift it down. The
// segment's own insert must not shift it, or the values land one row below
// the blank rows they were meant to fill.
func ShiftNewSegmentStart(start int, inserts []domain.RowInsert) int {
	shift := 0
	for _, op := range inserts {
		if op.Row < start {
			shift += op.Count
		}
	}
	return start + shift
}

// ShiftExistingRow resolves the final row of a row that already existed
// before the inserts. An insert exactly at its row number pushes the occupant
// down, hence <= where ShiftNewSegmentStart uses <.
func ShiftExistingRow(row int, inserts []domain.RowInsert) int {
	shift := 0
	for _, op := range inserts {
		if op.Row <= row {
			shift += op.Count
		}
	}
	return row + shift
}

// BuildPlan classifies each law against the snapshot and plans the minimal
// writes. Laws whose (date, url) pair already anchors a block only contribute
// newly discovered regulations, inserted right after the end of that block to
// keep it contiguous; everything else is appended at the bottom as one block
// per law. Secondary dedup is scoped to the enclosing Primary, not global: a
// regulation may legitimately appear under several laws.
//
// The snapshot is mutated in memory as rows are claimed, which is what makes
// a second run over unchanged input a no-op.
func BuildPlan(snap *Snapshot, laws []domain.Document, regsByLaw map[string][]domain.Document) *Plan {
	plan := &Plan{}

	var appendRows []domain.LedgerRow
	var ambiguousIdx []int
	scraped := map[string]bool{}

	pendingRegs := map[string][]domain.LedgerRow{}
	var pendingOrder []string

	for _, law := range laws {
		url := strings.TrimSpace(law.URL)
		if url != "" {
			scraped[url] = true
		}

		key := PrimaryKey{Date: law.Date, URL: url}
		exists := law.Date != "" && url != "" && snap.PrimaryPairs[key]

		if !exists {
			appendRows = append(appendRows, domain.LedgerRow{
				Title: law.Title, Date: law.Date, URL: url, Role: domain.RolePrimary,
			})
			if law.Status == domain.StatusAmbiguous {
				ambiguousIdx = append(ambiguousIdx, len(appendRows)-1)
			}
			if law.Date != "" && url != "" {
				snap.PrimaryPairs[key] = true
			}
		}

		lawKey := strings.TrimPrefix(law.ID, "NL/")
		attached := snap.SecondariesByPrimary[url]
		seenThisLaw := map[string]bool{}

		for _, reg := range regsByLaw[lawKey] {
			regURL := strings.TrimSpace(reg.URL)
			if regURL != "" {
				scraped[regURL] = true
			}
			if regURL != "" && (attached[regURL] || seenThisLaw[regURL]) {
				continue
			}

			row := domain.LedgerRow{Title: reg.Title, Date: reg.Date, URL: regURL, Role: domain.RoleSecondary}
			if exists {
				if _, ok := pendingRegs[url]; !ok {
					pendingOrder = append(pendingOrder, url)
				}
				pendingRegs[url] = append(pendingRegs[url], row)
			} else {
				appendRows = append(appendRows, row)
				if regURL != "" && url != "" {
					if snap.SecondariesByPrimary[url] == nil {
						snap.SecondariesByPrimary[url] = map[string]bool{}
					}
					snap.SecondariesByPrimary[url][regURL] = true
				}
			}

			if regURL != "" {
				seenThisLaw[regURL] = true
			}
		}
	}

	// Anchor each pending group after the end of its block. A block that can
	// no longer be located falls back to the append segment.
	type anchored struct {
		row  int
		url  string
		rows []domain.LedgerRow
	}
	var groups []anchored
	for _, url := range pendingOrder {
		block, ok := snap.BlockFor(url)
		if !ok {
			appendRows = append(appendRows, pendingRegs[url]...)
			continue
		}
		groups = append(groups, anchored{row: block.EndRow + 1, url: url, rows: pendingRegs[url]})
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].row > groups[j].row })

	totalInserted := 0
	for _, g := range groups {
		plan.Inserts = append(plan.Inserts, domain.RowInsert{Row: g.row, Count: len(g.rows)})
		plan.InsertSegments = append(plan.InsertSegments, Segment{StartRow: g.row, Rows: g.rows})
		totalInserted += len(g.rows)

		claimed := snap.SecondariesByPrimary[g.url]
		if claimed == nil {
			claimed = map[string]bool{}
			snap.SecondariesByPrimary[g.url] = claimed
		}
		for _, r := range g.rows {
			if r.URL != "" {
				claimed[r.URL] = true
			}
		}
	}

	if len(appendRows) > 0 {
		start := snap.LastRow + totalInserted + 1
		if start < FirstDataRow {
			start = FirstDataRow
		}
		plan.AppendInsert = &domain.RowInsert{Row: start, Count: len(appendRows)}
		plan.AppendSegments = append(plan.AppendSegments, Segment{StartRow: start, Rows: appendRows})
		for _, idx := range ambiguousIdx {
			plan.AmbiguousRows = append(plan.AmbiguousRows, start+idx)
		}
	}

	for _, ur := range snap.URLRows {
		if !scraped[ur.URL] {
			plan.StaleRows = append(plan.StaleRows, ShiftExistingRow(ur.Row, plan.Inserts))
		}
	}

	return plan
}
