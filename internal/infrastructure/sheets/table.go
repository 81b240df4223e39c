// Package sheets adapts the Google Sheets v4 API to the LedgerTable port.
package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"LovdataScanner/internal/config"
	"LovdataScanner/internal/domain"
	"LovdataScanner/internal/ledger"
	"LovdataScanner/internal/ports"
)

// Table addresses one named tab of one spreadsheet.
type Table struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	tab           string
	sheetID       int64
	logger        *slog.Logger
}

var _ ports.LedgerTable = (*Table)(nil)

// NewTable authenticates with the service-account credentials and resolves
// the numeric sheet id of the configured tab.
func NewTable(ctx context.Context, cfg config.SheetConfig, logger *slog.Logger) (*Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	creds, err := google.CredentialsFromJSON(ctx, []byte(cfg.ServiceAccountJSON), sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}

	svc, err := sheetsapi.NewService(ctx, option.WithTokenSource(creds.TokenSource))
	if err != nil {
		return nil, fmt.Errorf("build sheets client: %w", err)
	}

	ss, err := svc.Spreadsheets.Get(cfg.SpreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get spreadsheet %s: %w", cfg.SpreadsheetID, err)
	}

	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == cfg.Tab {
			return &Table{
				svc:           svc,
				spreadsheetID: cfg.SpreadsheetID,
				tab:           cfg.Tab,
				sheetID:       s.Properties.SheetId,
				logger:        logger,
			}, nil
		}
	}

	return nil, fmt.Errorf("tab %q not found in spreadsheet %s", cfg.Tab, cfg.SpreadsheetID)
}

// ReadColumns batch-reads the requested column letters. endRow <= 0 reads to
// the end of each column.
func (t *Table) ReadColumns(ctx context.Context, cols []string, startRow, endRow int) (map[string][]string, error) {
	ranges := make([]string, len(cols))
	for i, col := range cols {
		if endRow > 0 {
			ranges[i] = fmt.Sprintf("%s!%s%d:%s%d", t.tab, col, startRow, col, endRow)
		} else {
			ranges[i] = fmt.Sprintf("%s!%s%d:%s", t.tab, col, startRow, col)
		}
	}

	res, err := t.svc.Spreadsheets.Values.BatchGet(t.spreadsheetID).Ranges(ranges...).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("batch get %v: %w", ranges, err)
	}

	out := make(map[string][]string, len(cols))
	for i, col := range cols {
		var values []string
		if i < len(res.ValueRanges) {
			for _, row := range res.ValueRanges[i].Values {
				if len(row) > 0 {
					values = append(values, fmt.Sprint(row[0]))
				} else {
					values = append(values, "")
				}
			}
		}
		out[col] = values
	}

	return out, nil
}

// InsertRows performs all structural inserts in one batchUpdate, copying
// formatting from the template row onto every inserted row. Op order is
// preserved; the caller supplies them bottom-to-top.
func (t *Table) InsertRows(ctx context.Context, ops []domain.RowInsert) error {
	var requests []*sheetsapi.Request
	for _, op := range ops {
		if op.Count <= 0 {
			continue
		}
		start := int64(op.Row - 1)
		end := start + int64(op.Count)

		requests = append(requests,
			&sheetsapi.Request{
				InsertDimension: &sheetsapi.InsertDimensionRequest{
					Range: &sheetsapi.DimensionRange{
						SheetId:    t.sheetID,
						Dimension:  "ROWS",
						StartIndex: start,
						EndIndex:   end,
					},
					InheritFromBefore: false,
				},
			},
			&sheetsapi.Request{
				CopyPaste: &sheetsapi.CopyPasteRequest{
					Source: &sheetsapi.GridRange{
						SheetId:       t.sheetID,
						StartRowIndex: ledger.TemplateRow - 1,
						EndRowIndex:   ledger.TemplateRow,
					},
					Destination: &sheetsapi.GridRange{
						SheetId:       t.sheetID,
						StartRowIndex: start,
						EndRowIndex:   end,
					},
					PasteType:        "PASTE_FORMAT",
					PasteOrientation: "NORMAL",
				},
			},
		)
	}
	if len(requests) == 0 {
		return nil
	}

	t.logger.Info("inserting rows", "requests", len(requests))
	_, err := t.svc.Spreadsheets.BatchUpdate(t.spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("batch insert rows: %w", err)
	}
	return nil
}

// WriteCells performs all value writes in one values.batchUpdate.
func (t *Table) WriteCells(ctx context.Context, segments []domain.ColumnSegment) error {
	var data []*sheetsapi.ValueRange
	for _, seg := range segments {
		if len(seg.Values) == 0 {
			continue
		}
		values := make([][]interface{}, len(seg.Values))
		for i, v := range seg.Values {
			values[i] = []interface{}{v}
		}
		endRow := seg.StartRow + len(seg.Values) - 1
		data = append(data, &sheetsapi.ValueRange{
			Range:  fmt.Sprintf("%s!%s%d:%s%d", t.tab, seg.Column, seg.StartRow, seg.Column, endRow),
			Values: values,
		})
	}
	if len(data) == 0 {
		return nil
	}

	t.logger.Info("writing cell values", "ranges", len(data))
	_, err := t.svc.Spreadsheets.Values.BatchUpdate(t.spreadsheetID, &sheetsapi.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("batch write values: %w", err)
	}
	return nil
}

// ColorRows sets the background color of whole 1-based rows in one
// batchUpdate.
func (t *Table) ColorRows(ctx context.Context, rows []int, color domain.RowColor) error {
	if len(rows) == 0 {
		return nil
	}

	requests := make([]*sheetsapi.Request, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, &sheetsapi.Request{
			RepeatCell: &sheetsapi.RepeatCellRequest{
				Range: &sheetsapi.GridRange{
					SheetId:       t.sheetID,
					StartRowIndex: int64(row - 1),
					EndRowIndex:   int64(row),
				},
				Cell: &sheetsapi.CellData{
					UserEnteredFormat: &sheetsapi.CellFormat{
						BackgroundColor: &sheetsapi.Color{
							Red:   color.Red,
							Green: color.Green,
							Blue:  color.Blue,
						},
					},
				},
				Fields: "userEnteredFormat.backgroundColor",
			},
		})
	}

	t.logger.Info("coloring rows", "rows", len(rows))
	_, err := t.svc.Spreadsheets.BatchUpdate(t.spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("batch color rows: %w", err)
	}
	return nil
}
