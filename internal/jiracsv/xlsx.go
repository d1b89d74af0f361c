// =============================================================================
// Jira to Gantt Converter - Workbook Export Reader
// =============================================================================
//
// This module reads XLSX issue exports. The tracker's "Export to Excel"
// produces a single-sheet workbook whose first row is the header row, with
// the same columns as the CSV export.
//
// Unlike the CSV reader, workbook rows are not strict about field counts:
// the spreadsheet layer drops empty trailing cells, so a short row simply
// decodes those columns as empty.
//
// =============================================================================

package jiracsv

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// =============================================================================
// WORKBOOK READER
// =============================================================================

// Workbook streams rows from the first sheet of an XLSX export. The sheet
// is read fully on open; issue exports are small.
type Workbook struct {
	rows      [][]string
	headers   []string
	row       []string
	rowNumber int
	cursor    int
}

// OpenWorkbook opens an XLSX export and positions the reader on its first
// sheet.
//
// PARAMETERS:
//   - path: The path to the workbook file.
//
// RETURNS:
//   - A ready-to-iterate Workbook.
//   - An error if the file cannot be opened or has no sheets.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open workbook '%s': %w", path, err)
	}
	defer f.Close()

	// Issue exports have a single sheet; take the first one.
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook '%s' has no sheets", path)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	wb := &Workbook{rows: rows}
	if len(rows) > 0 {
		wb.headers = rows[0]
		wb.rowNumber = 1
		wb.cursor = 1
	}
	return wb, nil
}

// Headers returns the header row.
func (w *Workbook) Headers() []string {
	return w.headers
}

// Next advances to the next non-blank data row.
func (w *Workbook) Next() bool {
	for w.cursor < len(w.rows) {
		row := w.rows[w.cursor]
		w.cursor++
		w.rowNumber++

		// Blank spreadsheet rows are not records.
		if isRowBlank(row) {
			continue
		}

		w.row = row
		return true
	}
	return false
}

// Row returns the current data row.
func (w *Workbook) Row() []string {
	return w.row
}

// RowNumber returns the 1-indexed current sheet row number.
func (w *Workbook) RowNumber() int {
	return w.rowNumber
}

// Err always returns nil; workbook errors surface at open time.
func (w *Workbook) Err() error {
	return nil
}

// Close is a no-op; the workbook file is closed once its rows are read.
func (w *Workbook) Close() error {
	return nil
}

// isRowBlank reports whether every cell of a row is empty.
func isRowBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
