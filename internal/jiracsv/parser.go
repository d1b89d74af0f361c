// =============================================================================
// Jira to Gantt Converter - Issue Export Parser Module
// =============================================================================
//
// This module reads tracker issue exports and decodes them into typed issue
// records. It handles the two export formats produced by the tracker:
//   - CSV exports (the common case, also accepted on standard input)
//   - XLSX exports (see xlsx.go)
//
// FEATURES:
//   - Memory-efficient streaming, one row at a time
//   - Header-based column lookup, independent of column order
//   - Strict field counts for CSV (a ragged row is a parse error)
//   - UTF-8 byte-order-mark tolerance
//
// The parser deliberately does not trim or normalize cell values; record
// fields carry exactly what the export contains. Downstream identity checks
// (assignee deduplication, status comparison) are exact string matches.
//
// =============================================================================

package jiracsv

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// =============================================================================
// COLUMN NAMES
// =============================================================================

// Column headers as written by the tracker export. Lookup is exact.
const (
	ColumnKey      = "Issue key"
	ColumnStatus   = "Status"
	ColumnAssignee = "Assignee"
	ColumnEstimate = "Original Estimate"
	ColumnCreated  = "Created"
)

// StatusClosed is the status value that marks an issue as no longer open.
const StatusClosed = "Closed"

// =============================================================================
// RECORD STRUCTURE
// =============================================================================

// Record is one decoded issue row.
type Record struct {
	// Key is the issue key, e.g. "PROJ-123". A record with an empty key is
	// a continuation or padding row and is skipped by the conversion.
	Key string

	// Status is the workflow status, e.g. "Open" or "Closed".
	Status string

	// Assignee is the resource title. May be empty for unassigned issues.
	Assignee string

	// Estimate is the original estimate in seconds, or nil when the issue
	// has none or the export lacks the column.
	Estimate *int64

	// Created is the raw creation timestamp cell. It is parsed later with
	// the profile's date format; rows skipped for an empty key never have
	// their date parsed.
	Created string
}

// =============================================================================
// ROW SOURCE INTERFACE
// =============================================================================

// RowSource is a streaming source of raw export rows. Both the CSV reader
// and the XLSX reader implement it.
//
// USAGE:
//   for source.Next() {
//       row := source.Row()
//       // Process the row...
//   }
//   if err := source.Err(); err != nil {
//       return err
//   }
type RowSource interface {
	// Headers returns the header row. Empty for an empty input.
	Headers() []string

	// Next advances to the next data row. Returns false at end of input or
	// on error.
	Next() bool

	// Row returns the current data row. Valid only after Next returned true.
	Row() []string

	// RowNumber returns the 1-indexed number of the current row, counting
	// the header row as row 1.
	RowNumber() int

	// Err returns the error that stopped iteration, or nil at clean EOF.
	Err() error

	// Close releases the underlying input.
	Close() error
}

// =============================================================================
// CSV READER
// =============================================================================

// Reader streams rows from a CSV export. Field counts are strict: every
// data row must have exactly as many fields as the header row.
type Reader struct {
	reader    *csv.Reader
	closer    io.Closer
	headers   []string
	row       []string
	rowNumber int
	err       error
}

// NewReader creates a Reader over an open CSV stream. The header row is
// consumed immediately; an input with no rows at all yields empty headers
// and no data rows, which the conversion turns into an empty document.
//
// PARAMETERS:
//   - r: The CSV stream. If it implements io.Closer, Close closes it.
//
// RETURNS:
//   - A ready-to-iterate Reader.
//   - An error if the header row is malformed.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)

	reader := &Reader{reader: cr}
	if c, ok := r.(io.Closer); ok {
		reader.closer = c
	}

	headers, err := cr.Read()
	if err == io.EOF {
		return reader, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	if len(headers) > 0 {
		// Exports written by Windows tools start with a byte order mark.
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}

	reader.headers = headers
	reader.rowNumber = 1
	return reader, nil
}

// Headers returns the header row.
func (r *Reader) Headers() []string {
	return r.headers
}

// Next advances to the next data row.
func (r *Reader) Next() bool {
	if r.err != nil || r.headers == nil {
		return false
	}

	row, err := r.reader.Read()
	if err == io.EOF {
		return false
	}
	if err != nil {
		r.err = fmt.Errorf("error reading row %d: %w", r.rowNumber+1, err)
		return false
	}

	r.rowNumber++
	r.row = row
	return true
}

// Row returns the current data row.
func (r *Reader) Row() []string {
	return r.row
}

// RowNumber returns the 1-indexed current row number.
func (r *Reader) RowNumber() int {
	return r.rowNumber
}

// Err returns the error that stopped iteration, if any.
func (r *Reader) Err() error {
	return r.err
}

// Close closes the underlying stream when it is closable.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// =============================================================================
// RECORD DECODER
// =============================================================================

// Decoder turns raw rows into Records using header-based column lookup.
type Decoder struct {
	keyIdx      int
	statusIdx   int
	assigneeIdx int
	estimateIdx int // -1 when the export has no estimate column
	createdIdx  int
}

// NewDecoder builds a Decoder from a header row.
//
// PARAMETERS:
//   - headers: The header row from a RowSource.
//
// RETURNS:
//   - A Decoder mapping the required columns.
//   - An error naming the first missing required column. The estimate
//     column is optional; without it every record decodes with no estimate.
func NewDecoder(headers []string) (*Decoder, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		// First occurrence wins for duplicated headers.
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}

	required := func(name string) (int, error) {
		i, ok := index[name]
		if !ok {
			return 0, fmt.Errorf("input has no %q column", name)
		}
		return i, nil
	}

	var d Decoder
	var err error
	if d.keyIdx, err = required(ColumnKey); err != nil {
		return nil, err
	}
	if d.statusIdx, err = required(ColumnStatus); err != nil {
		return nil, err
	}
	if d.assigneeIdx, err = required(ColumnAssignee); err != nil {
		return nil, err
	}
	if d.createdIdx, err = required(ColumnCreated); err != nil {
		return nil, err
	}

	d.estimateIdx = -1
	if i, ok := index[ColumnEstimate]; ok {
		d.estimateIdx = i
	}

	return &d, nil
}

// Decode converts one raw row into a Record.
//
// A missing trailing cell decodes as empty; XLSX rows drop empty trailing
// cells, and the CSV reader never produces short rows. A non-numeric
// estimate is an error even if the row would later be skipped for having
// an empty key.
func (d *Decoder) Decode(row []string) (Record, error) {
	rec := Record{
		Key:      cell(row, d.keyIdx),
		Status:   cell(row, d.statusIdx),
		Assignee: cell(row, d.assigneeIdx),
		Created:  cell(row, d.createdIdx),
	}

	if d.estimateIdx >= 0 {
		raw := cell(row, d.estimateIdx)
		if raw != "" {
			seconds, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return Record{}, fmt.Errorf("invalid %s %q", ColumnEstimate, raw)
			}
			estimate := int64(seconds)
			rec.Estimate = &estimate
		}
	}

	return rec, nil
}

// cell returns the idx-th cell of row, or "" when the row is too short.
func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

// =============================================================================
// FILE OPENING
// =============================================================================

// OpenFile opens an export file as a RowSource, choosing the reader by file
// extension: .xlsx and .xlsm open as workbooks, everything else as CSV.
func OpenFile(path string) (RowSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return OpenWorkbook(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open file '%s': %w", path, err)
	}

	source, err := NewReader(&fileReader{Reader: bufio.NewReader(file), file: file})
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("unable to read file '%s': %w", path, err)
	}
	return source, nil
}

// fileReader pairs a buffered reader with the file it wraps so that closing
// the source closes the file, not the buffer.
type fileReader struct {
	*bufio.Reader
	file *os.File
}

func (f *fileReader) Close() error {
	return f.file.Close()
}
