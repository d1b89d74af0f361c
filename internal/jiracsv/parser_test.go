// =============================================================================
// Jira to Gantt Converter - Issue Export Parser Tests
// =============================================================================

package jiracsv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHeader = "Issue key,Status,Assignee,Original Estimate,Created"

// newTestReader builds a Reader over literal CSV text.
func newTestReader(t *testing.T, text string) *Reader {
	t.Helper()
	r, err := NewReader(strings.NewReader(text))
	require.NoError(t, err)
	return r
}

// collectRows drains a RowSource and fails the test on any read error.
func collectRows(t *testing.T, source RowSource) [][]string {
	t.Helper()
	var rows [][]string
	for source.Next() {
		rows = append(rows, source.Row())
	}
	require.NoError(t, source.Err())
	return rows
}

// =============================================================================
// CSV READER
// =============================================================================

func TestReaderParsesHeaderAndRows(t *testing.T) {
	r := newTestReader(t, sampleHeader+"\n"+
		"PROJ-1,Open,Alice,3600,1/Jan/23 09:00 AM\n"+
		"PROJ-2,Closed,Bob,,2/Jan/23 09:00 AM\n")

	assert.Equal(t, []string{"Issue key", "Status", "Assignee", "Original Estimate", "Created"}, r.Headers())

	require.True(t, r.Next())
	assert.Equal(t, []string{"PROJ-1", "Open", "Alice", "3600", "1/Jan/23 09:00 AM"}, r.Row())
	assert.Equal(t, 2, r.RowNumber())

	require.True(t, r.Next())
	assert.Equal(t, "PROJ-2", r.Row()[0])
	assert.Equal(t, 3, r.RowNumber())

	assert.False(t, r.Next())
	assert.NoError(t, r.Err())
}

func TestReaderStripsByteOrderMark(t *testing.T) {
	r := newTestReader(t, "\ufeff"+sampleHeader+"\nPROJ-1,Open,Alice,,1/Jan/23 09:00 AM\n")
	assert.Equal(t, "Issue key", r.Headers()[0])
}

func TestReaderEmptyInput(t *testing.T) {
	r := newTestReader(t, "")
	assert.Empty(t, r.Headers())
	assert.False(t, r.Next())
	assert.NoError(t, r.Err())
	assert.NoError(t, r.Close())
}

func TestReaderSkipsBlankLines(t *testing.T) {
	r := newTestReader(t, sampleHeader+"\n"+
		"PROJ-1,Open,Alice,,1/Jan/23 09:00 AM\n"+
		"\n"+
		"PROJ-2,Open,Bob,,2/Jan/23 09:00 AM\n")

	rows := collectRows(t, r)
	require.Len(t, rows, 2)
	assert.Equal(t, "PROJ-2", rows[1][0])
}

func TestReaderRejectsRaggedRow(t *testing.T) {
	r := newTestReader(t, sampleHeader+"\nPROJ-1,Open,Alice\n")

	assert.False(t, r.Next())
	require.Error(t, r.Err())
	assert.Contains(t, r.Err().Error(), "wrong number of fields")
	assert.Contains(t, r.Err().Error(), "row 2")
}

func TestReaderHandlesQuotedFields(t *testing.T) {
	r := newTestReader(t, sampleHeader+"\n"+
		"PROJ-1,\"Waiting, blocked\",Alice,,1/Jan/23 09:00 AM\n")

	rows := collectRows(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, "Waiting, blocked", rows[0][1])
}

// =============================================================================
// RECORD DECODER
// =============================================================================

func TestNewDecoderRequiresColumns(t *testing.T) {
	_, err := NewDecoder([]string{"Issue key", "Status", "Assignee"})
	assert.ErrorContains(t, err, `no "Created" column`)

	_, err = NewDecoder([]string{"Summary", "Reporter"})
	assert.ErrorContains(t, err, `no "Issue key" column`)
}

func TestDecodeFullRow(t *testing.T) {
	d, err := NewDecoder([]string{"Issue key", "Status", "Assignee", "Original Estimate", "Created"})
	require.NoError(t, err)

	rec, err := d.Decode([]string{"PROJ-1", "Open", "Alice", "3600", "1/Jan/23 09:00 AM"})
	require.NoError(t, err)

	assert.Equal(t, "PROJ-1", rec.Key)
	assert.Equal(t, "Open", rec.Status)
	assert.Equal(t, "Alice", rec.Assignee)
	require.NotNil(t, rec.Estimate)
	assert.Equal(t, int64(3600), *rec.Estimate)
	assert.Equal(t, "1/Jan/23 09:00 AM", rec.Created)
}

func TestDecodeEstimateAbsent(t *testing.T) {
	// Column present but cell empty.
	d, err := NewDecoder([]string{"Issue key", "Status", "Assignee", "Original Estimate", "Created"})
	require.NoError(t, err)
	rec, err := d.Decode([]string{"PROJ-1", "Open", "Alice", "", "1/Jan/23 09:00 AM"})
	require.NoError(t, err)
	assert.Nil(t, rec.Estimate)

	// Column missing from the export entirely.
	d, err = NewDecoder([]string{"Issue key", "Status", "Assignee", "Created"})
	require.NoError(t, err)
	rec, err = d.Decode([]string{"PROJ-1", "Open", "Alice", "1/Jan/23 09:00 AM"})
	require.NoError(t, err)
	assert.Nil(t, rec.Estimate)
}

func TestDecodeRejectsBadEstimate(t *testing.T) {
	d, err := NewDecoder([]string{"Issue key", "Status", "Assignee", "Original Estimate", "Created"})
	require.NoError(t, err)

	for _, bad := range []string{"soon", "-5", "3.5", "1e3"} {
		_, err := d.Decode([]string{"PROJ-1", "Open", "Alice", bad, "1/Jan/23 09:00 AM"})
		assert.ErrorContains(t, err, "Original Estimate", "estimate %q", bad)
	}
}

func TestDecodeBadEstimateOnEmptyKeyRowStillFails(t *testing.T) {
	// Decoding is strict even for rows the conversion would skip.
	d, err := NewDecoder([]string{"Issue key", "Status", "Assignee", "Original Estimate", "Created"})
	require.NoError(t, err)

	_, err = d.Decode([]string{"", "", "", "garbage", ""})
	assert.Error(t, err)
}

func TestDecodeShortRowPadsEmpty(t *testing.T) {
	d, err := NewDecoder([]string{"Issue key", "Status", "Assignee", "Original Estimate", "Created"})
	require.NoError(t, err)

	rec, err := d.Decode([]string{"PROJ-1", "Open"})
	require.NoError(t, err)
	assert.Equal(t, "PROJ-1", rec.Key)
	assert.Equal(t, "Open", rec.Status)
	assert.Equal(t, "", rec.Assignee)
	assert.Nil(t, rec.Estimate)
	assert.Equal(t, "", rec.Created)
}

func TestDecodeKeepsValuesVerbatim(t *testing.T) {
	// No trimming: " Alice" and "Alice" are different resources upstream.
	d, err := NewDecoder([]string{"Issue key", "Status", "Assignee", "Original Estimate", "Created"})
	require.NoError(t, err)

	rec, err := d.Decode([]string{"PROJ-1", "Open", " Alice", "", "1/Jan/23 09:00 AM"})
	require.NoError(t, err)
	assert.Equal(t, " Alice", rec.Assignee)
}

func TestDecoderColumnOrderIndependent(t *testing.T) {
	d, err := NewDecoder([]string{"Created", "Assignee", "Issue key", "Status"})
	require.NoError(t, err)

	rec, err := d.Decode([]string{"1/Jan/23 09:00 AM", "Alice", "PROJ-1", "Open"})
	require.NoError(t, err)
	assert.Equal(t, "PROJ-1", rec.Key)
	assert.Equal(t, "Alice", rec.Assignee)
	assert.Equal(t, "1/Jan/23 09:00 AM", rec.Created)
}

func TestDecoderDuplicateHeaderFirstWins(t *testing.T) {
	d, err := NewDecoder([]string{"Issue key", "Status", "Status", "Assignee", "Created"})
	require.NoError(t, err)

	rec, err := d.Decode([]string{"PROJ-1", "Open", "Closed", "Alice", "1/Jan/23 09:00 AM"})
	require.NoError(t, err)
	assert.Equal(t, "Open", rec.Status)
}

// =============================================================================
// FILE OPENING
// =============================================================================

func TestOpenFileCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issues.csv")
	content := sampleHeader + "\nPROJ-1,Open,Alice,3600,1/Jan/23 09:00 AM\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	source, err := OpenFile(path)
	require.NoError(t, err)
	defer source.Close()

	rows := collectRows(t, source)
	require.Len(t, rows, 1)
	assert.Equal(t, "PROJ-1", rows[0][0])
	assert.NoError(t, source.Close())
}

func TestOpenFileMissing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorContains(t, err, "unable to open file")
}
