// =============================================================================
// Jira to Gantt Converter - Chart Document Writer Tests
// =============================================================================

package chartwriter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/jira-to-gantt/internal/types"
)

func int64Ptr(v int64) *int64 { return &v }

func boolPtr(v bool) *bool { return &v }

func strPtr(s string) *string { return &s }

func datePtr(t *testing.T, s string) *types.Date {
	t.Helper()
	d, err := types.ParseDate(s)
	require.NoError(t, err)
	return &d
}

// sampleDocument returns a two-resource document with colored resources.
func sampleDocument(t *testing.T) *types.ChartDocument {
	t.Helper()
	return &types.ChartDocument{
		Title: "",
		Resources: []types.Resource{
			{Title: "Alice", Color: strPtr("#4e79a7")},
			{Title: "Bob", Color: strPtr("#f28e2b")},
		},
		Items: []types.Item{
			{
				Title:         "PROJ-1",
				StartDate:     datePtr(t, "2023-01-01"),
				Duration:      int64Ptr(1),
				ResourceIndex: 0,
				Open:          boolPtr(true),
			},
			{
				Title:         "PROJ-2",
				ResourceIndex: 1,
				Open:          boolPtr(false),
			},
		},
	}
}

func TestMarshalPlainResources(t *testing.T) {
	data, err := Marshal(sampleDocument(t), DefaultOptions())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"title": "",
		"resources": ["Alice", "Bob"],
		"items": [
			{"title": "PROJ-1", "startDate": "2023-01-01", "duration": 1, "resource": 0, "open": true},
			{"title": "PROJ-2", "resource": 1, "open": false}
		]
	}`, string(data))
}

func TestMarshalResourceObjects(t *testing.T) {
	data, err := Marshal(sampleDocument(t), Options{ResourceObjects: true})
	require.NoError(t, err)

	assert.Contains(t, string(data), `"color": "#4e79a7"`)

	parsed, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, parsed.Resources, 2)
	require.NotNil(t, parsed.Resources[0].Color)
	assert.Equal(t, "#4e79a7", *parsed.Resources[0].Color)
}

func TestMarshalTopLevelFieldOrder(t *testing.T) {
	doc := sampleDocument(t)
	doc.MarkedDate = datePtr(t, "2023-02-01")

	data, err := Marshal(doc, DefaultOptions())
	require.NoError(t, err)

	text := string(data)
	title := strings.Index(text, `"title"`)
	resources := strings.Index(text, `"resources"`)
	marked := strings.Index(text, `"marked_date"`)
	items := strings.Index(text, `"items"`)
	assert.True(t, title < resources && resources < marked && marked < items,
		"unexpected field order in:\n%s", text)
}

func TestMarshalEmptyDocumentEmitsEmptyLists(t *testing.T) {
	data, err := Marshal(&types.ChartDocument{}, DefaultOptions())
	require.NoError(t, err)
	assert.JSONEq(t, `{"title": "", "resources": [], "items": []}`, string(data))
}

func TestMarshalOmitsMarkedDateWhenAbsent(t *testing.T) {
	data, err := Marshal(sampleDocument(t), DefaultOptions())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "marked_date")
}

func TestMarshalHonorsCustomIndent(t *testing.T) {
	data, err := Marshal(&types.ChartDocument{}, Options{Indent: "\t"})
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n\t\"title\"")
}

func TestWriteAppendsTrailingNewline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleDocument(t), DefaultOptions()))
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))
}

func TestParsePlainForm(t *testing.T) {
	doc, err := Parse(strings.NewReader(`{
		"title": "",
		"resources": ["Alice", "Bob"],
		"items": [{"title": "PROJ-1", "resource": 1}]
	}`))
	require.NoError(t, err)

	want := &types.ChartDocument{
		Resources: []types.Resource{{Title: "Alice"}, {Title: "Bob"}},
		Items:     []types.Item{{Title: "PROJ-1", ResourceIndex: 1}},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripObjectForm(t *testing.T) {
	doc := sampleDocument(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc, Options{ResourceObjects: true}))

	parsed, err := Parse(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(doc, parsed); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripPlainFormDropsColors(t *testing.T) {
	doc := sampleDocument(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc, DefaultOptions()))

	parsed, err := Parse(&buf)
	require.NoError(t, err)

	want := &types.ChartDocument{
		Resources: []types.Resource{{Title: "Alice"}, {Title: "Bob"}},
		Items:     doc.Items,
	}
	if diff := cmp.Diff(want, parsed); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse(strings.NewReader("not a document"))
	assert.ErrorContains(t, err, "failed to parse chart document")
}

func TestParseRejectsOutOfRangeResourceIndex(t *testing.T) {
	_, err := Parse(strings.NewReader(`{
		"title": "",
		"resources": ["Alice"],
		"items": [{"title": "PROJ-1", "resource": 1}]
	}`))
	assert.ErrorContains(t, err, "references resource 1")

	_, err = Parse(strings.NewReader(`{
		"title": "",
		"resources": ["Alice"],
		"items": [{"title": "PROJ-1", "resource": -1}]
	}`))
	assert.Error(t, err)
}
