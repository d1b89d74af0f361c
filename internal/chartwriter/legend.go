// =============================================================================
// Jira to Gantt Converter - Resource Legend Module
// =============================================================================
//
// This module renders the optional secondary output: a standalone HTML page
// with one table row per resource, showing the resource title next to a
// swatch cell filled with its palette color. The page exists for humans
// checking which lane is whose; the renderer itself never reads it.
//
// LEGEND STRUCTURE:
//   <table>
//     <tr><th>Resource</th><th>Color</th></tr>
//     <tr><td>Alice</td><td style="background-color: #4e79a7">#4e79a7</td></tr>
//     ...
//   </table>
//
// =============================================================================

package chartwriter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ginjaninja78/jira-to-gantt/internal/types"
)

// =============================================================================
// LEGEND GENERATION
// =============================================================================

// MarshalLegend renders the resource legend page.
//
// PARAMETERS:
//   - doc: The finalized chart document. Every resource must carry a color,
//     so the conversion must have run with colored resources enabled.
//
// RETURNS:
//   - The HTML page as a byte slice.
//   - An error naming the first colorless resource, if any.
func MarshalLegend(doc *types.ChartDocument) ([]byte, error) {
	var buffer bytes.Buffer

	buffer.WriteString(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Resource Legend</title>
<style>
table { border-collapse: collapse; }
th, td { border: 1px solid #333333; padding: 4px 12px; }
</style>
</head>
<body>
<table>
<tr><th>Resource</th><th>Color</th></tr>
`)

	for _, resource := range doc.Resources {
		if resource.Color == nil {
			return nil, fmt.Errorf("resource %q has no color; legend output needs colored resources", resource.Title)
		}
		color := escapeHTML(*resource.Color)
		buffer.WriteString(fmt.Sprintf("<tr><td>%s</td><td style=\"background-color: %s\">%s</td></tr>\n",
			escapeHTML(resource.Title), color, color))
	}

	buffer.WriteString(`</table>
</body>
</html>
`)

	return buffer.Bytes(), nil
}

// WriteLegend renders the resource legend page to a writer.
func WriteLegend(w io.Writer, doc *types.ChartDocument) error {
	data, err := MarshalLegend(doc)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write legend: %w", err)
	}
	return nil
}

// escapeHTML escapes special characters for HTML text and attribute values.
func escapeHTML(s string) string {
	var buffer bytes.Buffer

	for _, r := range s {
		switch r {
		case '&':
			buffer.WriteString("&amp;")
		case '<':
			buffer.WriteString("&lt;")
		case '>':
			buffer.WriteString("&gt;")
		case '"':
			buffer.WriteString("&quot;")
		case '\'':
			buffer.WriteString("&#39;")
		default:
			buffer.WriteRune(r)
		}
	}

	return buffer.String()
}
