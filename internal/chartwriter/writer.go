// =============================================================================
// Jira to Gantt Converter - Chart Document Writer Module
// =============================================================================
//
// This module serializes chart documents to the textual schema consumed by
// the downstream Gantt renderer, and parses such documents back. The format
// is JSON with a fixed field layout:
//
//   {
//     "title": "",
//     "resources": ["Alice", "Bob"],
//     "items": [
//       {"title": "PROJ-1", "startDate": "2023-01-01", "duration": 1,
//        "resource": 0, "open": true},
//       {"title": "PROJ-2", "resource": 1, "open": false}
//     ]
//   }
//
// Historical consumers disagree on the resource representation: older ones
// expect plain title strings (shown above), newer ones expect
// {title, color} objects. Writing picks one via Options; parsing accepts
// both.
//
// This component has no business logic; it renders already-finalized data.
//
// =============================================================================

package chartwriter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ginjaninja78/jira-to-gantt/internal/types"
)

// =============================================================================
// SERIALIZATION OPTIONS
// =============================================================================

// Options contains options for document serialization.
type Options struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// ResourceObjects emits resources as {title, color} objects instead of
	// plain title strings.
	// Default: false (plain strings)
	ResourceObjects bool
}

// DefaultOptions returns the default serialization options.
func DefaultOptions() Options {
	return Options{
		Indent:          "  ",
		ResourceObjects: false,
	}
}

// =============================================================================
// SERIALIZATION FUNCTIONS
// =============================================================================

// wireDocument is the serialized field layout. Resources is interface{} so
// one layout covers both resource representations.
type wireDocument struct {
	Title      string       `json:"title"`
	Resources  interface{}  `json:"resources"`
	MarkedDate *types.Date  `json:"marked_date,omitempty"`
	Items      []types.Item `json:"items"`
}

// Marshal serializes a chart document.
//
// PARAMETERS:
//   - doc: The finalized chart document.
//   - options: The serialization options.
//
// RETURNS:
//   - The document bytes, without a trailing newline.
//   - An error if serialization fails.
func Marshal(doc *types.ChartDocument, options Options) ([]byte, error) {
	if options.Indent == "" {
		options.Indent = DefaultOptions().Indent
	}

	// Nil slices would serialize as null; the schema wants empty lists.
	resources := doc.Resources
	if resources == nil {
		resources = []types.Resource{}
	}
	items := doc.Items
	if items == nil {
		items = []types.Item{}
	}

	wire := wireDocument{
		Title:      doc.Title,
		MarkedDate: doc.MarkedDate,
		Items:      items,
	}

	if options.ResourceObjects {
		wire.Resources = resources
	} else {
		titles := make([]string, len(resources))
		for i, r := range resources {
			titles[i] = r.Title
		}
		wire.Resources = titles
	}

	data, err := json.MarshalIndent(wire, "", options.Indent)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize chart document: %w", err)
	}
	return data, nil
}

// Write serializes a chart document to a writer, with a trailing newline.
func Write(w io.Writer, doc *types.ChartDocument, options Options) error {
	data, err := Marshal(doc, options)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write chart document: %w", err)
	}
	return nil
}

// =============================================================================
// PARSING FUNCTIONS
// =============================================================================

// Parse reads a chart document, accepting both resource representations.
//
// PARAMETERS:
//   - r: The document stream.
//
// RETURNS:
//   - The parsed document. Resources parsed from plain strings have no
//     color.
//   - An error if the stream is not a chart document or an item's resource
//     index is out of range.
func Parse(r io.Reader) (*types.ChartDocument, error) {
	var doc types.ChartDocument

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse chart document: %w", err)
	}

	for i, item := range doc.Items {
		if item.ResourceIndex < 0 || item.ResourceIndex >= len(doc.Resources) {
			return nil, fmt.Errorf("item %d (%q) references resource %d, have %d resources",
				i, item.Title, item.ResourceIndex, len(doc.Resources))
		}
	}

	return &doc, nil
}
