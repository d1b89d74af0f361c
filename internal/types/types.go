// =============================================================================
// Jira to Gantt Converter - Shared Types
// =============================================================================
//
// This package contains the chart-data document model shared across modules
// to avoid import cycles. Types defined here are used by:
//   - converter
//   - chartwriter
//   - validation
//
// The document model mirrors the schema consumed by the downstream Gantt
// renderer: a title, an ordered resource list, an optional marked date, and
// a flattened item list. Every "may be absent" field is a pointer; absence
// is always a nil pointer, never an empty string or a negative number.
//
// =============================================================================

package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// =============================================================================
// CALENDAR DATE
// =============================================================================

// Date is a calendar date (year, month, day) that serializes as "2006-01-02".
// It wraps time.Time so callers can reuse the standard formatting and
// comparison helpers; the time-of-day portion is always midnight UTC.
type Date struct {
	time.Time
}

// NewDate creates a Date from a timestamp, discarding the time of day.
func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "2006-01-02" string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// String returns the date in "2006-01-02" form.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Equal reports whether two dates name the same calendar day.
func (d Date) Equal(o Date) bool {
	return d.Time.Equal(o.Time)
}

// MarshalJSON serializes the date as a "2006-01-02" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON parses a "2006-01-02" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// RESOURCE
// =============================================================================

// Resource is one schedule lane in the chart, corresponding to an issue
// assignee. Identity is the title string; the registry never registers the
// same title twice.
type Resource struct {
	// Title is the display name of the resource.
	Title string `json:"title"`

	// Color is the CSS hex color assigned from the palette, or nil when the
	// deployment profile emits uncolored resources.
	Color *string `json:"color,omitempty"`
}

// UnmarshalJSON accepts both resource representations found in chart
// documents: a bare title string ("Alice") or an object ({"title": "Alice",
// "color": "#4e79a7"}).
func (r *Resource) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var title string
		if err := json.Unmarshal(data, &title); err != nil {
			return err
		}
		*r = Resource{Title: title}
		return nil
	}

	// Alias sidesteps recursion into this method.
	type resource Resource
	var obj resource
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = Resource(obj)
	return nil
}

// =============================================================================
// ITEM
// =============================================================================

// Item is one schedulable unit of work, corresponding to one tracker issue.
// Items are immutable once built.
type Item struct {
	// Title is the issue key (e.g. "PROJ-123").
	Title string `json:"title"`

	// StartDate is the explicit start of the item. Only the first item on
	// each resource carries one; the downstream renderer schedules items
	// without a start date immediately after the previous item on the same
	// lane.
	StartDate *Date `json:"startDate,omitempty"`

	// Duration is the length of the item in workdays, or nil when the issue
	// had no estimate.
	Duration *int64 `json:"duration,omitempty"`

	// ResourceIndex is the zero-based index into the document's resource
	// list. Always valid for items inside a ChartDocument.
	ResourceIndex int `json:"resource"`

	// Open reports whether the issue is still open, or nil when the
	// deployment profile suppresses the flag.
	Open *bool `json:"open,omitempty"`
}

// =============================================================================
// CHART DOCUMENT
// =============================================================================

// ChartDocument is the external structured-data contract consumed by the
// downstream Gantt rendering tool.
type ChartDocument struct {
	// Title is the chart title, taken from the deployment profile. The
	// canonical profile leaves it empty; the renderer supplies its own.
	Title string `json:"title"`

	// Resources is the ordered resource list, in first-seen order.
	Resources []Resource `json:"resources"`

	// MarkedDate is an optional date highlighted by the renderer. This
	// converter never sets it.
	MarkedDate *Date `json:"marked_date,omitempty"`

	// Items is the flattened item list: all items of resource 0, then all
	// items of resource 1, and so on, each group in input order.
	Items []Item `json:"items"`
}
