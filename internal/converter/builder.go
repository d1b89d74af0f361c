// =============================================================================
// Jira to Gantt Converter - Item Builder
// =============================================================================
//
// The builder turns one decoded issue record into one chart item, computing
// the scheduling fields:
//
//   START DATE
//     The creation timestamp parses with the profile's date format and is
//     reduced to a calendar date. It is kept only on the first item of each
//     resource; later items on the same lane are scheduled by the renderer
//     immediately after their predecessor. The timestamp is parsed for every
//     built item regardless, so a malformed date is an error even when the
//     start date would be dropped.
//
//   DURATION
//     Estimates are seconds; durations are workdays of eight hours. An
//     estimate of s seconds becomes ceil((s+1)/28800) workdays, computed in
//     integer arithmetic as s/28800 + 1. Any estimate, even zero seconds,
//     yields at least one workday; an exact multiple of a workday rounds up
//     to the next one.
//
//   OPEN FLAG
//     An issue is open unless its status is exactly "Closed".
//
// =============================================================================

package converter

import (
	"fmt"
	"time"

	"github.com/ginjaninja78/jira-to-gantt/internal/jiracsv"
	"github.com/ginjaninja78/jira-to-gantt/internal/types"
)

// WorkdaySeconds is the length of one estimate workday: eight hours.
const WorkdaySeconds = 8 * 60 * 60

// =============================================================================
// BUILDER STRUCTURE
// =============================================================================

// Builder computes chart items from issue records.
type Builder struct {
	dateFormat string
	omitOpen   bool
}

// NewBuilder creates a Builder.
//
// PARAMETERS:
//   - dateFormat: The Go reference layout for the Created column.
//   - omitOpen: When true, built items carry no open flag.
//
// RETURNS:
//   - A ready-to-use Builder.
func NewBuilder(dateFormat string, omitOpen bool) *Builder {
	return &Builder{dateFormat: dateFormat, omitOpen: omitOpen}
}

// Build converts a record into an item.
//
// PARAMETERS:
//   - rec: The decoded issue record. Its key must be non-empty.
//   - resourceIndex: The registry index of the record's assignee.
//   - firstForResource: Whether this is the first item on that resource.
//
// RETURNS:
//   - The built item.
//   - An error if the creation timestamp does not match the date format.
func (b *Builder) Build(rec jiracsv.Record, resourceIndex int, firstForResource bool) (types.Item, error) {
	created, err := time.Parse(b.dateFormat, rec.Created)
	if err != nil {
		return types.Item{}, fmt.Errorf("invalid %s %q: want format %q", jiracsv.ColumnCreated, rec.Created, b.dateFormat)
	}

	item := types.Item{
		Title:         rec.Key,
		ResourceIndex: resourceIndex,
	}

	if firstForResource {
		start := types.NewDate(created)
		item.StartDate = &start
	}

	if rec.Estimate != nil {
		duration := durationWorkdays(*rec.Estimate)
		item.Duration = &duration
	}

	if !b.omitOpen {
		open := rec.Status != jiracsv.StatusClosed
		item.Open = &open
	}

	return item, nil
}

// durationWorkdays converts an estimate in seconds to whole workdays.
// For seconds >= 0, s/28800 + 1 equals ceil((s+1)/28800) in integer
// arithmetic.
func durationWorkdays(seconds int64) int64 {
	return seconds/WorkdaySeconds + 1
}
