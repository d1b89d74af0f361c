// =============================================================================
// Jira to Gantt Converter - Export Validation Engine
// =============================================================================
//
// This module lints an issue export before conversion. It reports two kinds
// of findings:
//
//   ERRORS    Problems that would make the conversion fail outright:
//             a missing required column, a non-numeric estimate, a creation
//             timestamp that does not match the profile's date format, or an
//             unreadable row.
//
//   WARNINGS  Problems the conversion would silently absorb but a human
//             probably wants to know about: duplicate issue keys, rows with
//             data but no key, empty or suspicious status values, missing
//             estimates, unassigned issues.
//
// ERROR HANDLING:
//   - Findings are collected, not thrown; one pass reports everything
//   - Each finding carries its row number, field and offending value
//   - Warnings never make a result invalid unless TreatWarningsAsErrors
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/ginjaninja78/jira-to-gantt/internal/config"
	"github.com/ginjaninja78/jira-to-gantt/internal/converter"
	"github.com/ginjaninja78/jira-to-gantt/internal/jiracsv"
)

// =============================================================================
// FINDING TYPES
// =============================================================================

// Severity levels for findings.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Finding is a single validation finding.
type Finding struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// RowNumber is the 1-indexed input row, counting the header row as
	// row 1. Zero for findings about the input as a whole.
	RowNumber int

	// Field is the column the finding is about, when applicable.
	Field string

	// Value is the offending value, when applicable.
	Value string

	// Rule names the violated rule, e.g. "duplicate-key".
	Rule string

	// Message is the human-readable description.
	Message string
}

// Describe renders the finding without its severity tag, for sinks that
// carry severity themselves.
func (f *Finding) Describe() string {
	var b strings.Builder
	if f.RowNumber > 0 {
		fmt.Fprintf(&b, "row %d", f.RowNumber)
	}
	if f.Field != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "field '%s'", f.Field)
	}
	if b.Len() > 0 {
		b.WriteString(": ")
	}
	b.WriteString(f.Message)
	if f.Value != "" {
		fmt.Fprintf(&b, " (value: '%s')", f.Value)
	}
	return b.String()
}

// Error implements the error interface.
func (f *Finding) Error() string {
	return fmt.Sprintf("[%s] %s", strings.ToUpper(f.Severity), f.Describe())
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result contains the findings of one validation pass.
type Result struct {
	// Valid is true when the export would convert without error.
	Valid bool

	// Findings contains all findings, warnings included, in input order.
	Findings []*Finding

	// ErrorCount is the number of error-severity findings.
	ErrorCount int

	// WarningCount is the number of warning-severity findings.
	WarningCount int

	// RowsChecked is the number of data rows examined.
	RowsChecked int
}

// add records a finding and updates the counters.
func (r *Result) add(f *Finding) {
	r.Findings = append(r.Findings, f)
	if f.Severity == SeverityError {
		r.ErrorCount++
		r.Valid = false
	} else {
		r.WarningCount++
	}
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator lints issue exports against a deployment profile.
type Validator struct {
	profile *config.Profile
	options Options
}

// Options contains options for validation.
type Options struct {
	// StopOnFirstError stops the pass after the first error-severity
	// finding.
	// Default: false
	StopOnFirstError bool

	// TreatWarningsAsErrors makes any warning invalidate the result.
	// Default: false
	TreatWarningsAsErrors bool
}

// NewValidator creates a Validator with default options.
func NewValidator(profile *config.Profile) *Validator {
	return NewValidatorWithOptions(profile, Options{})
}

// NewValidatorWithOptions creates a Validator with custom options.
func NewValidatorWithOptions(profile *config.Profile, options Options) *Validator {
	if profile == nil {
		profile = config.Default()
	}
	return &Validator{profile: profile, options: options}
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// ValidateSource lints one export from start to finish.
//
// PARAMETERS:
//   - source: The export rows. The caller keeps ownership and closes it.
//
// RETURNS:
//   - The collected findings. Never returns a Go error; unreadable input
//     becomes an error-severity finding.
func (v *Validator) ValidateSource(source jiracsv.RowSource) *Result {
	result := &Result{Valid: true}

	headers := source.Headers()
	if len(headers) == 0 {
		// An input with no rows at all converts to an empty document.
		return result
	}

	decoder, err := jiracsv.NewDecoder(headers)
	if err != nil {
		result.add(&Finding{
			Severity: SeverityError,
			Rule:     "missing-column",
			Message:  err.Error(),
		})
		return result
	}

	// Without the estimate column one global warning beats one per row.
	estimateColumn := hasHeader(headers, jiracsv.ColumnEstimate)
	if !estimateColumn {
		result.add(&Finding{
			Severity: SeverityWarning,
			Field:    jiracsv.ColumnEstimate,
			Rule:     "no-estimate-column",
			Message:  "export has no estimate column, no item will have a duration",
		})
	}

	firstSeen := make(map[string]int)

	for source.Next() {
		result.RowsChecked++
		row := source.RowNumber()

		rec, err := decoder.Decode(source.Row())
		if err != nil {
			result.add(&Finding{
				Severity:  SeverityError,
				RowNumber: row,
				Field:     jiracsv.ColumnEstimate,
				Rule:      "bad-estimate",
				Message:   err.Error(),
			})
			if v.options.StopOnFirstError {
				return result
			}
			continue
		}

		if rec.Key == "" {
			v.checkSkippedRow(result, rec, row)
			continue
		}

		v.checkDuplicateKey(result, firstSeen, rec.Key, row)
		v.checkStatus(result, rec.Status, row)
		v.checkAssignee(result, rec.Assignee, row)
		if estimateColumn {
			v.checkEstimate(result, rec, row)
		}
		v.checkCreated(result, rec.Created, row)

		if v.options.StopOnFirstError && result.ErrorCount > 0 {
			return result
		}
	}

	if err := source.Err(); err != nil {
		result.add(&Finding{
			Severity: SeverityError,
			Rule:     "unreadable-input",
			Message:  err.Error(),
		})
	}

	if v.options.TreatWarningsAsErrors && result.WarningCount > 0 {
		result.Valid = false
	}

	return result
}

// =============================================================================
// ROW CHECKS
// =============================================================================

// checkSkippedRow warns when a keyless row carries data that the conversion
// will drop.
func (v *Validator) checkSkippedRow(result *Result, rec jiracsv.Record, row int) {
	if rec.Status == "" && rec.Assignee == "" && rec.Created == "" && rec.Estimate == nil {
		return
	}
	result.add(&Finding{
		Severity:  SeverityWarning,
		RowNumber: row,
		Field:     jiracsv.ColumnKey,
		Rule:      "keyless-row",
		Message:   "row has data but no issue key and will be skipped",
	})
}

func (v *Validator) checkDuplicateKey(result *Result, firstSeen map[string]int, key string, row int) {
	if first, ok := firstSeen[key]; ok {
		result.add(&Finding{
			Severity:  SeverityWarning,
			RowNumber: row,
			Field:     jiracsv.ColumnKey,
			Value:     key,
			Rule:      "duplicate-key",
			Message:   fmt.Sprintf("issue key already seen at row %d", first),
		})
		return
	}
	firstSeen[key] = row
}

// checkStatus flags status values that probably do not mean what the export
// author thinks: the open flag comes from an exact comparison against
// "Closed", so a case variant silently counts as open.
func (v *Validator) checkStatus(result *Result, status string, row int) {
	if status == "" {
		result.add(&Finding{
			Severity:  SeverityWarning,
			RowNumber: row,
			Field:     jiracsv.ColumnStatus,
			Rule:      "empty-status",
			Message:   "status is empty, issue will be treated as open",
		})
		return
	}
	if status != jiracsv.StatusClosed && strings.EqualFold(status, jiracsv.StatusClosed) {
		result.add(&Finding{
			Severity:  SeverityWarning,
			RowNumber: row,
			Field:     jiracsv.ColumnStatus,
			Value:     status,
			Rule:      "status-case",
			Message:   fmt.Sprintf("status differs from %q only by case and will be treated as open", jiracsv.StatusClosed),
		})
	}
}

func (v *Validator) checkAssignee(result *Result, assignee string, row int) {
	if assignee != "" {
		return
	}
	message := fmt.Sprintf("issue has no assignee and will be grouped under %q", converter.UnassignedLabel)
	if v.profile.OmitUnassignedLabel {
		message = "issue has no assignee and will be grouped under an empty resource title"
	}
	result.add(&Finding{
		Severity:  SeverityWarning,
		RowNumber: row,
		Field:     jiracsv.ColumnAssignee,
		Rule:      "unassigned",
		Message:   message,
	})
}

func (v *Validator) checkEstimate(result *Result, rec jiracsv.Record, row int) {
	if rec.Estimate != nil {
		return
	}
	result.add(&Finding{
		Severity:  SeverityWarning,
		RowNumber: row,
		Field:     jiracsv.ColumnEstimate,
		Rule:      "no-estimate",
		Message:   "issue has no estimate, item will have no duration",
	})
}

func (v *Validator) checkCreated(result *Result, created string, row int) {
	if _, err := time.Parse(v.profile.DateFormat, created); err != nil {
		result.add(&Finding{
			Severity:  SeverityError,
			RowNumber: row,
			Field:     jiracsv.ColumnCreated,
			Value:     created,
			Rule:      "bad-created",
			Message:   fmt.Sprintf("creation timestamp does not match date format %q", v.profile.DateFormat),
		})
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func hasHeader(headers []string, name string) bool {
	for _, h := range headers {
		if h == name {
			return true
		}
	}
	return false
}
