// =============================================================================
// Jira to Gantt Converter - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It orchestrates the
// pipeline that turns a stream of tracker export rows into a chart document:
//
// CONVERSION PIPELINE:
//   1. Map the export's header row to issue record columns
//   2. Decode each data row into an issue record
//   3. Skip padding rows (rows without an issue key)
//   4. Resolve the record's assignee to a resource index
//   5. Build the chart item with its scheduling fields
//   6. Bucket items by resource and flatten into the final document
//
// The pipeline is a fully synchronous single pass over the input. All state
// lives in the registry and assembler owned by the run, so a Converter value
// itself may be reused across runs.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"time"

	"github.com/ginjaninja78/jira-to-gantt/internal/config"
	"github.com/ginjaninja78/jira-to-gantt/internal/jiracsv"
	"github.com/ginjaninja78/jira-to-gantt/internal/logging"
	"github.com/ginjaninja78/jira-to-gantt/internal/types"
)

// =============================================================================
// STATS STRUCTURE
// =============================================================================

// Stats contains statistics about one conversion run.
type Stats struct {
	// RowsRead is the number of data rows decoded from the input.
	RowsRead int

	// RowsSkipped is the number of rows dropped for having no issue key.
	RowsSkipped int

	// Resources is the number of distinct resources registered.
	Resources int

	// Items is the number of chart items produced.
	Items int

	// Elapsed is the time taken by the conversion.
	Elapsed time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter converts issue export rows into chart documents.
type Converter struct {
	// profile is the deployment profile controlling format variance.
	profile *config.Profile

	// logger receives diagnostics. Conversion itself never prints results.
	logger logging.Logger
}

// New creates a Converter.
//
// PARAMETERS:
//   - profile: The deployment profile. Pass nil for the canonical defaults.
//   - logger: The diagnostics sink. Pass nil to discard diagnostics.
//
// RETURNS:
//   - A ready-to-use Converter.
func New(profile *config.Profile, logger logging.Logger) *Converter {
	if profile == nil {
		profile = config.Default()
	}
	if logger == nil {
		logger = logging.Nop
	}
	return &Converter{profile: profile, logger: logger}
}

// =============================================================================
// MAIN CONVERSION FUNCTION
// =============================================================================

// Convert runs the conversion pipeline over one row source.
//
// PARAMETERS:
//   - source: The export rows. The caller keeps ownership and closes it.
//
// RETURNS:
//   - The chart document. An input with no rows at all produces a valid
//     empty document.
//   - Statistics about the run.
//   - An error on unreadable input, an unusable header row, a non-numeric
//     estimate, or a creation timestamp that does not match the profile's
//     date format. No document is returned on error.
func (c *Converter) Convert(source jiracsv.RowSource) (*types.ChartDocument, Stats, error) {
	startTime := time.Now()
	stats := Stats{}

	// =========================================================================
	// STEP 1: MAP THE HEADER ROW
	// =========================================================================

	headers := source.Headers()
	c.logger.Debug("input header has %d columns", len(headers))

	var decoder *jiracsv.Decoder
	if len(headers) > 0 {
		var err error
		if decoder, err = jiracsv.NewDecoder(headers); err != nil {
			return nil, stats, err
		}
	}

	// =========================================================================
	// STEP 2: STREAM THE DATA ROWS
	// =========================================================================

	var palette []string
	if c.profile.ColoredResources {
		palette = c.profile.Palette
	}

	registry := NewRegistry(palette)
	builder := NewBuilder(c.profile.DateFormat, c.profile.OmitOpenFlag)
	assembler := NewAssembler()

	for source.Next() {
		if decoder == nil {
			return nil, stats, errors.New("input has no header row")
		}

		rec, err := decoder.Decode(source.Row())
		if err != nil {
			return nil, stats, fmt.Errorf("row %d: %w", source.RowNumber(), err)
		}
		stats.RowsRead++

		// Rows without an issue key are export padding, not issues.
		if rec.Key == "" {
			stats.RowsSkipped++
			c.logger.Debug("row %d has no issue key, skipped", source.RowNumber())
			continue
		}

		resourceIndex, isNew := registry.Resolve(rec.Assignee)

		item, err := builder.Build(rec, resourceIndex, isNew)
		if err != nil {
			return nil, stats, fmt.Errorf("row %d: %w", source.RowNumber(), err)
		}

		assembler.Add(item)
	}
	if err := source.Err(); err != nil {
		return nil, stats, err
	}

	// =========================================================================
	// STEP 3: FINALIZE AND ASSEMBLE
	// =========================================================================

	resources := registry.Finalize(!c.profile.OmitUnassignedLabel)
	doc := assembler.Assemble(c.profile.ChartTitle, resources)

	stats.Resources = len(doc.Resources)
	stats.Items = len(doc.Items)
	stats.Elapsed = time.Since(startTime)

	c.logger.Debug("converted %d rows into %d items across %d resources (%d skipped)",
		stats.RowsRead, stats.Items, stats.Resources, stats.RowsSkipped)

	return &doc, stats, nil
}
