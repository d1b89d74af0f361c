// =============================================================================
// Jira to Gantt Converter - Configuration Module
// =============================================================================
//
// This module loads and manages deployment profiles. A profile captures the
// historical format variance between chart-data consumers: the date format
// used by the tracker export, whether resources are emitted as plain strings
// or colored objects, whether empty assignees are relabeled, and whether
// items carry an open flag.
//
// PROFILE FILES:
//   A profile is a single YAML file selected with the --profile flag.
//   When no profile is given, the canonical defaults below apply.
//
// ARCHITECTURE:
//   The profile system is designed to be:
//   - Canonical: one component, toggled, instead of per-consumer forks
//   - Zero-value friendly: every toggle defaults to the canonical behavior
//   - Validated: profiles are checked on load, before any input is read
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultDateFormat is the Go reference layout matching the stock tracker
// export format, e.g. "1/Jan/23 09:00 AM". The non-padded day and hour
// tokens also accept padded values when parsing.
const DefaultDateFormat = "2/Jan/06 3:04 PM"

// DefaultPalette is the fixed color cycle assigned to resources in
// registration order. Ten visually distinct categorical colors.
var DefaultPalette = []string{
	"#4e79a7",
	"#f28e2b",
	"#e15759",
	"#76b7b2",
	"#59a14f",
	"#edc948",
	"#b07aa1",
	"#ff9da7",
	"#9c755f",
	"#bab0ac",
}

// =============================================================================
// PROFILE STRUCTURE
// =============================================================================

// Profile holds one deployment profile. The zero value plus applyDefaults
// reproduces the canonical conversion behavior; every toggle is opt-in.
type Profile struct {
	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	// DateFormat is the Go reference layout for the Created column.
	// Default: "2/Jan/06 3:04 PM"
	//
	// Examples:
	//   - "2/Jan/06 3:04 PM"  : 12-hour tracker export ("1/Jan/23 09:00 AM")
	//   - "1/2/06 15:04"      : 24-hour US-style export ("1/2/23 09:00")
	//   - "2006-01-02"        : date-only export
	DateFormat string `yaml:"date_format"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// ChartTitle is the title placed on the chart document.
	// Default: "" (the downstream renderer supplies its own)
	ChartTitle string `yaml:"chart_title"`

	// ColoredResources switches the resource list from plain title strings
	// to {title, color} objects, with colors drawn from Palette in
	// registration order. Required for legend output.
	// Default: false
	ColoredResources bool `yaml:"colored_resources"`

	// OmitUnassignedLabel leaves an empty assignee title empty instead of
	// relabeling it "unassigned" at the end of the run.
	// Default: false
	OmitUnassignedLabel bool `yaml:"omit_unassigned_label"`

	// OmitOpenFlag drops the per-item open flag from the document.
	// Default: false
	OmitOpenFlag bool `yaml:"omit_open_flag"`

	// Palette is the color cycle used when ColoredResources is set. The Nth
	// distinct resource gets entry N modulo len(Palette). Entries are CSS
	// hex colors ("#rrggbb").
	// Default: DefaultPalette
	Palette []string `yaml:"palette"`
}

// =============================================================================
// PROFILE LOADING FUNCTIONS
// =============================================================================

// Default returns the canonical profile used when no profile file is given.
func Default() *Profile {
	p := &Profile{}
	applyProfileDefaults(p)
	return p
}

// Load loads a deployment profile from a YAML file.
//
// PARAMETERS:
//   - path: The path to the profile file.
//
// RETURNS:
//   - A pointer to the Profile struct with defaults applied.
//   - An error if the file cannot be read, parsed, or validated.
func Load(path string) (*Profile, error) {
	// Read the profile file.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	// Parse the YAML.
	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	// Apply default values.
	applyProfileDefaults(&profile)

	// Validate the profile.
	if err := validateProfile(&profile); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	return &profile, nil
}

// applyProfileDefaults sets default values for any unset profile options.
func applyProfileDefaults(profile *Profile) {
	if profile.DateFormat == "" {
		profile.DateFormat = DefaultDateFormat
	}
	if len(profile.Palette) == 0 {
		profile.Palette = append([]string(nil), DefaultPalette...)
	}
}

// hexColorPattern matches a CSS hex color like "#4e79a7".
var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// validateProfile validates a loaded profile.
func validateProfile(profile *Profile) error {
	// The date format must carry a full calendar date. Render a known
	// reference time through the layout and parse it back; a layout that
	// drops the year, month or day cannot reproduce them.
	ref := time.Date(2006, time.January, 2, 15, 4, 5, 0, time.UTC)
	parsed, err := time.Parse(profile.DateFormat, ref.Format(profile.DateFormat))
	if err != nil || parsed.Year() != 2006 || parsed.Month() != time.January || parsed.Day() != 2 {
		return fmt.Errorf("date_format %q does not describe a calendar date", profile.DateFormat)
	}

	for i, color := range profile.Palette {
		if !hexColorPattern.MatchString(color) {
			return fmt.Errorf("palette entry %d is %q, want \"#rrggbb\"", i, color)
		}
	}

	return nil
}
