// =============================================================================
// Jira to Gantt Converter - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which lints an issue export
// without writing any output. It surfaces the problems the conversion would
// die on as errors, and the ones it would silently absorb as warnings.
//
// COMMAND USAGE:
//   jira2gantt validate [input-file]
//
// FLAGS:
//   --strict     : Treat warnings as errors (non-zero exit on any finding)
//   --fail-fast  : Stop at the first error-severity finding
//
// =============================================================================

package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/jira-to-gantt/internal/logging"
	"github.com/ginjaninja78/jira-to-gantt/internal/validation"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// strict treats warnings as errors.
var strict bool

// failFast stops validation at the first error.
var failFast bool

// =============================================================================
// VALIDATE COMMAND DEFINITION
// =============================================================================

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Lint an issue export without converting it",
	Long: `The validate command reads an issue export the same way the conversion
would, but writes no output. It reports everything the conversion would
fail on (missing columns, non-numeric estimates, unparseable creation
timestamps) as errors, and everything it would silently absorb (duplicate
issue keys, keyless data rows, suspicious status values, unassigned
issues, missing estimates) as warnings.

The exit status is non-zero when any error is found. Warnings do not
change the exit status unless --strict is given.`,

	Args: cobra.MaximumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(args)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the validate command with the root command and its flags.
func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(
		&strict,
		"strict",
		false,
		"Treat warnings as errors",
	)

	validateCmd.Flags().BoolVar(
		&failFast,
		"fail-fast",
		false,
		"Stop at the first error",
	)
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// runValidate lints the input and reports the findings.
func runValidate(args []string) error {
	logger := logging.NewConsole(verbose, noColor)

	profile, err := loadProfile()
	if err != nil {
		return err
	}

	var inputPath string
	if len(args) > 0 {
		inputPath = args[0]
	}

	source, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer source.Close()

	validator := validation.NewValidatorWithOptions(profile, validation.Options{
		StopOnFirstError:      failFast,
		TreatWarningsAsErrors: strict,
	})
	result := validator.ValidateSource(source)

	// The logger carries the severity, so findings are printed without
	// their severity tag.
	for _, finding := range result.Findings {
		if finding.Severity == validation.SeverityError {
			logger.Error("%s", finding.Describe())
		} else {
			logger.Warning("%s", finding.Describe())
		}
	}

	logger.Output("checked %d rows: %d errors, %d warnings",
		result.RowsChecked, result.ErrorCount, result.WarningCount)

	if !result.Valid {
		return errors.New("validation failed")
	}
	return nil
}
