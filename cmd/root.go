// =============================================================================
// Jira to Gantt Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Unlike most CLIs the
// root command does the main work itself: invoked without a subcommand it
// converts one issue export into chart data.
//
// COBRA CLI STRUCTURE:
//   rootCmd (jira2gantt [input-file] [output-file])
//   ├── validateCmd (jira2gantt validate)
//   └── versionCmd (jira2gantt version)
//
// INPUT AND OUTPUT:
//   - Input argument omitted or "-": read CSV from standard input
//   - Output argument omitted or "-": write chart data to standard output
//   - File outputs go through the atomic writer, so a failed run never
//     leaves a truncated document behind
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/jira-to-gantt/internal/chartwriter"
	"github.com/ginjaninja78/jira-to-gantt/internal/config"
	"github.com/ginjaninja78/jira-to-gantt/internal/converter"
	"github.com/ginjaninja78/jira-to-gantt/internal/jiracsv"
	"github.com/ginjaninja78/jira-to-gantt/internal/logging"
	"github.com/ginjaninja78/jira-to-gantt/internal/types"
	"github.com/ginjaninja78/jira-to-gantt/pkg/utils"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

// profilePath holds the path to the deployment profile file.
// Empty means the built-in canonical defaults.
var profilePath string

// verbose enables debug output when set to true.
var verbose bool

// noColor disables color highlighting on stderr diagnostics.
var noColor bool

// legendPath is the destination for the optional resource legend.
var legendPath string

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command. It performs the conversion itself;
// subcommands cover validation and version info.
var rootCmd = &cobra.Command{
	Use: "jira2gantt [input-file] [output-file]",

	Short: "Convert tracker issue exports to Gantt chart data",

	Long: `jira2gantt converts issue exports from a Jira-style tracker into the JSON
chart-data document consumed by Gantt chart renderers.

The input is a CSV or XLSX export carrying at least the Issue key, Status,
Assignee and Created columns. Each distinct assignee becomes a chart
resource and each issue becomes a chart item, with its duration in workdays
derived from the Original Estimate column.

Example Usage:
  jira2gantt issues.csv chart.json      # convert a CSV export
  jira2gantt issues.xlsx chart.json     # convert a workbook export
  jira2gantt < issues.csv > chart.json  # filter mode, stdin to stdout
  jira2gantt -p team.yaml issues.csv    # apply a deployment profile
  jira2gantt -l legend.html issues.csv  # also write the resource legend`,

	Args: cobra.MaximumNArgs(2),

	// Runtime failures are reported through Execute; usage text would
	// drown the actual error.
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(args)
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. Any error, flag and argument errors
// included, terminates the process with a non-zero status.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logging.NewConsole(false, noColor).Error("%v", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global and root-local flags.
func init() {
	// Persistent flags are shared with the validate subcommand.
	rootCmd.PersistentFlags().StringVarP(
		&profilePath,
		"profile",
		"p",
		"",
		"Path to a deployment profile file (default is the built-in profile)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug output",
	)

	rootCmd.PersistentFlags().BoolVar(
		&noColor,
		"no-color",
		false,
		"Disable color in diagnostics",
	)

	// The legend only exists for the conversion itself.
	rootCmd.Flags().StringVarP(
		&legendPath,
		"legend",
		"l",
		"",
		"Write an HTML resource legend to this file (needs colored_resources)",
	)
}

// =============================================================================
// MAIN CONVERSION FUNCTION
// =============================================================================

// runConvert runs the conversion pipeline from the command line arguments.
func runConvert(args []string) error {
	logger := logging.NewConsole(verbose, noColor)

	profile, err := loadProfile()
	if err != nil {
		return err
	}

	// Fail the legend precondition before any input is read.
	if legendPath != "" && !profile.ColoredResources {
		return fmt.Errorf("legend output needs colored resources; set colored_resources: true in the profile")
	}

	var inputPath, outputPath string
	if len(args) > 0 {
		inputPath = args[0]
	}
	if len(args) > 1 {
		outputPath = args[1]
	}

	source, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer source.Close()

	doc, stats, err := converter.New(profile, logger).Convert(source)
	if err != nil {
		return err
	}

	options := chartwriter.DefaultOptions()
	options.ResourceObjects = profile.ColoredResources
	if err := writeDocument(outputPath, doc, options); err != nil {
		return err
	}

	if legendPath != "" {
		err := utils.WriteFileAtomic(legendPath, func(w io.Writer) error {
			return chartwriter.WriteLegend(w, doc)
		})
		if err != nil {
			return err
		}
		logger.Debug("legend written to %s", legendPath)
	}

	logger.Debug("run finished in %s", stats.Elapsed)
	return nil
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadProfile loads the profile named by --profile, or the defaults.
func loadProfile() (*config.Profile, error) {
	if profilePath == "" {
		return config.Default(), nil
	}
	return config.Load(profilePath)
}

// openInput opens the conversion input. An empty path or "-" selects
// standard input, which is always treated as CSV.
func openInput(path string) (jiracsv.RowSource, error) {
	if path == "" || path == "-" {
		return jiracsv.NewReader(os.Stdin)
	}
	if !utils.FileExists(path) {
		return nil, fmt.Errorf("input file %s does not exist", path)
	}
	return jiracsv.OpenFile(path)
}

// writeDocument writes the chart document to the output path, or standard
// output when the path is empty or "-".
func writeDocument(path string, doc *types.ChartDocument, options chartwriter.Options) error {
	if path == "" || path == "-" {
		return chartwriter.Write(os.Stdout, doc, options)
	}
	return utils.WriteFileAtomic(path, func(w io.Writer) error {
		return chartwriter.Write(w, doc, options)
	})
}
