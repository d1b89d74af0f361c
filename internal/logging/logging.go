// =============================================================================
// Jira to Gantt Converter - Logging
// =============================================================================
//
// This module defines the logging interface used throughout the converter and
// the console implementation wired up by the CLI. Keeping the interface small
// lets library users plug in their own logger and lets tests capture messages
// without touching process-wide state.
//
// Message routing follows CLI conventions: regular output goes to stdout,
// diagnostics go to stderr. That separation matters because the chart
// document itself may be written to stdout, so a warning must never share
// that stream.
//
// =============================================================================

package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// =============================================================================
// LOGGER INTERFACE
// =============================================================================

// Logger is the logging interface accepted by the conversion pipeline.
// All methods take printf-style format strings.
type Logger interface {
	// Output emits a regular result line, e.g. a processing summary.
	Output(msg string, args ...interface{})

	// Debug emits a diagnostic line that is hidden unless verbose mode is on.
	Debug(msg string, args ...interface{})

	// Warning emits a recoverable problem, e.g. a duplicate issue key the
	// conversion absorbed.
	Warning(msg string, args ...interface{})

	// Error emits a fatal problem. The logger only reports; aborting is the
	// caller's job.
	Error(msg string, args ...interface{})
}

// =============================================================================
// CONSOLE LOGGER
// =============================================================================

// Console is the Logger used by the command-line tool. Output lines go to
// Out verbatim; Debug, Warning and Error lines go to Err with a lowercase
// severity prefix, colored when the terminal supports it.
type Console struct {
	// Out receives Output lines. Defaults to os.Stdout.
	Out io.Writer

	// Err receives Debug, Warning and Error lines. Defaults to os.Stderr.
	Err io.Writer

	// Verbose enables Debug lines.
	Verbose bool

	warnColor  *color.Color
	errorColor *color.Color
	debugColor *color.Color
}

// NewConsole creates a Console logger writing to stdout/stderr.
//
// PARAMETERS:
//   - verbose: When true, Debug lines are emitted.
//   - noColor: When true, severity prefixes are printed without ANSI colors.
//     The NO_COLOR environment variable is honored independently.
//
// RETURNS:
//   - A ready-to-use Console logger.
func NewConsole(verbose bool, noColor bool) *Console {
	c := &Console{
		Out:        os.Stdout,
		Err:        os.Stderr,
		Verbose:    verbose,
		warnColor:  color.New(color.FgYellow),
		errorColor: color.New(color.FgRed),
		debugColor: color.New(color.FgCyan),
	}
	if noColor {
		c.warnColor.DisableColor()
		c.errorColor.DisableColor()
		c.debugColor.DisableColor()
	}
	return c
}

// Output writes a plain line to Out.
func (c *Console) Output(msg string, args ...interface{}) {
	fmt.Fprintf(c.Out, msg+"\n", args...)
}

// Debug writes a "debug:" line to Err when verbose mode is on.
func (c *Console) Debug(msg string, args ...interface{}) {
	if !c.Verbose {
		return
	}
	c.debugColor.Fprintln(c.Err, "debug: "+fmt.Sprintf(msg, args...))
}

// Warning writes a yellow "warning:" line to Err.
func (c *Console) Warning(msg string, args ...interface{}) {
	c.warnColor.Fprintln(c.Err, "warning: "+fmt.Sprintf(msg, args...))
}

// Error writes a red "error:" line to Err.
func (c *Console) Error(msg string, args ...interface{}) {
	c.errorColor.Fprintln(c.Err, "error: "+fmt.Sprintf(msg, args...))
}

// =============================================================================
// NOP LOGGER
// =============================================================================

// Nop is a Logger that discards everything. It is the fallback when a caller
// passes a nil logger to the pipeline.
var Nop Logger = nopLogger{}

type nopLogger struct{}

func (nopLogger) Output(string, ...interface{})  {}
func (nopLogger) Debug(string, ...interface{})   {}
func (nopLogger) Warning(string, ...interface{}) {}
func (nopLogger) Error(string, ...interface{})   {}

// =============================================================================
// CAPTURE LOGGER
// =============================================================================

// Capture is a Logger that records every message, used by tests to assert
// on emitted warnings. It is safe for concurrent use.
type Capture struct {
	mu       sync.Mutex
	Outputs  []string
	Debugs   []string
	Warnings []string
	Errors   []string
}

func (c *Capture) Output(msg string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Outputs = append(c.Outputs, fmt.Sprintf(msg, args...))
}

func (c *Capture) Debug(msg string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Debugs = append(c.Debugs, fmt.Sprintf(msg, args...))
}

func (c *Capture) Warning(msg string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Warnings = append(c.Warnings, fmt.Sprintf(msg, args...))
}

func (c *Capture) Error(msg string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Errors = append(c.Errors, fmt.Sprintf(msg, args...))
}
