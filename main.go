// =============================================================================
// Jira to Gantt Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the jira2gantt CLI application. It
// initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   jira2gantt [input-file] [output-file]  - Convert an issue export
//   jira2gantt validate [input-file]       - Lint an export without converting
//   jira2gantt version                     - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/jira-to-gantt/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
