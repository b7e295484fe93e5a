package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes.
const (
	ExitSuccess      = 0
	ExitRuntimeError = 1
	ExitUsageError   = 2
)

var rootCmd = &cobra.Command{
	Use:   "sanibundle",
	Short: "Sanitize and bundle a project tree for sharing",
	Long: "Sanibundle copies a project tree, drops caches, logs, binaries and " +
		"VCS metadata, redacts credentials in environment and configuration " +
		"files, and packages the result into a single portable archive.",
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(bundleCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print sanibundle version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "sanibundle version %s\n", version)
	},
}
