package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/logger"
	"github.com/spf13/cobra"
)

var (
	// Command line flags
	logLevel   string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "aidiag",
	Short: "AI-assisted compiler diagnostics",
	Long: `aidiag runs a C/C++ compiler, prints its diagnostics unchanged and asks an LLM
to explain every error, using the surrounding source and template instantiation
stack as context.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Initialize logger with the specified log level
		logger.Init(logLevel)
		logger.Debugf("Log level set to: %s", logLevel)
	},
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior when no subcommands are provided
		_ = cmd.Help()
	},
}

// exitError carries the wrapped compiler's exit status.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// ExitCode returns the status the process should exit with for err.
func ExitCode(err error) int {
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return 1
}

// Execute runs the root command and handles errors
func Execute() error {
	// Subcommands are added in their respective init() functions
	err := rootCmd.Execute()
	var exitErr *exitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	// Add persistent flags that will be available to all subcommands
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logger.DefaultLevel,
		"Set the logging level (debug, info, warn, error, dpanic, panic, fatal)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Settings file (defaults to .aidiag.yml or .aidiag.yaml in the working directory)")
}
