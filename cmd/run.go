package cmd

import (
	"fmt"
	"os"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/common"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/compiler"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/logger"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run -- <compiler> [args...]",
	Short: "Compile and explain errors using AI",
	Long: `Run a compiler command, print its diagnostics and ask AI about every error.
The process exits with the compiler's exit status.`,
	Example: `  aidiag run -- clang++ -std=c++17 -c unique.cpp
  CLANG_AI_REPLY_LANG=English aidiag run -- clang++ -c unique.cpp`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		compilerName, compilerArgs := args[0], args[1:]

		runner := compiler.NewDefaultRunner("")
		runner.Stdin = os.Stdin
		result, err := runner.Run(compilerName, compilerArgs...)
		if err != nil {
			return fmt.Errorf("failed to run compiler: %w", err)
		}
		fmt.Fprint(os.Stdout, result.Stdout)

		settings := common.LoadSettings(configPath)
		macros := compiler.CommandMacros(compiler.NewDefaultRunner(""), compilerName, compilerArgs)
		replay(result.Stderr, settings, macros)

		logger.Debugf("%s exited with %d", compilerName, result.ExitCode)
		if result.ExitCode != 0 {
			return &exitError{code: result.ExitCode}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Everything after the compiler name belongs to the compiler.
	runCmd.Flags().SetInterspersed(false)
}
