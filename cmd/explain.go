package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/common"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/compiler"
	"github.com/ChuanqiXu9/AIDiganosticConsumer/sema"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain [file]",
	Short: "Explain saved compiler output using AI",
	Long: `Read compiler diagnostics from a file, or from stdin when no file is given,
and replay them with AI explanations for every error.`,
	Example: `  clang++ -c unique.cpp 2> build.log; aidiag explain build.log
  clang++ -c unique.cpp 2>&1 | aidiag explain --macros macros.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
		} else {
			data, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return fmt.Errorf("failed to read compiler output: %w", err)
		}

		var macros *compiler.MacroLoader
		if path, _ := cmd.Flags().GetString("macros"); path != "" {
			dump, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read macro dump: %w", err)
			}
			macros = compiler.StaticMacros(sema.ParseMacroDump(string(dump)))
		}

		replay(string(data), common.LoadSettings(configPath), macros)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)

	explainCmd.Flags().StringP("macros", "m", "", "Output of '<compiler> -dM -E' for the same translation unit")
}
