package cmd

import (
	"fmt"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the version of aidiag`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "aidiag v%s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
