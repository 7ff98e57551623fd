package cmd

import (
	"fmt"

	"github.com/ChuanqiXu9/AIDiganosticConsumer/common"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// settingsView adds the masked key to the printed settings.
type settingsView struct {
	APIKey          string `yaml:"api_key"`
	common.Settings `yaml:",inline"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective settings",
	Long:  `Print the settings after applying the settings file and the environment. The API key is masked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := common.LoadSettings(configPath).Masked()
		data, err := yaml.Marshal(settingsView{APIKey: settings.APIKey, Settings: settings})
		if err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
