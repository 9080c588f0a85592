package cli

import (
	"github.com/spf13/cobra"

	"bootterm/internal/settings"
)

func init() {
	rootCmd.AddCommand(settingsCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Edit typing speed, script and log level in config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		return settings.Run()
	},
}
