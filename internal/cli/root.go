package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bootterm/internal/app"
	"bootterm/internal/config"
	"bootterm/internal/system"
)

// appCfg is loaded once before any command runs.
var appCfg = config.Defaults()

var (
	flagScript   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "bootterm",
	Short: "bootterm – animated terminal boot and personal hub",
	Long:  "bootterm types a styled boot sequence one character at a time, then opens a hub with panel, projects and tools.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if flagScript != "" {
			cfg.Script = flagScript
		}
		if flagLogLevel != "" {
			cfg.Log.Level = flagLogLevel
		}
		appCfg = cfg
		// stderr logging for plain commands; the TUI reconfigures to a file
		system.Configure(system.LogOptions{Level: cfg.Log.Level})
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default action: launch the TUI
		return app.Start(cmd.Context(), appCfg)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagScript, "script", "s", "", "boot script file (yaml or json)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "debug|info|warn|error")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
