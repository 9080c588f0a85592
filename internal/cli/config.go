package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	cfg "bootterm/internal/config"
	"bootterm/internal/content"
	"bootterm/internal/script"
)

func init() {
	configCmd.Flags().BoolVar(&configSeed, "seed", false, "also write editable copies of the default boot script and profile")
	rootCmd.AddCommand(configCmd)
}

var configSeed bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Initialize and show config locations",
	Long:  "Create the bootterm config directory and config.yaml when missing, then print where everything lives.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		dir, err := cfg.Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}

		// 1) config.yaml: write current effective values when missing
		path, err := cfg.Path()
		if err != nil {
			return err
		}
		if fileExists(path) {
			fmt.Fprintf(out, "• keeping config.yaml: %s\n", path)
		} else {
			if err := cfg.Save(appCfg); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ created config.yaml: %s\n", path)
		}

		if configSeed {
			// 2) boot.yaml: the embedded boot script, for editing
			bootPath := filepath.Join(dir, "boot.yaml")
			if err := seedFile(out, bootPath, script.DefaultBytes()); err != nil {
				return err
			}
			// 3) profile.yaml: hub content
			profPath, err := cfg.ProfilePath()
			if err != nil {
				return err
			}
			if err := seedFile(out, profPath, content.DefaultBytes()); err != nil {
				return err
			}
		}

		logPath, _ := cfg.LogPath()
		if appCfg.Log.File != "" {
			logPath = appCfg.Log.File
		}
		fmt.Fprintf(out, "\nconfig dir: %s\n", dir)
		fmt.Fprintf(out, "log file:   %s\n", logPath)
		if appCfg.Script != "" {
			fmt.Fprintf(out, "script:     %s\n", appCfg.Script)
		}
		return nil
	},
}

func seedFile(out io.Writer, path string, b []byte) error {
	if fileExists(path) {
		fmt.Fprintf(out, "• keeping %s\n", path)
		return nil
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ created %s\n", path)
	return nil
}

func fileExists(path string) bool {
	if st, err := os.Stat(path); err == nil && !st.IsDir() {
		return true
	}
	return false
}
