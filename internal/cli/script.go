package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bootterm/internal/script"
)

// scriptCmd groups boot script commands.
var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Inspect and validate boot scripts",
}

var scriptShowJSON bool

func init() {
	scriptShowCmd.Flags().BoolVar(&scriptShowJSON, "json", false, "print as JSON instead of YAML")
	scriptCmd.AddCommand(scriptValidateCmd, scriptSchemaCmd, scriptShowCmd)
	rootCmd.AddCommand(scriptCmd)
}

var scriptValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a script file against the schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		if err := script.ValidateDocument(b, script.FormatFor(args[0])); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		s, err := script.Parse(b, script.FormatFor(args[0]))
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d lines, %s of post delays\n", args[0], s.Len(), s.TotalPostDelay())
		return nil
	},
}

var scriptSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of script files",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := script.MarshalSchema(script.Schema())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	},
}

var scriptShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print a script (default: the built-in boot) in normalized form",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := appCfg.Script
		if len(args) == 1 {
			path = args[0]
		}
		s, err := script.Load(path)
		if err != nil {
			return err
		}
		format := script.YAML
		if scriptShowJSON {
			format = script.JSON
		}
		b, err := script.Marshal(script.FromScript(s), format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}
