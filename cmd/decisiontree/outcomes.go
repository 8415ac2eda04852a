package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/decisiontree/internal/cli"
	"github.com/aretw0/decisiontree/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var outcomesCmd = &cobra.Command{
	Use:   "outcomes",
	Short: "List every answer combination and its recommendation",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		table, err := cli.LoadTable(cfg.TablePath)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		plain, _ := cmd.Flags().GetBool("plain")
		out := cmd.OutOrStdout()

		switch format {
		case "markdown", "md":
			rendered, err := tui.NewRenderer(plain)(tui.OutcomesMarkdown(table))
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
			return nil
		case "yaml":
			return table.WriteYAML(out)
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(table.Entries())
		default:
			return fmt.Errorf("unknown format %q: use markdown, yaml or json", format)
		}
	},
}

func init() {
	rootCmd.AddCommand(outcomesCmd)
	outcomesCmd.Flags().String("format", "markdown", "Output format: markdown, yaml or json")
	outcomesCmd.Flags().Bool("plain", false, "Do not render markdown for the terminal")
}
