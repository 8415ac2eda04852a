package main

import (
	"fmt"

	"github.com/aretw0/decisiontree/internal/cli"
	"github.com/aretw0/decisiontree/internal/presentation/graph"
	"github.com/aretw0/decisiontree/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the decision tree visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the question tree and its outcomes.
With --session, the path answered in that recorded session is highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		table, err := cli.LoadTable(cfg.TablePath)
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if sessionID, _ := cmd.Flags().GetString("session"); sessionID != "" {
			store, _, err := cli.OpenStore(cfg.Store)
			if err != nil {
				return err
			}
			rec, err := store.Load(cmd.Context(), sessionID)
			if err != nil {
				return fmt.Errorf("load session %q: %w", sessionID, err)
			}
			overlay = &graph.GraphOverlay{Answers: make(map[domain.Category]string)}
			for k, v := range rec.Answers {
				overlay.Answers[domain.Category(k)] = v
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(table, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("session", "", "Highlight the answers recorded for this session")
}
