package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/decisiontree"
	"github.com/aretw0/decisiontree/internal/cli"
	"github.com/aretw0/decisiontree/internal/runtime"
	"github.com/aretw0/decisiontree/pkg/domain"
	"github.com/aretw0/decisiontree/pkg/outcome"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:     "recommend",
	Short:   "Recommend a job from a complete set of answers",
	Example: `  decisiontree recommend --species people --blood low --personality extrovert --salary very`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		table, err := cli.LoadTable(cfg.TablePath)
		if err != nil {
			return err
		}

		values := make(map[domain.Category]string, 4)
		for flag, category := range answerFlags {
			v, _ := cmd.Flags().GetString(flag)
			values[category] = v
		}
		values = outcome.Normalize(values)

		result, err := decisiontree.New(decisiontree.WithOutcomeTable(table)).Recommend(values)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), runtime.FinalStatement(values, result))
		return nil
	},
}

var answerFlags = map[string]domain.Category{
	"species":     domain.CategoryPreferredSpecies,
	"blood":       domain.CategoryBloodTolerance,
	"personality": domain.CategoryPersonality,
	"salary":      domain.CategorySalaryImportance,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendCmd.Flags().String("species", "", "Preferred species: animals or people")
	recommendCmd.Flags().String("blood", "", "Blood tolerance: low or high")
	recommendCmd.Flags().String("personality", "", "Personality: introvert or extrovert")
	recommendCmd.Flags().String("salary", "", "Salary importance: unimportant, somewhat or very")
	recommendCmd.Flags().Bool("json", false, "Print the outcome as JSON")
	for flag := range answerFlags {
		_ = recommendCmd.MarkFlagRequired(flag)
	}
}
