package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/decisiontree/pkg/outcome"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <table.yaml>",
	Short: "Check an outcome table file for consistency",
	Long: `Loads an outcome table and reports every problem: missing or unknown
answer combinations, out-of-range outcome indices and unnamed outcomes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := outcome.LoadFile(args[0])
		if err != nil {
			var aggr *outcome.AggregateError
			if errors.As(err, &aggr) {
				for _, e := range aggr.Errors {
					fmt.Fprintln(cmd.ErrOrStderr(), "  -", e)
				}
			}
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Outcome table is valid: %d outcomes, %d combinations\n",
			len(table.Outcomes()), len(table.Mapping()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
