package main

import (
	"fmt"

	"github.com/aretw0/decisiontree"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of decisiontree",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "decisiontree version %s\n", decisiontree.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
