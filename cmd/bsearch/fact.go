package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var factCmd = &cobra.Command{
	Use:   "fact",
	Short: "Print a random fun fact",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), current.facts.Fetch(cmd.Context()))
	},
}

func init() {
	rootCmd.AddCommand(factCmd)
}
