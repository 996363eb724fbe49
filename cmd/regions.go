package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsvantage/triage-cli/internal/model"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the known region codes",
	Run: func(cmd *cobra.Command, _ []string) {
		for _, r := range model.Regions() {
			fmt.Fprintf(os.Stdout, "%s\t%s\n", r, r.SonarSheet())
		}
	},
}

func init() {
	rootCmd.AddCommand(regionsCmd)
}
