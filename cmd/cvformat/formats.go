package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/render"
)

//nolint:gochecknoglobals // Cobra boilerplate
var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the output formats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
		for _, f := range render.Formats() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", f.ID, f.Name, f.Description)
		}
		return w.Flush()
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(formatsCmd)
}
