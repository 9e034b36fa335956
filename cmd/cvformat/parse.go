package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/resume"
)

//nolint:gochecknoglobals // Cobra boilerplate
var parseCmd = &cobra.Command{
	Use:   "parse <text-file>",
	Short: "Parse marker text and print the content model as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args[0])
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(resume.Parse(string(text)), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

//nolint:gochecknoglobals // Cobra boilerplate
var preprocessCmd = &cobra.Command{
	Use:   "preprocess <text-file>",
	Short: "Reformat free-typed work history the way the form endpoints do",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), resume.PreprocessProjects(string(text)))
		return nil
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(parseCmd, preprocessCmd)
}
