package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/render"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	renderFormat string
	renderOutput string
	renderNoLogo bool
)

//nolint:gochecknoglobals // Cobra boilerplate
var renderCmd = &cobra.Command{
	Use:   "render <text-file>",
	Short: "Render marker text as a DOCX",
	Long: `Render a résumé written in the section-marker format as a Word document.

Use "-" to read from stdin.

Example:
  cvformat render cv.txt --format datamatics --output cv.docx`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", render.FormatDatamatics, "Output format (see 'cvformat formats')")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "cv.docx", "Output file, or - for stdout")
	renderCmd.Flags().BoolVar(&renderNoLogo, "no-logo", false, "Render the header without a logo")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	text, err := readInput(args[0])
	if err != nil {
		return err
	}

	var logos render.LogoProvider
	if !renderNoLogo {
		logos = render.NewLogoSource(cfg.LogoPath, cfg.LogoURL, cfg.LogoTimeout)
	}

	var buf bytes.Buffer
	if err := render.NewRenderer(logos).Render(context.Background(), &buf, renderFormat, string(text)); err != nil {
		return errors.Wrap(err, "render failed")
	}
	if err := writeOutput(renderOutput, buf.Bytes()); err != nil {
		return err
	}
	if renderOutput != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", renderOutput, buf.Len())
	}
	return nil
}
