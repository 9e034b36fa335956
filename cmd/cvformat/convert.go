package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/render"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/services/converter"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/services/extract"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/services/llm"
)

//nolint:gochecknoglobals // Cobra boilerplate
var (
	convertFormat       string
	convertOutput       string
	convertInstructions string
)

//nolint:gochecknoglobals // Cobra boilerplate
var convertCmd = &cobra.Command{
	Use:   "convert <resume.pdf|resume.docx>",
	Short: "Convert a résumé file with the language model and render it",
	Long: `Extract the text of a PDF or DOCX résumé, have the language model rewrite
it in the chosen format, and render the result. Needs OPENAI_API_KEY.

Example:
  cvformat convert jane.pdf --format datamatics`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

//nolint:gochecknoglobals // Cobra boilerplate
var extractCmd = &cobra.Command{
	Use:   "extract <resume.pdf|resume.docx>",
	Short: "Print the plain text extracted from a résumé file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args[0])
		if err != nil {
			return err
		}
		result, err := extract.Extract(args[0], data)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Text)
		return nil
	},
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(convertCmd, extractCmd)
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", converter.DefaultUploadFormat, "Output format (see 'cvformat formats')")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output file (default converted_cv_<format>.docx)")
	convertCmd.Flags().StringVar(&convertInstructions, "instructions", "", "Additional instructions for the model")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := readInput(args[0])
	if err != nil {
		return err
	}

	model := llm.New(llm.Config{
		APIKey:     cfg.OpenAIAPIKey,
		Model:      cfg.OpenAIModel,
		BaseURL:    cfg.OpenAIBaseURL,
		Timeout:    cfg.LLMTimeout,
		MaxRetries: cfg.LLMMaxRetries,
	})
	renderer := render.NewRenderer(render.NewLogoSource(cfg.LogoPath, cfg.LogoURL, cfg.LogoTimeout))
	svc := converter.New(model, renderer, nil)

	doc, err := svc.Convert(context.Background(), converter.Upload{
		Filename:     filepath.Base(args[0]),
		Data:         data,
		Format:       convertFormat,
		Instructions: convertInstructions,
	})
	if err != nil {
		return err
	}

	out := convertOutput
	if out == "" {
		out = doc.Filename
	}
	if err := writeOutput(out, doc.Data); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", out, len(doc.Data))
	return nil
}
