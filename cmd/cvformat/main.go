// Command cvformat runs the résumé pipeline offline: extract text from a
// file, parse marker text, and render DOCX documents without the server.
package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "cvformat",
	Short: "Convert and render résumés from the command line",
	Long: `cvformat runs the same pipeline as the CV Formatter API on local files.

Settings (OPENAI_API_KEY, LOGO_PATH, LOGO_URL, ...) are read from
the environment and an optional .env file, exactly like the server.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// loadConfig reads the shared configuration. The server's release-mode
// checks do not apply to the CLI, so GIN_MODE is ignored here.
func loadConfig() (*config.Config, error) {
	os.Setenv("GIN_MODE", "debug")
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	return cfg, nil
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return data, errors.Wrap(err, "failed to read stdin")
	}
	data, err := os.ReadFile(path)
	return data, errors.Wrapf(err, "failed to read %s", path)
}

// writeOutput writes data to a file, or stdout when path is "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "failed to write %s", path)
}
