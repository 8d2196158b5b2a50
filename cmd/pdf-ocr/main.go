// Package main is the entry point for the pdf-ocr CLI.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pdf-ocr/internal/config"
)

// cfgPath is resolved once before any command runs.
var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "pdf-ocr",
	Short: "Batch OCR of PDF files into Word documents",
	Long: `pdf-ocr converts PDF documents to Word documents. Each page is
rasterized to an image and sent to an LLM OCR service; the returned markdown
is assembled into one .docx per input file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

		if cfgPath == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			cfgPath = p
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: <user config dir>/pdf-ocr/config.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
