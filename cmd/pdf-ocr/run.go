package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pdf-ocr/internal/config"
	"pdf-ocr/internal/helper"
	"pdf-ocr/internal/history"
	"pdf-ocr/internal/models"
	"pdf-ocr/internal/report"
	"pdf-ocr/internal/worker"
)

const historyFileName = "history.db"

var runCmd = &cobra.Command{
	Use:   "run [pdf files...]",
	Short: "Process a batch of PDF files",
	Long: `Run processes the given PDF files sequentially. Every page is OCRed with
up to 3 attempts and a fixed 2 second delay between attempts; a page that
fails all attempts is replaced by an inline diagnostic note. A failing file
aborts only that file, the rest of the batch continues. Ctrl-C requests a
cooperative stop at the next file or page boundary.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg.Debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}

		if dir, _ := cmd.Flags().GetString("output"); dir != "" {
			cfg.OutputDir = dir
		}
		if cfg.OutputDir == "" {
			cfg.OutputDir = "."
		}
		if err := helper.CreateFolder(cfg.OutputDir); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		ctx := context.Background()

		var store *history.Store
		if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
			histPath, err := config.AppFilePath(historyFileName)
			if err == nil {
				store, err = history.Open(ctx, histPath, cfg.Debug)
			}
			if err != nil {
				log.Warn().Err(err).Msg("History disabled")
				store = nil
			} else {
				defer store.Close()
			}
		}

		w := worker.New(args, cfg)

		var mu sync.Mutex
		var fileResults []models.FileResult
		w.SetCallbacks(worker.Callbacks{
			Progress: func(msg string) {
				fmt.Println(msg)
			},
			FileDone: func(res models.FileResult) {
				mu.Lock()
				fileResults = append(fileResults, res)
				mu.Unlock()
				if store != nil {
					if err := store.AddFile(ctx, w.ID(), res); err != nil {
						log.Warn().Err(err).Msg("Recording file outcome failed")
					}
				}
			},
			BatchDone: func(sum models.BatchSummary) {
				if store != nil {
					if err := store.AddBatch(ctx, sum); err != nil {
						log.Warn().Err(err).Msg("Recording batch failed")
					}
				}
			},
		})

		// Ctrl-C requests a cooperative stop; a second signal kills the
		// process the usual way.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		go func() {
			if _, ok := <-sigCh; ok {
				fmt.Println("Stop requested, finishing the current page...")
				w.Stop()
				signal.Stop(sigCh)
			}
		}()

		sum := w.Run(ctx)

		if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
			if err := report.Write(reportPath, sum, fileResults); err != nil {
				log.Error().Err(err).Msg("Writing report failed")
			} else {
				fmt.Printf("Report written to %s\n", reportPath)
			}
		}

		fmt.Printf("Batch %s: %d ok, %d failed (%s)\n", sum.ID, sum.Succeeded, sum.Failed, sum.Status)
		if sum.Status == models.BatchStatusErrored {
			return fmt.Errorf("batch aborted by configuration error")
		}
		return nil
	},
}

func init() {
	runCmd.Flags().String("output", "", "output directory (overrides the configured one)")
	runCmd.Flags().String("report", "", "write a batch report spreadsheet to this path")
	runCmd.Flags().Bool("no-history", false, "do not record this run in the history database")

	rootCmd.AddCommand(runCmd)
}
