package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pdf-ocr/internal/config"
	"pdf-ocr/internal/helper"
	"pdf-ocr/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [batch-id]",
	Short: "List recorded batch runs",
	Long: `History lists recent batch runs from the local run ledger. With a batch
id it prints the per-file outcomes of that run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		histPath, err := config.AppFilePath(historyFileName)
		if err != nil {
			return err
		}

		ctx := context.Background()
		store, err := history.Open(ctx, histPath, false)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer store.Close()

		if len(args) == 1 {
			files, err := store.BatchFiles(ctx, args[0])
			if err != nil {
				return err
			}
			helper.PrettyPrint(files)
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		batches, err := store.RecentBatches(ctx, limit)
		if err != nil {
			return err
		}
		if len(batches) == 0 {
			fmt.Println("No recorded runs.")
			return nil
		}
		for _, b := range batches {
			fmt.Printf("%s  %-9s  %d files (%d ok, %d failed)  %s\n",
				b.ID, b.Status, b.Total, b.Succeeded, b.Failed,
				b.StartedAt.Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")

	rootCmd.AddCommand(historyCmd)
}
