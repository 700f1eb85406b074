package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tcreview/internal/config"
	"tcreview/internal/debug"
	"tcreview/internal/ui"
)

type reviewOptions struct {
	knowledge bool
	pageSize  int
}

func newReviewCmd(c *cli) *cobra.Command {
	var opts reviewOptions
	cmd := &cobra.Command{
		Use:   "review [batch-id]",
		Short: "Open the review screen",
		Long: `Open the interactive review screen for a batch.

Without a batch id the most recently created batch is opened. Pass
--knowledge to start on the knowledge base instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReview(cmd.Context(), args, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.knowledge, "knowledge", false, "start on the knowledge base screen")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "records per page (overrides review.page-size)")
	return cmd
}

func (c *cli) runReview(ctx context.Context, args []string, opts reviewOptions) error {
	client, err := c.apiClient()
	if err != nil {
		return err
	}

	batchID := 0
	if len(args) == 1 {
		if batchID, err = parseBatchID(args[0]); err != nil {
			return err
		}
	} else if !opts.knowledge {
		if batchID, err = latestBatchID(ctx, c); err != nil {
			return err
		}
	}

	pageSize := c.settings.PageSize
	if opts.pageSize > 0 {
		pageSize = opts.pageSize
	}
	start := ui.ScreenReview
	if opts.knowledge {
		start = ui.ScreenKnowledge
	}

	cfg := ui.Config{
		Client:          client,
		BatchID:         batchID,
		PageSize:        pageSize,
		ToastDuration:   c.settings.ToastDuration,
		CloseDelay:      c.settings.DialogDelay,
		ExportDir:       c.settings.ExportDir,
		UploadCaseCount: c.settings.UploadCaseCount,
		OutputFormat:    c.settings.OutputFormat,
		Theme:           c.settings.Theme,
		Version:         Version,
		StartScreen:     start,
		SaveTheme:       config.SaveTheme,
	}
	debug.Info().Int("batch", batchID).Int("pageSize", pageSize).Msg("opening review screen")

	app, err := runProgram(cfg, ui.NewApp, c.program)
	if err != nil {
		return err
	}
	if info := app.SessionInfo(); info.Loaded {
		printExitSummary(c.out, ExitSummary{
			Version:     Version,
			EndStats:    app.Stats(),
			SessionInfo: info,
		})
	}
	return nil
}

// latestBatchID returns the batch with the highest id, or 0 when the server
// has none yet. The review screen then starts empty and the user can upload.
func latestBatchID(ctx context.Context, c *cli) (int, error) {
	client, err := c.apiClient()
	if err != nil {
		return 0, err
	}
	batches, err := client.Batches(ctx)
	if err != nil {
		return 0, fmt.Errorf("list batches: %w", err)
	}
	latest := 0
	for _, b := range batches {
		latest = max(latest, b.ID)
	}
	return latest, nil
}
