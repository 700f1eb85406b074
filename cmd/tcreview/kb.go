package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tcreview/internal/api"
	"tcreview/internal/debug"
	"tcreview/internal/domain"
)

const defaultPollInterval = 2 * time.Second

func newKnowledgeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "kb",
		Aliases: []string{"knowledge"},
		Short:   "Manage knowledge base documents",
	}
	cmd.AddCommand(
		newKnowledgeListCmd(c),
		newKnowledgeUploadCmd(c),
		newKnowledgeDeleteCmd(c),
		newKnowledgeStatusCmd(c),
	)
	return cmd
}

func newKnowledgeListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List knowledge base documents",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.apiClient()
			if err != nil {
				return err
			}
			files, err := client.KnowledgeFiles(cmd.Context())
			if err != nil {
				return fmt.Errorf("list knowledge files: %w", err)
			}
			if c.settings.OutputJSON {
				if files == nil {
					files = []domain.KnowledgeFile{}
				}
				return c.writeJSON(files)
			}
			if len(files) == 0 {
				_, _ = fmt.Fprintln(c.out, "No documents in the knowledge base.")
				return nil
			}
			table := c.newTable("ID", "NAME", "TYPE", "SIZE", "STATUS", "UPLOADED")
			for _, f := range files {
				table.Append([]string{
					f.ID,
					f.Name,
					strings.ToUpper(f.Extension),
					domain.FormatFileSize(f.Size),
					f.IndexingStatus.Label(),
					domain.FormatDateTime(f.CreatedAt, time.Local),
				})
			}
			table.Render()
			return nil
		},
	}
}

func newKnowledgeUploadCmd(c *cli) *cobra.Command {
	var wait bool
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Add a document to the knowledge base",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.apiClient()
			if err != nil {
				return err
			}
			res, err := client.UploadKnowledge(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("upload %s: %w", args[0], err)
			}
			name := res.File.FileName
			if name == "" {
				name = args[0]
			}
			_, _ = fmt.Fprintf(c.out, "Uploaded %s (indexing batch %s)\n", name, res.Batch)
			if !wait || res.Batch == "" {
				return nil
			}
			progress, err := c.waitForIndexing(cmd.Context(), client, res.Batch, interval)
			if err != nil {
				return err
			}
			c.printIndexing(progress)
			return nil
		},
	}
	cmd.Flags().BoolVar(&wait, "wait", false, "wait until indexing finishes")
	cmd.Flags().DurationVar(&interval, "interval", defaultPollInterval, "polling interval used with --wait")
	return cmd
}

// waitForIndexing polls until no document of the upload batch is still
// waiting or indexing, or ctx is cancelled.
func (c *cli) waitForIndexing(ctx context.Context, client api.Client, batch string, interval time.Duration) ([]api.IndexingProgress, error) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	sp := newProgressSpinner(c.errOut, spinnerDelay)
	defer sp.Stop()
	sp.Stage("Indexing...")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		progress, err := client.IndexingStatus(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("indexing status: %w", err)
		}
		if !anyInProgress(progress) {
			return progress, nil
		}
		done, total := segmentTotals(progress)
		sp.Stage(fmt.Sprintf("Indexing... %d/%d segments", done, total))
		debug.Info().Str("batch", batch).Int("done", done).Int("total", total).Msg("indexing poll")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func anyInProgress(progress []api.IndexingProgress) bool {
	for _, p := range progress {
		if p.Status.InProgress() {
			return true
		}
	}
	return false
}

func segmentTotals(progress []api.IndexingProgress) (done, total int) {
	for _, p := range progress {
		done += p.CompletedSegments
		total += p.TotalSegments
	}
	return done, total
}

func newKnowledgeDeleteCmd(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <file-id>",
		Short: "Remove a document from the knowledge base",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			if err := requireConfirmation(yes, "document "+id); err != nil {
				return err
			}
			client, err := c.apiClient()
			if err != nil {
				return err
			}
			if err := client.DeleteKnowledge(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete document %s: %w", id, err)
			}
			_, _ = fmt.Fprintf(c.out, "Deleted document %s\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the deletion")
	return cmd
}

func newKnowledgeStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status <indexing-batch>",
		Short: "Show indexing progress of an upload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.apiClient()
			if err != nil {
				return err
			}
			progress, err := client.IndexingStatus(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("indexing status: %w", err)
			}
			c.printIndexing(progress)
			return nil
		},
	}
}

func (c *cli) printIndexing(progress []api.IndexingProgress) {
	if c.settings.OutputJSON {
		if progress == nil {
			progress = []api.IndexingProgress{}
		}
		_ = c.writeJSON(progress)
		return
	}
	if len(progress) == 0 {
		_, _ = fmt.Fprintln(c.out, "No documents are being processed.")
		return
	}
	table := c.newTable("ID", "STATUS", "SEGMENTS", "ERROR")
	for _, p := range progress {
		table.Append([]string{
			p.ID,
			p.Status.Label(),
			strconv.Itoa(p.CompletedSegments) + "/" + strconv.Itoa(p.TotalSegments),
			p.Error,
		})
	}
	table.Render()
}
