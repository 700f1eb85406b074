package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"tcreview/internal/domain"
)

func newBatchesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "batches",
		Aliases: []string{"ls"},
		Short:   "List test case batches",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.apiClient()
			if err != nil {
				return err
			}
			batches, err := client.Batches(cmd.Context())
			if err != nil {
				return fmt.Errorf("list batches: %w", err)
			}
			return c.printBatches(batches)
		},
	}
	cmd.AddCommand(newBatchDeleteCmd(c))
	return cmd
}

func (c *cli) printBatches(batches []domain.BatchSummary) error {
	if c.settings.OutputJSON {
		if batches == nil {
			batches = []domain.BatchSummary{}
		}
		return c.writeJSON(batches)
	}
	if len(batches) == 0 {
		_, _ = fmt.Fprintln(c.out, "No batches found.")
		return nil
	}

	table := c.newTable("ID", "NAME", "CASES", "CREATED")
	for _, b := range batches {
		table.Append([]string{
			strconv.Itoa(b.ID),
			b.Name,
			strconv.Itoa(b.TestCaseCount),
			domain.FormatDateTime(domain.Timestamp(b.CreatedAt), time.Local),
		})
	}
	table.Render()
	return nil
}

func newBatchDeleteCmd(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <batch-id>",
		Short: "Delete a batch and its test cases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBatchID(args[0])
			if err != nil {
				return err
			}
			if err := requireConfirmation(yes, fmt.Sprintf("batch #%d", id)); err != nil {
				return err
			}
			client, err := c.apiClient()
			if err != nil {
				return err
			}
			if err := client.DeleteBatch(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete batch #%d: %w", id, err)
			}
			_, _ = fmt.Fprintf(c.out, "Deleted batch #%d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the deletion")
	return cmd
}
