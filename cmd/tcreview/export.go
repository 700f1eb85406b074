package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tcreview/internal/domain"
	"tcreview/internal/review"
)

func newExportCmd(c *cli) *cobra.Command {
	var status, out string
	cmd := &cobra.Command{
		Use:   "export <batch-id>",
		Short: "Download a batch as an Excel spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBatchID(args[0])
			if err != nil {
				return err
			}
			filter, err := parseExportStatus(status)
			if err != nil {
				return err
			}
			dir := out
			if dir == "" {
				dir = c.settings.ExportDir
			}
			client, err := c.apiClient()
			if err != nil {
				return err
			}
			path, err := review.NewSyncer(client).Export(cmd.Context(), id, filter, dir)
			if err != nil {
				return fmt.Errorf("export batch #%d: %w", id, err)
			}
			_, _ = fmt.Fprintf(c.out, "%s: %s\n", review.ExportMessage(filter), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "all", "records to include: all, approved, rejected or pending")
	cmd.Flags().StringVarP(&out, "out", "o", "", "directory to save into (overrides export.dir)")
	return cmd
}

// parseExportStatus maps the --status flag onto a status filter; "all"
// exports every record.
func parseExportStatus(raw string) (domain.Status, error) {
	if v := strings.ToLower(strings.TrimSpace(raw)); v == "" || v == "all" {
		return domain.StatusUnknown, nil
	}
	return domain.ParseStatus(raw)
}
