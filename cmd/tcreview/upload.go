package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tcreview/internal/api"
	"tcreview/internal/domain"
	appErrors "tcreview/internal/errors"
)

const spinnerDelay = 300 * time.Millisecond

type uploadOptions struct {
	name        string
	description string
	caseCount   int
	open        bool
}

func newUploadCmd(c *cli) *cobra.Command {
	var opts uploadOptions
	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Generate test cases from requirement documents",
		Long: `Upload one or more PDF, DOCX or Markdown documents. The server generates
a new batch of test cases from them.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDocuments(args); err != nil {
				return err
			}
			req := api.UploadRequest{
				Files:       args,
				Name:        strings.TrimSpace(opts.name),
				Description: opts.description,
				CaseCount:   opts.caseCount,
			}
			if req.Name == "" {
				req.Name = domain.BatchNameFromPath(args[0])
			}
			if req.CaseCount <= 0 {
				req.CaseCount = c.settings.UploadCaseCount
			}

			client, err := c.apiClient()
			if err != nil {
				return err
			}
			sp := newProgressSpinner(c.errOut, spinnerDelay)
			sp.Stage(fmt.Sprintf("Generating test cases from %d file(s)...", len(args)))
			res, err := client.Upload(cmd.Context(), req)
			sp.Stop()
			if err != nil {
				return fmt.Errorf("upload: %w", err)
			}

			name := res.BatchName
			if name == "" {
				name = req.Name
			}
			_, _ = fmt.Fprintf(c.out, "Generated %d test cases in batch #%d (%s)\n", len(res.TestCases), res.BatchID, name)
			if opts.open && res.BatchID > 0 {
				return c.runReview(cmd.Context(), []string{fmt.Sprint(res.BatchID)}, reviewOptions{})
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.name, "name", "", "batch name (default: first file name)")
	cmd.Flags().StringVar(&opts.description, "description", "", "batch description")
	cmd.Flags().IntVar(&opts.caseCount, "case-count", 0, "number of test cases to generate (overrides upload.case-count)")
	cmd.Flags().BoolVar(&opts.open, "open", false, "open the new batch for review")
	return cmd
}

// validateDocuments checks every path before anything is sent so a typo in
// the last argument does not waste a long upload.
func validateDocuments(paths []string) error {
	for _, p := range paths {
		if !domain.UploadableDocument(p) {
			return appErrors.New(appErrors.CodeInvalidArgument,
				fmt.Sprintf("unsupported file type: %s (only PDF, DOCX and MD)", filepath.Base(p)), nil)
		}
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		if info.IsDir() {
			return appErrors.New(appErrors.CodeInvalidArgument, fmt.Sprintf("%s is a directory", p), nil)
		}
	}
	return nil
}
