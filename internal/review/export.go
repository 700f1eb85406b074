package review

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"tcreview/internal/domain"
	appErrors "tcreview/internal/errors"
)

// Export downloads the batch spreadsheet into dir and returns the saved
// path. The body is streamed to a temporary file first and only renamed to
// the server-suggested name once the download completes, so a failed
// download never leaves a partial file behind. StatusUnknown exports every
// record.
func (y *Syncer) Export(ctx context.Context, batchID int, status domain.Status, dir string) (string, error) {
	if batchID <= 0 {
		return "", appErrors.New(appErrors.CodeInvalidArgument, "no batch selected", nil)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".export-*.xlsx")
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	name, err := y.client.Export(ctx, batchID, status, tmp)
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("write export file: %w", closeErr)
	}
	if err != nil {
		cleanup()
		return "", err
	}

	dest := filepath.Join(dir, filepath.Base(name))
	if err := os.Rename(tmpPath, dest); err != nil {
		cleanup()
		return "", fmt.Errorf("save export file: %w", err)
	}
	return dest, nil
}

// ExportMessage is the notification shown once an export has been saved.
func ExportMessage(status domain.Status) string {
	switch status {
	case domain.StatusApproved:
		return "Downloaded approved test cases"
	case domain.StatusRejected:
		return "Downloaded rejected test cases"
	case domain.StatusPending:
		return "Downloaded pending test cases"
	default:
		return "Downloaded Excel file"
	}
}
