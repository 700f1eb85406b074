// Package api talks to the test case review server over its REST interface.
package api

import (
	"context"
	"io"

	"tcreview/internal/domain"
)

// Client defines the operations the review client needs from the server.
type Client interface {
	Batch(ctx context.Context, batchID int) (BatchDetail, error)
	Batches(ctx context.Context) ([]domain.BatchSummary, error)
	DeleteBatch(ctx context.Context, batchID int) error
	Review(ctx context.Context, testCaseID int, action domain.Action) (domain.TestCase, error)
	Upload(ctx context.Context, req UploadRequest) (UploadResult, error)
	// Export streams the batch spreadsheet into dst and returns the file name
	// suggested by the server. A blank status exports every record.
	Export(ctx context.Context, batchID int, status domain.Status, dst io.Writer) (string, error)

	KnowledgeFiles(ctx context.Context) ([]domain.KnowledgeFile, error)
	UploadKnowledge(ctx context.Context, path string) (KnowledgeUpload, error)
	DeleteKnowledge(ctx context.Context, fileID string) error
	IndexingStatus(ctx context.Context, uploadBatch string) ([]IndexingProgress, error)
}
