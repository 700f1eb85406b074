package api

import (
	"context"
	"errors"
	"io"
	"sync"

	"tcreview/internal/domain"
)

// ErrMockNotImplemented is returned when a MockClient method lacks an override.
var ErrMockNotImplemented = errors.New("api.MockClient: method not implemented")

// MockClient is a test double for the Client interface. It is safe for
// concurrent use, which bulk review relies on.
type MockClient struct {
	BatchFn           func(context.Context, int) (BatchDetail, error)
	BatchesFn         func(context.Context) ([]domain.BatchSummary, error)
	DeleteBatchFn     func(context.Context, int) error
	ReviewFn          func(context.Context, int, domain.Action) (domain.TestCase, error)
	UploadFn          func(context.Context, UploadRequest) (UploadResult, error)
	ExportFn          func(context.Context, int, domain.Status, io.Writer) (string, error)
	KnowledgeFilesFn  func(context.Context) ([]domain.KnowledgeFile, error)
	UploadKnowledgeFn func(context.Context, string) (KnowledgeUpload, error)
	DeleteKnowledgeFn func(context.Context, string) error
	IndexingStatusFn  func(context.Context, string) ([]IndexingProgress, error)

	mu                       sync.Mutex
	BatchCallCount           int
	BatchesCallCount         int
	DeleteBatchCallCount     int
	ReviewCallCount          int
	UploadCallCount          int
	ExportCallCount          int
	KnowledgeFilesCallCount  int
	UploadKnowledgeCallCount int
	DeleteKnowledgeCallCount int
	IndexingStatusCallCount  int
	ReviewCallArgs           []ReviewCallArg
	UploadCallArgs           []UploadRequest
	ExportCallArgs           []ExportCallArg
	DeleteKnowledgeCallArgs  []string
}

// ReviewCallArg captures arguments passed to Review.
type ReviewCallArg struct {
	TestCaseID int
	Action     domain.Action
}

// ExportCallArg captures arguments passed to Export.
type ExportCallArg struct {
	BatchID int
	Status  domain.Status
}

// NewMockClient returns a MockClient with zeroed handlers.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Batch invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) Batch(ctx context.Context, batchID int) (BatchDetail, error) {
	m.mu.Lock()
	m.BatchCallCount++
	m.mu.Unlock()
	if m.BatchFn == nil {
		return BatchDetail{}, ErrMockNotImplemented
	}
	return m.BatchFn(ctx, batchID)
}

// Batches invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) Batches(ctx context.Context) ([]domain.BatchSummary, error) {
	m.mu.Lock()
	m.BatchesCallCount++
	m.mu.Unlock()
	if m.BatchesFn == nil {
		return nil, ErrMockNotImplemented
	}
	return m.BatchesFn(ctx)
}

// DeleteBatch invokes the configured stub or returns nil (no-op by default).
func (m *MockClient) DeleteBatch(ctx context.Context, batchID int) error {
	m.mu.Lock()
	m.DeleteBatchCallCount++
	m.mu.Unlock()
	if m.DeleteBatchFn == nil {
		return nil
	}
	return m.DeleteBatchFn(ctx, batchID)
}

// Review invokes the configured stub. Without one it echoes a record holding
// the action's target status.
func (m *MockClient) Review(ctx context.Context, testCaseID int, action domain.Action) (domain.TestCase, error) {
	m.mu.Lock()
	m.ReviewCallCount++
	m.ReviewCallArgs = append(m.ReviewCallArgs, ReviewCallArg{TestCaseID: testCaseID, Action: action})
	m.mu.Unlock()
	if m.ReviewFn == nil {
		return domain.TestCase{ID: testCaseID, Status: action.Target()}, nil
	}
	return m.ReviewFn(ctx, testCaseID, action)
}

// Upload invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) Upload(ctx context.Context, req UploadRequest) (UploadResult, error) {
	m.mu.Lock()
	m.UploadCallCount++
	m.UploadCallArgs = append(m.UploadCallArgs, req)
	m.mu.Unlock()
	if m.UploadFn == nil {
		return UploadResult{}, ErrMockNotImplemented
	}
	return m.UploadFn(ctx, req)
}

// Export invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) Export(ctx context.Context, batchID int, status domain.Status, dst io.Writer) (string, error) {
	m.mu.Lock()
	m.ExportCallCount++
	m.ExportCallArgs = append(m.ExportCallArgs, ExportCallArg{BatchID: batchID, Status: status})
	m.mu.Unlock()
	if m.ExportFn == nil {
		return "", ErrMockNotImplemented
	}
	return m.ExportFn(ctx, batchID, status, dst)
}

// KnowledgeFiles invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) KnowledgeFiles(ctx context.Context) ([]domain.KnowledgeFile, error) {
	m.mu.Lock()
	m.KnowledgeFilesCallCount++
	m.mu.Unlock()
	if m.KnowledgeFilesFn == nil {
		return nil, ErrMockNotImplemented
	}
	return m.KnowledgeFilesFn(ctx)
}

// UploadKnowledge invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) UploadKnowledge(ctx context.Context, path string) (KnowledgeUpload, error) {
	m.mu.Lock()
	m.UploadKnowledgeCallCount++
	m.mu.Unlock()
	if m.UploadKnowledgeFn == nil {
		return KnowledgeUpload{}, ErrMockNotImplemented
	}
	return m.UploadKnowledgeFn(ctx, path)
}

// DeleteKnowledge invokes the configured stub or returns nil (no-op by default).
func (m *MockClient) DeleteKnowledge(ctx context.Context, fileID string) error {
	m.mu.Lock()
	m.DeleteKnowledgeCallCount++
	m.DeleteKnowledgeCallArgs = append(m.DeleteKnowledgeCallArgs, fileID)
	m.mu.Unlock()
	if m.DeleteKnowledgeFn == nil {
		return nil
	}
	return m.DeleteKnowledgeFn(ctx, fileID)
}

// IndexingStatus invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) IndexingStatus(ctx context.Context, uploadBatch string) ([]IndexingProgress, error) {
	m.mu.Lock()
	m.IndexingStatusCallCount++
	m.mu.Unlock()
	if m.IndexingStatusFn == nil {
		return nil, ErrMockNotImplemented
	}
	return m.IndexingStatusFn(ctx, uploadBatch)
}

// ReviewCalls returns a snapshot of the Review arguments seen so far.
func (m *MockClient) ReviewCalls() []ReviewCallArg {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ReviewCallArg(nil), m.ReviewCallArgs...)
}

var _ Client = (*MockClient)(nil)
var _ Client = (*HTTPClient)(nil)
