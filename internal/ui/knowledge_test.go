package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcreview/internal/api"
	"tcreview/internal/domain"
)

func knowledgeMock(files ...domain.KnowledgeFile) *api.MockClient {
	mock := api.NewMockClient()
	mock.KnowledgeFilesFn = func(context.Context) ([]domain.KnowledgeFile, error) {
		return append([]domain.KnowledgeFile(nil), files...), nil
	}
	return mock
}

func sampleKnowledgeFiles() []domain.KnowledgeFile {
	return []domain.KnowledgeFile{
		{ID: "doc-1", Name: "requirements.pdf", Extension: "pdf", Size: 1536, CreatedAt: "1700000000", IndexingStatus: domain.IndexingCompleted},
		{ID: "doc-2", Name: "glossary.md", Extension: "md", Size: 200, CreatedAt: "1700000500", IndexingStatus: domain.IndexingIndexing},
	}
}

func newKnowledgeApp(t *testing.T, mock *api.MockClient) *App {
	t.Helper()
	return newLoadedApp(t, mock, func(c *Config) {
		c.BatchID = 0
		c.StartScreen = ScreenKnowledge
	})
}

func TestKnowledgeScreenListsFiles(t *testing.T) {
	mock := knowledgeMock(sampleKnowledgeFiles()...)
	m := newKnowledgeApp(t, mock)

	require.Equal(t, ScreenKnowledge, m.screen)
	assert.True(t, m.knowledge.loaded)
	assert.Equal(t, 0, mock.BatchCallCount)

	view := m.View()
	assert.Contains(t, view, "Knowledge Base")
	assert.Contains(t, view, "requirements.pdf")
	assert.Contains(t, view, "1.5 KB")
	assert.Contains(t, view, "Completed")
	assert.Contains(t, view, "2 files")
}

func TestKnowledgeEmptyList(t *testing.T) {
	m := newKnowledgeApp(t, knowledgeMock())
	assert.Contains(t, m.View(), knowledgeEmptyMessage)
}

func TestKnowledgeToggleFromReview(t *testing.T) {
	mock := knowledgeMock(sampleKnowledgeFiles()...)
	m := newLoadedApp(t, mock, func(c *Config) { c.BatchID = 0 })

	press(t, m, "K")
	assert.Equal(t, ScreenKnowledge, m.screen)
	assert.Equal(t, 1, mock.KnowledgeFilesCallCount)

	press(t, m, "esc")
	assert.Equal(t, ScreenReview, m.screen)
}

func TestKnowledgeDeleteDefaultsToCancel(t *testing.T) {
	mock := knowledgeMock(sampleKnowledgeFiles()...)
	m := newKnowledgeApp(t, mock)

	press(t, m, "d")
	require.True(t, m.dialogs.Active())
	assert.Contains(t, m.dialogs.View(), "requirements.pdf")

	press(t, m, "enter")
	assert.Equal(t, 0, mock.DeleteKnowledgeCallCount)
	assert.False(t, m.dialogs.Active())
}

func TestKnowledgeDeleteConfirmed(t *testing.T) {
	mock := knowledgeMock(sampleKnowledgeFiles()...)
	m := newKnowledgeApp(t, mock)

	press(t, m, "down", "d", "tab", "enter")

	assert.Equal(t, []string{"doc-2"}, mock.DeleteKnowledgeCallArgs)
	assert.Equal(t, 2, mock.KnowledgeFilesCallCount, "list reloads after delete")
	assert.Equal(t, []string{"Deleted glossary.md"}, m.toaster.Messages())
}

func TestKnowledgeDeleteFailure(t *testing.T) {
	mock := knowledgeMock(sampleKnowledgeFiles()...)
	mock.DeleteKnowledgeFn = func(context.Context, string) error { return errors.New("locked") }
	m := newKnowledgeApp(t, mock)

	press(t, m, "d", "tab", "enter")

	assert.Equal(t, 1, mock.KnowledgeFilesCallCount)
	assert.Equal(t, []string{"Delete failed: locked"}, m.toaster.Messages())
}

func TestKnowledgeUploadThenIndexingStatus(t *testing.T) {
	mock := knowledgeMock(sampleKnowledgeFiles()...)
	mock.UploadKnowledgeFn = func(_ context.Context, path string) (api.KnowledgeUpload, error) {
		var up api.KnowledgeUpload
		up.Batch = "batch-42"
		up.File.FileName = "guide.md"
		return up, nil
	}
	var polled string
	mock.IndexingStatusFn = func(_ context.Context, batch string) ([]api.IndexingProgress, error) {
		polled = batch
		return []api.IndexingProgress{{ID: "doc-9", Status: domain.IndexingIndexing, CompletedSegments: 3, TotalSegments: 10}}, nil
	}
	m := newKnowledgeApp(t, mock)

	press(t, m, "i")
	assert.Equal(t, 0, mock.IndexingStatusCallCount, "nothing to poll before an upload")
	assert.Equal(t, []string{"Upload a file first to check its indexing status"}, m.toaster.Messages())

	press(t, m, "u")
	require.True(t, m.dialogs.Active())
	typeText(t, m, "guide.md")
	press(t, m, "enter")

	assert.Equal(t, 1, mock.UploadKnowledgeCallCount)
	assert.Equal(t, 2, mock.KnowledgeFilesCallCount)
	assert.Contains(t, m.toaster.Messages(), "Uploaded guide.md; press i for indexing status")

	press(t, m, "i")
	assert.Equal(t, "batch-42", polled)
	require.True(t, m.dialogs.Active())
	assert.Contains(t, m.dialogs.View(), "guide.md: Indexing (3/10 segments)")
}

func TestIndexingSummary(t *testing.T) {
	m := &App{}
	got := m.indexingSummary(indexingStatusMsg{progress: []api.IndexingProgress{
		{ID: "a", Status: domain.IndexingCompleted, CompletedSegments: 4, TotalSegments: 4},
		{ID: "b", Status: domain.IndexingError, Error: "bad encoding"},
	}})
	assert.Equal(t, "a: Completed (4/4 segments)\nb: Error - bad encoding", got)

	assert.Equal(t, "No documents are being processed.", m.indexingSummary(indexingStatusMsg{}))
}

func TestKnowledgeCursorClamps(t *testing.T) {
	k := knowledgeState{files: sampleKnowledgeFiles()}
	k.move(5)
	assert.Equal(t, 1, k.cursor)
	k.move(-9)
	assert.Equal(t, 0, k.cursor)

	empty := knowledgeState{}
	_, ok := empty.current()
	assert.False(t, ok)
}
