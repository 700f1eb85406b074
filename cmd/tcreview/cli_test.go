package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcreview/internal/api"
	"tcreview/internal/config"
	"tcreview/internal/domain"
	appErrors "tcreview/internal/errors"
	"tcreview/internal/review"
	"tcreview/internal/ui"
)

type fakeProgram struct {
	app *ui.App
	err error
}

func (p *fakeProgram) Run() (tea.Model, error) { return p.app, p.err }

type cliHarness struct {
	mock *api.MockClient
	out  bytes.Buffer
	err  bytes.Buffer
	apps []*ui.App
}

func newHarness(t *testing.T) *cliHarness {
	t.Helper()
	t.Cleanup(config.ResetForTesting(t))
	return &cliHarness{mock: api.NewMockClient()}
}

func (h *cliHarness) run(args ...string) error {
	c := &cli{
		out:    &h.out,
		errOut: &h.err,
		newClient: func(config.Settings) (api.Client, error) {
			return h.mock, nil
		},
		program: func(app *ui.App) programRunner {
			h.apps = append(h.apps, app)
			return &fakeProgram{app: app}
		},
	}
	root := newRootCmd(c)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func sampleBatches() []domain.BatchSummary {
	return []domain.BatchSummary{
		{Batch: domain.Batch{ID: 3, Name: "Login", CreatedAt: "1700000000"}, TestCaseCount: 12},
		{Batch: domain.Batch{ID: 8, Name: "Checkout flow", CreatedAt: "1700500000"}, TestCaseCount: 40},
		{Batch: domain.Batch{ID: 5, Name: "Search"}, TestCaseCount: 7},
	}
}

func TestBatchesTable(t *testing.T) {
	h := newHarness(t)
	h.mock.BatchesFn = func(context.Context) ([]domain.BatchSummary, error) { return sampleBatches(), nil }

	require.NoError(t, h.run("batches"))

	out := h.out.String()
	for _, want := range []string{"ID", "NAME", "CASES", "CREATED", "Checkout flow", "40", "unknown"} {
		assert.Contains(t, out, want)
	}
}

func TestBatchesEmpty(t *testing.T) {
	h := newHarness(t)
	h.mock.BatchesFn = func(context.Context) ([]domain.BatchSummary, error) { return nil, nil }

	require.NoError(t, h.run("batches"))
	assert.Equal(t, "No batches found.\n", h.out.String())
}

func TestBatchesJSON(t *testing.T) {
	h := newHarness(t)
	h.mock.BatchesFn = func(context.Context) ([]domain.BatchSummary, error) { return sampleBatches(), nil }

	require.NoError(t, h.run("--json", "batches"))

	var got []domain.BatchSummary
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "Checkout flow", got[1].Name)
	assert.Equal(t, 40, got[1].TestCaseCount)
}

func TestBatchDeleteRequiresYes(t *testing.T) {
	h := newHarness(t)
	h.mock.DeleteBatchFn = func(context.Context, int) error { return nil }

	err := h.run("batches", "delete", "4")
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeInvalidArgument))
	assert.Equal(t, 0, h.mock.DeleteBatchCallCount)

	require.NoError(t, h.run("batches", "delete", "#4", "--yes"))
	assert.Equal(t, 1, h.mock.DeleteBatchCallCount)
	assert.Equal(t, "Deleted batch #4\n", h.out.String())
}

func TestExportWritesFile(t *testing.T) {
	h := newHarness(t)
	h.mock.ExportFn = func(_ context.Context, _ int, _ domain.Status, dst io.Writer) (string, error) {
		_, err := dst.Write([]byte("xlsx"))
		return "Checkout_flow.xlsx", err
	}
	dir := t.TempDir()

	require.NoError(t, h.run("export", "8", "--status", "approved", "--out", dir))

	path := filepath.Join(dir, "Checkout_flow.xlsx")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "xlsx", string(data))
	assert.Equal(t, []api.ExportCallArg{{BatchID: 8, Status: domain.StatusApproved}}, h.mock.ExportCallArgs)
	assert.Equal(t, review.ExportMessage(domain.StatusApproved)+": "+path+"\n", h.out.String())
}

func TestExportAllUsesBlankStatus(t *testing.T) {
	h := newHarness(t)
	h.mock.ExportFn = func(context.Context, int, domain.Status, io.Writer) (string, error) {
		return "all.xlsx", nil
	}

	require.NoError(t, h.run("export", "2", "--out", t.TempDir()))
	require.Len(t, h.mock.ExportCallArgs, 1)
	assert.Equal(t, domain.StatusUnknown, h.mock.ExportCallArgs[0].Status)
}

func TestExportRejectsUnknownStatus(t *testing.T) {
	h := newHarness(t)

	err := h.run("export", "2", "--status", "archived")
	require.Error(t, err)
	assert.Equal(t, 0, h.mock.ExportCallCount)
}

func TestUploadValidatesFiles(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()

	err := h.run("upload", filepath.Join(dir, "notes.txt"))
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeInvalidArgument))

	err = h.run("upload", filepath.Join(dir, "missing.pdf"))
	require.Error(t, err)
	assert.Equal(t, 0, h.mock.UploadCallCount)
}

func TestUploadGeneratesBatch(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "login.md")
	require.NoError(t, os.WriteFile(path, []byte("# Login"), 0o600))
	h.mock.UploadFn = func(_ context.Context, req api.UploadRequest) (api.UploadResult, error) {
		return api.UploadResult{BatchID: 9, BatchName: req.Name, TestCases: make([]domain.TestCase, 2)}, nil
	}

	require.NoError(t, h.run("upload", path))

	require.Len(t, h.mock.UploadCallArgs, 1)
	req := h.mock.UploadCallArgs[0]
	assert.Equal(t, "login", req.Name)
	assert.Equal(t, config.DefaultUploadCaseCount, req.CaseCount)
	assert.Equal(t, []string{path}, req.Files)
	assert.Equal(t, "Generated 2 test cases in batch #9 (login)\n", h.out.String())
	assert.Empty(t, h.apps)
}

func TestUploadOpenStartsReview(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "spec.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0o600))
	h.mock.UploadFn = func(_ context.Context, req api.UploadRequest) (api.UploadResult, error) {
		return api.UploadResult{BatchID: 11, BatchName: req.Name}, nil
	}

	require.NoError(t, h.run("upload", path, "--name", "Payments", "--case-count", "20", "--open"))

	assert.Equal(t, "Payments", h.mock.UploadCallArgs[0].Name)
	assert.Equal(t, 20, h.mock.UploadCallArgs[0].CaseCount)
	require.Len(t, h.apps, 1)
	assert.Equal(t, 11, h.apps[0].Session().BatchID())
}

func TestReviewOpensLatestBatch(t *testing.T) {
	h := newHarness(t)
	h.mock.BatchesFn = func(context.Context) ([]domain.BatchSummary, error) { return sampleBatches(), nil }

	require.NoError(t, h.run("review", "--page-size", "5"))

	require.Len(t, h.apps, 1)
	assert.Equal(t, 8, h.apps[0].Session().BatchID())
	assert.Equal(t, 5, h.apps[0].Session().PageSize())
	assert.Empty(t, h.out.String(), "no summary when the batch never loaded")
}

func TestRootRunsReviewWithExplicitBatch(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("12"))

	assert.Equal(t, 0, h.mock.BatchesCallCount)
	require.Len(t, h.apps, 1)
	assert.Equal(t, 12, h.apps[0].Session().BatchID())
	assert.Equal(t, config.DefaultPageSize, h.apps[0].Session().PageSize())
}

func TestReviewKnowledgeSkipsBatchLookup(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("review", "--knowledge"))
	assert.Equal(t, 0, h.mock.BatchesCallCount)
	require.Len(t, h.apps, 1)
	assert.Equal(t, 0, h.apps[0].Session().BatchID())
}

func TestReviewInvalidBatchID(t *testing.T) {
	h := newHarness(t)

	for _, arg := range []string{"abc", "0", "-3"} {
		err := h.run("review", "--", arg)
		require.Error(t, err, arg)
		assert.True(t, appErrors.IsCode(err, appErrors.CodeInvalidArgument), arg)
	}
	assert.Empty(t, h.apps)
}

func TestServerFlagOverridesConfig(t *testing.T) {
	h := newHarness(t)
	var got string
	c := &cli{
		out:    &h.out,
		errOut: &h.err,
		newClient: func(s config.Settings) (api.Client, error) {
			got = s.ServerURL
			return h.mock, nil
		},
	}
	h.mock.KnowledgeFilesFn = func(context.Context) ([]domain.KnowledgeFile, error) { return nil, nil }
	root := newRootCmd(c)
	root.SetArgs([]string{"--server", "http://review.test:8080", "kb", "list"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "http://review.test:8080", got)
}

func TestKnowledgeList(t *testing.T) {
	h := newHarness(t)
	h.mock.KnowledgeFilesFn = func(context.Context) ([]domain.KnowledgeFile, error) {
		return []domain.KnowledgeFile{
			{ID: "doc-1", Name: "requirements.pdf", Extension: "pdf", Size: 1536, IndexingStatus: domain.IndexingCompleted},
		}, nil
	}

	require.NoError(t, h.run("kb", "list"))

	out := h.out.String()
	for _, want := range []string{"requirements.pdf", "PDF", "1.5 KB", "Completed"} {
		assert.Contains(t, out, want)
	}
}

func TestKnowledgeDelete(t *testing.T) {
	h := newHarness(t)
	h.mock.DeleteKnowledgeFn = func(context.Context, string) error { return nil }

	require.Error(t, h.run("kb", "delete", "doc-1"))
	require.NoError(t, h.run("kb", "delete", "doc-1", "-y"))
	assert.Equal(t, []string{"doc-1"}, h.mock.DeleteKnowledgeCallArgs)
}

func TestKnowledgeUploadWaitsForIndexing(t *testing.T) {
	h := newHarness(t)
	h.mock.UploadKnowledgeFn = func(context.Context, string) (api.KnowledgeUpload, error) {
		var up api.KnowledgeUpload
		up.Batch = "batch-7"
		up.File.FileName = "guide.md"
		return up, nil
	}
	var mu sync.Mutex
	polls := 0
	h.mock.IndexingStatusFn = func(_ context.Context, batch string) ([]api.IndexingProgress, error) {
		mu.Lock()
		defer mu.Unlock()
		polls++
		status := domain.IndexingIndexing
		if polls >= 3 {
			status = domain.IndexingCompleted
		}
		return []api.IndexingProgress{{ID: "doc-9", Status: status, CompletedSegments: polls, TotalSegments: 3}}, nil
	}

	require.NoError(t, h.run("kb", "upload", "guide.md", "--wait", "--interval", "1ms"))

	assert.Equal(t, 3, h.mock.IndexingStatusCallCount)
	out := h.out.String()
	assert.Contains(t, out, "Uploaded guide.md (indexing batch batch-7)")
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "3/3")
}

func TestKnowledgeStatusEmpty(t *testing.T) {
	h := newHarness(t)
	h.mock.IndexingStatusFn = func(context.Context, string) ([]api.IndexingProgress, error) { return nil, nil }

	require.NoError(t, h.run("kb", "status", "batch-1"))
	assert.Equal(t, "No documents are being processed.\n", h.out.String())
}

func TestVersionCommand(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("version"))
	assert.Contains(t, h.out.String(), "tcreview version "+Version)
}

func TestParseExportStatus(t *testing.T) {
	for raw, want := range map[string]domain.Status{
		"":         domain.StatusUnknown,
		"all":      domain.StatusUnknown,
		" ALL ":    domain.StatusUnknown,
		"Rejected": domain.StatusRejected,
		"pending":  domain.StatusPending,
	} {
		got, err := parseExportStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
}
