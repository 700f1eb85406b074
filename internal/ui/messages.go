package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tcreview/internal/api"
	"tcreview/internal/debug"
	"tcreview/internal/domain"
	"tcreview/internal/review"
)

type batchLoadedMsg struct {
	batchID  int
	snapshot review.Snapshot
	err      error
}

type reviewDoneMsg struct {
	batchID int
	id      int
	action  domain.Action
	result  review.ReviewResult
	err     error
}

type bulkProgressMsg struct {
	done  int
	total int
}

type bulkDoneMsg struct {
	batchID int
	action  domain.Action
	result  review.BulkResult
	err     error
}

type exportDoneMsg struct {
	status domain.Status
	path   string
	err    error
}

type uploadDoneMsg struct {
	result api.UploadResult
	err    error
}

type knowledgeLoadedMsg struct {
	files []domain.KnowledgeFile
	err   error
}

type knowledgeUploadedMsg struct {
	upload api.KnowledgeUpload
	err    error
}

type knowledgeDeletedMsg struct {
	id   string
	name string
	err  error
}

type indexingStatusMsg struct {
	batch    string
	progress []api.IndexingProgress
	err      error
}

// reviewRequestMsg is emitted by a row's approve/reject button.
type reviewRequestMsg struct {
	id     int
	action domain.Action
}

// bulkConfirmedMsg is emitted by the bulk confirmation dialog.
type bulkConfirmedMsg struct {
	action domain.Action
}

type exportRequestMsg struct {
	status domain.Status
}

type uploadRequestMsg struct {
	path string
}

type knowledgeUploadRequestMsg struct {
	path string
}

type knowledgeDeleteConfirmedMsg struct {
	file domain.KnowledgeFile
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m *App) fetchBatchCmd(batchID int) tea.Cmd {
	syncer := m.syncer
	return func() tea.Msg {
		start := time.Now()
		snap, err := syncer.Fetch(context.Background(), batchID)
		if err != nil {
			debug.Error().Int("batch", batchID).Err(err).Msg("load batch failed")
		} else {
			debug.Info().Int("batch", batchID).Int("records", len(snap.Records)).
				Dur("elapsed", time.Since(start)).Msg("batch loaded")
		}
		return batchLoadedMsg{batchID: batchID, snapshot: snap, err: err}
	}
}

func (m *App) reviewCmd(id int, action domain.Action) tea.Cmd {
	syncer, batchID := m.syncer, m.session.BatchID()
	return func() tea.Msg {
		res, err := syncer.Review(context.Background(), id, action)
		return reviewDoneMsg{batchID: batchID, id: id, action: action, result: res, err: err}
	}
}

// bulkReviewCmd fans out one request per selected id. Progress is pushed on
// a channel sized to the request count so senders never block; the channel
// is closed once every request has returned.
func (m *App) bulkReviewCmd(ids []int, action domain.Action) (tea.Cmd, <-chan bulkProgressMsg) {
	syncer, batchID := m.syncer, m.session.BatchID()
	updates := make(chan bulkProgressMsg, len(ids))
	run := func() tea.Msg {
		res, err := syncer.ReviewMany(context.Background(), ids, action, func(done, total int) {
			updates <- bulkProgressMsg{done: done, total: total}
		})
		close(updates)
		if err != nil {
			debug.Error().Str("action", string(action)).Int("count", len(ids)).Err(err).Msg("bulk review failed")
		}
		return bulkDoneMsg{batchID: batchID, action: action, result: res, err: err}
	}
	return run, updates
}

func waitForBulkProgress(updates <-chan bulkProgressMsg) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-updates
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *App) exportCmd(batchID int, status domain.Status) tea.Cmd {
	syncer, dir := m.syncer, m.exportDir
	return func() tea.Msg {
		path, err := syncer.Export(context.Background(), batchID, status, dir)
		return exportDoneMsg{status: status, path: path, err: err}
	}
}

func (m *App) uploadCmd(path string) tea.Cmd {
	client, count := m.client, m.uploadCaseCount
	return func() tea.Msg {
		res, err := client.Upload(context.Background(), api.UploadRequest{
			Files:     []string{path},
			Name:      domain.BatchNameFromPath(path),
			CaseCount: count,
		})
		return uploadDoneMsg{result: res, err: err}
	}
}

func (m *App) loadKnowledgeCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		files, err := client.KnowledgeFiles(context.Background())
		return knowledgeLoadedMsg{files: files, err: err}
	}
}

func (m *App) uploadKnowledgeCmd(path string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		res, err := client.UploadKnowledge(context.Background(), path)
		return knowledgeUploadedMsg{upload: res, err: err}
	}
}

func (m *App) deleteKnowledgeCmd(file domain.KnowledgeFile) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.DeleteKnowledge(context.Background(), file.ID)
		return knowledgeDeletedMsg{id: file.ID, name: file.Name, err: err}
	}
}

func (m *App) indexingStatusCmd(batch string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		progress, err := client.IndexingStatus(context.Background(), batch)
		return indexingStatusMsg{batch: batch, progress: progress, err: err}
	}
}
