package review

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"tcreview/internal/api"
	"tcreview/internal/domain"
	appErrors "tcreview/internal/errors"
)

// Syncer issues the server calls behind review actions. Its methods only do
// I/O; each returns a result whose Apply method performs the matching local
// update, so callers decide when session state changes.
type Syncer struct {
	client api.Client
}

// NewSyncer wraps client.
func NewSyncer(client api.Client) *Syncer {
	return &Syncer{client: client}
}

// Snapshot is a full copy of a batch as served.
type Snapshot struct {
	Batch   domain.Batch
	Records []domain.TestCase
}

// Apply overwrites the session's source collection.
func (r Snapshot) Apply(s *Session) {
	s.Load(r.Batch, r.Records)
}

// Fetch loads the entire batch.
func (y *Syncer) Fetch(ctx context.Context, batchID int) (Snapshot, error) {
	detail, err := y.client.Batch(ctx, batchID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load batch %d: %w", batchID, err)
	}
	return Snapshot{Batch: detail.Batch, Records: detail.TestCases}, nil
}

// ReviewResult is a single confirmed approve or reject.
type ReviewResult struct {
	ID     int
	Action domain.Action
	Record domain.TestCase
}

// Apply sets the record's local status to the action's target. The list is
// re-derived without another round trip.
func (r ReviewResult) Apply(s *Session) bool {
	return s.ApplyStatus(r.ID, r.Action.Target())
}

// Review sends one approve or reject. Nothing local changes until the caller
// applies the result, so a failure needs no rollback.
func (y *Syncer) Review(ctx context.Context, id int, action domain.Action) (ReviewResult, error) {
	record, err := y.client.Review(ctx, id, action)
	if err != nil {
		return ReviewResult{}, err
	}
	return ReviewResult{ID: id, Action: action, Record: record}, nil
}

// ProgressFunc observes bulk completion. It is called from the request
// goroutines and must be safe for concurrent use.
type ProgressFunc func(done, total int)

// BulkResult is a bulk action that succeeded for every id.
type BulkResult struct {
	IDs    []int
	Action domain.Action
}

// Count returns the number of records updated.
func (r BulkResult) Count() int { return len(r.IDs) }

// Apply clears the selection. Statuses are not patched locally; callers
// reload the batch to pick up the server's state.
func (r BulkResult) Apply(s *Session) {
	s.DeselectAll()
}

// ReviewMany sends one request per id, all at once, and waits for every one
// to finish. Any failure fails the whole batch and the first error is
// returned; requests already in flight are not cancelled.
func (y *Syncer) ReviewMany(ctx context.Context, ids []int, action domain.Action, progress ProgressFunc) (BulkResult, error) {
	if len(ids) == 0 {
		return BulkResult{}, appErrors.New(appErrors.CodeInvalidArgument, "no test cases selected", nil)
	}
	total := len(ids)
	var done atomic.Int32
	var g errgroup.Group
	for _, id := range ids {
		g.Go(func() error {
			_, err := y.client.Review(ctx, id, action)
			n := int(done.Add(1))
			if progress != nil {
				progress(n, total)
			}
			if err != nil {
				return fmt.Errorf("cannot %s test case %d: %w", action, id, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BulkResult{}, err
	}
	return BulkResult{IDs: append([]int(nil), ids...), Action: action}, nil
}
