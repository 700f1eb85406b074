package review

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"tcreview/internal/domain"
)

func newLoadedSession(t testing.TB, n, pageSize int) *Session {
	t.Helper()
	records := make([]domain.TestCase, n)
	for i := range records {
		records[i] = domain.TestCase{
			ID:     i + 1,
			Title:  fmt.Sprintf("Case %03d", i+1),
			Status: domain.StatusPending,
		}
	}
	s := NewSession(1, pageSize)
	s.Load(domain.Batch{ID: 1, Name: "batch"}, records)
	return s
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession(4, 0)
	assert.Equal(t, DefaultPageSize, s.PageSize())
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, FilterAll, s.Filter())
	assert.Equal(t, SortTitleAsc, s.Sort())
	assert.False(t, s.Loaded())
	assert.True(t, s.View().Empty)
}

func TestQueryAndFilterResetPageButSortDoesNot(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := newLoadedSession(t, 35, 10)
		page := rapid.IntRange(1, 6).Draw(rt, "page")

		s.SetPage(page)
		s.SetSort(rapid.SampledFrom(SortKeys).Draw(rt, "sort"))
		if s.Page() != page {
			rt.Fatalf("sort change moved page from %d to %d", page, s.Page())
		}

		s.SetPage(page)
		s.SetQuery(rapid.StringMatching(`[a-z]{0,3}`).Draw(rt, "query"))
		if s.Page() != 1 {
			rt.Fatalf("query change left page at %d", s.Page())
		}

		s.SetPage(page)
		s.SetFilter(rapid.SampledFrom(Filters).Draw(rt, "filter"))
		if s.Page() != 1 {
			rt.Fatalf("filter change left page at %d", s.Page())
		}
	})
}

func TestRepeatingControlsYieldsIdenticalView(t *testing.T) {
	s := NewSession(1, 10)
	s.Load(domain.Batch{}, threeRecordBatch())

	s.SetQuery("a")
	s.SetFilter(FilterApproved)
	s.SetSort(SortStatusDesc)
	first := s.View()

	s.SetQuery("a")
	s.SetFilter(FilterApproved)
	s.SetSort(SortStatusDesc)
	assert.Equal(t, first, s.View())
}

func TestSetPageClampsBelowOneOnly(t *testing.T) {
	s := newLoadedSession(t, 15, 10)
	s.SetPage(0)
	assert.Equal(t, 1, s.Page())

	s.SetPage(9)
	assert.Equal(t, 9, s.Page())
	view := s.View()
	assert.Empty(t, view.Rows, "out-of-range page renders nothing")
	assert.False(t, view.Empty, "records still match, so no no-results message")
	require.NotNil(t, view.Pagination)
}

func TestNextAndPrevPageStopAtBounds(t *testing.T) {
	s := newLoadedSession(t, 25, 10)
	assert.False(t, s.PrevPage())
	assert.True(t, s.NextPage())
	assert.True(t, s.NextPage())
	assert.False(t, s.NextPage())
	assert.Equal(t, 3, s.Page())
	assert.True(t, s.PrevPage())
	assert.Equal(t, 2, s.Page())
}

func TestNoResultsViewHasMessageAndNoPagination(t *testing.T) {
	s := newLoadedSession(t, 30, 10)
	s.SetQuery("zzz")

	view := s.View()
	assert.True(t, view.Empty)
	assert.Equal(t, NoResultsMessage, view.Message)
	assert.Empty(t, view.Rows)
	assert.Nil(t, view.Pagination)
}

func TestSinglePageHidesPagination(t *testing.T) {
	s := newLoadedSession(t, 10, 10)
	view := s.View()
	assert.Len(t, view.Rows, 10)
	assert.Nil(t, view.Pagination)
}

func TestPaginationViewWindow(t *testing.T) {
	s := newLoadedSession(t, 95, 10)
	s.SetPage(10)
	view := s.View()
	require.NotNil(t, view.Pagination)
	assert.Equal(t, []int{6, 7, 8, 9, 10}, view.Pagination.Pages)
	assert.True(t, view.Pagination.PrevEnabled)
	assert.False(t, view.Pagination.NextEnabled)
	assert.Len(t, view.Rows, 5)
}

func TestApprovingPendingRecordUpdatesViewWithoutReload(t *testing.T) {
	s := NewSession(1, 10)
	s.Load(domain.Batch{}, threeRecordBatch())
	s.SetFilter(FilterPending)

	view := s.View()
	require.Len(t, view.Rows, 1)
	assert.Equal(t, []domain.Action{domain.ActionApprove, domain.ActionReject}, view.Rows[0].Actions)

	require.True(t, ReviewResult{ID: 1, Action: domain.ActionApprove}.Apply(s))

	rec, ok := s.Record(1)
	require.True(t, ok)
	assert.Equal(t, domain.StatusApproved, rec.Status)
	assert.True(t, s.View().Empty, "approved record leaves the pending view")

	s.SetFilter(FilterAll)
	for _, row := range s.View().Rows {
		if row.ID == 1 {
			assert.Equal(t, []domain.Action{domain.ActionReject}, row.Actions)
		}
	}
	assert.Equal(t, domain.Stats{Total: 3, Reviewed: 3, Approved: 2, Rejected: 1}, s.Stats())
}

func TestApplyStatusUnknownRecord(t *testing.T) {
	s := newLoadedSession(t, 3, 10)
	assert.False(t, s.ApplyStatus(99, domain.StatusApproved))
}

func TestLoadKeepsControlsAndSelection(t *testing.T) {
	s := newLoadedSession(t, 30, 10)
	s.SetQuery("case")
	s.SetSort(SortTitleDesc)
	s.SetPage(2)
	s.Selection().Set(5, true)

	fresh := s.Records()
	fresh[0].Status = domain.StatusRejected
	s.Load(domain.Batch{ID: 1, Name: "renamed"}, fresh)

	assert.Equal(t, "case", s.Query())
	assert.Equal(t, SortTitleDesc, s.Sort())
	assert.Equal(t, 2, s.Page())
	assert.True(t, s.Selection().Has(5))
	assert.Equal(t, "renamed", s.Batch().Name)
	assert.Equal(t, 1, s.Stats().Rejected)
	assert.Equal(t, 20, s.View().Rows[0].ID, "descending titles, second page")
}

func TestViewRowFieldsDefaultToNone(t *testing.T) {
	s := NewSession(1, 10)
	s.Load(domain.Batch{}, []domain.TestCase{{ID: 1, Title: "x", Steps: "1. go"}})
	row := s.View().Rows[0]
	assert.Equal(t, "none", row.Description)
	assert.Equal(t, "none", row.Preconditions)
	assert.Equal(t, "1. go", row.Steps)
	assert.Equal(t, domain.StatusPending, row.Status)
}
