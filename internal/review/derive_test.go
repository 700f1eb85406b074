package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"tcreview/internal/domain"
)

var genStatuses = []domain.Status{
	domain.StatusPending, domain.StatusApproved, domain.StatusRejected, domain.StatusUnknown,
}

func genRecords(rt *rapid.T) []domain.TestCase {
	n := rapid.IntRange(0, 40).Draw(rt, "n")
	records := make([]domain.TestCase, n)
	for i := range records {
		records[i] = domain.TestCase{
			ID:          i + 1,
			Title:       rapid.StringMatching(`[abAB é]{0,4}`).Draw(rt, "title"),
			Description: rapid.StringMatching(`[abc]{0,3}`).Draw(rt, "description"),
			Status:      rapid.SampledFrom(genStatuses).Draw(rt, "status"),
		}
	}
	return records
}

func ids(records []domain.TestCase) []int {
	out := make([]int, len(records))
	for i, tc := range records {
		out[i] = tc.ID
	}
	return out
}

func titles(records []domain.TestCase) []string {
	out := make([]string, len(records))
	for i, tc := range records {
		out[i] = tc.Title
	}
	return out
}

func TestDeriveKeepsExactlyMatchingRecordsInComparatorOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		records := genRecords(rt)
		query := NormalizeQuery(rapid.StringMatching(`[aAbc ]{0,2}`).Draw(rt, "query"))
		filter := rapid.SampledFrom(Filters).Draw(rt, "filter")
		key := rapid.SampledFrom(SortKeys).Draw(rt, "sort")

		derived := Derive(records, query, filter, key)

		// Membership: exactly the records passing both predicates.
		want := map[int]bool{}
		for _, tc := range records {
			if tc.Matches(query) && filter.Keep(tc) {
				want[tc.ID] = true
			}
		}
		if len(derived) != len(want) {
			rt.Fatalf("derived %d records, want %d", len(derived), len(want))
		}
		position := map[int]int{}
		for i, tc := range records {
			position[tc.ID] = i
		}
		for i, tc := range derived {
			if !want[tc.ID] {
				rt.Fatalf("record %d should have been excluded", tc.ID)
			}
			if i == 0 {
				continue
			}
			prev := derived[i-1]
			c := compareForKey(prev, tc, key)
			if c > 0 {
				rt.Fatalf("records %d and %d out of order for %s", prev.ID, tc.ID, key)
			}
			if c == 0 && position[prev.ID] > position[tc.ID] {
				rt.Fatalf("sort is not stable for ties %d and %d", prev.ID, tc.ID)
			}
		}

		// Deterministic and idempotent.
		again := Derive(records, query, filter, key)
		if !assert.ObjectsAreEqual(derived, again) {
			rt.Fatalf("second derivation differs")
		}
	})
}

func compareForKey(a, b domain.TestCase, key SortKey) int {
	switch key {
	case SortTitleAsc:
		return CompareTitles(a.Title, b.Title)
	case SortTitleDesc:
		return CompareTitles(b.Title, a.Title)
	case SortStatusAsc:
		return a.Status.Rank(false) - b.Status.Rank(false)
	default:
		return a.Status.Rank(true) - b.Status.Rank(true)
	}
}

func TestDeriveDoesNotMutateSource(t *testing.T) {
	records := []domain.TestCase{{ID: 1, Title: "b"}, {ID: 2, Title: "a"}}
	_ = Derive(records, "", FilterAll, SortTitleAsc)
	assert.Equal(t, []int{1, 2}, ids(records))
}

func threeRecordBatch() []domain.TestCase {
	return []domain.TestCase{
		{ID: 1, Title: "B", Status: domain.StatusPending},
		{ID: 2, Title: "A", Status: domain.StatusApproved},
		{ID: 3, Title: "C", Status: domain.StatusRejected},
	}
}

func TestDeriveScenarioOrders(t *testing.T) {
	records := threeRecordBatch()

	assert.Equal(t, []string{"A", "B", "C"}, titles(Derive(records, "", FilterAll, SortTitleAsc)))
	assert.Equal(t, []string{"C", "B", "A"}, titles(Derive(records, "", FilterAll, SortTitleDesc)))
	assert.Equal(t, []string{"B", "A", "C"}, titles(Derive(records, "", FilterAll, SortStatusAsc)))
	assert.Equal(t, []string{"C", "A", "B"}, titles(Derive(records, "", FilterAll, SortStatusDesc)))
}

func TestDeriveMissingStatusRanksAsPending(t *testing.T) {
	records := []domain.TestCase{
		{ID: 1, Title: "x", Status: domain.StatusRejected},
		{ID: 2, Title: "y"},
		{ID: 3, Title: "z", Status: domain.StatusApproved},
	}
	assert.Equal(t, []int{2, 3, 1}, ids(Derive(records, "", FilterAll, SortStatusAsc)))
	assert.Equal(t, []int{1, 3, 2}, ids(Derive(records, "", FilterAll, SortStatusDesc)))
}

func TestDeriveFilterComparesStoredStatus(t *testing.T) {
	records := []domain.TestCase{
		{ID: 1, Title: "x", Status: domain.StatusPending},
		{ID: 2, Title: "y"},
	}
	assert.Equal(t, []int{1}, ids(Derive(records, "", FilterPending, SortTitleAsc)))
	assert.Equal(t, []int{1, 2}, ids(Derive(records, "", FilterAll, SortTitleAsc)))
}

func TestDeriveSearchMatchesTitleOrDescription(t *testing.T) {
	records := []domain.TestCase{
		{ID: 1, Title: "Login page", Description: "happy path"},
		{ID: 2, Title: "Checkout", Description: "LOGIN required first"},
		{ID: 3, Title: "Profile"},
	}
	assert.Equal(t, []int{2, 1}, ids(Derive(records, NormalizeQuery("  Login "), FilterAll, SortTitleAsc)))
	assert.Empty(t, Derive(records, "zzz", FilterAll, SortTitleAsc))
}

func TestDeriveTitleCollationIsCaseInsensitiveAtPrimaryLevel(t *testing.T) {
	records := []domain.TestCase{
		{ID: 1, Title: "banana"},
		{ID: 2, Title: "Apple"},
		{ID: 3, Title: "cherry"},
	}
	assert.Equal(t, []int{2, 1, 3}, ids(Derive(records, "", FilterAll, SortTitleAsc)))
}

func TestPaginate(t *testing.T) {
	records := make([]domain.TestCase, 23)
	for i := range records {
		records[i] = domain.TestCase{ID: i + 1}
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ids(Paginate(records, 1, 10)))
	assert.Equal(t, []int{21, 22, 23}, ids(Paginate(records, 3, 10)))
	assert.Empty(t, Paginate(records, 4, 10), "out-of-range page renders empty")
	assert.Empty(t, Paginate(records, 0, 10))
	assert.Equal(t, 3, TotalPages(len(records), 10))
	assert.Equal(t, 0, TotalPages(0, 10))
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		current, total int
		want           []int
	}{
		{1, 1, []int{1}},
		{1, 3, []int{1, 2, 3}},
		{1, 10, []int{1, 2, 3, 4, 5}},
		{5, 10, []int{3, 4, 5, 6, 7}},
		{10, 10, []int{6, 7, 8, 9, 10}},
		{9, 10, []int{6, 7, 8, 9, 10}},
		{12, 3, []int{1, 2, 3}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PageWindow(tt.current, tt.total), "current=%d total=%d", tt.current, tt.total)
	}
	assert.Nil(t, PageWindow(1, 0))
}

func TestParseFilterAndSort(t *testing.T) {
	f, err := ParseFilter(" Approved ")
	require.NoError(t, err)
	assert.Equal(t, FilterApproved, f)
	f, err = ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)
	_, err = ParseFilter("done")
	assert.Error(t, err)

	k, err := ParseSortKey("status-desc")
	require.NoError(t, err)
	assert.Equal(t, SortStatusDesc, k)
	_, err = ParseSortKey("priority")
	assert.Error(t, err)

	assert.Equal(t, SortTitleDesc, SortTitleAsc.Next())
	assert.Equal(t, SortTitleAsc, SortStatusDesc.Next())
	assert.Equal(t, domain.StatusUnknown, FilterAll.Status())
	assert.Equal(t, domain.StatusRejected, FilterRejected.Status())
}
