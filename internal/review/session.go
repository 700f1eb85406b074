package review

import "tcreview/internal/domain"

// DefaultPageSize is the number of rows per page when none is configured.
const DefaultPageSize = 10

// NoResultsMessage is rendered in place of the list when nothing matches.
const NoResultsMessage = "No matching test cases found"

// Session is the review state for one batch: the synced copy of the server's
// records, the list controls, and the selection. The derived list is rebuilt
// in full after every change and is never patched in place.
//
// A Session is not safe for concurrent use; in the TUI it is only touched
// from Update.
type Session struct {
	batchID  int
	batch    domain.Batch
	records  []domain.TestCase
	derived  []domain.TestCase
	stats    domain.Stats
	loaded   bool
	query    string
	filter   Filter
	sort     SortKey
	page     int
	pageSize int
	selected *Selection
}

// NewSession creates an empty session for batchID. A non-positive pageSize
// falls back to DefaultPageSize.
func NewSession(batchID, pageSize int) *Session {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Session{
		batchID:  batchID,
		filter:   FilterAll,
		sort:     SortTitleAsc,
		page:     1,
		pageSize: pageSize,
		selected: NewSelection(),
		records:  []domain.TestCase{},
		derived:  []domain.TestCase{},
	}
}

// Load replaces the source collection with a fresh server copy, recomputes
// the summary counts, and re-applies the current query, filter, sort and
// page. The selection is left alone.
func (s *Session) Load(batch domain.Batch, records []domain.TestCase) {
	s.batch = batch
	s.records = append([]domain.TestCase(nil), records...)
	s.loaded = true
	s.refresh()
}

// SetQuery updates the search text and returns to page 1.
func (s *Session) SetQuery(raw string) {
	s.query = NormalizeQuery(raw)
	s.page = 1
	s.refresh()
}

// SetFilter updates the status filter and returns to page 1.
func (s *Session) SetFilter(f Filter) {
	s.filter = f
	s.page = 1
	s.refresh()
}

// SetSort updates the ordering. The current page is kept.
func (s *Session) SetSort(k SortKey) {
	s.sort = k
	s.refresh()
}

// SetPage moves to page p. Values past the last page are kept and render as
// an empty page; values below 1 become 1.
func (s *Session) SetPage(p int) {
	if p < 1 {
		p = 1
	}
	s.page = p
}

// NextPage advances one page unless already on the last one.
func (s *Session) NextPage() bool {
	if s.page >= s.TotalPages() {
		return false
	}
	s.page++
	return true
}

// PrevPage goes back one page unless already on the first.
func (s *Session) PrevPage() bool {
	if s.page <= 1 {
		return false
	}
	s.page--
	return true
}

// ApplyStatus sets the status of the record with id and rebuilds the stats
// and the derived list. It reports whether the record was found.
func (s *Session) ApplyStatus(id int, status domain.Status) bool {
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Status = status
			s.refresh()
			return true
		}
	}
	return false
}

func (s *Session) refresh() {
	s.derived = Derive(s.records, s.query, s.filter, s.sort)
	s.stats = domain.ComputeStats(s.records)
}

// BatchID returns the id of the batch under review.
func (s *Session) BatchID() int { return s.batchID }

// Batch returns the batch metadata from the last load.
func (s *Session) Batch() domain.Batch { return s.batch }

// Loaded reports whether records have been received at least once.
func (s *Session) Loaded() bool { return s.loaded }

// Query returns the normalized search text.
func (s *Session) Query() string { return s.query }

// Filter returns the active status filter.
func (s *Session) Filter() Filter { return s.filter }

// Sort returns the active sort key.
func (s *Session) Sort() SortKey { return s.sort }

// Page returns the 1-based current page.
func (s *Session) Page() int { return s.page }

// PageSize returns the number of rows per page.
func (s *Session) PageSize() int { return s.pageSize }

// Stats returns the summary counts over the whole batch.
func (s *Session) Stats() domain.Stats { return s.stats }

// Selection returns the session's selection set.
func (s *Session) Selection() *Selection { return s.selected }

// Records returns a copy of the source collection in server order.
func (s *Session) Records() []domain.TestCase {
	return append([]domain.TestCase(nil), s.records...)
}

// Derived returns a copy of the filtered and sorted collection.
func (s *Session) Derived() []domain.TestCase {
	return append([]domain.TestCase(nil), s.derived...)
}

// Record looks up a record by id.
func (s *Session) Record(id int) (domain.TestCase, bool) {
	for _, tc := range s.records {
		if tc.ID == id {
			return tc, true
		}
	}
	return domain.TestCase{}, false
}

// TotalPages returns the page count of the derived list.
func (s *Session) TotalPages() int {
	return TotalPages(len(s.derived), s.pageSize)
}

// PageRecords returns the rows of the current page.
func (s *Session) PageRecords() []domain.TestCase {
	return Paginate(s.derived, s.page, s.pageSize)
}

// RenderedIDs returns the ids of the current page's rows, which is what
// select-all acts on.
func (s *Session) RenderedIDs() []int {
	rows := s.PageRecords()
	ids := make([]int, len(rows))
	for i, tc := range rows {
		ids[i] = tc.ID
	}
	return ids
}

// SelectAll selects every row on the current page.
func (s *Session) SelectAll() {
	s.selected.SelectAll(s.RenderedIDs())
}

// DeselectAll clears the whole selection.
func (s *Session) DeselectAll() {
	s.selected.Clear()
}

// Buttons returns the bulk control state for the current page.
func (s *Session) Buttons() BulkButtons {
	return s.selected.Buttons(len(s.PageRecords()))
}
