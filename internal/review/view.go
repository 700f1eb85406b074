package review

import "tcreview/internal/domain"

// emptyField is shown for optional text fields the server left blank.
const emptyField = "none"

// PageView is the structured projection of a session that renderers draw.
type PageView struct {
	Batch      domain.Batch
	Stats      domain.Stats
	Query      string
	Filter     Filter
	Sort       SortKey
	Rows       []RowView
	Empty      bool
	Message    string
	Pagination *PaginationView
	Buttons    BulkButtons
	Selected   int
}

// RowView is one rendered test case.
type RowView struct {
	ID              int
	Title           string
	Description     string
	Preconditions   string
	Steps           string
	ExpectedResults string
	Status          domain.Status
	Checked         bool
	Actions         []domain.Action
}

// PaginationView describes the page controls. It is nil on a PageView when
// there is at most one page or nothing to show.
type PaginationView struct {
	Page        int
	TotalPages  int
	Pages       []int
	PrevEnabled bool
	NextEnabled bool
}

// View builds the page projection. When the derived list is empty the view
// carries only the no-results message and no pagination.
func (s *Session) View() PageView {
	v := PageView{
		Batch:    s.batch,
		Stats:    s.stats,
		Query:    s.query,
		Filter:   s.filter,
		Sort:     s.sort,
		Buttons:  s.Buttons(),
		Selected: s.selected.Len(),
	}
	if len(s.derived) == 0 {
		v.Empty = true
		v.Message = NoResultsMessage
		v.Rows = []RowView{}
		return v
	}

	page := s.PageRecords()
	v.Rows = make([]RowView, 0, len(page))
	for _, tc := range page {
		v.Rows = append(v.Rows, RowView{
			ID:              tc.ID,
			Title:           tc.Title,
			Description:     orNone(tc.Description),
			Preconditions:   orNone(tc.Preconditions),
			Steps:           tc.Steps,
			ExpectedResults: tc.ExpectedResults,
			Status:          tc.Status.Effective(),
			Checked:         s.selected.Has(tc.ID),
			Actions:         tc.Actions(),
		})
	}

	total := s.TotalPages()
	if total > 1 {
		v.Pagination = &PaginationView{
			Page:        s.page,
			TotalPages:  total,
			Pages:       PageWindow(s.page, total),
			PrevEnabled: s.page > 1,
			NextEnabled: s.page < total,
		}
	}
	return v
}

func orNone(s string) string {
	if s == "" {
		return emptyField
	}
	return s
}
