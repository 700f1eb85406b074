package review

import "sort"

// Selection is the set of test case ids chosen for a bulk action. It is the
// single source of truth for checkbox state; rendering only reflects it.
//
// Ids are not pruned when their record is filtered out or paged away, and
// SelectAll only adds the ids it is given (the rendered page).
type Selection struct {
	ids map[int]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[int]struct{})}
}

// Set checks or unchecks id.
func (s *Selection) Set(id int, checked bool) {
	if checked {
		s.ids[id] = struct{}{}
		return
	}
	delete(s.ids, id)
}

// Toggle flips id and reports whether it is now selected.
func (s *Selection) Toggle(id int) bool {
	if s.Has(id) {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Has reports whether id is selected.
func (s *Selection) Has(id int) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []int {
	out := make([]int, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// SelectAll adds every id in rendered.
func (s *Selection) SelectAll(rendered []int) {
	for _, id := range rendered {
		s.ids[id] = struct{}{}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	clear(s.ids)
}

// BulkButtons holds the enabled state of the batch action controls.
type BulkButtons struct {
	SelectAll   bool
	DeselectAll bool
	Approve     bool
	Reject      bool
}

// Buttons computes control state for a page rendering renderedCount rows.
// Deselect-all and both bulk actions need a non-empty selection. Select-all
// is disabled once the selection size equals the rendered row count, counting
// selections made on other pages too.
func (s *Selection) Buttons(renderedCount int) BulkButtons {
	n := s.Len()
	return BulkButtons{
		SelectAll:   !(n == renderedCount && renderedCount > 0),
		DeselectAll: n > 0,
		Approve:     n > 0,
		Reject:      n > 0,
	}
}
