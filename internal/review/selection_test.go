package review

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tcreview/internal/domain"
)

func TestSelectionToggleAndIDs(t *testing.T) {
	s := NewSelection()
	assert.True(t, s.Toggle(7))
	assert.True(t, s.Toggle(3))
	assert.False(t, s.Toggle(7))
	s.Set(9, true)
	s.Set(9, true)
	s.Set(4, false)

	assert.Equal(t, []int{3, 9}, s.IDs())
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Has(7))
}

func TestButtonsRequireSelection(t *testing.T) {
	s := NewSelection()
	b := s.Buttons(5)
	assert.True(t, b.SelectAll)
	assert.False(t, b.DeselectAll)
	assert.False(t, b.Approve)
	assert.False(t, b.Reject)

	s.Set(1, true)
	b = s.Buttons(5)
	assert.True(t, b.SelectAll)
	assert.True(t, b.DeselectAll)
	assert.True(t, b.Approve)
	assert.True(t, b.Reject)
}

func TestSelectAllDisabledWhenCountMatchesRenderedRows(t *testing.T) {
	s := NewSelection()
	s.SelectAll([]int{1, 2, 3})
	assert.False(t, s.Buttons(3).SelectAll)

	// The rule compares sizes only, so selections from another page count.
	other := NewSelection()
	other.SelectAll([]int{40, 41, 42})
	assert.False(t, other.Buttons(3).SelectAll)

	assert.True(t, NewSelection().Buttons(0).SelectAll, "empty page keeps select-all enabled")
}

func TestSelectAllCoversOnlyTheCurrentPage(t *testing.T) {
	s := newLoadedSession(t, 25, 10)
	s.SetPage(3)
	s.SelectAll()

	assert.Equal(t, 5, s.Selection().Len())
	assert.False(t, s.Buttons().SelectAll)
	for _, row := range s.View().Rows {
		assert.True(t, row.Checked, "row %d", row.ID)
	}

	s.SetPage(1)
	for _, row := range s.View().Rows {
		assert.False(t, row.Checked, "row %d", row.ID)
	}
	assert.True(t, s.Buttons().SelectAll)
}

func TestDeselectAllClearsEveryRow(t *testing.T) {
	s := newLoadedSession(t, 12, 10)
	s.SelectAll()
	s.SetPage(2)
	s.SelectAll()
	s.DeselectAll()

	assert.Zero(t, s.Selection().Len())
	for _, page := range []int{1, 2} {
		s.SetPage(page)
		for _, row := range s.View().Rows {
			assert.False(t, row.Checked)
		}
	}
	assert.False(t, s.Buttons().Approve)
}

func TestSelectionSurvivesFiltering(t *testing.T) {
	s := NewSession(1, 10)
	s.Load(domain.Batch{}, threeRecordBatch())
	s.Selection().Set(1, true)

	s.SetFilter(FilterApproved)
	assert.True(t, s.Selection().Has(1), "hidden rows stay selected")
	assert.Equal(t, 1, s.View().Selected)
}
