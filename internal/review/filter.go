// Package review holds the client-side state of a batch review session: the
// filtered, sorted, paginated list, the batch selection, and the calls that
// keep both in step with the server.
package review

import (
	"fmt"
	"strings"

	"tcreview/internal/domain"
	appErrors "tcreview/internal/errors"
)

// Filter restricts the list to one review status.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterPending  Filter = "pending"
	FilterApproved Filter = "approved"
	FilterRejected Filter = "rejected"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterPending, FilterApproved, FilterRejected}

// ParseFilter validates a filter name; blank means all.
func ParseFilter(raw string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(raw)))
	if f == "" {
		return FilterAll, nil
	}
	for _, known := range Filters {
		if f == known {
			return f, nil
		}
	}
	return "", appErrors.New(appErrors.CodeInvalidArgument, fmt.Sprintf("invalid filter: %s", raw), nil)
}

// Keep reports whether tc passes the filter. The comparison uses the status
// exactly as stored, so a record with no status only appears under all.
func (f Filter) Keep(tc domain.TestCase) bool {
	if f == FilterAll || f == "" {
		return true
	}
	return tc.Status == domain.Status(f)
}

// Status returns the status the filter selects, or StatusUnknown for all.
func (f Filter) Status() domain.Status {
	if f == FilterAll {
		return domain.StatusUnknown
	}
	return domain.Status(f)
}

// Next returns the following filter in Filters, wrapping around.
func (f Filter) Next() Filter {
	for i, known := range Filters {
		if f == known {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Label returns the display caption.
func (f Filter) Label() string {
	switch f {
	case FilterPending:
		return "Pending"
	case FilterApproved:
		return "Approved"
	case FilterRejected:
		return "Rejected"
	default:
		return "All"
	}
}

// SortKey selects the list ordering.
type SortKey string

const (
	SortTitleAsc   SortKey = "title-asc"
	SortTitleDesc  SortKey = "title-desc"
	SortStatusAsc  SortKey = "status-asc"
	SortStatusDesc SortKey = "status-desc"
)

// SortKeys lists every sort key in cycling order.
var SortKeys = []SortKey{SortTitleAsc, SortTitleDesc, SortStatusAsc, SortStatusDesc}

// ParseSortKey validates a sort key name; blank means title ascending.
func ParseSortKey(raw string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(raw)))
	if k == "" {
		return SortTitleAsc, nil
	}
	for _, known := range SortKeys {
		if k == known {
			return k, nil
		}
	}
	return "", appErrors.New(appErrors.CodeInvalidArgument, fmt.Sprintf("invalid sort: %s", raw), nil)
}

// Next returns the following key in SortKeys, wrapping around.
func (k SortKey) Next() SortKey {
	for i, known := range SortKeys {
		if k == known {
			return SortKeys[(i+1)%len(SortKeys)]
		}
	}
	return SortTitleAsc
}

// Label returns the display caption.
func (k SortKey) Label() string {
	switch k {
	case SortTitleDesc:
		return "Title Z→A"
	case SortStatusAsc:
		return "Status ↑"
	case SortStatusDesc:
		return "Status ↓"
	default:
		return "Title A→Z"
	}
}
