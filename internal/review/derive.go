package review

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tcreview/internal/domain"
)

// NormalizeQuery trims and lowercases raw search input.
func NormalizeQuery(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Derive returns the records matching query and filter, sorted by key. The
// steps run in a fixed order: search, then status filter, then a stable sort.
// query must already be normalized. records is never modified.
func Derive(records []domain.TestCase, query string, filter Filter, key SortKey) []domain.TestCase {
	out := make([]domain.TestCase, 0, len(records))
	for _, tc := range records {
		if !tc.Matches(query) {
			continue
		}
		if !filter.Keep(tc) {
			continue
		}
		out = append(out, tc)
	}
	sortRecords(out, key)
	return out
}

func sortRecords(records []domain.TestCase, key SortKey) {
	switch key {
	case SortTitleAsc, SortTitleDesc:
		cmp := newTitleComparer()
		desc := key == SortTitleDesc
		sort.SliceStable(records, func(i, j int) bool {
			if desc {
				return cmp.compare(records[j].Title, records[i].Title) < 0
			}
			return cmp.compare(records[i].Title, records[j].Title) < 0
		})
	case SortStatusAsc, SortStatusDesc:
		desc := key == SortStatusDesc
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Status.Rank(desc) < records[j].Status.Rank(desc)
		})
	}
}

// titleComparer orders titles with locale-aware collation. A collator is not
// safe for concurrent use, so each derivation builds its own.
type titleComparer struct {
	c *collate.Collator
}

func newTitleComparer() titleComparer {
	return titleComparer{c: collate.New(language.Und)}
}

func (t titleComparer) compare(a, b string) int {
	return t.c.CompareString(a, b)
}

// CompareTitles reports the collation order of two titles (-1, 0, 1).
func CompareTitles(a, b string) int {
	return newTitleComparer().compare(a, b)
}

// Paginate returns the 1-based page of derived. Pages outside the available
// range yield an empty slice.
func Paginate(derived []domain.TestCase, page, pageSize int) []domain.TestCase {
	if pageSize <= 0 || page < 1 {
		return []domain.TestCase{}
	}
	start := (page - 1) * pageSize
	if start >= len(derived) {
		return []domain.TestCase{}
	}
	end := start + pageSize
	if end > len(derived) {
		end = len(derived)
	}
	out := make([]domain.TestCase, end-start)
	copy(out, derived[start:end])
	return out
}

// TotalPages returns the number of pages needed for n records.
func TotalPages(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// maxPageLinks bounds how many page numbers the pagination control shows.
const maxPageLinks = 5

// PageWindow returns the page numbers shown around current: up to five,
// starting two before current and shifted left when near the last page.
func PageWindow(current, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}
	start := current - 2
	if start < 1 {
		start = 1
	}
	end := start + maxPageLinks - 1
	if end > totalPages {
		end = totalPages
	}
	if end-start < maxPageLinks-1 {
		start = end - (maxPageLinks - 1)
		if start < 1 {
			start = 1
		}
	}
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
