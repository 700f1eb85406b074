package domain

import "strings"

// Status represents the review state of a test case.
type Status string

const (
	StatusUnknown  Status = ""
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var validStatuses = map[Status]struct{}{
	StatusPending:  {},
	StatusApproved: {},
	StatusRejected: {},
}

// Status precedence used by the status sort keys. Records with a missing
// status rank as pending.
var (
	statusRankAsc = map[Status]int{
		StatusPending:  0,
		StatusApproved: 1,
		StatusRejected: 2,
	}
	statusRankDesc = map[Status]int{
		StatusRejected: 0,
		StatusApproved: 1,
		StatusPending:  2,
	}
)

// ParseStatus normalises and validates an incoming status string.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	if status == StatusUnknown {
		return StatusUnknown, invalidStatusError("blank")
	}
	if _, ok := validStatuses[status]; !ok {
		return StatusUnknown, invalidStatusError(raw)
	}
	return status, nil
}

// Validate ensures the status is part of the review workflow.
func (s Status) Validate() error {
	if _, ok := validStatuses[s]; !ok {
		return invalidStatusError(string(s))
	}
	return nil
}

// Effective maps a blank status onto pending, the server-side default.
func (s Status) Effective() Status {
	if s == StatusUnknown {
		return StatusPending
	}
	return s
}

// IsReviewed reports whether a decision has been recorded.
func (s Status) IsReviewed() bool {
	e := s.Effective()
	return e == StatusApproved || e == StatusRejected
}

// Rank returns the sort precedence of the status. Unrecognised values sort
// after every known status.
func (s Status) Rank(descending bool) int {
	ranks := statusRankAsc
	if descending {
		ranks = statusRankDesc
	}
	if r, ok := ranks[s.Effective()]; ok {
		return r
	}
	return len(ranks)
}

// Label returns the display name for the status.
func (s Status) Label() string {
	switch s.Effective() {
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	case StatusPending:
		return "Pending"
	default:
		return string(s)
	}
}

// Icon returns the single-glyph marker shown next to the status.
func (s Status) Icon() string {
	switch s.Effective() {
	case StatusApproved:
		return "✔"
	case StatusRejected:
		return "✘"
	default:
		return "◷"
	}
}
