package domain

import "strings"

// TestCase is a single generated test case as served by the review API.
// Records are created server-side and only ever change status locally.
type TestCase struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Preconditions   string `json:"preconditions,omitempty"`
	Steps           string `json:"steps"`
	ExpectedResults string `json:"expected_results"`
	Status          Status `json:"status"`
	SourceDocument  string `json:"source_document,omitempty"`
	BatchID         int    `json:"batch_id,omitempty"`
	BatchName       string `json:"batch_name,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

// Matches reports whether the lowercase query is contained in the title or
// description. An empty query matches everything.
func (tc TestCase) Matches(query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(tc.Title), query) {
		return true
	}
	return tc.Description != "" && strings.Contains(strings.ToLower(tc.Description), query)
}

// Actions returns the review actions available for the record's status:
// approved records can only be rejected, rejected ones only approved, and
// pending ones either way.
func (tc TestCase) Actions() []Action {
	switch tc.Status.Effective() {
	case StatusApproved:
		return []Action{ActionReject}
	case StatusRejected:
		return []Action{ActionApprove}
	default:
		return []Action{ActionApprove, ActionReject}
	}
}

// Batch is a named group of test cases generated from the same upload.
type Batch struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// BatchSummary is one row of the batch listing.
type BatchSummary struct {
	Batch
	TestCaseCount int `json:"test_case_count"`
}

// Action is a review decision applied to a test case.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// ParseAction validates a review action name.
func ParseAction(raw string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(raw))) {
	case ActionApprove:
		return ActionApprove, nil
	case ActionReject:
		return ActionReject, nil
	}
	return "", invalidActionError(raw)
}

// Target is the status a record holds after the action succeeds.
func (a Action) Target() Status {
	if a == ActionReject {
		return StatusRejected
	}
	return StatusApproved
}

// Verb is the lowercase past tense used in notifications.
func (a Action) Verb() string {
	if a == ActionReject {
		return "rejected"
	}
	return "approved"
}

// Label is the button caption for the action.
func (a Action) Label() string {
	if a == ActionReject {
		return "Reject"
	}
	return "Approve"
}

// Stats summarises review progress for a batch.
type Stats struct {
	Total    int
	Reviewed int
	Approved int
	Rejected int
}

// Pending returns the number of records still awaiting a decision.
func (s Stats) Pending() int {
	return s.Total - s.Reviewed
}

// ComputeStats counts records by status; reviewed is approved plus rejected.
func ComputeStats(records []TestCase) Stats {
	stats := Stats{Total: len(records)}
	for _, tc := range records {
		switch tc.Status.Effective() {
		case StatusApproved:
			stats.Approved++
		case StatusRejected:
			stats.Rejected++
		}
	}
	stats.Reviewed = stats.Approved + stats.Rejected
	return stats
}
