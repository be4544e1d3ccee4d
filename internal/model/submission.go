package model

import "time"

// SubmissionStatus is the review state of a submission. Transitions are
// one-way: pending may become approved or rejected, after which the
// submission is terminal and never reprocessed.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

// IsTerminal reports whether the status permits no further transitions.
func (s SubmissionStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo reports whether a transition from s to next is legal.
func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	return s == StatusPending && next.IsTerminal()
}

// Submission is a user-submitted place-of-interest record awaiting review.
type Submission struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	SourceLink     string           `json:"source_link"`
	RawLocation    string           `json:"raw_location"`
	SubmittedBy    string           `json:"submitted_by,omitempty"`
	Status         SubmissionStatus `json:"status"`
	ReviewNotes    string           `json:"review_notes,omitempty"`
	LinkedRecordID string           `json:"linked_record_id,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	ReviewedAt     *time.Time       `json:"reviewed_at,omitempty"`
}
