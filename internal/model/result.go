package model

import "time"

// Verdict is the three-way classification of a submission against the
// record extracted from its map link.
type Verdict string

const (
	VerdictClearMatch    Verdict = "clear_match"
	VerdictClearMismatch Verdict = "clear_mismatch"
	VerdictBorderline    Verdict = "borderline"
)

// Validation holds the combined name-similarity and geo-distance scores
// for a submission and the verdict they resolve to.
type Validation struct {
	NameMatchScore float64 `json:"name_match_score"`
	DistanceMeters int     `json:"distance_meters"`
	Verdict        Verdict `json:"verdict"`
}

// Decision is the adjudicator's answer for a borderline submission.
type Decision struct {
	Approve   bool   `json:"approve"`
	Reasoning string `json:"reasoning"`
}

// Action is the outcome recorded for one submission in one run.
type Action string

const (
	ActionApproved Action = "approved"
	ActionRejected Action = "rejected"
	ActionFlagged  Action = "flagged"
	ActionSkipped  Action = "skipped"
	ActionError    Action = "error"
)

// ProcessingResult is the per-submission outcome of a pipeline run.
type ProcessingResult struct {
	SubmissionID    string   `json:"submission_id"`
	Success         bool     `json:"success"`
	Action          Action   `json:"action"`
	RecordID        string   `json:"record_id,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	NameMatchScore  *float64 `json:"name_match_score,omitempty"`
	DistanceMeters  *int     `json:"distance_meters,omitempty"`
	UsedAdjudicator bool     `json:"used_adjudicator,omitempty"`
}

// RunSummary aggregates the outcomes of a single pipeline run.
type RunSummary struct {
	Processed        int                `json:"processed"`
	Approved         int                `json:"approved"`
	Rejected         int                `json:"rejected"`
	Flagged          int                `json:"flagged"`
	Skipped          int                `json:"skipped"`
	Errors           int                `json:"errors"`
	AdjudicatorCalls int                `json:"adjudicator_calls"`
	Preview          bool               `json:"preview"`
	StartedAt        time.Time          `json:"started_at"`
	FinishedAt       time.Time          `json:"finished_at"`
	Results          []ProcessingResult `json:"results"`
}

// NewRunSummary creates a summary stamped with the current start time.
func NewRunSummary(preview bool) *RunSummary {
	return &RunSummary{Preview: preview, StartedAt: time.Now().UTC()}
}

// Add records one per-submission result in the summary tallies.
func (s *RunSummary) Add(r ProcessingResult) {
	s.Processed++
	switch r.Action {
	case ActionApproved:
		s.Approved++
	case ActionRejected:
		s.Rejected++
	case ActionFlagged:
		s.Flagged++
	case ActionSkipped:
		s.Skipped++
	case ActionError:
		s.Errors++
	}
	if r.UsedAdjudicator {
		s.AdjudicatorCalls++
	}
	s.Results = append(s.Results, r)
}
