// Package store persists submissions and places behind a single
// interface with Postgres and SQLite drivers.
package store

import (
	"context"

	"github.com/brewatlas/curator-cli/internal/model"
)

// Store defines the persistence interface for the curation pipeline.
type Store interface {
	// Submissions
	CreateSubmission(ctx context.Context, sub model.Submission) (*model.Submission, error)
	FetchPending(ctx context.Context, limit int) ([]model.Submission, error)
	CountPending(ctx context.Context) (int, error)
	// UpdateSubmissionStatus records the single terminal transition for a
	// submission. It fails if the submission is missing or already
	// terminal.
	UpdateSubmissionStatus(ctx context.Context, id string, status model.SubmissionStatus, notes string, linkedRecordID *string) error

	// Places
	CreatePlace(ctx context.Context, place model.ExtractedPlace) (string, error)
	NearbyPlaces(ctx context.Context, lat, lng float64, radiusMeters, limit int) ([]model.ExistingPlace, error)

	// RefreshPlaceStats rebuilds the cached place aggregates. Best-effort;
	// callers treat failure as non-fatal.
	RefreshPlaceStats(ctx context.Context) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
