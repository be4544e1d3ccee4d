package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/brewatlas/curator-cli/internal/model"
)

// --- Store Mock ---

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateSubmission(ctx context.Context, sub model.Submission) (*model.Submission, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Submission), args.Error(1)
}

func (m *mockStore) FetchPending(ctx context.Context, limit int) ([]model.Submission, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Submission), args.Error(1)
}

func (m *mockStore) CountPending(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockStore) UpdateSubmissionStatus(ctx context.Context, id string, status model.SubmissionStatus, notes string, linkedRecordID *string) error {
	args := m.Called(ctx, id, status, notes, linkedRecordID)
	return args.Error(0)
}

func (m *mockStore) CreatePlace(ctx context.Context, place model.ExtractedPlace) (string, error) {
	args := m.Called(ctx, place)
	return args.String(0), args.Error(1)
}

func (m *mockStore) NearbyPlaces(ctx context.Context, lat, lng float64, radiusMeters, limit int) ([]model.ExistingPlace, error) {
	args := m.Called(ctx, lat, lng, radiusMeters, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ExistingPlace), args.Error(1)
}

func (m *mockStore) RefreshPlaceStats(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockStore) Migrate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
