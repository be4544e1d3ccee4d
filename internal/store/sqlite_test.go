package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewatlas/curator-cli/internal/model"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLite_SubmissionLifecycle(t *testing.T) {
	st := newSQLiteStore(t)
	ctx := context.Background()

	created, err := st.CreateSubmission(ctx, model.Submission{
		Name:        "Blue Bottle",
		SourceLink:  "https://maps.google.com/?cid=1",
		RawLocation: "POINT(126.9780 37.5665)",
		SubmittedBy: "user-9",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, model.StatusPending, created.Status)

	n, err := st.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	pending, err := st.FetchPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, created.ID, pending[0].ID)

	linked := "place-1"
	err = st.UpdateSubmissionStatus(ctx, created.ID, model.StatusApproved, "duplicate", &linked)
	require.NoError(t, err)

	// Terminal submissions never come back from the pending fetch and
	// cannot be transitioned again.
	pending, err = st.FetchPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	err = st.UpdateSubmissionStatus(ctx, created.ID, model.StatusRejected, "again", nil)
	assert.Error(t, err)
}

func TestSQLite_FetchPending_OldestFirst(t *testing.T) {
	st := newSQLiteStore(t)
	ctx := context.Background()

	first, err := st.CreateSubmission(ctx, model.Submission{Name: "A", SourceLink: "l", RawLocation: "r"})
	require.NoError(t, err)
	_, err = st.CreateSubmission(ctx, model.Submission{Name: "B", SourceLink: "l", RawLocation: "r"})
	require.NoError(t, err)

	got, err := st.FetchPending(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, first.ID, got[0].ID)
}

func TestSQLite_PlacesAndNearby(t *testing.T) {
	st := newSQLiteStore(t)
	ctx := context.Background()

	rating := 4.2
	id, err := st.CreatePlace(ctx, model.ExtractedPlace{
		Name:      "Near Cafe",
		Address:   "1 Main St",
		Latitude:  37.5672,
		Longitude: 126.9780,
		Photos:    []string{"a.jpg"},
		Hours:     map[string]string{"mon": "08-18"},
		Rating:    &rating,
	})
	require.NoError(t, err)

	_, err = st.CreatePlace(ctx, model.ExtractedPlace{
		Name:      "Far Cafe",
		Latitude:  37.60,
		Longitude: 126.9780,
	})
	require.NoError(t, err)

	got, err := st.NearbyPlaces(ctx, 37.5665, 126.9780, 200, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, "Near Cafe", got[0].Name)

	require.NoError(t, st.RefreshPlaceStats(ctx))

	var total int
	require.NoError(t, st.db.QueryRowContext(ctx, `SELECT total_places FROM place_stats`).Scan(&total))
	assert.Equal(t, 2, total)
}
