package store

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewatlas/curator-cli/internal/model"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresFromPool(mock), mock
}

func TestPostgres_FetchPending(t *testing.T) {
	st, mock := newMockStore(t)
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{
		"id", "name", "source_link", "raw_location", "submitted_by",
		"status", "review_notes", "linked_record_id", "created_at", "updated_at", "reviewed_at",
	}).AddRow(
		"sub-1", "Blue Bottle", "https://maps.google.com/?cid=1", "POINT(126.9 37.5)", "user-9",
		model.SubmissionStatus("pending"), "", (*string)(nil), now, now, (*time.Time)(nil),
	)

	mock.ExpectQuery(`SELECT id, name, source_link.*FROM submissions WHERE status = 'pending' ORDER BY created_at ASC LIMIT \$1`).
		WithArgs(10).
		WillReturnRows(rows)

	subs, err := st.FetchPending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "sub-1", subs[0].ID)
	assert.Equal(t, model.StatusPending, subs[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpdateSubmissionStatus(t *testing.T) {
	st, mock := newMockStore(t)

	linked := "place-7"
	mock.ExpectExec(`UPDATE submissions SET status = \$1.*WHERE id = \$5 AND status = 'pending'`).
		WithArgs("approved", "duplicate of existing place", &linked, pgxmock.AnyArg(), "sub-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := st.UpdateSubmissionStatus(context.Background(), "sub-1", model.StatusApproved, "duplicate of existing place", &linked)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpdateSubmissionStatus_AlreadyTerminal(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE submissions SET status = \$1`).
		WithArgs("rejected", "mismatch", (*string)(nil), pgxmock.AnyArg(), "sub-2").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := st.UpdateSubmissionStatus(context.Background(), "sub-2", model.StatusRejected, "mismatch", nil)
	assert.Error(t, err)
}

func TestPostgres_UpdateSubmissionStatus_RejectsNonTerminal(t *testing.T) {
	st, _ := newMockStore(t)
	err := st.UpdateSubmissionStatus(context.Background(), "sub-3", model.StatusPending, "", nil)
	assert.Error(t, err)
}

func TestPostgres_CreatePlace(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO places`).
		WithArgs(pgxmock.AnyArg(), "Blue Bottle", "1 Ferry Building", 37.7955, -122.3937,
			"", "", pgxmock.AnyArg(), pgxmock.AnyArg(), (*float64)(nil), (*int)(nil), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	id, err := st.CreatePlace(context.Background(), model.ExtractedPlace{
		Name:      "Blue Bottle",
		Address:   "1 Ferry Building",
		Latitude:  37.7955,
		Longitude: -122.3937,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_NearbyPlaces_FiltersAndOrders(t *testing.T) {
	st, mock := newMockStore(t)

	// Two candidates inside the bounding box: one ~77 m away, one well
	// outside the 200 m radius.
	rows := pgxmock.NewRows([]string{"id", "name", "address", "lat", "lng"}).
		AddRow("far", "Far Cafe", "", 37.5680, 126.9780).
		AddRow("near", "Near Cafe", "", 37.5672, 126.9780)

	mock.ExpectQuery(`SELECT id, name, address, lat, lng FROM places`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(rows)

	got, err := st.NearbyPlaces(context.Background(), 37.5665, 126.9780, 100, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "near", got[0].ID)
}

func TestPostgres_CountPending(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM submissions WHERE status = 'pending'`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(4))

	n, err := st.CountPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestPostgres_RefreshPlaceStats(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`REFRESH MATERIALIZED VIEW place_stats`).
		WillReturnResult(pgxmock.NewResult("REFRESH", 0))

	assert.NoError(t, st.RefreshPlaceStats(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
