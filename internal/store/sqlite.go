package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/brewatlas/curator-cli/internal/geo"
	"github.com/brewatlas/curator-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. Used for local
// runs and integration tests; the aggregate "view" is a table rebuilt on
// refresh.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS submissions (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	source_link      TEXT NOT NULL,
	raw_location     TEXT NOT NULL,
	submitted_by     TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT 'pending',
	review_notes     TEXT NOT NULL DEFAULT '',
	linked_record_id TEXT,
	created_at       DATETIME NOT NULL,
	updated_at       DATETIME NOT NULL,
	reviewed_at      DATETIME
);

CREATE TABLE IF NOT EXISTS places (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	address      TEXT NOT NULL DEFAULT '',
	lat          REAL NOT NULL,
	lng          REAL NOT NULL,
	phone        TEXT NOT NULL DEFAULT '',
	website      TEXT NOT NULL DEFAULT '',
	photos       TEXT,
	hours        TEXT,
	rating       REAL,
	review_count INTEGER,
	created_at   DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS place_stats (
	total_places    INTEGER NOT NULL,
	avg_rating      REAL,
	last_created_at DATETIME,
	refreshed_at    DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submissions_status_created ON submissions(status, created_at);
CREATE INDEX IF NOT EXISTS idx_places_lat_lng ON places(lat, lng);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateSubmission(ctx context.Context, sub model.Submission) (*model.Submission, error) {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	sub.Status = model.StatusPending
	sub.CreatedAt = now
	sub.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, name, source_link, raw_location, submitted_by, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Name, sub.SourceLink, sub.RawLocation, sub.SubmittedBy, string(sub.Status), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert submission")
	}
	return &sub, nil
}

func (s *SQLiteStore) FetchPending(ctx context.Context, limit int) ([]model.Submission, error) {
	if limit <= 0 {
		limit = 25
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, source_link, raw_location, submitted_by, status, review_notes, linked_record_id, created_at, updated_at, reviewed_at
		 FROM submissions WHERE status = 'pending' ORDER BY created_at ASC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: fetch pending")
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		var sub model.Submission
		var linked *string
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.SourceLink, &sub.RawLocation, &sub.SubmittedBy,
			&sub.Status, &sub.ReviewNotes, &linked, &sub.CreatedAt, &sub.UpdatedAt, &sub.ReviewedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan submission")
		}
		if linked != nil {
			sub.LinkedRecordID = *linked
		}
		subs = append(subs, sub)
	}
	return subs, eris.Wrap(rows.Err(), "sqlite: fetch pending rows")
}

func (s *SQLiteStore) CountPending(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM submissions WHERE status = 'pending'`).Scan(&n)
	return n, eris.Wrap(err, "sqlite: count pending")
}

func (s *SQLiteStore) UpdateSubmissionStatus(ctx context.Context, id string, status model.SubmissionStatus, notes string, linkedRecordID *string) error {
	if !status.IsTerminal() {
		return eris.Errorf("sqlite: status %q is not terminal", status)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE submissions SET status = ?, review_notes = ?, linked_record_id = ?, reviewed_at = ?, updated_at = ?
		 WHERE id = ? AND status = 'pending'`,
		string(status), notes, linkedRecordID, now, now, id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update submission %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("submission not pending or not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) CreatePlace(ctx context.Context, place model.ExtractedPlace) (string, error) {
	id := uuid.New().String()

	photosJSON, err := json.Marshal(place.Photos)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: marshal photos")
	}
	hoursJSON, err := json.Marshal(place.Hours)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: marshal hours")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO places (id, name, address, lat, lng, phone, website, photos, hours, rating, review_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, place.Name, place.Address, place.Latitude, place.Longitude,
		place.Phone, place.Website, string(photosJSON), string(hoursJSON), place.Rating, place.ReviewCount, time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: insert place")
	}
	return id, nil
}

func (s *SQLiteStore) NearbyPlaces(ctx context.Context, lat, lng float64, radiusMeters, limit int) ([]model.ExistingPlace, error) {
	center := geo.Point{Lat: lat, Lng: lng}
	minLat, maxLat, minLng, maxLng := geo.BoundingBox(center, float64(radiusMeters))

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, address, lat, lng FROM places
		 WHERE lat BETWEEN ? AND ? AND lng BETWEEN ? AND ?`,
		minLat, maxLat, minLng, maxLng,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: nearby places")
	}
	defer rows.Close()

	var candidates []model.ExistingPlace
	for rows.Next() {
		var p model.ExistingPlace
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.Latitude, &p.Longitude); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan place")
		}
		candidates = append(candidates, p)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: nearby places rows")
	}

	return filterNearby(candidates, center, radiusMeters, limit), nil
}

func (s *SQLiteStore) RefreshPlaceStats(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin refresh")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM place_stats`); err != nil {
		return eris.Wrap(err, "sqlite: clear place_stats")
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO place_stats (total_places, avg_rating, last_created_at, refreshed_at)
		 SELECT count(*), avg(rating), max(created_at), ? FROM places`,
		time.Now().UTC(),
	); err != nil {
		return eris.Wrap(err, "sqlite: rebuild place_stats")
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit refresh")
}
