package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/brewatlas/curator-cli/internal/db"
	"github.com/brewatlas/curator-cli/internal/geo"
	"github.com/brewatlas/curator-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresFromPool wraps an existing pool; used by tests with pgxmock.
func NewPostgresFromPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS submissions (
	id               TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	name             TEXT NOT NULL,
	source_link      TEXT NOT NULL,
	raw_location     TEXT NOT NULL,
	submitted_by     TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT 'pending',
	review_notes     TEXT NOT NULL DEFAULT '',
	linked_record_id TEXT,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	reviewed_at      TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS places (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	address      TEXT NOT NULL DEFAULT '',
	lat          DOUBLE PRECISION NOT NULL,
	lng          DOUBLE PRECISION NOT NULL,
	phone        TEXT NOT NULL DEFAULT '',
	website      TEXT NOT NULL DEFAULT '',
	photos       JSONB,
	hours        JSONB,
	rating       DOUBLE PRECISION,
	review_count INTEGER,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_submissions_status_created ON submissions(status, created_at);
CREATE INDEX IF NOT EXISTS idx_places_lat_lng ON places(lat, lng);

CREATE MATERIALIZED VIEW IF NOT EXISTS place_stats AS
SELECT
	count(*)    AS total_places,
	avg(rating) AS avg_rating,
	max(created_at) AS last_created_at
FROM places;
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateSubmission(ctx context.Context, sub model.Submission) (*model.Submission, error) {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	sub.Status = model.StatusPending
	sub.CreatedAt = now
	sub.UpdatedAt = now

	_, err := s.pool.Exec(ctx,
		`INSERT INTO submissions (id, name, source_link, raw_location, submitted_by, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		sub.ID, sub.Name, sub.SourceLink, sub.RawLocation, sub.SubmittedBy, string(sub.Status), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert submission")
	}
	return &sub, nil
}

func (s *PostgresStore) FetchPending(ctx context.Context, limit int) ([]model.Submission, error) {
	if limit <= 0 {
		limit = 25
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, name, source_link, raw_location, submitted_by, status, review_notes, linked_record_id, created_at, updated_at, reviewed_at
		 FROM submissions WHERE status = 'pending' ORDER BY created_at ASC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: fetch pending")
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		var sub model.Submission
		var linked *string
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.SourceLink, &sub.RawLocation, &sub.SubmittedBy,
			&sub.Status, &sub.ReviewNotes, &linked, &sub.CreatedAt, &sub.UpdatedAt, &sub.ReviewedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan submission")
		}
		if linked != nil {
			sub.LinkedRecordID = *linked
		}
		subs = append(subs, sub)
	}
	return subs, eris.Wrap(rows.Err(), "postgres: fetch pending rows")
}

func (s *PostgresStore) CountPending(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM submissions WHERE status = 'pending'`).Scan(&n)
	return n, eris.Wrap(err, "postgres: count pending")
}

func (s *PostgresStore) UpdateSubmissionStatus(ctx context.Context, id string, status model.SubmissionStatus, notes string, linkedRecordID *string) error {
	if !status.IsTerminal() {
		return eris.Errorf("postgres: status %q is not terminal", status)
	}

	now := time.Now().UTC()
	tag, err := s.pool.Exec(ctx,
		`UPDATE submissions SET status = $1, review_notes = $2, linked_record_id = $3, reviewed_at = $4, updated_at = $4
		 WHERE id = $5 AND status = 'pending'`,
		string(status), notes, linkedRecordID, now, id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update submission %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("submission not pending or not found: %s", id)
	}
	return nil
}

func (s *PostgresStore) CreatePlace(ctx context.Context, place model.ExtractedPlace) (string, error) {
	id := uuid.New().String()

	photosJSON, err := json.Marshal(place.Photos)
	if err != nil {
		return "", eris.Wrap(err, "postgres: marshal photos")
	}
	hoursJSON, err := json.Marshal(place.Hours)
	if err != nil {
		return "", eris.Wrap(err, "postgres: marshal hours")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO places (id, name, address, lat, lng, phone, website, photos, hours, rating, review_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		id, place.Name, place.Address, place.Latitude, place.Longitude,
		place.Phone, place.Website, photosJSON, hoursJSON, place.Rating, place.ReviewCount, time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "postgres: insert place")
	}
	return id, nil
}

func (s *PostgresStore) NearbyPlaces(ctx context.Context, lat, lng float64, radiusMeters, limit int) ([]model.ExistingPlace, error) {
	center := geo.Point{Lat: lat, Lng: lng}
	minLat, maxLat, minLng, maxLng := geo.BoundingBox(center, float64(radiusMeters))

	rows, err := s.pool.Query(ctx,
		`SELECT id, name, address, lat, lng FROM places
		 WHERE lat BETWEEN $1 AND $2 AND lng BETWEEN $3 AND $4`,
		minLat, maxLat, minLng, maxLng,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: nearby places")
	}
	defer rows.Close()

	var candidates []model.ExistingPlace
	for rows.Next() {
		var p model.ExistingPlace
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.Latitude, &p.Longitude); err != nil {
			return nil, eris.Wrap(err, "postgres: scan place")
		}
		candidates = append(candidates, p)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: nearby places rows")
	}

	return filterNearby(candidates, center, radiusMeters, limit), nil
}

func (s *PostgresStore) RefreshPlaceStats(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `REFRESH MATERIALIZED VIEW place_stats`)
	return eris.Wrap(err, "postgres: refresh place_stats")
}
