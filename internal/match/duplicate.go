package match

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/brewatlas/curator-cli/internal/geo"
	"github.com/brewatlas/curator-cli/internal/model"
)

const (
	// DuplicateRadiusMeters bounds the nearby-place query.
	DuplicateRadiusMeters = 200
	// DuplicateMinScore is the name-similarity floor for treating a
	// nearby place as the same entity.
	DuplicateMinScore = 80.0

	nearbyQueryLimit = 20
)

// NearbyQuerier returns existing places around a coordinate, nearest
// first.
type NearbyQuerier interface {
	NearbyPlaces(ctx context.Context, lat, lng float64, radiusMeters, limit int) ([]model.ExistingPlace, error)
}

// FindDuplicate returns the first place within 200 m whose name scores at
// least 80 against the submitted name, or nil when none qualifies.
//
// This is first-match, not best-match: candidates are taken in the order
// the store returns them and the scan stops at the first hit. Callers
// rely on that ordering; see the regression test before changing it.
func FindDuplicate(ctx context.Context, q NearbyQuerier, name string, pt geo.Point) (*model.ExistingPlace, error) {
	candidates, err := q.NearbyPlaces(ctx, pt.Lat, pt.Lng, DuplicateRadiusMeters, nearbyQueryLimit)
	if err != nil {
		return nil, eris.Wrap(err, "match: nearby places")
	}

	for _, c := range candidates {
		score := Similarity(name, c.Name)
		if score >= DuplicateMinScore {
			zap.L().Debug("duplicate candidate matched",
				zap.String("submitted_name", name),
				zap.String("existing_id", c.ID),
				zap.String("existing_name", c.Name),
				zap.Float64("score", score),
			)
			return &c, nil
		}
	}
	return nil, nil
}
