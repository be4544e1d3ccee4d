package store

import (
	"sort"

	"github.com/brewatlas/curator-cli/internal/geo"
	"github.com/brewatlas/curator-cli/internal/model"
)

// filterNearby reduces bounding-box candidates to those within the exact
// radius, ordered nearest first. Both drivers share it so the candidate
// order the duplicate detector sees is identical everywhere.
func filterNearby(candidates []model.ExistingPlace, center geo.Point, radiusMeters, limit int) []model.ExistingPlace {
	type scored struct {
		place model.ExistingPlace
		dist  int
	}

	kept := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		d := geo.Haversine(center, geo.Point{Lat: c.Latitude, Lng: c.Longitude})
		if d <= radiusMeters {
			kept = append(kept, scored{place: c, dist: d})
		}
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].dist < kept[j].dist })

	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}

	out := make([]model.ExistingPlace, len(kept))
	for i, s := range kept {
		out[i] = s.place
	}
	return out
}
