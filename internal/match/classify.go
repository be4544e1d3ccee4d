package match

import (
	"github.com/brewatlas/curator-cli/internal/geo"
	"github.com/brewatlas/curator-cli/internal/model"
)

// Threshold bands for the three-way verdict. The gap between the match
// band (>85 and <100m) and the mismatch band (<50 or >500m) resolves to
// borderline so only genuinely ambiguous submissions reach the
// adjudicator.
const (
	ClearMatchMinScore     = 85.0
	ClearMatchMaxMeters    = 100
	ClearMismatchMaxScore  = 50.0
	ClearMismatchMinMeters = 500
)

// Classify resolves a name-similarity score and a coordinate distance
// into a verdict. The clear-match band is checked first.
func Classify(nameScore float64, distanceMeters int) model.Verdict {
	if nameScore > ClearMatchMinScore && distanceMeters < ClearMatchMaxMeters {
		return model.VerdictClearMatch
	}
	if nameScore < ClearMismatchMaxScore || distanceMeters > ClearMismatchMinMeters {
		return model.VerdictClearMismatch
	}
	return model.VerdictBorderline
}

// Validate scores a parsed submission against the record extracted from
// its map link.
func Validate(submittedName string, claimed geo.Point, extracted *model.ExtractedPlace) model.Validation {
	score := Similarity(submittedName, extracted.Name)
	dist := geo.Haversine(claimed, geo.Point{Lat: extracted.Latitude, Lng: extracted.Longitude})
	return model.Validation{
		NameMatchScore: score,
		DistanceMeters: dist,
		Verdict:        Classify(score, dist),
	}
}
