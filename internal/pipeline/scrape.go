package pipeline

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/brewatlas/curator-cli/internal/config"
	"github.com/brewatlas/curator-cli/internal/model"
	"github.com/brewatlas/curator-cli/internal/resilience"
	"github.com/brewatlas/curator-cli/pkg/mapscrape"
)

// Scraper wraps the extraction client with the retry policy applied to
// every call. The service drops requests under load, so transient
// failures are expected and retried with exponential backoff.
type Scraper struct {
	client mapscrape.Client
	policy resilience.Policy
}

// NewScraper builds a Scraper with a retry policy from config.
func NewScraper(client mapscrape.Client, cfg config.ScraperConfig) *Scraper {
	return &Scraper{
		client: client,
		policy: resilience.Policy{
			MaxAttempts: cfg.MaxAttempts,
			BaseDelay:   cfg.BaseDelay(),
			OnRetry:     resilience.RetryLogger("mapscrape", "extract_place"),
		},
	}
}

// Extract resolves a map link into a structured place record, retrying
// on failure until the policy is exhausted.
func (s *Scraper) Extract(ctx context.Context, url string) (*model.ExtractedPlace, error) {
	data, err := resilience.Do(ctx, s.policy, func(ctx context.Context) (*mapscrape.PlaceData, error) {
		return s.client.ExtractPlace(ctx, url)
	})
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: extract %s", url)
	}
	return toExtractedPlace(data), nil
}

func toExtractedPlace(d *mapscrape.PlaceData) *model.ExtractedPlace {
	return &model.ExtractedPlace{
		Name:        d.Name,
		Address:     d.Address,
		Latitude:    d.Latitude,
		Longitude:   d.Longitude,
		Phone:       d.Phone,
		Website:     d.Website,
		Photos:      d.Photos,
		Hours:       d.Hours,
		Rating:      d.Rating,
		ReviewCount: d.ReviewCount,
	}
}
