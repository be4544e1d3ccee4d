package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/brewatlas/curator-cli/internal/config"
	"github.com/brewatlas/curator-cli/internal/geo"
	"github.com/brewatlas/curator-cli/internal/match"
	"github.com/brewatlas/curator-cli/internal/model"
	"github.com/brewatlas/curator-cli/internal/store"
	"github.com/brewatlas/curator-cli/pkg/mapscrape"
)

// Processor runs the adjudication pipeline over pending submissions.
type Processor struct {
	cfg         *config.Config
	store       store.Store
	scraper     *Scraper
	adjudicator *Adjudicator
	limiter     *rate.Limiter
}

// Options controls a single pipeline run.
type Options struct {
	// Preview runs the full decision logic with zero persistence.
	Preview bool
	// Limit caps how many pending submissions are fetched. Zero means
	// the configured default.
	Limit int
}

// New creates a Processor. The limiter paces submissions so the
// extraction and completion services see at most one submission's worth
// of traffic per configured interval.
func New(cfg *config.Config, st store.Store, scraper *Scraper, adjudicator *Adjudicator) *Processor {
	return &Processor{
		cfg:         cfg,
		store:       st,
		scraper:     scraper,
		adjudicator: adjudicator,
		limiter:     rate.NewLimiter(rate.Every(cfg.Pipeline.SubmissionDelay()), 1),
	}
}

// Run fetches pending submissions and processes each in order, oldest
// first. Per-submission failures become error outcomes and the loop
// continues; only a failed fetch aborts the run.
func (p *Processor) Run(ctx context.Context, opts Options) (*model.RunSummary, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = p.cfg.Pipeline.DefaultLimit
	}

	log := zap.L().With(zap.Bool("preview", opts.Preview), zap.Int("limit", limit))

	pending, err := p.store.FetchPending(ctx, limit)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: fetch pending")
	}
	log.Info("pipeline: starting run", zap.Int("pending", len(pending)))

	summary := model.NewRunSummary(opts.Preview)
	for _, sub := range pending {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "pipeline: run canceled")
		}
		result := p.processOne(ctx, sub, opts.Preview)
		summary.Add(result)
		log.Info("pipeline: submission processed",
			zap.String("submission", sub.ID),
			zap.String("action", string(result.Action)),
			zap.Bool("success", result.Success),
		)
	}

	if summary.Approved > 0 && !opts.Preview {
		if err := p.store.RefreshPlaceStats(ctx); err != nil {
			log.Warn("pipeline: aggregate refresh failed", zap.Error(err))
		}
	}

	summary.FinishedAt = time.Now().UTC()
	log.Info("pipeline: run complete",
		zap.Int("processed", summary.Processed),
		zap.Int("approved", summary.Approved),
		zap.Int("rejected", summary.Rejected),
		zap.Int("flagged", summary.Flagged),
		zap.Int("errors", summary.Errors),
		zap.Int("adjudicator_calls", summary.AdjudicatorCalls),
	)
	return summary, nil
}

// processOne walks a single submission through the state machine. It
// performs at most one terminal status write and never returns an
// error; failures are folded into the result so the run continues.
func (p *Processor) processOne(ctx context.Context, sub model.Submission, preview bool) model.ProcessingResult {
	result := model.ProcessingResult{SubmissionID: sub.ID}

	claimed, err := geo.ParseLocation(sub.RawLocation)
	if err != nil {
		result.Action = model.ActionError
		result.Notes = fmt.Sprintf("location parse failed: %v", err)
		return result
	}

	// Link shape is checked before any extraction attempt so malformed
	// links never consume scrape or adjudication calls.
	if !mapscrape.IsSupportedLink(sub.SourceLink) {
		return p.finalize(ctx, result, sub, model.StatusRejected, "unsupported source link", nil, preview)
	}

	extracted, err := p.scraper.Extract(ctx, sub.SourceLink)
	if err != nil {
		// Exhausted retries leave the submission pending for a later run.
		result.Action = model.ActionFlagged
		result.Notes = fmt.Sprintf("extraction failed: %v", err)
		return result
	}

	dup, err := match.FindDuplicate(ctx, p.store, extracted.Name, geo.Point{Lat: extracted.Latitude, Lng: extracted.Longitude})
	if err != nil {
		result.Action = model.ActionError
		result.Notes = fmt.Sprintf("duplicate lookup failed: %v", err)
		return result
	}
	if dup != nil {
		result.RecordID = dup.ID
		notes := fmt.Sprintf("linked to existing place %q", dup.Name)
		return p.finalize(ctx, result, sub, model.StatusApproved, notes, &dup.ID, preview)
	}

	v := match.Validate(sub.Name, claimed, extracted)
	result.NameMatchScore = &v.NameMatchScore
	result.DistanceMeters = &v.DistanceMeters

	switch v.Verdict {
	case model.VerdictClearMatch:
		return p.approveWithNewPlace(ctx, result, sub, extracted,
			fmt.Sprintf("clear match (name %.1f, distance %dm)", v.NameMatchScore, v.DistanceMeters), preview)

	case model.VerdictClearMismatch:
		notes := fmt.Sprintf("clear mismatch (name %.1f, distance %dm)", v.NameMatchScore, v.DistanceMeters)
		return p.finalize(ctx, result, sub, model.StatusRejected, notes, nil, preview)

	default: // borderline
		result.UsedAdjudicator = true
		decision := p.adjudicator.Decide(ctx, sub, claimed, extracted, v)
		if decision.Approve {
			return p.approveWithNewPlace(ctx, result, sub, extracted, decision.Reasoning, preview)
		}
		return p.finalize(ctx, result, sub, model.StatusRejected, decision.Reasoning, nil, preview)
	}
}

// approveWithNewPlace creates the place record and approves the
// submission linked to it. In preview mode neither write happens.
func (p *Processor) approveWithNewPlace(ctx context.Context, result model.ProcessingResult, sub model.Submission, extracted *model.ExtractedPlace, notes string, preview bool) model.ProcessingResult {
	var linkedID *string
	if !preview {
		id, err := p.store.CreatePlace(ctx, *extracted)
		if err != nil {
			result.Action = model.ActionError
			result.Notes = fmt.Sprintf("create place failed: %v", err)
			return result
		}
		result.RecordID = id
		linkedID = &id
	}
	return p.finalize(ctx, result, sub, model.StatusApproved, notes, linkedID, preview)
}

// finalize records the single terminal transition for a submission.
func (p *Processor) finalize(ctx context.Context, result model.ProcessingResult, sub model.Submission, status model.SubmissionStatus, notes string, linkedID *string, preview bool) model.ProcessingResult {
	result.Notes = notes
	if !preview {
		if err := p.store.UpdateSubmissionStatus(ctx, sub.ID, status, notes, linkedID); err != nil {
			result.Action = model.ActionError
			result.Notes = fmt.Sprintf("status update failed: %v", err)
			return result
		}
	}

	result.Success = true
	if status == model.StatusApproved {
		result.Action = model.ActionApproved
	} else {
		result.Action = model.ActionRejected
	}
	return result
}
