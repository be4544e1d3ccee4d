package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/brewatlas/curator-cli/internal/config"
	"github.com/brewatlas/curator-cli/internal/geo"
	"github.com/brewatlas/curator-cli/internal/match"
	"github.com/brewatlas/curator-cli/internal/model"
	"github.com/brewatlas/curator-cli/pkg/anthropic"
)

const adjudicatorSystem = "You are a data quality reviewer for a place directory. Given a user submission and the record extracted from its map link, decide whether the submission describes the same real-world place. Respond with a single JSON object and nothing else."

const adjudicatorPrompt = `A user submitted a place that scored in the ambiguous band of our automated matcher.

Submission:
  Name: %s
  Claimed coordinates: %.6f, %.6f

Extracted from the submitted map link:
  Name: %s
  Address: %s
  Coordinates: %.6f, %.6f

Automated scores:
  Name similarity: %.1f (clear match above %.0f, clear mismatch below %.0f)
  Distance: %d m (clear match under %d m, clear mismatch over %d m)

Decide whether this submission and the extracted record are the same place. Return a JSON object:
{"approve": <true|false>, "reasoning": "<one or two sentences>"}`

// Adjudicator escalates borderline verdicts to the completion API for a
// final approve or flag decision.
type Adjudicator struct {
	client anthropic.Client
	cfg    config.AnthropicConfig
}

// NewAdjudicator builds an Adjudicator. A nil client is allowed and
// makes every decision fall back to flagging.
func NewAdjudicator(client anthropic.Client, cfg config.AnthropicConfig) *Adjudicator {
	return &Adjudicator{client: client, cfg: cfg}
}

// Decide asks the completion API whether a borderline submission and
// its extracted record are the same place. Any failure, from a missing
// client to a malformed response, resolves to a non-approval so that
// adjudication problems never silently approve a submission.
func (a *Adjudicator) Decide(ctx context.Context, sub model.Submission, claimed geo.Point, extracted *model.ExtractedPlace, v model.Validation) model.Decision {
	if a.client == nil {
		return flagDecision("adjudicator not configured")
	}

	prompt := fmt.Sprintf(adjudicatorPrompt,
		sub.Name, claimed.Lat, claimed.Lng,
		extracted.Name, extracted.Address, extracted.Latitude, extracted.Longitude,
		v.NameMatchScore, match.ClearMatchMinScore, match.ClearMismatchMaxScore,
		v.DistanceMeters, match.ClearMatchMaxMeters, match.ClearMismatchMinMeters,
	)

	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     a.cfg.Model,
		MaxTokens: a.cfg.MaxTokens,
		System:    adjudicatorSystem,
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		zap.L().Warn("adjudicate: completion failed",
			zap.String("submission", sub.ID),
			zap.Error(err),
		)
		return flagDecision("adjudication call failed")
	}

	decision, err := parseDecision(resp.Text())
	if err != nil {
		zap.L().Warn("adjudicate: malformed response",
			zap.String("submission", sub.ID),
			zap.Error(err),
		)
		return flagDecision("adjudication response malformed")
	}
	return decision
}

func flagDecision(cause string) model.Decision {
	return model.Decision{
		Approve:   false,
		Reasoning: cause + " — flagged for manual review",
	}
}

// parseDecision runs the two-stage parse of a completion response:
// first pull out the first balanced-brace JSON substring, tolerating
// code fences and surrounding prose, then strict-validate its shape.
func parseDecision(text string) (model.Decision, error) {
	raw, err := extractJSONObject(text)
	if err != nil {
		return model.Decision{}, err
	}

	var payload struct {
		Approve   *bool   `json:"approve"`
		Reasoning *string `json:"reasoning"`
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return model.Decision{}, fmt.Errorf("decode decision: %w", err)
	}
	if payload.Approve == nil || payload.Reasoning == nil {
		return model.Decision{}, fmt.Errorf("decision missing required fields")
	}
	return model.Decision{Approve: *payload.Approve, Reasoning: *payload.Reasoning}, nil
}

// extractJSONObject returns the first balanced-brace substring of text.
// Braces inside JSON strings do not count toward the balance.
func extractJSONObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", fmt.Errorf("no JSON object in response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("unbalanced JSON object in response")
}
