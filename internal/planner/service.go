// README: Generation orchestrator; drives the model through parse/validate retry cycles.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tripforge/internal/ai"
	"tripforge/internal/backoff"
	"tripforge/internal/photos"
)

var ErrUnparsable = errors.New("model output is not recoverable as JSON")

// GenerationError is the single terminal error surfaced to callers after all
// retry budgets are exhausted. No partial itinerary is ever returned alongside
// it.
type GenerationError struct {
	Stage    string // "transport", "parse", "validation", or "assemble"
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("itinerary generation failed at %s after %d attempt(s): %v", e.Stage, e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Planner composes the prompt builder, model client, parser, and validator
// into the cached, retrying entry point.
type Planner struct {
	llm    ai.TextGenerator
	photos photos.Source
	cache  Cache
	log    *zap.Logger

	// wait is backoff.Sleep in production; tests replace it to control time.
	wait func(ctx context.Context, d time.Duration) error
}

func NewPlanner(llm ai.TextGenerator, photoSource photos.Source, cache Cache, log *zap.Logger) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{
		llm:    llm,
		photos: photoSource,
		cache:  cache,
		log:    log,
		wait:   backoff.Sleep,
	}
}

// Generate returns a validated, date-stamped itinerary for the request, or a
// terminal *GenerationError once every retry budget is spent. Results are
// cached under the request fingerprint; a hit skips the model entirely.
func (p *Planner) Generate(ctx context.Context, req TravelRequest) (*Itinerary, error) {
	key := RequestKey(req)
	if it, ok := p.cache.Get(ctx, key); ok {
		p.log.Debug("itinerary cache hit", zap.String("destination", req.Destination.Name))
		return it, nil
	}

	var lastErr error
	for attempt := 0; attempt < MaxGenerateAttempts; attempt++ {
		if attempt > 0 {
			if err := p.wait(ctx, backoff.DelayJitter(attempt)); err != nil {
				return nil, err
			}
		}

		it, err := p.generateOnce(ctx, req)
		if err == nil {
			p.cache.Set(ctx, key, it)
			return it, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		lastErr = err
		p.log.Warn("generation attempt failed",
			zap.Int("attempt", attempt+1),
			zap.String("destination", req.Destination.Name),
			zap.Error(err))
	}
	return nil, lastErr
}

// generateOnce runs one full pass of the state machine: invoke, parse,
// validate, assemble, with the recoverable back-edges re-invoking the model
// on the same prompt.
func (p *Planner) generateOnce(ctx context.Context, req TravelRequest) (*Itinerary, error) {
	prompt := BuildPrompt(req)
	st := NewState().Next(OutcomeOK)

	var (
		raw     string
		cand    Candidate
		payload *generatedPayload
	)
	for {
		switch st.Phase {
		case PhaseInvoking:
			text, err := p.llm.Generate(ctx, prompt)
			if err != nil {
				return nil, &GenerationError{Stage: "transport", Attempts: 1, Err: err}
			}
			raw = text
			st = st.Next(OutcomeOK)

		case PhaseParsing:
			var ok bool
			cand, ok = Extract(raw)
			if !ok {
				st = st.Next(OutcomeParseFailed)
				if st.Phase == PhaseFailed {
					return nil, &GenerationError{Stage: "parse", Attempts: st.ParseAttempts, Err: ErrUnparsable}
				}
				p.log.Warn("model output unparsable, re-invoking",
					zap.Int("parse_attempts", st.ParseAttempts))
				if err := p.wait(ctx, backoff.Delay(st.ParseAttempts)); err != nil {
					return nil, err
				}
				continue
			}
			st = st.Next(OutcomeOK)

		case PhaseValidating:
			verr := Validate(cand, req.HasRoute())
			if verr == nil {
				payload, verr = decodePayload(cand)
			}
			if verr != nil {
				st = st.Next(OutcomeInvalid)
				if st.Phase == PhaseFailed {
					return nil, &GenerationError{Stage: "validation", Attempts: st.ValidationAttempts, Err: verr}
				}
				p.log.Warn("candidate failed validation, re-invoking",
					zap.Int("validation_attempts", st.ValidationAttempts),
					zap.Error(verr))
				if err := p.wait(ctx, backoff.Delay(st.ValidationAttempts)); err != nil {
					return nil, err
				}
				continue
			}
			st = st.Next(OutcomeOK)

		case PhaseAssembling:
			return p.assemble(ctx, req, payload), nil

		default:
			return nil, &GenerationError{Stage: st.Phase.String(), Attempts: 1, Err: errors.New("unexpected pipeline phase")}
		}
	}
}

func decodePayload(c Candidate) (*generatedPayload, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, &RuleError{Rule: "decode", Detail: err.Error()}
	}
	var payload generatedPayload
	if err := json.Unmarshal(b, &payload); err != nil {
		return nil, &RuleError{Rule: "decode", Detail: err.Error()}
	}
	return &payload, nil
}

// assemble performs the controlled post-processing step: calendar dates are
// recomputed from the request's start date, the model's own daily budget
// estimate lands in the echoed preferences, and one destination image is
// fetched. The image lookup must never abort the generation.
func (p *Planner) assemble(ctx context.Context, req TravelRequest, payload *generatedPayload) *Itinerary {
	start := req.Preferences.DateRange.Start
	days := make([]ItineraryDay, len(payload.Days))
	for i, day := range payload.Days {
		day.Date = start.AddDate(0, 0, day.Day-1).Format("2006-01-02")
		days[i] = day
	}

	prefs := req.Preferences
	prefs.BudgetPerDay = payload.DailyBudgetSpent

	dest := req.Destination
	dest.ImageURL = p.destinationImage(ctx, req.Destination)

	return &Itinerary{
		Destination:           dest,
		Route:                 req.Preferences.Route,
		Duration:              req.ActualDuration(),
		Preferences:           prefs,
		Mode:                  req.Mode,
		RecommendedDuration:   payload.RecommendedDuration,
		LocalCurrency:         payload.LocalCurrency,
		AccommodationOptions:  payload.AccommodationOptions,
		TransportInfo:         payload.TransportInfo,
		Days:                  days,
		TransportationDetails: payload.TransportationDetails,
		EssentialInfo:         payload.EssentialInfo,
		SeasonalInfo:          payload.SeasonalInfo,
		CostBreakdown:         payload.CostBreakdown,
	}
}

func (p *Planner) destinationImage(ctx context.Context, dest Destination) string {
	if p.photos == nil {
		return DefaultImagePath
	}
	query := fmt.Sprintf("%s %s landmarks", dest.Name, dest.Country)
	url, err := p.photos.Search(ctx, query)
	if err != nil {
		p.log.Warn("destination image lookup failed, using default",
			zap.String("query", query), zap.Error(err))
		return DefaultImagePath
	}
	if url == "" {
		return DefaultImagePath
	}
	return url
}
