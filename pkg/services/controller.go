package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kerbaras/movies/pkg/data"
	"github.com/kerbaras/movies/pkg/sources"
)

const (
	MsgFetchFailed  = "Failed to fetch movies"
	MsgFetchErrored = "Error fetching movies. Please try again later."
)

// Journal records settled fetches.
type Journal interface {
	RecordFetch(rec *data.FetchRecord) error
}

// FetchResult is what one discovery fetch settled to, before the screen's
// settlement step runs.
type FetchResult struct {
	Outcome data.Outcome
	// Movies replaces the list only when ReplaceMovies is set. Status and
	// exception failures leave the previous list in place.
	Movies        []data.Movie
	ReplaceMovies bool
	ErrorMessage  string
	Err           error
	Duration      time.Duration
}

// Failure reports a settled fetch that produced no usable list as an
// error, or nil on success. It is meant for callers without a settlement
// step, such as the CLI.
func (r FetchResult) Failure() error {
	switch {
	case r.Outcome == data.OutcomeCancelled:
		return r.Err
	case r.ErrorMessage == "":
		return nil
	case r.Err != nil:
		return fmt.Errorf("%s: %w", r.ErrorMessage, r.Err)
	default:
		return errors.New(r.ErrorMessage)
	}
}

// MovieController runs the discovery fetch and classifies its outcome.
type MovieController struct {
	source  sources.Catalog
	journal Journal
	logger  *slog.Logger
	now     func() time.Time
}

// NewMovieController wires a catalog and an optional journal. A nil
// logger discards output.
func NewMovieController(source sources.Catalog, journal Journal, logger *slog.Logger) *MovieController {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &MovieController{
		source:  source,
		journal: journal,
		logger:  logger,
		now:     time.Now,
	}
}

// FetchMovies performs one discovery request and maps it to the list and
// error message the screen should hold.
func (c *MovieController) FetchMovies(ctx context.Context) FetchResult {
	start := c.now()
	c.logger.Info("fetching movies")

	resp, err := c.source.Discover(ctx)
	res := classify(ctx, resp, err)
	res.Duration = c.now().Sub(start)

	switch res.Outcome {
	case data.OutcomeOK:
		c.logger.Info("movies fetched", "count", len(res.Movies), "duration", res.Duration)
	case data.OutcomeCancelled:
		c.logger.Warn("fetch cancelled", "error", res.Err)
	default:
		c.logger.Warn("fetch failed", "outcome", res.Outcome, "message", res.ErrorMessage, "error", res.Err)
	}

	c.record(start, res)
	return res
}

func classify(ctx context.Context, resp *sources.DiscoverResponse, err error) FetchResult {
	if ctx.Err() != nil {
		return FetchResult{Outcome: data.OutcomeCancelled, Err: ctx.Err()}
	}

	if err != nil {
		if errors.Is(err, sources.ErrStatus) {
			return FetchResult{Outcome: data.OutcomeStatus, ErrorMessage: MsgFetchFailed, Err: err}
		}
		return FetchResult{Outcome: data.OutcomeException, ErrorMessage: MsgFetchErrored, Err: err}
	}

	if resp.Failed() {
		msg := resp.Error
		if msg == "" {
			msg = MsgFetchFailed
		}
		return FetchResult{
			Outcome:       data.OutcomeFailureSignal,
			Movies:        []data.Movie{},
			ReplaceMovies: true,
			ErrorMessage:  msg,
		}
	}

	movies := resp.Results
	if movies == nil {
		movies = []data.Movie{}
	}
	return FetchResult{Outcome: data.OutcomeOK, Movies: movies, ReplaceMovies: true}
}

func (c *MovieController) record(start time.Time, res FetchResult) {
	if c.journal == nil {
		return
	}
	rec := &data.FetchRecord{
		FetchedAt:  start,
		Outcome:    res.Outcome,
		Count:      len(res.Movies),
		Error:      res.ErrorMessage,
		DurationMS: res.Duration.Milliseconds(),
	}
	if err := c.journal.RecordFetch(rec); err != nil {
		c.logger.Error("failed to record fetch", "error", err)
	}
}
