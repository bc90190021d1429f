// Package pipeline assembles gap-free, duplicate-free hourly price series
// for whole calendar years from an external pricing service, handling the
// DST transition days that silently corrupt naive implementations.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"battery-sim-data/internal/data"
	"battery-sim-data/internal/metrics"
	"battery-sim-data/internal/model"
)

// State tracks a year's progress through the pipeline.
type State string

const (
	StatePlanning    State = "planning"
	StateFetching    State = "fetching"
	StateNormalizing State = "normalizing"
	StateMerging     State = "merging"
	StateValidating  State = "validating"
	StatePersisted   State = "persisted"
	StateAborted     State = "aborted"
)

// PriceSource is the external capability the pipeline draws raw prices
// from. The production implementation is data.EnergyZeroClient.
type PriceSource interface {
	FetchPrices(ctx context.Context, from, till time.Time) (*data.PriceResponse, error)
}

// Pipeline runs the price acquisition for one year at a time. Windows are
// fetched strictly sequentially; the next request is never issued before
// the previous response completed.
type Pipeline struct {
	Source    PriceSource
	Zone      *time.Location
	Mode      PlanMode
	OutputDir string
	Logger    *slog.Logger
}

// New creates a pipeline. A nil logger falls back to slog.Default.
func New(source PriceSource, zone *time.Location, mode PlanMode, outputDir string, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		Source:    source,
		Zone:      zone,
		Mode:      mode,
		OutputDir: outputDir,
		Logger:    logger,
	}
}

// Outcome is the per-year result collected by the batch driver. A fetch
// failure aborts only its own year; the failure travels in Err instead of
// crossing the batch boundary as a panic or early return.
type Outcome struct {
	RunID   uuid.UUID
	Year    int
	State   State
	Series  *model.YearSeries
	Report  *Report
	Path    string // persisted artifact path, set when State is persisted
	Size    int64  // artifact size in bytes
	Err     error
	Elapsed time.Duration
}

// Failed reports whether the year aborted.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// RunYear executes the full state machine for one year:
// planning → fetching → normalizing → merging → validating → persisted.
// Any fetch failure transitions to aborted; no partial data survives and
// nothing is written at the destination path.
func (p *Pipeline) RunYear(ctx context.Context, year int) Outcome {
	start := time.Now()
	out := Outcome{RunID: uuid.New(), Year: year, State: StatePlanning}
	logger := p.Logger.With("year", year, "run_id", out.RunID.String())

	norm := NewNormalizer(year, p.Zone)
	var points []model.PricePoint

	switch p.Mode {
	case ModeWholeYear:
		from, till := WholeYearRange(year)
		logger.Info("fetching whole year", "from", from, "till", till)

		out.State = StateFetching
		resp, err := p.Source.FetchPrices(ctx, from, till)
		if err != nil {
			return p.abort(out, start, fmt.Errorf("fetch %s..%s: %w",
				from.Format("2006-01-02"), till.Format("2006-01-02"), err))
		}
		out.State = StateNormalizing
		points = norm.Normalize(resp.Prices)

	default: // ModeWindowed
		windows := PlanWindows(year)
		logger.Info("planned query windows", "windows", len(windows))

		for i, w := range windows {
			from, till := WindowRange(w, p.Zone)

			out.State = StateFetching
			resp, err := p.Source.FetchPrices(ctx, from, till)
			if err != nil {
				return p.abort(out, start, fmt.Errorf("window %d/%d (%s): %w", i+1, len(windows), w, err))
			}
			logger.Debug("fetched window",
				"window", i+1,
				"range", w.String(),
				"records", len(resp.Prices),
			)

			out.State = StateNormalizing
			points = append(points, norm.Normalize(resp.Prices)...)
		}
	}

	out.State = StateMerging
	out.Series = Assemble(year, points)

	out.State = StateValidating
	out.Report = Validate(out.Series)
	p.logReport(logger, out.Report)

	// The write runs only after validation completed, so an aborted year
	// can never leave a partial or corrupt file behind.
	path, size, err := data.WritePriceFile(p.OutputDir, out.Series)
	if err != nil {
		return p.abort(out, start, fmt.Errorf("persist year %d: %w", year, err))
	}
	out.Path = path
	out.Size = size
	out.State = StatePersisted
	out.Elapsed = time.Since(start)

	metrics.YearProcessed(metrics.ResultSuccess)
	logger.Info("year persisted",
		"path", path,
		"bytes", size,
		"count", out.Series.Count,
		"elapsed", out.Elapsed,
	)
	return out
}

func (p *Pipeline) abort(out Outcome, start time.Time, err error) Outcome {
	out.State = StateAborted
	out.Err = err
	out.Series = nil
	out.Report = nil
	out.Elapsed = time.Since(start)
	metrics.YearProcessed(metrics.ResultError)
	return out
}

func (p *Pipeline) logReport(logger *slog.Logger, r *Report) {
	if len(r.SpringDays) > 0 {
		logger.Info("clocks-forward days (23 hours)", "days", r.SpringDays)
	}
	if len(r.FallDays) > 0 {
		logger.Info("clocks-back days (25 hours)", "days", r.FallDays)
	}
	if len(r.Overfull) > 0 {
		logger.Warn("days with surplus entries", "dates", r.Overfull)
	}
	for _, day := range r.Incomplete {
		logger.Warn("incomplete day",
			"date", day.Date,
			"entries", day.Entries,
			"missing_hours", day.MissingHours,
		)
	}
	if !r.CountMatches() {
		logger.Warn("entry count differs from expectation",
			"actual", r.Actual,
			"expected", r.Expected,
		)
	} else {
		logger.Info("entry count matches expectation", "count", r.Actual)
	}
}
