package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quangtran/advisor/internal/domain"
	"github.com/quangtran/advisor/internal/modules/scanner"
)

// RadarScanJob periodically scores the configured symbol universe and logs
// the actionable calls. Results are not persisted; the scan exists to keep
// logs and alert consumers current.
type RadarScanJob struct {
	scanner *scanner.Scanner
	fetch   scanner.FetchFunc
	symbols []string
	budget  time.Duration
	log     zerolog.Logger
}

// RadarScanConfig holds configuration for the radar scan job
type RadarScanConfig struct {
	Scanner *scanner.Scanner
	Fetch   scanner.FetchFunc
	Symbols []string
	Budget  time.Duration
	Log     zerolog.Logger
}

// NewRadarScanJob creates a new radar scan job
func NewRadarScanJob(cfg RadarScanConfig) *RadarScanJob {
	budget := cfg.Budget
	if budget <= 0 {
		budget = 5 * time.Minute
	}
	return &RadarScanJob{
		scanner: cfg.Scanner,
		fetch:   cfg.Fetch,
		symbols: cfg.Symbols,
		budget:  budget,
		log:     cfg.Log.With().Str("job", "radar_scan").Logger(),
	}
}

// Name returns the job name
func (j *RadarScanJob) Name() string {
	return "radar_scan"
}

// Run scans the universe and logs every non-neutral call
func (j *RadarScanJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.budget)
	defer cancel()

	runID := uuid.New().String()
	log := j.log.With().Str("run_id", runID).Logger()

	started := time.Now()
	results := j.scanner.Scan(ctx, j.symbols, j.fetch)

	actionable := 0
	for symbol, res := range results {
		if res.Action == domain.ActionNeutral {
			continue
		}
		actionable++
		log.Info().
			Str("symbol", symbol).
			Float64("score", res.Score).
			Str("action", string(res.Action)).
			Msg("Radar call")
	}

	log.Info().
		Int("universe", len(j.symbols)).
		Int("scored", len(results)).
		Int("actionable", actionable).
		Dur("elapsed", time.Since(started)).
		Msg("Radar scan finished")

	return nil
}
