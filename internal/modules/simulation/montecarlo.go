package simulation

import (
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/quangtran/advisor/internal/domain"
	"github.com/quangtran/advisor/pkg/formulas"
)

// MinBars is the minimum history needed to estimate drift and volatility
const MinBars = 30

// Defaults used when the config leaves a field zero
const (
	DefaultDays        = 30
	DefaultSimulations = 1000
)

// Config controls a simulation run. A nil Seed draws a time-based seed;
// injecting a seed makes repeated runs bit-identical.
type Config struct {
	Days        int    `json:"days"`
	Simulations int    `json:"simulations"`
	Seed        *int64 `json:"seed,omitempty"`
}

// Simulator estimates future price distributions with Geometric Brownian
// Motion. Each run owns its RNG; nothing is shared across calls or
// goroutines.
type Simulator struct {
	log zerolog.Logger
}

// NewSimulator creates a new Monte Carlo simulator
func NewSimulator(log zerolog.Logger) *Simulator {
	return &Simulator{
		log: log.With().Str("component", "montecarlo").Logger(),
	}
}

// Run simulates price paths from the historical return distribution.
//
// Daily drift is mu − σ²/2 over the full return series; each simulated step
// multiplies the prior price by exp(drift + σ·Z) with Z standard normal.
// Returns nil when the series is shorter than MinBars.
func (s *Simulator) Run(series domain.PriceSeries, cfg Config) *domain.SimulationResult {
	if series.Len() < MinBars {
		s.log.Debug().
			Str("symbol", series.Symbol).
			Int("bars", series.Len()).
			Int("required", MinBars).
			Msg("Insufficient history for simulation")
		return nil
	}

	days := cfg.Days
	if days <= 0 {
		days = DefaultDays
	}
	sims := cfg.Simulations
	if sims <= 0 {
		sims = DefaultSimulations
	}

	returns := formulas.DailyReturns(series.Closes())
	mu := formulas.Mean(returns)
	sigma := formulas.StdDev(returns)
	drift := mu - 0.5*sigma*sigma

	seed := time.Now().UnixNano()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	lastClose := series.LastClose()

	paths := make([][]float64, days)
	paths[0] = make([]float64, sims)
	for j := range paths[0] {
		paths[0][j] = lastClose
	}
	for t := 1; t < days; t++ {
		row := make([]float64, sims)
		prev := paths[t-1]
		for j := 0; j < sims; j++ {
			step := math.Exp(drift + sigma*rng.NormFloat64())
			row[j] = prev[j] * step
		}
		paths[t] = row
	}

	terminal := paths[days-1]
	upCount := 0
	for _, p := range terminal {
		if p > lastClose {
			upCount++
		}
	}

	return &domain.SimulationResult{
		Paths:  paths,
		Mean:   formulas.Mean(terminal),
		Top5:   formulas.Percentile(terminal, 95),
		Bot5:   formulas.Percentile(terminal, 5),
		ProbUp: float64(upCount) / float64(sims) * 100,
	}
}
