package scanner

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/quangtran/advisor/internal/domain"
	"github.com/quangtran/advisor/internal/modules/indicators"
	"github.com/quangtran/advisor/internal/modules/scoring"
)

// FetchFunc supplies the price series for one symbol. Fetching is the
// collaborator's concern; the scanner only consumes the result.
type FetchFunc func(ctx context.Context, symbol string) (domain.PriceSeries, error)

// Config holds scanner configuration
type Config struct {
	Engine        *indicators.Engine
	Scorer        *scoring.TechnicalScorer
	Workers       int
	SymbolTimeout time.Duration
	Log           zerolog.Logger
}

// Scanner scores a universe of symbols over a bounded worker pool.
//
// Every symbol goes through exactly the same Compute+Score path as a
// single-symbol deep dive, so the radar and the detail view can never
// disagree. Symbols that fail to fetch, time out, or lack history are
// logged and omitted; one bad symbol never aborts the batch.
type Scanner struct {
	engine        *indicators.Engine
	scorer        *scoring.TechnicalScorer
	numWorkers    int
	symbolTimeout time.Duration
	log           zerolog.Logger
}

// New creates a new batch scanner
func New(cfg Config) *Scanner {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	timeout := cfg.SymbolTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Scanner{
		engine:        cfg.Engine,
		scorer:        cfg.Scorer,
		numWorkers:    workers,
		symbolTimeout: timeout,
		log:           cfg.Log.With().Str("component", "scanner").Logger(),
	}
}

type scanResult struct {
	symbol string
	score  *domain.ScoreResult
}

// Scan scores each symbol independently and returns one entry per symbol
// that produced a result.
func (s *Scanner) Scan(ctx context.Context, symbols []string, fetch FetchFunc) map[string]*domain.ScoreResult {
	out := make(map[string]*domain.ScoreResult, len(symbols))
	if len(symbols) == 0 {
		return out
	}

	jobs := make(chan string, len(symbols))
	results := make(chan scanResult, len(symbols))

	workers := s.numWorkers
	if len(symbols) < workers {
		workers = len(symbols)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range jobs {
				if ctx.Err() != nil {
					return
				}
				if score := s.scanSymbol(ctx, symbol, fetch); score != nil {
					results <- scanResult{symbol: symbol, score: score}
				}
			}
		}()
	}

	for _, symbol := range symbols {
		jobs <- symbol
	}
	close(jobs)

	wg.Wait()
	close(results)

	for r := range results {
		out[r.symbol] = r.score
	}

	s.log.Info().
		Int("requested", len(symbols)).
		Int("scored", len(out)).
		Msg("Scan complete")

	return out
}

// scanSymbol scores one symbol with a per-symbol time budget.
// Returns nil when the symbol has to be skipped.
func (s *Scanner) scanSymbol(ctx context.Context, symbol string, fetch FetchFunc) *domain.ScoreResult {
	symbolCtx, cancel := context.WithTimeout(ctx, s.symbolTimeout)
	defer cancel()

	series, err := fetch(symbolCtx, symbol)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("Fetch failed, symbol skipped")
		return nil
	}

	result := s.scorer.Score(s.engine.Compute(series))
	if result == nil {
		s.log.Debug().Str("symbol", symbol).Msg("Not enough history, symbol skipped")
		return nil
	}

	if result.Symbol == "" {
		result.Symbol = symbol
	}
	return result
}
