package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/quangtran/advisor/internal/domain"
	"github.com/quangtran/advisor/internal/modules/indicators"
	"github.com/quangtran/advisor/internal/modules/scanner"
	"github.com/quangtran/advisor/internal/modules/scoring"
)

func newRadarJob(fetch scanner.FetchFunc, symbols []string) *RadarScanJob {
	scan := scanner.New(scanner.Config{
		Engine:  indicators.NewEngine(zerolog.Nop()),
		Scorer:  scoring.NewTechnicalScorer(zerolog.Nop()),
		Workers: 2,
		Log:     zerolog.Nop(),
	})
	return NewRadarScanJob(RadarScanConfig{
		Scanner: scan,
		Fetch:   fetch,
		Symbols: symbols,
		Log:     zerolog.Nop(),
	})
}

func risingSeries(symbol string, n int) (domain.PriceSeries, error) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]domain.PriceBar, n)
	for i := range bars {
		close := 40 + 0.3*float64(i)
		bars[i] = domain.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   close - 0.1,
			High:   close + 0.5,
			Low:    close - 0.5,
			Close:  close,
			Volume: 5000,
		}
	}
	return domain.PriceSeries{Symbol: symbol, Bars: bars}, nil
}

func TestRadarScanJobName(t *testing.T) {
	job := newRadarJob(nil, nil)
	assert.Equal(t, "radar_scan", job.Name())
}

func TestRadarScanJobRun(t *testing.T) {
	fetch := func(ctx context.Context, symbol string) (domain.PriceSeries, error) {
		return risingSeries(symbol, 120)
	}

	job := newRadarJob(fetch, []string{"HPG", "FPT"})
	assert.NoError(t, job.Run())
}

func TestRadarScanJobSurvivesFetchFailures(t *testing.T) {
	fetch := func(ctx context.Context, symbol string) (domain.PriceSeries, error) {
		return domain.PriceSeries{}, errors.New("feed down")
	}

	job := newRadarJob(fetch, []string{"HPG", "FPT"})

	// a dead feed degrades the scan to zero results, never to a job failure
	assert.NoError(t, job.Run())
}
