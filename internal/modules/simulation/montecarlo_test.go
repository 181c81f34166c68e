package simulation

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quangtran/advisor/internal/domain"
)

func historySeries(n int) domain.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]domain.PriceBar, n)
	price := 100.0
	for i := range bars {
		// mild alternating drift keeps volatility realistic and positive
		if i%2 == 0 {
			price *= 1.012
		} else {
			price *= 0.995
		}
		bars[i] = domain.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   price,
			High:   price * 1.01,
			Low:    price * 0.99,
			Close:  price,
			Volume: 10000,
		}
	}
	return domain.PriceSeries{Symbol: "HPG", Bars: bars}
}

func seeded(s int64) Config {
	return Config{Days: 20, Simulations: 200, Seed: &s}
}

func TestRunRequiresMinimumHistory(t *testing.T) {
	sim := NewSimulator(zerolog.Nop())

	assert.Nil(t, sim.Run(historySeries(MinBars-1), seeded(1)))
	assert.NotNil(t, sim.Run(historySeries(MinBars), seeded(1)))
}

func TestRunShape(t *testing.T) {
	sim := NewSimulator(zerolog.Nop())
	series := historySeries(100)

	result := sim.Run(series, seeded(7))
	require.NotNil(t, result)

	require.Len(t, result.Paths, 20)
	for _, row := range result.Paths {
		assert.Len(t, row, 200)
	}

	// the first row anchors every path at the last observed close
	for _, p := range result.Paths[0] {
		assert.Equal(t, series.LastClose(), p)
	}

	// GBM prices stay strictly positive
	for _, row := range result.Paths {
		for _, p := range row {
			assert.Greater(t, p, 0.0)
		}
	}
}

func TestRunTerminalStatistics(t *testing.T) {
	sim := NewSimulator(zerolog.Nop())

	result := sim.Run(historySeries(100), seeded(42))
	require.NotNil(t, result)

	assert.LessOrEqual(t, result.Bot5, result.Mean)
	assert.LessOrEqual(t, result.Mean, result.Top5)
	assert.GreaterOrEqual(t, result.ProbUp, 0.0)
	assert.LessOrEqual(t, result.ProbUp, 100.0)
}

func TestRunSeededDeterminism(t *testing.T) {
	sim := NewSimulator(zerolog.Nop())
	series := historySeries(100)

	first := sim.Run(series, seeded(1234))
	second := sim.Run(series, seeded(1234))

	require.NotNil(t, first)
	assert.Equal(t, first, second, "identical seeds must reproduce every path bit for bit")

	third := sim.Run(series, seeded(5678))
	require.NotNil(t, third)
	assert.NotEqual(t, first.Paths[19], third.Paths[19], "different seeds should diverge")
}

func TestRunDefaults(t *testing.T) {
	sim := NewSimulator(zerolog.Nop())
	var s int64 = 9

	result := sim.Run(historySeries(100), Config{Seed: &s})
	require.NotNil(t, result)

	assert.Len(t, result.Paths, DefaultDays)
	assert.Len(t, result.Paths[0], DefaultSimulations)
}

func TestRunConstantPrices(t *testing.T) {
	sim := NewSimulator(zerolog.Nop())

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]domain.PriceBar, 60)
	for i := range bars {
		bars[i] = domain.PriceBar{Date: start.AddDate(0, 0, i), Close: 50, High: 50, Low: 50, Open: 50, Volume: 100}
	}

	var s int64 = 1
	result := sim.Run(domain.PriceSeries{Symbol: "FLAT", Bars: bars}, Config{Days: 10, Simulations: 50, Seed: &s})
	require.NotNil(t, result)

	// zero drift and zero volatility: every path stays pinned at the close
	assert.Equal(t, 50.0, result.Mean)
	assert.Equal(t, 50.0, result.Top5)
	assert.Equal(t, 50.0, result.Bot5)
	assert.Equal(t, 0.0, result.ProbUp)
}
