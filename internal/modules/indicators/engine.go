package indicators

import (
	"math"

	"github.com/markcheno/go-talib"
	"github.com/rs/zerolog"

	"github.com/quangtran/advisor/internal/domain"
)

// MinBars is the practical floor of bars needed before any scoring happens.
// The longest hard requirement below it (Bollinger, ATR, RSI) is satisfied
// well before 50; indicators with longer windows (EMA200, senkou span B)
// simply read as absent until enough history accumulates.
const MinBars = 50

// Standard indicator parameters, matching the advisory rule set
const (
	supertrendPeriod     = 10
	supertrendMultiplier = 3.0

	emaShortPeriod = 34
	emaMidPeriod   = 89
	emaLongPeriod  = 200

	tenkanPeriod = 9
	kijunPeriod  = 26
	senkouPeriod = 52

	bollingerPeriod = 20
	bollingerStdDev = 2.0

	atrPeriod = 14
	rsiPeriod = 14

	volumeSMAPeriod = 20
)

// EnrichedSeries is the output of Engine.Compute: the untouched input series
// plus one derived column per indicator, aligned bar-for-bar with the input.
// Warm-up entries hold NaN.
type EnrichedSeries struct {
	Series domain.PriceSeries

	Supertrend []float64
	EMA34      []float64
	EMA89      []float64
	EMA200     []float64
	Tenkan     []float64
	Kijun      []float64
	SpanA      []float64
	SpanB      []float64
	BBUpper    []float64
	BBMiddle   []float64
	BBLower    []float64
	ATR        []float64
	RSI        []float64
	VolumeSMA  []float64
}

// Snapshot holds the most recent reading of every indicator. A nil field
// means the indicator could not be computed for the last bar; scoring rules
// treat that as a no-op, never as an error.
type Snapshot struct {
	Close     float64
	PrevClose float64
	Volume    float64

	Supertrend *float64
	EMA34      *float64
	EMA89      *float64
	EMA200     *float64
	Tenkan     *float64
	Kijun      *float64
	SpanA      *float64
	SpanB      *float64
	BBUpper    *float64
	BBMiddle   *float64
	BBLower    *float64
	ATR        *float64
	RSI        *float64
	VolumeSMA  *float64
}

// Engine computes the fixed technical indicator set over a price series.
// It is stateless and safe for concurrent use.
type Engine struct {
	log zerolog.Logger
}

// NewEngine creates a new indicator engine
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		log: log.With().Str("component", "indicators").Logger(),
	}
}

// Compute derives all indicator columns from the series. The caller's series
// is never mutated; every column lives on the returned EnrichedSeries.
// Returns nil when the series is too short to analyze.
func (e *Engine) Compute(series domain.PriceSeries) *EnrichedSeries {
	if series.Len() < MinBars {
		e.log.Debug().
			Str("symbol", series.Symbol).
			Int("bars", series.Len()).
			Int("required", MinBars).
			Msg("Insufficient history for indicators")
		return nil
	}

	closes := series.Closes()
	highs := series.Highs()
	lows := series.Lows()
	volumes := series.Volumes()

	enriched := &EnrichedSeries{
		Series:     series,
		Supertrend: supertrendLine(highs, lows, closes, supertrendPeriod, supertrendMultiplier),
		EMA34:      emaColumn(closes, emaShortPeriod),
		EMA89:      emaColumn(closes, emaMidPeriod),
		EMA200:     emaColumn(closes, emaLongPeriod),
		ATR:        maskWarmup(talib.Atr(highs, lows, closes, atrPeriod), atrPeriod),
		RSI:        maskWarmup(talib.Rsi(closes, rsiPeriod), rsiPeriod),
		VolumeSMA:  maskWarmup(talib.Sma(volumes, volumeSMAPeriod), volumeSMAPeriod-1),
	}

	upper, middle, lower := talib.BBands(closes, bollingerPeriod, bollingerStdDev, bollingerStdDev, talib.SMA)
	enriched.BBUpper = maskWarmup(upper, bollingerPeriod-1)
	enriched.BBMiddle = maskWarmup(middle, bollingerPeriod-1)
	enriched.BBLower = maskWarmup(lower, bollingerPeriod-1)

	ich := ichimokuLines(highs, lows, tenkanPeriod, kijunPeriod, senkouPeriod)
	enriched.Tenkan = ich.tenkan
	enriched.Kijun = ich.kijun
	enriched.SpanA = ich.spanA
	enriched.SpanB = ich.spanB

	return enriched
}

// Snapshot extracts the latest reading of every column
func (es *EnrichedSeries) Snapshot() Snapshot {
	n := es.Series.Len()
	last := n - 1

	snap := Snapshot{
		Close:  es.Series.Bars[last].Close,
		Volume: float64(es.Series.Bars[last].Volume),
	}
	if n > 1 {
		snap.PrevClose = es.Series.Bars[last-1].Close
	}

	snap.Supertrend = columnAt(es.Supertrend, last)
	snap.EMA34 = columnAt(es.EMA34, last)
	snap.EMA89 = columnAt(es.EMA89, last)
	snap.EMA200 = columnAt(es.EMA200, last)
	snap.Tenkan = columnAt(es.Tenkan, last)
	snap.Kijun = columnAt(es.Kijun, last)
	snap.SpanA = columnAt(es.SpanA, last)
	snap.SpanB = columnAt(es.SpanB, last)
	snap.BBUpper = columnAt(es.BBUpper, last)
	snap.BBMiddle = columnAt(es.BBMiddle, last)
	snap.BBLower = columnAt(es.BBLower, last)
	snap.ATR = columnAt(es.ATR, last)
	snap.RSI = columnAt(es.RSI, last)
	snap.VolumeSMA = columnAt(es.VolumeSMA, last)

	return snap
}

// emaColumn computes an EMA column, absent entirely when the series is
// shorter than the period
func emaColumn(closes []float64, period int) []float64 {
	if len(closes) < period {
		return nanColumn(len(closes))
	}
	return maskWarmup(talib.Ema(closes, period), period-1)
}

// maskWarmup replaces the leading warm-up entries (where talib emits zeros)
// with NaN so they read as absent
func maskWarmup(col []float64, lookback int) []float64 {
	for i := 0; i < lookback && i < len(col); i++ {
		col[i] = math.NaN()
	}
	return col
}

// nanColumn returns a column of n absent readings
func nanColumn(n int) []float64 {
	col := make([]float64, n)
	for i := range col {
		col[i] = math.NaN()
	}
	return col
}

// columnAt reads one entry of a column as an optional value
func columnAt(col []float64, i int) *float64 {
	if i < 0 || i >= len(col) {
		return nil
	}
	v := col[i]
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
