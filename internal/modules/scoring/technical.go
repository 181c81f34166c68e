package scoring

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/quangtran/advisor/internal/domain"
	"github.com/quangtran/advisor/internal/modules/indicators"
	"github.com/quangtran/advisor/pkg/formulas"
)

// Technical scoring parameters. Rule deltas are additive on top of a neutral
// base; the final score is clamped to [0, 10].
const (
	baseScore = 5.0

	squeezeThreshold    = 0.15
	volumeSurgeMultiple = 1.5

	stopATRMultiple   = 2.0
	targetATRMultiple = 4.0
	fallbackATRRatio  = 0.02
)

// TechnicalScorer fuses indicator readings into a bounded advisory score.
//
// Rules run in a fixed order (trend, moving averages, Ichimoku, RSI,
// Bollinger, volume) so that the pros/cons explanations come out identical on
// every run over the same series. A rule whose indicator is absent is a
// no-op.
type TechnicalScorer struct {
	log zerolog.Logger
}

// NewTechnicalScorer creates a new technical scorer
func NewTechnicalScorer(log zerolog.Logger) *TechnicalScorer {
	return &TechnicalScorer{
		log: log.With().Str("component", "technical_scorer").Logger(),
	}
}

// Score evaluates the enriched series and returns the advisory result.
// Returns nil when the indicator engine could not produce an enriched series.
func (ts *TechnicalScorer) Score(enriched *indicators.EnrichedSeries) *domain.ScoreResult {
	if enriched == nil {
		return nil
	}

	snap := enriched.Snapshot()
	close := snap.Close

	delta := 0.0
	pros := []string{}
	cons := []string{}

	// 1. Trend: SuperTrend stop line carries the dominant weight
	if snap.Supertrend != nil {
		if close > *snap.Supertrend {
			delta += 2
			pros = append(pros, "SuperTrend: uptrend intact")
		} else {
			delta -= 2
			cons = append(cons, "SuperTrend: downtrend active")
		}
	}

	// 2. Moving-average structure
	if snap.EMA34 != nil && snap.EMA89 != nil && close > *snap.EMA34 && *snap.EMA34 > *snap.EMA89 {
		delta += 1
		pros = append(pros, "EMA: price above the short-term averages (34 > 89)")
	}
	if snap.EMA200 != nil && close < *snap.EMA200 {
		delta -= 1
		cons = append(cons, "EMA: price below the 200-period average")
	}

	// 3. Ichimoku
	if snap.SpanA != nil && snap.SpanB != nil && close > *snap.SpanA && close > *snap.SpanB {
		delta += 1
		pros = append(pros, "Ichimoku: price above the cloud")
	}
	if snap.Tenkan != nil && snap.Kijun != nil && *snap.Tenkan > *snap.Kijun {
		pros = append(pros, "Ichimoku: tenkan above kijun")
	}

	// 4. Momentum (RSI)
	if snap.RSI != nil {
		rsi := *snap.RSI
		switch {
		case rsi >= 50 && rsi <= 70:
			delta += 1
			pros = append(pros, fmt.Sprintf("RSI (%.0f): healthy bullish momentum", rsi))
		case rsi < 30:
			delta += 1.5
			pros = append(pros, fmt.Sprintf("RSI (%.0f): oversold, rebound likely", rsi))
		case rsi > 75:
			delta -= 1
			cons = append(cons, fmt.Sprintf("RSI (%.0f): overbought, pullback risk", rsi))
		}
	}

	// 5. Volatility breakout (Bollinger squeeze)
	if snap.BBUpper != nil && snap.BBMiddle != nil && snap.BBLower != nil && *snap.BBMiddle > 0 {
		bandwidth := (*snap.BBUpper - *snap.BBLower) / *snap.BBMiddle
		if bandwidth < squeezeThreshold {
			pros = append(pros, "Bollinger: squeeze, strong move pending")
			if close > *snap.BBUpper {
				delta += 2
				pros = append(pros, "Bollinger: breakout above the upper band")
			}
		}
	}

	// 6. Volume confirmation
	if snap.VolumeSMA != nil && snap.Volume > volumeSurgeMultiple*(*snap.VolumeSMA) && close > snap.PrevClose {
		delta += 1
		pros = append(pros, "Volume: surge above the 20-day average confirms demand")
	}

	score := formulas.Clamp(baseScore+delta, 0, 10)
	action := classifyAction(score)

	atr := close * fallbackATRRatio
	if snap.ATR != nil && *snap.ATR > 0 {
		atr = *snap.ATR
	}

	result := &domain.ScoreResult{
		Symbol: enriched.Series.Symbol,
		Score:  score,
		Action: action,
		Pros:   pros,
		Cons:   cons,
		ATR:    atr,
	}

	// Long-side risk levels are only meaningful for non-bearish calls
	if !action.Bearish() {
		result.Entry = close
		result.Stop = close - stopATRMultiple*atr
		result.Target = close + targetATRMultiple*atr
	}

	return result
}

// classifyAction maps a clamped score to its action band,
// evaluated high to low, first match wins
func classifyAction(score float64) domain.Action {
	switch {
	case score >= 8:
		return domain.ActionStrongBuy
	case score >= 6:
		return domain.ActionBuy
	case score <= 2:
		return domain.ActionStrongSell
	case score <= 4:
		return domain.ActionSell
	default:
		return domain.ActionNeutral
	}
}
