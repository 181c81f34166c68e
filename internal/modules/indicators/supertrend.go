package indicators

import (
	"github.com/markcheno/go-talib"
)

// supertrendLine computes the SuperTrend trailing stop line.
//
// The line sits below price while the trend is up (acting as a trailing
// stop) and above price while the trend is down. Bands are derived from the
// bar midpoint ± multiplier·ATR and ratchet: the upper band only moves down
// in a downtrend, the lower band only moves up in an uptrend, until price
// crosses and the trend flips.
func supertrendLine(highs, lows, closes []float64, period int, multiplier float64) []float64 {
	n := len(closes)
	line := nanColumn(n)
	if n < period+1 {
		return line
	}

	atr := talib.Atr(highs, lows, closes, period)

	upper := make([]float64, n)
	lower := make([]float64, n)
	uptrend := true

	for i := period; i < n; i++ {
		mid := (highs[i] + lows[i]) / 2
		basicUpper := mid + multiplier*atr[i]
		basicLower := mid - multiplier*atr[i]

		if i == period {
			upper[i] = basicUpper
			lower[i] = basicLower
			uptrend = closes[i] >= mid
		} else {
			if basicUpper < upper[i-1] || closes[i-1] > upper[i-1] {
				upper[i] = basicUpper
			} else {
				upper[i] = upper[i-1]
			}
			if basicLower > lower[i-1] || closes[i-1] < lower[i-1] {
				lower[i] = basicLower
			} else {
				lower[i] = lower[i-1]
			}

			if uptrend && closes[i] < lower[i] {
				uptrend = false
			} else if !uptrend && closes[i] > upper[i] {
				uptrend = true
			}
		}

		if uptrend {
			line[i] = lower[i]
		} else {
			line[i] = upper[i]
		}
	}

	return line
}
