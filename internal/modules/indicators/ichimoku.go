package indicators

// cloud holds the four Ichimoku lines, each aligned with the input bars
type cloud struct {
	tenkan []float64
	kijun  []float64
	spanA  []float64
	spanB  []float64
}

// ichimokuLines computes the Ichimoku system.
//
// Tenkan and kijun are highest-high/lowest-low midpoints over their windows.
// The senkou spans are displaced forward by the kijun period, so the cloud
// under the latest bar was computed kijunPeriod bars ago; until that much
// extra history exists the spans read as absent.
func ichimokuLines(highs, lows []float64, tenkanPeriod, kijunPeriod, senkouPeriod int) cloud {
	n := len(highs)
	c := cloud{
		tenkan: nanColumn(n),
		kijun:  nanColumn(n),
		spanA:  nanColumn(n),
		spanB:  nanColumn(n),
	}

	for i := 0; i < n; i++ {
		if i >= tenkanPeriod-1 {
			c.tenkan[i] = midpoint(highs, lows, i, tenkanPeriod)
		}
		if i >= kijunPeriod-1 {
			c.kijun[i] = midpoint(highs, lows, i, kijunPeriod)
		}
	}

	for i := 0; i < n; i++ {
		src := i - kijunPeriod
		if src >= kijunPeriod-1 {
			c.spanA[i] = (c.tenkan[src] + c.kijun[src]) / 2
		}
		if src >= senkouPeriod-1 {
			c.spanB[i] = midpoint(highs, lows, src, senkouPeriod)
		}
	}

	return c
}

// midpoint returns (highest high + lowest low) / 2 over the window ending at i
func midpoint(highs, lows []float64, i, period int) float64 {
	hh := highs[i]
	ll := lows[i]
	for j := i - period + 1; j < i; j++ {
		if highs[j] > hh {
			hh = highs[j]
		}
		if lows[j] < ll {
			ll = lows[j]
		}
	}
	return (hh + ll) / 2
}
