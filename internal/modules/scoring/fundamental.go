package scoring

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/quangtran/advisor/internal/domain"
)

// Fundamental rule thresholds. Each of the nine scored metrics contributes a
// signed integer delta; an absent line item makes its rule contribute 0.
const (
	roeExcellent = 20.0 // percent
	roeGood      = 15.0
	roePoor      = 5.0

	marginGood = 15.0
	marginPoor = 2.0

	bepGood = 10.0

	debtRatioGood         = 0.6
	debtRatioPoor         = 0.8
	debtRatioFinancialCap = 0.95

	currentRatioGood = 1.2
	currentRatioPoor = 0.9

	growthGood    = 15.0
	netIncomePoor = -10.0

	inventoryTurnoverGood = 4.0

	healthStrongFloor = 6
	healthStableFloor = 3
)

// FundamentalScorer rates company health from a most-recent-first sequence of
// financial snapshots. It never fails: missing line items silently degrade
// the affected rule to a neutral contribution.
type FundamentalScorer struct {
	log zerolog.Logger
}

// NewFundamentalScorer creates a new fundamental scorer
func NewFundamentalScorer(log zerolog.Logger) *FundamentalScorer {
	return &FundamentalScorer{
		log: log.With().Str("component", "fundamental_scorer").Logger(),
	}
}

// Score evaluates the nine health metrics and classifies the total.
// The returned metrics table carries, in rule order, the same raw values the
// scoring rules consumed, so the total can be recomputed from it.
func (fs *FundamentalScorer) Score(snapshots []domain.FinancialSnapshot) domain.FundamentalResult {
	var latest domain.FinancialSnapshot
	if len(snapshots) > 0 {
		latest = snapshots[0]
	}

	total := 0
	metrics := []domain.Metric{}

	add := func(name, format string, raw *float64, delta int) {
		m := domain.Metric{Name: name, Value: "n/a", Raw: raw}
		if raw != nil {
			m.Value = fmt.Sprintf(format, *raw)
		}
		metrics = append(metrics, m)
		total += delta
	}

	// Profitability
	roe := roePercent(latest)
	add("ROE", "%.1f%%", roe, thresholdDelta(roe, func(v float64) int {
		switch {
		case v > roeExcellent:
			return 2
		case v > roeGood:
			return 1
		case v < roePoor:
			return -1
		}
		return 0
	}))

	margin := ratioPercent(latest, domain.KeysNetIncome, domain.KeysRevenue)
	add("Net margin", "%.1f%%", margin, thresholdDelta(margin, func(v float64) int {
		switch {
		case v > marginGood:
			return 1
		case v < marginPoor:
			return -1
		}
		return 0
	}))

	bep := ratioPercent(latest, domain.KeysEBIT, domain.KeysTotalAssets)
	add("Basic earning power", "%.1f%%", bep, thresholdDelta(bep, func(v float64) int {
		if v > bepGood {
			return 1
		}
		return 0
	}))

	// Solvency
	debtRatio := ratio(latest, domain.KeysTotalLiabilities, domain.KeysTotalAssets)
	financial := latest.IsFinancialSector()
	add("Debt/assets", "%.2f", debtRatio, thresholdDelta(debtRatio, func(v float64) int {
		if financial {
			if v > debtRatioFinancialCap {
				return -1
			}
			return 0
		}
		switch {
		case v < debtRatioGood:
			return 1
		case v > debtRatioPoor:
			return -1
		}
		return 0
	}))

	currentRatio := ratio(latest, domain.KeysCurrentAssets, domain.KeysCurrentLiabilities)
	add("Current ratio", "%.2fx", currentRatio, thresholdDelta(currentRatio, func(v float64) int {
		switch {
		case v > currentRatioGood:
			return 1
		case v < currentRatioPoor:
			return -1
		}
		return 0
	}))

	var opCF *float64
	if v, ok := latest.LineItem(domain.KeysOperatingCashFlow); ok {
		opCF = &v
	}
	add("Operating cash flow", "%.0f", opCF, thresholdDelta(opCF, func(v float64) int {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		}
		return 0
	}))

	// Growth (year over year)
	revGrowth := yoyGrowthPercent(snapshots, domain.KeysRevenue)
	add("Revenue growth", "%+.1f%% YoY", revGrowth, thresholdDelta(revGrowth, func(v float64) int {
		if v > growthGood {
			return 1
		}
		return 0
	}))

	niGrowth := yoyGrowthPercent(snapshots, domain.KeysNetIncome)
	add("Net income growth", "%+.1f%% YoY", niGrowth, thresholdDelta(niGrowth, func(v float64) int {
		switch {
		case v > growthGood:
			return 1
		case v < netIncomePoor:
			return -1
		}
		return 0
	}))

	turnover := inventoryTurnover(latest)
	add("Inventory turnover", "%.1fx", turnover, thresholdDelta(turnover, func(v float64) int {
		if v > inventoryTurnoverGood {
			return 1
		}
		return 0
	}))

	// Valuation context, presentation only, carries no score weight
	add("P/E", "%.1fx", latest.PE, 0)
	add("P/B", "%.1fx", latest.PB, 0)

	return domain.FundamentalResult{
		Health:    classifyHealth(total),
		Score:     total,
		Metrics:   metrics,
		MarketCap: latest.MarketCap,
	}
}

// classifyHealth maps the metric total to a health band; non-decreasing in
// the total by construction
func classifyHealth(total int) domain.Health {
	switch {
	case total >= healthStrongFloor:
		return domain.HealthStrong
	case total >= healthStableFloor:
		return domain.HealthStable
	default:
		return domain.HealthWeak
	}
}

// thresholdDelta applies rule to the reading, or contributes nothing when
// the reading is absent
func thresholdDelta(v *float64, rule func(float64) int) int {
	if v == nil {
		return 0
	}
	return rule(*v)
}

// roePercent reads return on equity as a percentage
func roePercent(s domain.FinancialSnapshot) *float64 {
	if s.ROE == nil {
		return nil
	}
	pct := *s.ROE * 100
	return &pct
}

// ratio divides two line items, absent when either side is missing or the
// denominator is zero
func ratio(s domain.FinancialSnapshot, numKeys, denKeys []string) *float64 {
	num, okN := s.LineItem(numKeys)
	den, okD := s.LineItem(denKeys)
	if !okN || !okD || den == 0 {
		return nil
	}
	r := num / den
	return &r
}

// ratioPercent is ratio scaled to a percentage
func ratioPercent(s domain.FinancialSnapshot, numKeys, denKeys []string) *float64 {
	r := ratio(s, numKeys, denKeys)
	if r == nil {
		return nil
	}
	pct := *r * 100
	return &pct
}

// inventoryTurnover is COGS over inventory, only defined for positive inventory
func inventoryTurnover(s domain.FinancialSnapshot) *float64 {
	cogs, okC := s.LineItem(domain.KeysCOGS)
	inv, okI := s.LineItem(domain.KeysInventory)
	if !okC || !okI || inv <= 0 {
		return nil
	}
	t := cogs / inv
	return &t
}

// yoyGrowthPercent compares the latest period against the matching prior-year
// period when at least five quarters exist, else the immediately preceding
// period. Snapshots are ordered most recent first.
func yoyGrowthPercent(snapshots []domain.FinancialSnapshot, keys []string) *float64 {
	if len(snapshots) < 2 {
		return nil
	}

	prevIdx := 1
	if len(snapshots) >= 5 {
		prevIdx = 4
	}

	now, okNow := snapshots[0].LineItem(keys)
	prev, okPrev := snapshots[prevIdx].LineItem(keys)
	if !okNow || !okPrev || prev == 0 {
		return nil
	}

	g := (now - prev) / math.Abs(prev) * 100
	return &g
}
