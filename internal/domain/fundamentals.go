package domain

import "strings"

// FinancialSnapshot is one reporting period of financial-statement line
// items, plus point-in-time valuation ratios that only carry meaning on the
// most recent period. Line items are keyed by provider-reported names; use
// LineItem with a candidate-key list to read them.
type FinancialSnapshot struct {
	Period    string             `json:"period"`
	Items     map[string]float64 `json:"items"`
	PE        *float64           `json:"pe,omitempty"`
	PB        *float64           `json:"pb,omitempty"`
	ROE       *float64           `json:"roe,omitempty"`
	MarketCap float64            `json:"market_cap,omitempty"`
	Sector    string             `json:"sector,omitempty"`
}

// Candidate key lists for line-item lookup. Providers rename statement rows
// between feeds and API revisions; keys are tried in priority order.
var (
	KeysRevenue = []string{"Total Revenue", "TotalRevenue", "Revenue", "Net Revenue"}

	KeysNetIncome = []string{"Net Income", "NetIncome", "Net Income Common Stockholders"}

	KeysEBIT = []string{"EBIT", "Operating Income", "OperatingIncome"}

	KeysTotalAssets = []string{"Total Assets", "TotalAssets"}

	KeysTotalLiabilities = []string{
		"Total Liab", "Total Liabilities", "TotalLiabilities",
		"Total Liabilities Net Minority Interest",
	}

	KeysCurrentAssets = []string{"Current Assets", "Total Current Assets"}

	KeysCurrentLiabilities = []string{"Current Liabilities", "Total Current Liabilities"}

	KeysInventory = []string{"Inventory", "Inventories"}

	KeysCOGS = []string{"Cost Of Revenue", "Cost Of Goods Sold", "COGS"}

	KeysOperatingCashFlow = []string{
		"Operating Cash Flow", "Total Cash From Operating Activities",
		"Cash Flow From Continuing Operating Activities",
	}
)

// LineItem tries each candidate key in order and returns the first hit.
// A total miss returns (0, false); callers treat that as an absent reading,
// never as a zero value.
func (s FinancialSnapshot) LineItem(candidates []string) (float64, bool) {
	for _, key := range candidates {
		if v, ok := s.Items[key]; ok {
			return v, true
		}
	}
	return 0, false
}

// IsFinancialSector reports whether the snapshot belongs to a financial-
// sector entity (banks, brokers, insurers). These carry structurally high
// leverage, so the generic debt penalty does not apply to them.
func (s FinancialSnapshot) IsFinancialSector() bool {
	sector := strings.ToLower(s.Sector)
	for _, marker := range []string{"financ", "bank", "insur", "broker"} {
		if strings.Contains(sector, marker) {
			return true
		}
	}
	return false
}
