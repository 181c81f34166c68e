package domain

// Action is the categorical trading recommendation derived from the
// technical score.
type Action string

const (
	ActionStrongBuy  Action = "STRONG_BUY"
	ActionBuy        Action = "BUY"
	ActionNeutral    Action = "NEUTRAL"
	ActionSell       Action = "SELL"
	ActionStrongSell Action = "STRONG_SELL"
)

// Bearish reports whether the action is a sell-side call
func (a Action) Bearish() bool {
	return a == ActionSell || a == ActionStrongSell
}

// ScoreResult is the outcome of technical scoring for one symbol.
//
// Score is always within [0, 10]. Pros and cons are appended in the fixed
// rule-evaluation order, so two runs over the same series produce identical
// explanations. For bearish actions the risk levels (Entry/Stop/Target) are
// zeroed: long-side levels are meaningless for a sell call.
type ScoreResult struct {
	Symbol string   `json:"symbol,omitempty"`
	Score  float64  `json:"score"`
	Action Action   `json:"action"`
	Pros   []string `json:"pros"`
	Cons   []string `json:"cons"`
	Entry  float64  `json:"entry"`
	Stop   float64  `json:"stop"`
	Target float64  `json:"target"`
	ATR    float64  `json:"atr"`
}

// Health is the categorical fundamental health classification
type Health string

const (
	HealthStrong Health = "STRONG"
	HealthStable Health = "STABLE"
	HealthWeak   Health = "WEAK"
)

// Metric is one row of the fundamental metrics table. Value is the formatted
// presentation string; Raw carries the number the scoring rule consumed
// (nil when the underlying line items were unavailable).
type Metric struct {
	Name  string   `json:"name"`
	Value string   `json:"value"`
	Raw   *float64 `json:"raw,omitempty"`
}

// FundamentalResult is the outcome of fundamental health scoring
type FundamentalResult struct {
	Health    Health   `json:"health"`
	Score     int      `json:"score"`
	Metrics   []Metric `json:"metrics"`
	MarketCap float64  `json:"market_cap"`
}

// SimulationResult holds the simulated price paths and the terminal-price
// statistics. Paths has shape [days][simulations]; row 0 is the last observed
// close replicated across simulations.
type SimulationResult struct {
	Paths  [][]float64 `json:"paths"`
	Mean   float64     `json:"mean"`
	Top5   float64     `json:"top_5"`
	Bot5   float64     `json:"bot_5"`
	ProbUp float64     `json:"prob_up"`
}
