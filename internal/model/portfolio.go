package model

import "time"

// PortfolioPoint is the simulated account state at one date.
// Shares is the cumulative share count; HoldingsValue is Shares times the
// close price; TotalValue = CashValue + HoldingsValue. Return is the
// percent change of TotalValue against the previous date (0 on the first).
type PortfolioPoint struct {
	Date          time.Time
	Shares        float64
	HoldingsValue float64
	CashValue     float64
	TotalValue    float64
	Return        float64
}

// PortfolioPath is the simulated portfolio value over time, one entry per
// signal date. Immutable after construction.
type PortfolioPath struct {
	Ticker         string
	InitialCapital float64
	Points         []PortfolioPoint
}

// Empty reports whether the path contains no entries.
func (p PortfolioPath) Empty() bool { return len(p.Points) == 0 }

// PerformanceSummary holds the scalar backtest outcome.
type PerformanceSummary struct {
	FinalValue        float64
	StrategyReturnPct float64
	BuyHoldReturnPct  float64
}

// KeyMetrics are the headline figures for the analyzed window.
type KeyMetrics struct {
	LastClose float64
	PrevClose float64
	Change    float64
	ChangePct float64
	RangeHigh float64
	RangeLow  float64
}

// RelativePoint is one date of a ticker's normalized performance,
// indexed to 100 at the series start.
type RelativePoint struct {
	Date  time.Time
	Value float64
}

// RelativePerformance compares several tickers on a common base of 100.
type RelativePerformance struct {
	Start  time.Time
	End    time.Time
	Series map[string][]RelativePoint
}
