// Package backtest simulates the Golden Cross strategy over an indicator
// series and summarizes the outcome.
package backtest

import (
	"errors"
	"fmt"

	"StockScope/internal/model"
)

// Simulate converts position changes plus close prices into a portfolio
// path starting from initialCapital. Empty input yields an empty path.
//
// The cash column is derived from the running sum of change-times-shares,
// not from a real transaction ledger, and drifts from realizable cash
// flow when the signal flips more than once. Known simplification, kept
// for output compatibility.
func Simulate(ind model.IndicatorSeries, signals model.SignalSeries, initialCapital float64) (model.PortfolioPath, error) {
	if initialCapital <= 0 {
		return model.PortfolioPath{}, fmt.Errorf("initial capital must be positive, got %v", initialCapital)
	}
	if ind.Len() != len(signals.Points) {
		return model.PortfolioPath{}, errors.New("indicator and signal series length mismatch")
	}

	path := model.PortfolioPath{Ticker: ind.Ticker, InitialCapital: initialCapital}
	if ind.Empty() {
		return path, nil
	}

	path.Points = make([]model.PortfolioPoint, ind.Len())
	var shares, changeTimesShares, prevTotal float64
	for i, p := range ind.Points {
		change := signals.Points[i].Change
		shares += change * initialCapital / p.Close
		changeTimesShares += change * shares

		cash := initialCapital - changeTimesShares
		holdings := shares * p.Close
		total := cash + holdings

		ret := 0.0
		if i > 0 && prevTotal != 0 {
			ret = (total - prevTotal) / prevTotal
		}
		prevTotal = total

		path.Points[i] = model.PortfolioPoint{
			Date:          p.Date,
			Shares:        shares,
			HoldingsValue: holdings,
			CashValue:     cash,
			TotalValue:    total,
			Return:        ret,
		}
	}
	return path, nil
}
