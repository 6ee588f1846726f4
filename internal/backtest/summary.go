package backtest

import (
	"errors"
	"fmt"

	"StockScope/internal/model"
)

// ErrDegenerateSeries is returned when a series is too short to summarize.
var ErrDegenerateSeries = errors.New("series has fewer than 2 usable dates")

// Summarize derives the scalar return metrics from a simulated path and
// the close prices it was computed from.
func Summarize(path model.PortfolioPath, ind model.IndicatorSeries) (model.PerformanceSummary, error) {
	if len(path.Points) < 2 || ind.Len() < 2 {
		return model.PerformanceSummary{}, fmt.Errorf("summarize %s: %w", path.Ticker, ErrDegenerateSeries)
	}

	finalValue := path.Points[len(path.Points)-1].TotalValue
	firstClose := ind.Points[0].Close
	lastClose := ind.Points[ind.Len()-1].Close

	return model.PerformanceSummary{
		FinalValue:        finalValue,
		StrategyReturnPct: (finalValue - path.InitialCapital) / path.InitialCapital * 100,
		BuyHoldReturnPct:  (lastClose/firstClose - 1) * 100,
	}, nil
}
