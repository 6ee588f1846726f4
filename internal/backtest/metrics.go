package backtest

import (
	"fmt"

	"StockScope/internal/model"
)

// ComputeKeyMetrics derives the headline figures (last close, day change,
// range high/low) for the analyzed window.
func ComputeKeyMetrics(ind model.IndicatorSeries) (model.KeyMetrics, error) {
	if ind.Len() < 2 {
		return model.KeyMetrics{}, fmt.Errorf("key metrics %s: %w", ind.Ticker, ErrDegenerateSeries)
	}

	last := ind.Points[ind.Len()-1]
	prev := ind.Points[ind.Len()-2]

	m := model.KeyMetrics{
		LastClose: last.Close,
		PrevClose: prev.Close,
		Change:    last.Close - prev.Close,
		RangeHigh: ind.Points[0].High,
		RangeLow:  ind.Points[0].Low,
	}
	m.ChangePct = m.Change / prev.Close * 100
	for _, p := range ind.Points {
		if p.High > m.RangeHigh {
			m.RangeHigh = p.High
		}
		if p.Low < m.RangeLow {
			m.RangeLow = p.Low
		}
	}
	return m, nil
}
