// Package strategy turns indicator series into position signals. The only
// strategy implemented is the Golden Cross: hold long while the fast SMA
// is strictly above the slow SMA.
package strategy

import "StockScope/internal/model"

// GenerateSignals derives the position signal for every indicator row.
// signal(t) = LONG iff SMAFast(t) > SMASlow(t); equality is FLAT.
// Change(t) = signal(t) - signal(t-1) with an implicit FLAT state before
// the first row, so Change(0) = signal(0).
func GenerateSignals(ind model.IndicatorSeries) model.SignalSeries {
	out := model.SignalSeries{Ticker: ind.Ticker}
	if ind.Empty() {
		return out
	}

	out.Points = make([]model.SignalPoint, ind.Len())
	prev := model.Flat
	for i, p := range ind.Points {
		sig := model.Flat
		if p.SMAFast > p.SMASlow {
			sig = model.Long
		}
		out.Points[i] = model.SignalPoint{
			Date:   p.Date,
			Signal: sig,
			Change: float64(sig) - float64(prev),
		}
		prev = sig
	}
	return out
}
