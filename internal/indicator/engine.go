package indicator

import (
	"errors"
	"math"

	"StockScope/internal/model"
)

// Compute derives all indicators from a price series and trims the result
// to the contiguous suffix of dates where every indicator is defined.
// An empty input, or one shorter than the longest warmup, yields an empty
// IndicatorSeries with no error.
func Compute(prices model.PriceSeries, w model.Windows) (model.IndicatorSeries, error) {
	if err := validateWindows(w); err != nil {
		return model.IndicatorSeries{}, err
	}

	out := model.IndicatorSeries{Ticker: prices.Ticker, Windows: w}
	if prices.Empty() {
		return out, nil
	}

	closes := prices.Closes()
	smaFast := SMA(closes, w.SMAFast)
	smaSlow := SMA(closes, w.SMASlow)
	rsi := RSI(closes, w.RSIPeriod)
	macd, macdSignal, macdHist := MACD(closes, w.MACDFast, w.MACDSlow, w.MACDSignal)

	// First index at which every indicator is defined. Each column is
	// NaN-free from its own warmup onwards, so the defined region is a
	// contiguous suffix.
	start := len(closes)
	for i := 0; i < len(closes); i++ {
		if !anyNaN(smaFast[i], smaSlow[i], rsi[i], macd[i], macdSignal[i], macdHist[i]) {
			start = i
			break
		}
	}

	for i := start; i < len(closes); i++ {
		out.Points = append(out.Points, model.IndicatorPoint{
			PricePoint: prices.Points[i],
			SMAFast:    smaFast[i],
			SMASlow:    smaSlow[i],
			RSI:        rsi[i],
			MACD:       macd[i],
			MACDSignal: macdSignal[i],
			MACDHist:   macdHist[i],
		})
	}
	return out, nil
}

func validateWindows(w model.Windows) error {
	if w.SMAFast <= 0 || w.SMASlow <= 0 || w.RSIPeriod <= 0 ||
		w.MACDFast <= 0 || w.MACDSlow <= 0 || w.MACDSignal <= 0 {
		return errors.New("indicator windows must be positive")
	}
	return nil
}

func anyNaN(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
