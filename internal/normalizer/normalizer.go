// Package normalizer flattens raw supplier tables into canonical price
// series. It never fails: anything it cannot use is dropped, and an
// unusable table yields an empty series for callers to branch on.
package normalizer

import (
	"math"
	"time"

	"StockScope/internal/marketdata"
	"StockScope/internal/model"
)

var fields = []string{"Open", "High", "Low", "Close", "Volume"}

// Normalize converts a raw table into a PriceSeries. Hierarchical column
// labels are collapsed to their first level; when a field label is
// duplicated the first occurrence wins. Rows with a missing, non-finite
// or negative OHLCV value (or a non-positive close) are dropped
// row-locally, as are rows that break strict date ordering.
func Normalize(table *marketdata.RawTable) model.PriceSeries {
	series := model.PriceSeries{}
	if table != nil {
		series.Ticker = table.Ticker
	}
	if table.Empty() {
		return series
	}

	cols := make(map[string]int, len(fields))
	for i, label := range table.Columns {
		field, _ := marketdata.SplitLabel(label)
		if _, seen := cols[field]; !seen {
			cols[field] = i
		}
	}
	for _, f := range fields {
		if _, ok := cols[f]; !ok {
			return series // table does not carry full OHLCV
		}
	}

	var lastDate time.Time
	for i, row := range table.Rows {
		p := model.PricePoint{
			Date:   toCalendarDate(table.Dates[i]),
			Open:   cellAt(row, cols["Open"]),
			High:   cellAt(row, cols["High"]),
			Low:    cellAt(row, cols["Low"]),
			Close:  cellAt(row, cols["Close"]),
			Volume: cellAt(row, cols["Volume"]),
		}
		if !usable(p) {
			continue
		}
		if !series.Empty() && !p.Date.After(lastDate) {
			continue // duplicate or out-of-order date
		}
		series.Points = append(series.Points, p)
		lastDate = p.Date
	}
	return series
}

func usable(p model.PricePoint) bool {
	for _, v := range []float64{p.Open, p.High, p.Low, p.Close, p.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return p.Close > 0
}

func cellAt(row []float64, i int) float64 {
	if i < len(row) {
		return row[i]
	}
	return math.NaN()
}

func toCalendarDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
