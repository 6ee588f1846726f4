package model

import "time"

// PricePoint is a single daily OHLCV bar.
type PricePoint struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds normalized daily bars for one ticker, date-ascending
// with unique dates. It is never mutated after construction; downstream
// stages derive new series from it.
type PriceSeries struct {
	Ticker string
	Points []PricePoint
}

// Empty reports whether the series contains no bars.
func (s PriceSeries) Empty() bool { return len(s.Points) == 0 }

// Len returns the number of bars.
func (s PriceSeries) Len() int { return len(s.Points) }

// Closes extracts the close column.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}
