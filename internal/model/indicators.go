package model

// Windows holds the indicator window lengths.
type Windows struct {
	SMAFast    int `yaml:"sma_fast"`
	SMASlow    int `yaml:"sma_slow"`
	RSIPeriod  int `yaml:"rsi_period"`
	MACDFast   int `yaml:"macd_fast"`
	MACDSlow   int `yaml:"macd_slow"`
	MACDSignal int `yaml:"macd_signal"`
}

// DefaultWindows returns the standard Golden Cross parameter set.
func DefaultWindows() Windows {
	return Windows{
		SMAFast:    50,
		SMASlow:    200,
		RSIPeriod:  14,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
	}
}

// IndicatorPoint extends a price bar with derived indicator values.
// Every field is defined; undefined rows are trimmed before an
// IndicatorSeries is built.
type IndicatorPoint struct {
	PricePoint
	SMAFast    float64
	SMASlow    float64
	RSI        float64
	MACD       float64
	MACDSignal float64
	MACDHist   float64
}

// IndicatorSeries is a PriceSeries suffix on which all requested
// indicators are defined.
type IndicatorSeries struct {
	Ticker  string
	Windows Windows
	Points  []IndicatorPoint
}

// Empty reports whether the series contains no rows.
func (s IndicatorSeries) Empty() bool { return len(s.Points) == 0 }

// Len returns the number of rows.
func (s IndicatorSeries) Len() int { return len(s.Points) }

// Closes extracts the close column.
func (s IndicatorSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}
