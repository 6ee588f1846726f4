package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockScope/internal/analysis"
	"StockScope/internal/backtest"
	"StockScope/internal/indicator"
	"StockScope/internal/model"
	"StockScope/internal/strategy"
)

func sampleReport(t *testing.T) *analysis.Report {
	t.Helper()
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	prices := model.PriceSeries{Ticker: "TEST"}
	for i := 0; i < 60; i++ {
		c := 100 + 2*float64(i)
		prices.Points = append(prices.Points, model.PricePoint{
			Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1,
		})
	}
	w := model.Windows{SMAFast: 3, SMASlow: 5, RSIPeriod: 3, MACDFast: 3, MACDSlow: 5, MACDSignal: 3}

	ind, err := indicator.Compute(prices, w)
	require.NoError(t, err)
	sig := strategy.GenerateSignals(ind)
	path, err := backtest.Simulate(ind, sig, 10000)
	require.NoError(t, err)
	summary, err := backtest.Summarize(path, ind)
	require.NoError(t, err)
	metrics, err := backtest.ComputeKeyMetrics(ind)
	require.NoError(t, err)

	return &analysis.Report{
		Params: analysis.Params{
			Ticker: "TEST", Start: start, End: start.AddDate(0, 0, 59),
			InitialCapital: 10000, Windows: w,
		},
		Indicators:  ind,
		Signals:     sig,
		Portfolio:   path,
		Summary:     summary,
		Metrics:     metrics,
		GeneratedAt: time.Now(),
	}
}

func TestFormatReport_TogglesSelectColumns(t *testing.T) {
	rep := sampleReport(t)

	all := FormatReport(rep, Options{ShowSMAFast: true, ShowSMASlow: true, ShowRSI: true, ShowMACD: true})
	assert.Contains(t, all, "sma3")
	assert.Contains(t, all, "sma5")
	assert.Contains(t, all, "rsi")
	assert.Contains(t, all, "macd")
	assert.Contains(t, all, "final value")

	bare := FormatReport(rep, Options{})
	assert.NotContains(t, bare, "sma3")
	assert.NotContains(t, bare, "rsi")
	assert.NotContains(t, bare, "macd")
	assert.Contains(t, bare, "final value", "toggles never hide the backtest summary")
}

func TestFormatReport_TailRows(t *testing.T) {
	rep := sampleReport(t)
	out := FormatReport(rep, Options{TailRows: 3})
	assert.Equal(t, 3, strings.Count(out, "\tLONG"), "one data line per requested tail row")
}

func TestFormatReport_Empty(t *testing.T) {
	rep := &analysis.Report{Params: analysis.Params{
		Ticker: "NOPE",
		Start:  time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
	}}
	out := FormatReport(rep, Options{})
	assert.Contains(t, out, "no data found")
}

func TestFormatCompare(t *testing.T) {
	perf := model.RelativePerformance{
		Start: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		Series: map[string][]model.RelativePoint{
			"AAA": {{Value: 100}, {Value: 120}},
			"BBB": {{Value: 100}, {Value: 90}},
		},
	}
	out := FormatCompare(perf)
	assert.Contains(t, out, "AAA")
	assert.Contains(t, out, "120.00")
	assert.Contains(t, out, "-10.00%")

	empty := FormatCompare(model.RelativePerformance{Series: map[string][]model.RelativePoint{}})
	assert.Contains(t, empty, "no data found")
}
