package backtest

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockScope/internal/indicator"
	"StockScope/internal/model"
	"StockScope/internal/strategy"
)

func testWindows() model.Windows {
	return model.Windows{SMAFast: 3, SMASlow: 5, RSIPeriod: 3, MACDFast: 3, MACDSlow: 5, MACDSignal: 3}
}

func priceSeries(closes []float64) model.PriceSeries {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	s := model.PriceSeries{Ticker: "TEST"}
	for i, c := range closes {
		s.Points = append(s.Points, model.PricePoint{
			Date: start.AddDate(0, 0, i), Open: c, High: c * 1.01, Low: c * 0.99, Close: c, Volume: 1000,
		})
	}
	return s
}

func computed(t *testing.T, closes []float64) (model.IndicatorSeries, model.SignalSeries) {
	t.Helper()
	ind, err := indicator.Compute(priceSeries(closes), testWindows())
	require.NoError(t, err)
	return ind, strategy.GenerateSignals(ind)
}

func risingCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + 2*float64(i)
	}
	return closes
}

func TestSimulate_ValueIdentities(t *testing.T) {
	ind, sig := computed(t, risingCloses(250))
	path, err := Simulate(ind, sig, 10000)
	require.NoError(t, err)

	require.Equal(t, ind.Len(), len(path.Points), "one path entry per indicator row")
	for i, p := range path.Points {
		assert.Equal(t, p.CashValue+p.Shares*ind.Points[i].Close, p.TotalValue, "row %d", i)
		assert.Equal(t, p.Shares*ind.Points[i].Close, p.HoldingsValue, "row %d", i)
		assert.Equal(t, ind.Points[i].Date, p.Date, "row %d", i)
	}
}

func TestSimulate_RisingMarketGoesLongOnce(t *testing.T) {
	ind, sig := computed(t, risingCloses(250))
	require.False(t, ind.Empty())

	buys := 0
	for _, p := range sig.Points {
		require.Equal(t, model.Long, p.Signal, "fast SMA should lead slow SMA in a rising market")
		if p.Change == 1 {
			buys++
		}
	}
	require.Equal(t, 1, buys, "exactly one FLAT->LONG transition")

	path, err := Simulate(ind, sig, 10000)
	require.NoError(t, err)
	summary, err := Summarize(path, ind)
	require.NoError(t, err)
	assert.Greater(t, summary.FinalValue, 10000.0, "long position in a rising market must not lose money")
	assert.Greater(t, summary.StrategyReturnPct, 0.0)
	assert.Greater(t, summary.BuyHoldReturnPct, 0.0)
}

func TestSimulate_FlatMarketStaysFlat(t *testing.T) {
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 100
	}
	ind, sig := computed(t, closes)
	require.False(t, ind.Empty())

	for _, p := range sig.Points {
		require.Equal(t, model.Flat, p.Signal, "equal SMAs must yield FLAT")
	}

	path, err := Simulate(ind, sig, 10000)
	require.NoError(t, err)
	for i, p := range path.Points {
		assert.Equal(t, 10000.0, p.TotalValue, "row %d", i)
		assert.Equal(t, 0.0, p.Shares, "row %d", i)
	}
}

func TestSimulate_EmptyPropagation(t *testing.T) {
	ind, sig := computed(t, []float64{100, 101}) // too short for any indicator
	require.True(t, ind.Empty())

	path, err := Simulate(ind, sig, 10000)
	require.NoError(t, err)
	assert.True(t, path.Empty())
}

func TestSimulate_InvalidCapital(t *testing.T) {
	ind, sig := computed(t, risingCloses(20))
	_, err := Simulate(ind, sig, 0)
	assert.Error(t, err)
	_, err = Simulate(ind, sig, -100)
	assert.Error(t, err)
}

func TestSimulate_Idempotent(t *testing.T) {
	ind, sig := computed(t, risingCloses(250))

	path1, err := Simulate(ind, sig, 10000)
	require.NoError(t, err)
	path2, err := Simulate(ind, sig, 10000)
	require.NoError(t, err)
	assert.Equal(t, path1, path2, "identical inputs must yield bit-identical paths")

	sum1, err := Summarize(path1, ind)
	require.NoError(t, err)
	sum2, err := Summarize(path2, ind)
	require.NoError(t, err)
	assert.Equal(t, sum1, sum2)
}

func TestSummarize_DegenerateSeries(t *testing.T) {
	// Exactly warmup+1 rows: one row survives trimming.
	ind, sig := computed(t, risingCloses(7))
	require.Equal(t, 1, ind.Len())

	path, err := Simulate(ind, sig, 10000)
	require.NoError(t, err)

	_, err = Summarize(path, ind)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDegenerateSeries))

	_, err = ComputeKeyMetrics(ind)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDegenerateSeries))
}

func TestSummarize_Returns(t *testing.T) {
	ind, sig := computed(t, risingCloses(100))
	path, err := Simulate(ind, sig, 10000)
	require.NoError(t, err)

	summary, err := Summarize(path, ind)
	require.NoError(t, err)

	last := path.Points[len(path.Points)-1]
	assert.Equal(t, last.TotalValue, summary.FinalValue)
	assert.InDelta(t, (summary.FinalValue-10000)/10000*100, summary.StrategyReturnPct, 1e-9)

	first, final := ind.Points[0].Close, ind.Points[ind.Len()-1].Close
	assert.InDelta(t, (final/first-1)*100, summary.BuyHoldReturnPct, 1e-9)
}

func TestComputeKeyMetrics(t *testing.T) {
	ind, _ := computed(t, risingCloses(20))
	m, err := ComputeKeyMetrics(ind)
	require.NoError(t, err)

	last := ind.Points[ind.Len()-1]
	prev := ind.Points[ind.Len()-2]
	assert.Equal(t, last.Close, m.LastClose)
	assert.Equal(t, last.Close-prev.Close, m.Change)
	assert.InDelta(t, m.Change/prev.Close*100, m.ChangePct, 1e-9)
	assert.Equal(t, last.High, m.RangeHigh, "rising series peaks at the last high")
	assert.Equal(t, ind.Points[0].Low, m.RangeLow)
}
