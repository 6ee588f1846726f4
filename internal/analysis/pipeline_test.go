package analysis

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockScope/internal/backtest"
	"StockScope/internal/marketdata"
	"StockScope/internal/model"
)

var (
	testStart = time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	testEnd   = time.Date(2023, 12, 29, 0, 0, 0, 0, time.UTC)
)

func testWindows() model.Windows {
	return model.Windows{SMAFast: 3, SMASlow: 5, RSIPeriod: 3, MACDFast: 3, MACDSlow: 5, MACDSignal: 3}
}

func testParams() Params {
	return Params{
		Ticker:         "TEST",
		Start:          testStart,
		End:            testEnd,
		InitialCapital: 10000,
		Windows:        testWindows(),
	}
}

func risingFetcher(n int) *marketdata.MockFetcher {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + 2*float64(i)
	}
	return &marketdata.MockFetcher{
		Tables: map[string]*marketdata.RawTable{
			"TEST": marketdata.GenerateTable("TEST", testStart, closes),
		},
	}
}

func TestRun_FullPipeline(t *testing.T) {
	p := New(risingFetcher(250), NewCache())

	rep, err := p.Run(testParams())
	require.NoError(t, err)
	require.False(t, rep.Empty())

	require.Equal(t, rep.Indicators.Len(), len(rep.Signals.Points))
	require.Equal(t, rep.Indicators.Len(), len(rep.Portfolio.Points))
	assert.Greater(t, rep.Summary.FinalValue, 0.0)
	assert.Greater(t, rep.Metrics.LastClose, rep.Metrics.PrevClose)
}

func TestRun_InvalidParameters(t *testing.T) {
	p := New(risingFetcher(250), nil)

	for name, mutate := range map[string]func(*Params){
		"empty ticker":     func(pr *Params) { pr.Ticker = "  " },
		"start after end":  func(pr *Params) { pr.Start, pr.End = pr.End.AddDate(0, 0, 1), pr.Start },
		"zero capital":     func(pr *Params) { pr.InitialCapital = 0 },
		"negative capital": func(pr *Params) { pr.InitialCapital = -5 },
	} {
		params := testParams()
		mutate(&params)
		_, err := p.Run(params)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrInvalidParameter), name)
	}
}

func TestRun_EmptyFetchIsNotAnError(t *testing.T) {
	p := New(&marketdata.MockFetcher{}, nil)

	rep, err := p.Run(testParams())
	require.NoError(t, err)
	assert.True(t, rep.Empty())
	assert.True(t, rep.Signals.Empty())
	assert.True(t, rep.Portfolio.Empty())
}

func TestRun_FetchFailureDegradesToEmpty(t *testing.T) {
	p := New(&marketdata.MockFetcher{Err: errors.New("connection refused")}, nil)

	rep, err := p.Run(testParams())
	require.NoError(t, err)
	assert.True(t, rep.Empty())
}

func TestRun_InsufficientHistoryIsEmpty(t *testing.T) {
	p := New(risingFetcher(4), nil)

	rep, err := p.Run(testParams())
	require.NoError(t, err)
	assert.True(t, rep.Empty())
}

func TestRun_DegenerateSeries(t *testing.T) {
	// Exactly one row survives the indicator warmup.
	p := New(risingFetcher(7), nil)

	_, err := p.Run(testParams())
	require.Error(t, err)
	assert.True(t, errors.Is(err, backtest.ErrDegenerateSeries))
}

func TestRun_CacheAvoidsRefetch(t *testing.T) {
	fetcher := risingFetcher(250)
	p := New(fetcher, NewCache())

	rep1, err := p.Run(testParams())
	require.NoError(t, err)
	rep2, err := p.Run(testParams())
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.Calls, "second run must hit the cache")
	assert.Equal(t, rep1.Portfolio, rep2.Portfolio)
	assert.Equal(t, rep1.Summary, rep2.Summary)
}

func TestRun_FetchErrorsAreNotCached(t *testing.T) {
	fetcher := &marketdata.MockFetcher{Err: errors.New("timeout")}
	p := New(fetcher, NewCache())

	_, err := p.Run(testParams())
	require.NoError(t, err)
	_, err = p.Run(testParams())
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.Calls, "failed fetches must be retried on the next run")
}

func TestFingerprint_Distinguishes(t *testing.T) {
	p := New(risingFetcher(250), nil)
	rep, err := p.Run(testParams())
	require.NoError(t, err)

	same := Fingerprint(rep.Indicators)
	assert.Equal(t, same, Fingerprint(rep.Indicators))

	other := rep.Indicators
	other.Ticker = "OTHER"
	assert.NotEqual(t, same, Fingerprint(other))
}
