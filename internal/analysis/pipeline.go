// Package analysis wires the fetch -> normalize -> indicators -> signal ->
// backtest -> summary pipeline. Every stage is a pure function; the only
// state held here is the optional memo cache.
package analysis

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"StockScope/internal/backtest"
	"StockScope/internal/indicator"
	"StockScope/internal/marketdata"
	"StockScope/internal/model"
	"StockScope/internal/normalizer"
	"StockScope/internal/strategy"
)

// ErrInvalidParameter marks a request rejected before any work was done.
var ErrInvalidParameter = errors.New("invalid parameter")

// Params identifies one analysis request.
type Params struct {
	Ticker         string
	Start          time.Time
	End            time.Time
	InitialCapital float64
	Windows        model.Windows
}

// Validate fails fast on parameters the pipeline cannot work with.
func (p Params) Validate() error {
	if strings.TrimSpace(p.Ticker) == "" {
		return fmt.Errorf("%w: ticker must not be empty", ErrInvalidParameter)
	}
	if p.Start.After(p.End) {
		return fmt.Errorf("%w: start date %s after end date %s",
			ErrInvalidParameter, p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"))
	}
	if p.InitialCapital <= 0 {
		return fmt.Errorf("%w: initial capital must be positive, got %v",
			ErrInvalidParameter, p.InitialCapital)
	}
	return nil
}

// Report is the full analysis output handed to the presentation layer.
// Empty indicators mean the upstream data was unavailable or too short
// for the requested windows; callers must branch on Empty().
type Report struct {
	Params      Params
	Indicators  model.IndicatorSeries
	Signals     model.SignalSeries
	Portfolio   model.PortfolioPath
	Summary     model.PerformanceSummary
	Metrics     model.KeyMetrics
	GeneratedAt time.Time
}

// Empty reports whether the pipeline produced no analyzable rows.
func (r *Report) Empty() bool { return r.Indicators.Empty() }

// Pipeline runs analyses against a fetcher, memoizing through an optional
// cache.
type Pipeline struct {
	fetcher marketdata.Fetcher
	cache   *Cache
}

// New creates a pipeline. cache may be nil to disable memoization.
func New(fetcher marketdata.Fetcher, cache *Cache) *Pipeline {
	return &Pipeline{fetcher: fetcher, cache: cache}
}

// Run executes the full pipeline for one ticker. A failed or empty fetch,
// or insufficient history for the indicator warmup, yields an empty
// report and no error. A series that trims down to fewer than 2 rows is
// a DegenerateSeries error.
func (p *Pipeline) Run(params Params) (*Report, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	ind, err := p.load(params)
	if err != nil {
		return nil, err
	}

	report := &Report{Params: params, Indicators: ind, GeneratedAt: time.Now()}
	if ind.Empty() {
		log.Printf("[WARN] no analyzable rows for %s between %s and %s",
			params.Ticker, params.Start.Format("2006-01-02"), params.End.Format("2006-01-02"))
		return report, nil
	}

	report.Signals = strategy.GenerateSignals(ind)

	report.Portfolio, err = p.simulate(ind, report.Signals, params.InitialCapital)
	if err != nil {
		return nil, err
	}

	report.Summary, err = backtest.Summarize(report.Portfolio, ind)
	if err != nil {
		return nil, err
	}
	report.Metrics, err = backtest.ComputeKeyMetrics(ind)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// load fetches, normalizes and computes indicators, memoized by
// (ticker, start, end, windows).
func (p *Pipeline) load(params Params) (model.IndicatorSeries, error) {
	key := loadKey{
		Ticker:  params.Ticker,
		Start:   params.Start.Format("2006-01-02"),
		End:     params.End.Format("2006-01-02"),
		Windows: params.Windows,
	}
	if p.cache != nil {
		if ind, ok := p.cache.GetLoad(key); ok {
			return ind, nil
		}
	}

	table, err := p.fetcher.FetchDailyBars(params.Ticker, params.Start, params.End)
	if err != nil {
		// Retrieval failures degrade to an empty series so callers only
		// have to branch on emptiness. Not cached: the next run should
		// try the supplier again.
		log.Printf("[WARN] fetch %s via %s: %v", params.Ticker, p.fetcher.Name(), err)
		return model.IndicatorSeries{Ticker: params.Ticker, Windows: params.Windows}, nil
	}

	prices := normalizer.Normalize(table)
	ind, err := indicator.Compute(prices, params.Windows)
	if err != nil {
		return model.IndicatorSeries{}, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	if p.cache != nil {
		p.cache.PutLoad(key, ind)
	}
	return ind, nil
}

// simulate runs the backtest, memoized by (series fingerprint, capital).
func (p *Pipeline) simulate(ind model.IndicatorSeries, signals model.SignalSeries, capital float64) (model.PortfolioPath, error) {
	key := backtestKey{Fingerprint: Fingerprint(ind), Capital: capital}
	if p.cache != nil {
		if path, ok := p.cache.GetBacktest(key); ok {
			return path, nil
		}
	}

	path, err := backtest.Simulate(ind, signals, capital)
	if err != nil {
		return model.PortfolioPath{}, err
	}
	if p.cache != nil {
		p.cache.PutBacktest(key, path)
	}
	return path, nil
}
