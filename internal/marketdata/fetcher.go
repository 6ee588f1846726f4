package marketdata

import (
	"math"
	"sort"
	"strings"
	"time"
)

// RawTable is the untyped supplier output for a date range: one row of
// float cells per date, labeled by column. Labels may be hierarchical
// ("Close|AAPL"); only the first level identifies the field. Missing
// cells are NaN. The table carries no guarantees beyond row/date
// alignment; validation belongs to the normalizer.
type RawTable struct {
	Ticker  string
	Columns []string
	Dates   []time.Time
	Rows    [][]float64
}

// Empty reports whether the table has no rows.
func (t *RawTable) Empty() bool { return t == nil || len(t.Rows) == 0 }

// SplitLabel splits a possibly hierarchical column label into its field
// name and sub-label ("Close|AAPL" -> "Close", "AAPL").
func SplitLabel(label string) (field, sub string) {
	field, sub, _ = strings.Cut(label, "|")
	return field, sub
}

// Fetcher supplies raw daily OHLCV tables. Implementations own their
// transport concerns (timeouts, retries); the pipeline treats any failure
// as an empty result.
type Fetcher interface {
	// FetchDailyBars returns one row per trading day in [start, end].
	FetchDailyBars(ticker string, start, end time.Time) (*RawTable, error)
	// FetchCloses returns a table with one "Close|TICKER" column per
	// requested ticker, rows keyed by the union of their trading days.
	FetchCloses(tickers []string, start, end time.Time) (*RawTable, error)
	Name() string
}

// mergeCloses builds a multi-ticker close table from per-ticker tables,
// aligning rows on the union of dates. Cells without a close are NaN.
func mergeCloses(tables map[string]*RawTable, tickers []string) *RawTable {
	type key = string // date formatted as 2006-01-02
	closesByTicker := make(map[string]map[key]float64, len(tickers))
	dateSet := make(map[key]time.Time)

	for _, ticker := range tickers {
		t := tables[ticker]
		if t.Empty() {
			continue
		}
		closeIdx := -1
		for i, label := range t.Columns {
			if field, _ := SplitLabel(label); field == "Close" {
				closeIdx = i
				break
			}
		}
		if closeIdx < 0 {
			continue
		}
		byDate := make(map[key]float64, len(t.Rows))
		for i, d := range t.Dates {
			k := d.Format("2006-01-02")
			byDate[k] = t.Rows[i][closeIdx]
			dateSet[k] = d
		}
		closesByTicker[ticker] = byDate
	}

	keys := make([]string, 0, len(dateSet))
	for k := range dateSet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	merged := &RawTable{}
	for _, ticker := range tickers {
		if _, ok := closesByTicker[ticker]; ok {
			merged.Columns = append(merged.Columns, "Close|"+ticker)
		}
	}
	for _, k := range keys {
		row := make([]float64, 0, len(merged.Columns))
		for _, label := range merged.Columns {
			_, ticker := SplitLabel(label)
			if v, ok := closesByTicker[ticker][k]; ok {
				row = append(row, v)
			} else {
				row = append(row, math.NaN())
			}
		}
		merged.Dates = append(merged.Dates, dateSet[k])
		merged.Rows = append(merged.Rows, row)
	}
	return merged
}
