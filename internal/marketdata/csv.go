package marketdata

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// CSVFetcher reads daily bars from per-ticker CSV exports in a directory
// (TICKER.csv). It understands both plain single-header files and the
// two-row hierarchical headers produced by spreadsheet exports, where a
// second "Ticker,..." row qualifies each column.
type CSVFetcher struct {
	Dir string
}

// NewCSVFetcher creates a fetcher reading from the given directory.
func NewCSVFetcher(dir string) *CSVFetcher {
	return &CSVFetcher{Dir: dir}
}

func (f *CSVFetcher) Name() string { return "csv" }

// FetchDailyBars loads TICKER.csv and returns rows within [start, end].
func (f *CSVFetcher) FetchDailyBars(ticker string, start, end time.Time) (*RawTable, error) {
	path := filepath.Join(f.Dir, ticker+".csv")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return &RawTable{Ticker: ticker}, nil
	}

	labels := append([]string(nil), records[0]...)
	body := records[1:]

	// Merge extra header rows (rows before the first parseable date) into
	// hierarchical labels: "Close" + "AAPL" -> "Close|AAPL". A leading
	// "Date,,,," spacer row is dropped outright.
	for len(body) > 0 {
		first := strings.TrimSpace(body[0][0])
		if _, err := parseDate(first); err == nil {
			break
		}
		if !strings.EqualFold(first, "Date") {
			for i := 1; i < len(labels) && i < len(body[0]); i++ {
				if sub := strings.TrimSpace(body[0][i]); sub != "" {
					labels[i] = labels[i] + "|" + sub
				}
			}
		}
		body = body[1:]
	}

	table := &RawTable{Ticker: ticker, Columns: labels[1:]}
	for _, rec := range body {
		d, err := parseDate(strings.TrimSpace(rec[0]))
		if err != nil {
			continue
		}
		if d.Before(start) || d.After(end) {
			continue
		}
		cells := make([]float64, len(table.Columns))
		for i := range cells {
			cells[i] = math.NaN()
			if i+1 < len(rec) {
				if v, err := strconv.ParseFloat(strings.TrimSpace(rec[i+1]), 64); err == nil {
					cells[i] = v
				}
			}
		}
		table.Dates = append(table.Dates, d)
		table.Rows = append(table.Rows, cells)
	}

	sort.Sort(byDate{table})
	return table, nil
}

// FetchCloses loads each ticker's file and merges close columns on the
// union of dates.
func (f *CSVFetcher) FetchCloses(tickers []string, start, end time.Time) (*RawTable, error) {
	tables := make(map[string]*RawTable, len(tickers))
	var lastErr error
	for _, ticker := range tickers {
		t, err := f.FetchDailyBars(ticker, start, end)
		if err != nil {
			lastErr = err
			continue
		}
		tables[ticker] = t
	}
	if len(tables) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return mergeCloses(tables, tickers), nil
}

// byDate sorts a table's dates and rows together.
type byDate struct{ t *RawTable }

func (b byDate) Len() int           { return len(b.t.Dates) }
func (b byDate) Less(i, j int) bool { return b.t.Dates[i].Before(b.t.Dates[j]) }
func (b byDate) Swap(i, j int) {
	b.t.Dates[i], b.t.Dates[j] = b.t.Dates[j], b.t.Dates[i]
	b.t.Rows[i], b.t.Rows[j] = b.t.Rows[j], b.t.Rows[i]
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05-07:00", time.RFC3339} {
		if d, err := time.Parse(layout, s); err == nil {
			return d.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
