package marketdata

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"
)

// YahooFetcher retrieves daily bars from the Yahoo Finance chart API.
type YahooFetcher struct {
	Client  *http.Client
	BaseURL string
}

// NewYahooFetcher creates a new Yahoo Finance fetcher. proxyURL may be
// empty.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: "https://query1.finance.yahoo.com",
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// toFloat converts a JSON cell to float64; null cells become NaN so the
// normalizer can drop the row.
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return math.NaN()
	}
}

// FetchDailyBars fetches one bar per trading day in [start, end] inclusive.
func (f *YahooFetcher) FetchDailyBars(ticker string, start, end time.Time) (*RawTable, error) {
	// period2 is exclusive on the Yahoo side; push it one day out to make
	// the requested range inclusive.
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		f.BaseURL, url.PathEscape(ticker), start.Unix(), end.AddDate(0, 0, 1).Unix())

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return &RawTable{Ticker: ticker}, nil // no trading days in range
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return &RawTable{Ticker: ticker}, nil
	}
	quote := result.Indicators.Quote[0]

	type rawRow struct {
		ts    time.Time
		cells []float64
	}
	rows := make([]rawRow, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		rows = append(rows, rawRow{
			ts: time.Unix(ts, 0).UTC(),
			cells: []float64{
				toFloat(cell(quote.Open, i)),
				toFloat(cell(quote.High, i)),
				toFloat(cell(quote.Low, i)),
				toFloat(cell(quote.Close, i)),
				toFloat(cell(quote.Volume, i)),
			},
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ts.Before(rows[j].ts) })

	table := &RawTable{
		Ticker:  ticker,
		Columns: []string{"Open", "High", "Low", "Close", "Volume"},
	}
	for _, r := range rows {
		table.Dates = append(table.Dates, r.ts)
		table.Rows = append(table.Rows, r.cells)
	}
	return table, nil
}

// FetchCloses fetches close prices for several tickers and merges them on
// the union of trading days. Tickers that fail entirely are left out of
// the result.
func (f *YahooFetcher) FetchCloses(tickers []string, start, end time.Time) (*RawTable, error) {
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

func cell(col []interface{}, i int) interface{} {
	if i < len(col) {
		return col[i]
	}
	return nil
}
