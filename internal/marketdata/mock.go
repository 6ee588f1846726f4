package marketdata

import "time"

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Tables map[string]*RawTable
	Err    error
	Calls  int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(ticker string, _, _ time.Time) (*RawTable, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if t, ok := m.Tables[ticker]; ok {
		return t, nil
	}
	return &RawTable{Ticker: ticker}, nil
}

func (m *MockFetcher) FetchCloses(tickers []string, start, end time.Time) (*RawTable, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	tables := make(map[string]*RawTable, len(tickers))
	for _, ticker := range tickers {
		t, err := m.FetchDailyBars(ticker, start, end)
		if err != nil {
			continue
		}
		tables[ticker] = t
	}
	return mergeCloses(tables, tickers), nil
}

// GenerateTable builds a synthetic OHLCV table with the given closes,
// one weekday-agnostic day apart starting at start.
func GenerateTable(ticker string, start time.Time, closes []float64) *RawTable {
	table := &RawTable{
		Ticker:  ticker,
		Columns: []string{"Open", "High", "Low", "Close", "Volume"},
	}
	for i, c := range closes {
		table.Dates = append(table.Dates, start.AddDate(0, 0, i))
		table.Rows = append(table.Rows, []float64{c * 0.999, c * 1.005, c * 0.995, c, 1000000})
	}
	return table
}
