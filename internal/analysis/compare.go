package analysis

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"StockScope/internal/marketdata"
	"StockScope/internal/model"
)

// Compare fetches close prices for several tickers and rebases each
// series to 100 at its first usable close, producing a relative
// performance overview. Tickers without data are omitted from the
// result; a failed fetch yields an empty result, not an error.
func (p *Pipeline) Compare(tickers []string, start, end time.Time) (model.RelativePerformance, error) {
	out := model.RelativePerformance{Start: start, End: end, Series: map[string][]model.RelativePoint{}}

	if len(tickers) == 0 {
		return out, fmt.Errorf("%w: at least one ticker required", ErrInvalidParameter)
	}
	for _, t := range tickers {
		if strings.TrimSpace(t) == "" {
			return out, fmt.Errorf("%w: ticker must not be empty", ErrInvalidParameter)
		}
	}
	if start.After(end) {
		return out, fmt.Errorf("%w: start date after end date", ErrInvalidParameter)
	}

	table, err := p.fetcher.FetchCloses(tickers, start, end)
	if err != nil {
		log.Printf("[WARN] fetch closes via %s: %v", p.fetcher.Name(), err)
		return out, nil
	}
	if table.Empty() {
		return out, nil
	}

	for col, label := range table.Columns {
		field, ticker := marketdata.SplitLabel(label)
		if field != "Close" || ticker == "" {
			continue
		}
		var base float64
		var series []model.RelativePoint
		for row := range table.Rows {
			c := table.Rows[row][col]
			if math.IsNaN(c) || c <= 0 {
				continue
			}
			if base == 0 {
				base = c
			}
			series = append(series, model.RelativePoint{
				Date:  table.Dates[row],
				Value: c / base * 100,
			})
		}
		if len(series) > 0 {
			out.Series[ticker] = series
		}
	}
	return out, nil
}
