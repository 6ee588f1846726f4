// Package report renders analysis output as plain text for the CLI.
package report

import (
	"fmt"
	"sort"
	"strings"

	"StockScope/internal/analysis"
	"StockScope/internal/model"
)

// Options selects which indicator columns appear in the output. They
// never affect computation, only rendering.
type Options struct {
	ShowSMAFast bool
	ShowSMASlow bool
	ShowRSI     bool
	ShowMACD    bool
	TailRows    int // indicator rows to print, 0 = default
}

const defaultTailRows = 10

// FormatReport renders a full analysis report.
func FormatReport(r *analysis.Report, opts Options) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("=== %s | %s to %s ===\n",
		r.Params.Ticker,
		r.Params.Start.Format("2006-01-02"),
		r.Params.End.Format("2006-01-02")))

	if r.Empty() {
		b.WriteString("no data found for this ticker and date range\n")
		return b.String()
	}

	m := r.Metrics
	b.WriteString(fmt.Sprintf("last close: %.2f (%+.2f, %+.2f%%)\n", m.LastClose, m.Change, m.ChangePct))
	b.WriteString(fmt.Sprintf("range high: %.2f | range low: %.2f\n\n", m.RangeHigh, m.RangeLow))

	last := r.Signals.Points[len(r.Signals.Points)-1]
	b.WriteString(fmt.Sprintf("golden cross position: %s\n\n", last.Signal))

	s := r.Summary
	b.WriteString("--- Golden Cross backtest ---\n")
	b.WriteString(fmt.Sprintf("initial capital:    %.2f\n", r.Params.InitialCapital))
	b.WriteString(fmt.Sprintf("final value:        %.2f\n", s.FinalValue))
	b.WriteString(fmt.Sprintf("strategy return:    %+.2f%%\n", s.StrategyReturnPct))
	b.WriteString(fmt.Sprintf("buy & hold return:  %+.2f%%\n\n", s.BuyHoldReturnPct))

	writeTail(&b, r, opts)
	return b.String()
}

// writeTail prints the last rows of the indicator series with the
// selected columns.
func writeTail(b *strings.Builder, r *analysis.Report, opts Options) {
	rows := opts.TailRows
	if rows <= 0 {
		rows = defaultTailRows
	}
	if rows > r.Indicators.Len() {
		rows = r.Indicators.Len()
	}

	header := []string{"date", "close"}
	if opts.ShowSMAFast {
		header = append(header, fmt.Sprintf("sma%d", r.Indicators.Windows.SMAFast))
	}
	if opts.ShowSMASlow {
		header = append(header, fmt.Sprintf("sma%d", r.Indicators.Windows.SMASlow))
	}
	if opts.ShowRSI {
		header = append(header, "rsi")
	}
	if opts.ShowMACD {
		header = append(header, "macd", "signal", "hist")
	}
	header = append(header, "position", "total")
	b.WriteString(strings.Join(header, "\t") + "\n")

	start := r.Indicators.Len() - rows
	for i := start; i < r.Indicators.Len(); i++ {
		p := r.Indicators.Points[i]
		cols := []string{p.Date.Format("2006-01-02"), fmt.Sprintf("%.2f", p.Close)}
		if opts.ShowSMAFast {
			cols = append(cols, fmt.Sprintf("%.2f", p.SMAFast))
		}
		if opts.ShowSMASlow {
			cols = append(cols, fmt.Sprintf("%.2f", p.SMASlow))
		}
		if opts.ShowRSI {
			cols = append(cols, fmt.Sprintf("%.1f", p.RSI))
		}
		if opts.ShowMACD {
			cols = append(cols,
				fmt.Sprintf("%.3f", p.MACD),
				fmt.Sprintf("%.3f", p.MACDSignal),
				fmt.Sprintf("%.3f", p.MACDHist))
		}
		cols = append(cols,
			r.Signals.Points[i].Signal.String(),
			fmt.Sprintf("%.2f", r.Portfolio.Points[i].TotalValue))
		b.WriteString(strings.Join(cols, "\t") + "\n")
	}
}

// FormatCompare renders a relative performance overview: final indexed
// value per ticker, base 100 at each series start.
func FormatCompare(perf model.RelativePerformance) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("=== relative performance | %s to %s (base 100) ===\n",
		perf.Start.Format("2006-01-02"), perf.End.Format("2006-01-02")))

	if len(perf.Series) == 0 {
		b.WriteString("no data found for the requested tickers\n")
		return b.String()
	}

	tickers := make([]string, 0, len(perf.Series))
	for t := range perf.Series {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	for _, t := range tickers {
		series := perf.Series[t]
		final := series[len(series)-1]
		b.WriteString(fmt.Sprintf("%-8s %8.2f  (%+.2f%% over %d days)\n",
			t, final.Value, final.Value-100, len(series)))
	}
	return b.String()
}
