package recorder

import (
	"time"

	"github.com/google/uuid"

	"StockScope/internal/analysis"
)

// RunRecord is one persisted analysis run.
type RunRecord struct {
	ID                string
	Timestamp         time.Time
	Ticker            string
	StartDate         string
	EndDate           string
	InitialCapital    float64
	Rows              int
	FinalValue        float64
	StrategyReturnPct float64
	BuyHoldReturnPct  float64
	LastClose         float64
	LastSignal        string
}

// NewRunRecord builds a record from a completed, non-empty report.
func NewRunRecord(r *analysis.Report) *RunRecord {
	rec := &RunRecord{
		ID:             uuid.NewString(),
		Timestamp:      r.GeneratedAt,
		Ticker:         r.Params.Ticker,
		StartDate:      r.Params.Start.Format("2006-01-02"),
		EndDate:        r.Params.End.Format("2006-01-02"),
		InitialCapital: r.Params.InitialCapital,
		Rows:           r.Indicators.Len(),
	}
	if r.Empty() {
		return rec
	}
	rec.FinalValue = r.Summary.FinalValue
	rec.StrategyReturnPct = r.Summary.StrategyReturnPct
	rec.BuyHoldReturnPct = r.Summary.BuyHoldReturnPct
	rec.LastClose = r.Metrics.LastClose
	rec.LastSignal = r.Signals.Points[len(r.Signals.Points)-1].Signal.String()
	return rec
}

// Recorder persists analysis runs for later inspection.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
