package model

import "time"

// Signal is the strategy position state for one date.
type Signal int

const (
	Flat Signal = 0
	Long Signal = 1
)

func (s Signal) String() string {
	if s == Long {
		return "LONG"
	}
	return "FLAT"
}

// SignalPoint carries the position state and the position change for one
// date. Change is signal(t) - signal(t-1) with an implicit FLAT state
// before the first date, so the first row's change equals its signal.
type SignalPoint struct {
	Date   time.Time
	Signal Signal
	Change float64
}

// SignalSeries is aligned 1:1 with the IndicatorSeries it was derived from.
type SignalSeries struct {
	Ticker string
	Points []SignalPoint
}

// Empty reports whether the series contains no rows.
func (s SignalSeries) Empty() bool { return len(s.Points) == 0 }
