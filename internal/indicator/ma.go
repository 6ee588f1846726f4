package indicator

import "math"

// SMA computes the simple moving average over the given period. The result
// is aligned to the input: the first period-1 entries are NaN (undefined).
func SMA(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if period <= 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i < period-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(period)
	}
	return out
}

// EMA computes the exponential moving average with smoothing 2/(period+1),
// seeded by the simple average of the first period values. NaN-aligned like
// SMA. Leading NaN inputs are skipped so the EMA of a partially defined
// series (the MACD signal line) starts at its first defined value.
func EMA(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	if period <= 0 {
		return out
	}

	start := 0
	for start < len(values) && math.IsNaN(values[start]) {
		start++
	}
	if len(values)-start < period {
		return out
	}

	seed := 0.0
	for i := start; i < start+period; i++ {
		seed += values[i]
	}
	seed /= float64(period)
	out[start+period-1] = seed

	alpha := 2.0 / float64(period+1)
	for i := start + period; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}
