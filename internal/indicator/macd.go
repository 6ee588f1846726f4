package indicator

// MACD computes the MACD line (EMA(fast) - EMA(slow)), the signal line
// (EMA(signalPeriod) of the MACD line) and the histogram (line - signal).
// All three slices are aligned to the input with NaN where undefined.
func MACD(closes []float64, fast, slow, signalPeriod int) (line, signal, hist []float64) {
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)

	line = make([]float64, len(closes))
	for i := range closes {
		line[i] = emaFast[i] - emaSlow[i] // NaN where either EMA is undefined
	}

	signal = EMA(line, signalPeriod)

	hist = make([]float64, len(closes))
	for i := range closes {
		hist[i] = line[i] - signal[i]
	}
	return line, signal, hist
}
