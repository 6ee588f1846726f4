package analysis

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sync"

	"StockScope/internal/model"
)

// loadKey identifies a memoized load (fetch + normalize + indicators).
type loadKey struct {
	Ticker  string
	Start   string
	End     string
	Windows model.Windows
}

// backtestKey identifies a memoized simulation.
type backtestKey struct {
	Fingerprint uint64
	Capital     float64
}

// Cache memoizes pipeline stages. Entries are immutable once stored and
// are never invalidated; key equality is the only lookup rule. Safe for
// concurrent readers, though the pipeline itself is synchronous.
type Cache struct {
	mu        sync.RWMutex
	loads     map[loadKey]model.IndicatorSeries
	backtests map[backtestKey]model.PortfolioPath
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		loads:     make(map[loadKey]model.IndicatorSeries),
		backtests: make(map[backtestKey]model.PortfolioPath),
	}
}

func (c *Cache) GetLoad(key loadKey) (model.IndicatorSeries, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ind, ok := c.loads[key]
	return ind, ok
}

func (c *Cache) PutLoad(key loadKey, ind model.IndicatorSeries) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loads[key] = ind
}

func (c *Cache) GetBacktest(key backtestKey) (model.PortfolioPath, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	path, ok := c.backtests[key]
	return path, ok
}

func (c *Cache) PutBacktest(key backtestKey, path model.PortfolioPath) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.backtests[key] = path
}

// Fingerprint hashes the identity-relevant parts of an indicator series:
// ticker, dates and closes. Two series with equal fingerprints simulate
// identically for a given capital.
func Fingerprint(ind model.IndicatorSeries) uint64 {
	h := fnv.New64a()
	var buf [8]byte

	h.Write([]byte(ind.Ticker))
	binary.LittleEndian.PutUint64(buf[:], uint64(ind.Len()))
	h.Write(buf[:])
	for _, p := range ind.Points {
		binary.LittleEndian.PutUint64(buf[:], uint64(p.Date.Unix()))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(p.Close))
		h.Write(buf[:])
	}
	return h.Sum64()
}
