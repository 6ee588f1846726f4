package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRecorder_RecordRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	rec, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer rec.Close()

	run := &RunRecord{
		ID:                "0b6f7a1e-1111-2222-3333-444455556666",
		Timestamp:         time.Now(),
		Ticker:            "AAPL",
		StartDate:         "2020-01-01",
		EndDate:           "2023-01-01",
		InitialCapital:    10000,
		Rows:              412,
		FinalValue:        13250.5,
		StrategyReturnPct: 32.5,
		BuyHoldReturnPct:  41.2,
		LastClose:         145.43,
		LastSignal:        "LONG",
	}
	require.NoError(t, rec.RecordRun(run))
	require.NoError(t, rec.RecordRun(&RunRecord{ID: "another-id", Timestamp: time.Now(), Ticker: "MSFT"}))

	var count int
	require.NoError(t, rec.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count))
	assert.Equal(t, 2, count)

	var ticker, signal string
	var final float64
	require.NoError(t, rec.db.QueryRow(
		"SELECT ticker, last_signal, final_value FROM runs WHERE id = ?", run.ID,
	).Scan(&ticker, &signal, &final))
	assert.Equal(t, "AAPL", ticker)
	assert.Equal(t, "LONG", signal)
	assert.Equal(t, 13250.5, final)
}

func TestSQLiteRecorder_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	rec, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	require.NoError(t, rec.RecordRun(&RunRecord{ID: "id-1", Timestamp: time.Now(), Ticker: "AAPL"}))
	require.NoError(t, rec.Close())

	rec, err = NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer rec.Close()

	var count int
	require.NoError(t, rec.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count))
	assert.Equal(t, 1, count, "history survives reopen")
}
