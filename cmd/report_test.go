package cmd

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/survival-sim/survival-sim/sim"
)

func calibratedEngine(t *testing.T) *sim.Calibration {
	t.Helper()
	cfg := sim.CalibrationConfig{
		Horizon:        50,
		PriorLow:       0.1,
		PriorHigh:      0.4,
		PriorCount:     12,
		ObservedK:      6,
		ObservedN:      20,
		PosteriorCount: 12,
		CredibleAlpha:  0.1,
		PopSize:        30,
		Seed:           42,
	}
	engine, err := sim.NewCalibration(cfg)
	require.NoError(t, err)
	require.NoError(t, engine.Calibrate())
	return engine
}

func TestWriteAuditCSV_RowsMatchAuditVectors(t *testing.T) {
	// GIVEN a completed calibration
	engine := calibratedEngine(t)
	ids, weights, samples, err := engine.Audit()
	require.NoError(t, err)

	// WHEN the audit table is exported
	path := filepath.Join(t.TempDir(), "audit.csv")
	WriteAuditCSV(engine, path)

	// THEN the CSV holds the header plus one row per prior sample
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(ids)+1)
	assert.Equal(t, auditHeader, rows[0])

	for i, row := range rows[1:] {
		require.Len(t, row, 3)
		assert.Equal(t, strconv.Itoa(ids[i]), row[0], "row %d cohort id", i)

		w, err := strconv.ParseFloat(row[1], 64)
		require.NoError(t, err)
		assert.Equal(t, weights[i], w, "row %d weight", i)

		s, err := strconv.ParseFloat(row[2], 64)
		require.NoError(t, err)
		assert.Equal(t, samples[i], s, "row %d prior sample", i)
	}
}
