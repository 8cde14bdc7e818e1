package sim

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExampleScenario_StudyCalibration verifies that the shipped scenario
// file loads, validates, and matches the study's parameters.
func TestExampleScenario_StudyCalibration(t *testing.T) {
	path := filepath.Join("..", "examples", "study-calibration.yaml")
	cfg, err := LoadCalibrationConfig(path)
	require.NoError(t, err, "failed to load study-calibration.yaml")

	assert.Equal(t, DefaultCalibrationConfig(), *cfg, "shipped scenario must match the built-in defaults")
}
