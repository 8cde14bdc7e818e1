package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCohort_RejectsInvalidParameters(t *testing.T) {
	_, err := NewCohort(1, 0, 0.1)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewCohort(1, -5, 0.1)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewCohort(1, 10, 1.5)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestCohort_SimulateRejectsNonPositiveHorizon(t *testing.T) {
	cohort, err := NewCohort(1, 10, 0.1)
	require.NoError(t, err)

	assert.ErrorIs(t, cohort.Simulate(0), ErrInvalidParameter)
	assert.ErrorIs(t, cohort.Simulate(-3), ErrInvalidParameter)
}

func TestCohort_EmptySampleWhenNoDeaths(t *testing.T) {
	// GIVEN a cohort with zero mortality
	cohort, err := NewCohort(1, 50, 0)
	require.NoError(t, err)
	require.NoError(t, cohort.Simulate(100))

	// THEN both summary statistics fail with ErrEmptySample, never a number
	_, err = cohort.MeanSurvivalTime()
	assert.ErrorIs(t, err, ErrEmptySample)

	_, err = cohort.FiveYearSurvivalFraction()
	assert.ErrorIs(t, err, ErrEmptySample)

	assert.Equal(t, 0, cohort.Deaths())
}

func TestCohort_DerivedCollectionsBoundedByDeaths(t *testing.T) {
	cohort, err := NewCohort(3, 200, 0.2)
	require.NoError(t, err)
	require.NoError(t, cohort.Simulate(10))

	assert.LessOrEqual(t, cohort.Deaths(), 200)
	assert.Greater(t, cohort.Deaths(), 0, "0.2 mortality over 10 steps in 200 patients should kill someone")
}

func TestCohort_ScenarioFiveYearFractionStrictlyInUnitInterval(t *testing.T) {
	// GIVEN the reference scenario: cohort 2, 573 patients, 0.1 mortality
	cohort, err := NewCohort(2, 573, 0.1)
	require.NoError(t, err)

	// WHEN simulated for 40 steps
	require.NoError(t, cohort.Simulate(40))

	// THEN the five-year survival fraction is strictly between 0 and 1
	frac, err := cohort.FiveYearSurvivalFraction()
	require.NoError(t, err)
	assert.Greater(t, frac, 0.0)
	assert.Less(t, frac, 1.0)
}

func TestCohort_SimulateDeterministic(t *testing.T) {
	run := func() (float64, float64) {
		cohort, err := NewCohort(2, 573, 0.1)
		require.NoError(t, err)
		require.NoError(t, cohort.Simulate(40))
		mean, err := cohort.MeanSurvivalTime()
		require.NoError(t, err)
		frac, err := cohort.FiveYearSurvivalFraction()
		require.NoError(t, err)
		return mean, frac
	}

	mean1, frac1 := run()
	mean2, frac2 := run()
	assert.Equal(t, mean1, mean2)
	assert.Equal(t, frac1, frac2)
}

func TestCohort_MonotonicMortalityEffect(t *testing.T) {
	// Cohorts sharing one identity range reuse the same per-patient variate
	// sequences, so a higher mortality probability can only move each death
	// earlier. The death fraction is therefore monotone without tolerance.
	deathFraction := func(p float64) float64 {
		cohort, err := NewCohort(0, 2000, p)
		require.NoError(t, err)
		require.NoError(t, cohort.Simulate(10))
		return float64(cohort.Deaths()) / 2000
	}

	probs := []float64{0.05, 0.1, 0.2, 0.4}
	prev := deathFraction(probs[0])
	for _, p := range probs[1:] {
		cur := deathFraction(p)
		assert.GreaterOrEqual(t, cur, prev, "death fraction decreased when mortality rose to %f", p)
		prev = cur
	}
}

func TestCohort_PatientIDRange(t *testing.T) {
	cohort, err := NewCohort(2, 573, 0.1)
	require.NoError(t, err)

	lo, hi := cohort.PatientIDRange()
	assert.Equal(t, PatientID(1146), lo)
	assert.Equal(t, PatientID(1719), hi)
}
