package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPatient_RejectsInvalidProbability(t *testing.T) {
	for _, p := range []float64{-0.1, 1.1, 2} {
		_, err := NewPatient(1, p)
		assert.ErrorIs(t, err, ErrInvalidParameter, "mortality prob %f", p)
	}
}

func TestNewPatient_AcceptsBoundaryProbabilities(t *testing.T) {
	for _, p := range []float64{0, 1} {
		patient, err := NewPatient(1, p)
		require.NoError(t, err)
		assert.Equal(t, Alive, patient.State())
	}
}

func TestPatient_SimulateDeterministic(t *testing.T) {
	// GIVEN two patients with the same (id, mortality prob, horizon)
	p1, err := NewPatient(99, 0.3)
	require.NoError(t, err)
	p2, err := NewPatient(99, 0.3)
	require.NoError(t, err)

	// WHEN both are simulated
	p1.Simulate(50)
	p2.Simulate(50)

	// THEN their outcomes are identical
	t1, ok1 := p1.SurvivalTime()
	t2, ok2 := p2.SurvivalTime()
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, t1, t2)
}

func TestPatient_SimulateIndependentOfOtherPatients(t *testing.T) {
	// GIVEN a patient simulated alone
	alone, err := NewPatient(40, 0.2)
	require.NoError(t, err)
	alone.Simulate(30)
	tAlone, okAlone := alone.SurvivalTime()

	// WHEN the same patient is simulated after many unrelated patients
	for id := PatientID(0); id < 20; id++ {
		other, err := NewPatient(id, 0.5)
		require.NoError(t, err)
		other.Simulate(30)
	}
	crowded, err := NewPatient(40, 0.2)
	require.NoError(t, err)
	crowded.Simulate(30)
	tCrowded, okCrowded := crowded.SurvivalTime()

	// THEN the outcome is unchanged
	assert.Equal(t, okAlone, okCrowded)
	assert.Equal(t, tAlone, tCrowded)
}

func TestPatient_SurvivalTimeBounds(t *testing.T) {
	// Every recorded survival time lies in [1, horizon].
	const horizon = 20
	for id := PatientID(0); id < 200; id++ {
		p, err := NewPatient(id, 0.15)
		require.NoError(t, err)
		p.Simulate(horizon)
		if st, ok := p.SurvivalTime(); ok {
			assert.GreaterOrEqual(t, st, 1, "patient %d", id)
			assert.LessOrEqual(t, st, horizon, "patient %d", id)
		}
	}
}

func TestPatient_ZeroMortalityNeverDies(t *testing.T) {
	p, err := NewPatient(5, 0)
	require.NoError(t, err)
	p.Simulate(1000)

	assert.Equal(t, Alive, p.State())
	_, ok := p.SurvivalTime()
	assert.False(t, ok, "right-censored patient must report no survival time")
}

func TestPatient_CertainMortalityDiesFirstStep(t *testing.T) {
	p, err := NewPatient(5, 1)
	require.NoError(t, err)
	p.Simulate(10)

	st, ok := p.SurvivalTime()
	require.True(t, ok)
	assert.Equal(t, 1, st, "death at the end of the first period")
}

func TestPatient_SimulateIdempotentAfterDeath(t *testing.T) {
	p, err := NewPatient(5, 1)
	require.NoError(t, err)
	p.Simulate(10)
	first, _ := p.SurvivalTime()

	// Repeated calls leave the recorded time untouched.
	p.Simulate(10)
	p.Simulate(10)
	again, ok := p.SurvivalTime()
	require.True(t, ok)
	assert.Equal(t, first, again)
}

func TestPatient_SimulateIdempotentWhenCensored(t *testing.T) {
	// GIVEN a patient that survives its full horizon
	p, err := NewPatient(5, 0)
	require.NoError(t, err)
	p.Simulate(25)

	// WHEN simulated again with the same horizon
	p.Simulate(25)

	// THEN no further steps are consumed and the patient stays censored
	assert.Equal(t, Alive, p.State())
}
