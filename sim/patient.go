// Defines the Patient struct that models an individual patient's survival
// process as a per-step Bernoulli trial against a private random stream.

package sim

import (
	"fmt"
	"math/rand"
)

// HealthState represents the health status of a patient.
type HealthState string

const (
	Alive HealthState = "alive"
	Dead  HealthState = "dead"
)

// Patient models a single patient's survival over discrete time steps.
// Each patient owns an isolated random stream keyed by its identity, so a
// patient's trajectory depends only on (id, mortality probability, horizon)
// and never on simulation order or on other patients.
type Patient struct {
	ID PatientID

	mortalityProb float64
	state         HealthState
	survivalTime  int // valid only while state == Dead; end-of-period step index
	elapsed       int // steps already consumed by prior Simulate calls
	rng           *rand.Rand
}

// NewPatient creates a patient in the Alive state with its private stream.
func NewPatient(id PatientID, mortalityProb float64) (*Patient, error) {
	if mortalityProb < 0 || mortalityProb > 1 {
		return nil, fmt.Errorf("%w: mortality probability must be in [0,1], got %f", ErrInvalidParameter, mortalityProb)
	}
	return &Patient{
		ID:            id,
		mortalityProb: mortalityProb,
		state:         Alive,
		rng:           StreamForPatient(id),
	}, nil
}

// Simulate advances the patient through up to horizon time steps. At each
// step, while the patient is Alive, one uniform variate is drawn from the
// patient's stream; a draw below the mortality probability kills the patient
// at the end of the period (survival time = step index + 1). Once the
// patient is Dead or the horizon has been consumed, further calls are no-ops.
func (p *Patient) Simulate(horizon int) {
	for p.state == Alive && p.elapsed < horizon {
		if p.rng.Float64() < p.mortalityProb {
			p.state = Dead
			p.survivalTime = p.elapsed + 1
		}
		p.elapsed++
	}
}

// State returns the patient's current health state.
func (p *Patient) State() HealthState {
	return p.state
}

// SurvivalTime returns the recorded survival time and true if the patient
// died during simulation. While the patient is Alive (right-censored) it
// returns (0, false): there is no survival time to report.
func (p *Patient) SurvivalTime() (int, bool) {
	if p.state != Dead {
		return 0, false
	}
	return p.survivalTime, true
}

// String returns a human-readable representation of the patient.
func (p *Patient) String() string {
	if t, ok := p.SurvivalTime(); ok {
		return fmt.Sprintf("Patient: (ID: %d, State: %s, SurvivalTime: %d)", p.ID, p.state, t)
	}
	return fmt.Sprintf("Patient: (ID: %d, State: %s)", p.ID, p.state)
}
