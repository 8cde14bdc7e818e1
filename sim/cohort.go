package sim

import "fmt"

// The calibration target study reports a 5-year outcome window. The model
// equates one simulation step with one year; the classification threshold
// below is derived from that equivalence rather than hard-coded, so the two
// units can only diverge by an explicit edit here.
const (
	StepsPerYear        = 1
	SurvivalWindowYears = 5

	survivalWindowSteps = SurvivalWindowYears * StepsPerYear
)

// Cohort simulates a population of patients sharing one mortality
// probability and aggregates their outcomes. Patients are mutually
// independent (each owns a private stream), so per-patient results do not
// depend on iteration order.
type Cohort struct {
	ID            int
	popSize       int
	mortalityProb float64

	patients []*Patient

	// Derived collections, populated by Simulate. Both only ever hold
	// entries for patients who died within the horizon.
	survivalTimes []int
	windowAlive   []int // 1 if the patient outlived the survival window, else 0
}

// NewCohort creates a cohort of popSize patients. Patient identities are
// derived as id*popSize + localIndex; callers running multiple cohorts
// together must keep these ranges disjoint (NewMultiCohort validates this).
func NewCohort(id, popSize int, mortalityProb float64) (*Cohort, error) {
	if popSize <= 0 {
		return nil, fmt.Errorf("%w: population size must be positive, got %d", ErrInvalidParameter, popSize)
	}
	c := &Cohort{
		ID:            id,
		popSize:       popSize,
		mortalityProb: mortalityProb,
		patients:      make([]*Patient, 0, popSize),
	}
	for i := 0; i < popSize; i++ {
		p, err := NewPatient(PatientID(id*popSize+i), mortalityProb)
		if err != nil {
			return nil, err
		}
		c.patients = append(c.patients, p)
	}
	return c, nil
}

// Simulate runs every patient for up to horizon steps, then records each
// dead patient's survival time and its survival-window indicator.
func (c *Cohort) Simulate(horizon int) error {
	if horizon <= 0 {
		return fmt.Errorf("%w: horizon must be positive, got %d", ErrInvalidParameter, horizon)
	}
	for _, p := range c.patients {
		p.Simulate(horizon)
		if t, ok := p.SurvivalTime(); ok {
			c.survivalTimes = append(c.survivalTimes, t)
			if t > survivalWindowSteps {
				c.windowAlive = append(c.windowAlive, 1)
			} else {
				c.windowAlive = append(c.windowAlive, 0)
			}
		}
	}
	return nil
}

// MeanSurvivalTime returns the arithmetic mean of the recorded survival
// times. A cohort with zero deaths has no survival times to average; that is
// surfaced as ErrEmptySample, never as NaN.
func (c *Cohort) MeanSurvivalTime() (float64, error) {
	if len(c.survivalTimes) == 0 {
		return 0, fmt.Errorf("%w: cohort %d has no recorded deaths", ErrEmptySample, c.ID)
	}
	sum := 0
	for _, t := range c.survivalTimes {
		sum += t
	}
	return float64(sum) / float64(len(c.survivalTimes)), nil
}

// FiveYearSurvivalFraction returns the fraction of dead patients whose
// survival time exceeded the survival window. Same empty-sample failure
// mode as MeanSurvivalTime.
func (c *Cohort) FiveYearSurvivalFraction() (float64, error) {
	if len(c.windowAlive) == 0 {
		return 0, fmt.Errorf("%w: cohort %d has no recorded deaths", ErrEmptySample, c.ID)
	}
	sum := 0
	for _, v := range c.windowAlive {
		sum += v
	}
	return float64(sum) / float64(len(c.windowAlive)), nil
}

// Deaths returns the number of patients that died during simulation.
func (c *Cohort) Deaths() int {
	return len(c.survivalTimes)
}

// PatientIDRange returns the half-open range [lo, hi) of global patient
// identities this cohort occupies.
func (c *Cohort) PatientIDRange() (lo, hi PatientID) {
	lo = PatientID(c.ID * c.popSize)
	return lo, lo + PatientID(c.popSize)
}
