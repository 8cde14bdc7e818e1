package sim

import "fmt"

// MultiCohort runs an ensemble of independently parameterized cohorts, one
// per (id, population size, mortality probability) tuple, and collects each
// cohort's summary statistics index-aligned with the parameter vectors.
//
// Cohorts occupy disjoint patient-identity ranges and every patient owns a
// private stream, so the ensemble is fully reproducible given the same
// parameter vectors and horizon, and no member's result depends on the order
// cohorts are run in.
type MultiCohort struct {
	ids            []int
	popSizes       []int
	mortalityProbs []float64

	simulated         bool
	meanSurvivalTimes []float64
	survivalFractions []float64
}

// NewMultiCohort creates an ensemble from three index-aligned parameter
// sequences of equal length. The patient-identity ranges implied by each
// (id, popSize) pair must be pairwise disjoint; overlapping ranges would
// share random streams across cohorts and silently correlate their results,
// so they are rejected at construction.
func NewMultiCohort(ids, popSizes []int, mortalityProbs []float64) (*MultiCohort, error) {
	if len(ids) != len(popSizes) || len(ids) != len(mortalityProbs) {
		return nil, fmt.Errorf("%w: parameter sequences must have equal length, got ids=%d popSizes=%d mortalityProbs=%d",
			ErrIndexOutOfRange, len(ids), len(popSizes), len(mortalityProbs))
	}
	for i := range ids {
		if popSizes[i] <= 0 {
			return nil, fmt.Errorf("%w: population size must be positive, got %d for cohort %d", ErrInvalidParameter, popSizes[i], ids[i])
		}
		lo := int64(ids[i]) * int64(popSizes[i])
		hi := lo + int64(popSizes[i])
		for j := 0; j < i; j++ {
			jlo := int64(ids[j]) * int64(popSizes[j])
			jhi := jlo + int64(popSizes[j])
			if lo < jhi && jlo < hi {
				return nil, fmt.Errorf("%w: cohorts %d and %d have overlapping patient identity ranges [%d,%d) and [%d,%d)",
					ErrInvalidParameter, ids[j], ids[i], jlo, jhi, lo, hi)
			}
		}
	}
	return &MultiCohort{
		ids:            ids,
		popSizes:       popSizes,
		mortalityProbs: mortalityProbs,
	}, nil
}

// Simulate builds and runs one cohort per parameter tuple, appending its
// mean survival time and five-year survival fraction to the output
// sequences. Either every cohort is simulated and recorded or the error is
// returned with no partial pair recorded.
func (mc *MultiCohort) Simulate(horizon int) error {
	for i := range mc.ids {
		cohort, err := NewCohort(mc.ids[i], mc.popSizes[i], mc.mortalityProbs[i])
		if err != nil {
			return fmt.Errorf("building cohort %d: %w", mc.ids[i], err)
		}
		if err := cohort.Simulate(horizon); err != nil {
			return fmt.Errorf("simulating cohort %d: %w", mc.ids[i], err)
		}
		mean, err := cohort.MeanSurvivalTime()
		if err != nil {
			return err
		}
		frac, err := cohort.FiveYearSurvivalFraction()
		if err != nil {
			return err
		}
		mc.meanSurvivalTimes = append(mc.meanSurvivalTimes, mean)
		mc.survivalFractions = append(mc.survivalFractions, frac)
	}
	mc.simulated = true
	return nil
}

// Len returns the number of ensemble members.
func (mc *MultiCohort) Len() int {
	return len(mc.ids)
}

// MeanSurvivalFor returns the mean survival time of the index-th cohort.
func (mc *MultiCohort) MeanSurvivalFor(index int) (float64, error) {
	if err := mc.checkQuery(index); err != nil {
		return 0, err
	}
	return mc.meanSurvivalTimes[index], nil
}

// SurvivalFractionFor returns the five-year survival fraction of the
// index-th cohort.
func (mc *MultiCohort) SurvivalFractionFor(index int) (float64, error) {
	if err := mc.checkQuery(index); err != nil {
		return 0, err
	}
	return mc.survivalFractions[index], nil
}

func (mc *MultiCohort) checkQuery(index int) error {
	if !mc.simulated {
		return fmt.Errorf("%w: ensemble has not been simulated", ErrNotReady)
	}
	if index < 0 || index >= len(mc.ids) {
		return fmt.Errorf("%w: cohort index %d, ensemble size %d", ErrIndexOutOfRange, index, len(mc.ids))
	}
	return nil
}
