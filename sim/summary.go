package sim

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// SummaryStatistics is the contract the calibration engine needs from a
// descriptive-statistics collaborator: a sample mean and an equal-tailed
// empirical interval at a given significance level.
type SummaryStatistics interface {
	Mean() float64
	PercentileInterval(alpha float64) (lower, upper float64, err error)
}

// SummaryStat is the gonum-backed SummaryStatistics implementation.
type SummaryStat struct {
	name   string
	sorted []float64
}

// NewSummaryStat builds summary statistics over a copy of samples.
func NewSummaryStat(name string, samples []float64) (*SummaryStat, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: summary statistic %q over zero samples", ErrEmptySample, name)
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	return &SummaryStat{name: name, sorted: sorted}, nil
}

// Mean returns the arithmetic mean of the sample.
func (s *SummaryStat) Mean() float64 {
	return stat.Mean(s.sorted, nil)
}

// PercentileInterval returns the equal-tailed interval at significance
// level alpha: the empirical alpha/2 and 1-alpha/2 quantiles of the sample.
func (s *SummaryStat) PercentileInterval(alpha float64) (lower, upper float64, err error) {
	if alpha <= 0 || alpha >= 1 {
		return 0, 0, fmt.Errorf("%w: significance level must be in (0,1), got %f", ErrInvalidParameter, alpha)
	}
	lower = stat.Quantile(alpha/2, stat.Empirical, s.sorted, nil)
	upper = stat.Quantile(1-alpha/2, stat.Empirical, s.sorted, nil)
	return lower, upper, nil
}
