// Implements Sampling-Importance-Resampling calibration of the cohort
// model's mortality probability against an observed clinical outcome.

package sim

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// calibrationStage tracks progress through the strictly sequential pipeline.
// Each operation requires the previous stage and advances exactly one stage.
type calibrationStage string

const (
	stageUninitialized calibrationStage = "uninitialized"
	stagePriorDrawn    calibrationStage = "prior drawn"
	stageSimulated     calibrationStage = "ensemble simulated"
	stageWeighted      calibrationStage = "weights computed"
	stageResampled     calibrationStage = "resampled"
	stageSummarized    calibrationStage = "summarized"
)

// PosteriorEstimate is the calibration result: the posterior mean of the
// mortality probability and its equal-tailed credible interval at Alpha.
type PosteriorEstimate struct {
	Mean  float64
	Lower float64
	Upper float64
	Alpha float64
}

// String formats the estimate as "mean (lower, upper)" with deci decimals.
func (e PosteriorEstimate) String() string {
	return e.Format(4)
}

// Format renders "mean (lower, upper)" with the given decimal places.
func (e PosteriorEstimate) Format(deci int) string {
	return fmt.Sprintf("%.*f (%.*f, %.*f)", deci, e.Mean, deci, e.Lower, deci, e.Upper)
}

// Calibration estimates the posterior distribution of the per-step
// mortality probability given an observed k-of-n five-year survival
// outcome, via Sampling-Importance-Resampling:
//
//  1. SamplePrior draws N candidates from Uniform(prior_low, prior_high).
//  2. RunEnsemble simulates one cohort per candidate and records each
//     cohort's five-year survival fraction.
//  3. ComputeWeights scores each candidate with the binomial likelihood of
//     the observed outcome and normalizes the weights.
//  4. Resample draws M posterior samples with replacement from the
//     candidates, proportional to the normalized weights.
//  5. Summarize reduces the posterior samples to a mean and credible
//     interval.
//
// Calibrate runs all five in order. Results are immutable once a stage
// completes; out-of-order queries fail with ErrNotReady.
type Calibration struct {
	cfg   CalibrationConfig
	stage calibrationStage

	cohortIDs         []int
	priorSamples      []float64
	survivalFractions []float64
	weights           []float64 // unnormalized binomial likelihoods
	normWeights       []float64
	posteriorSamples  []float64
	estimate          PosteriorEstimate
}

// NewCalibration validates the configuration and returns an engine in the
// uninitialized stage.
func NewCalibration(cfg CalibrationConfig) (*Calibration, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Calibration{cfg: cfg, stage: stageUninitialized}, nil
}

// engineSource derives an isolated random source for one engine concern,
// mirroring the patient-stream derivation in rng.go.
func (c *Calibration) engineSource(domain string) rand.Source {
	return rand.NewSource(uint64(c.cfg.Seed ^ fnv1a64(domain)))
}

func (c *Calibration) require(want calibrationStage) error {
	if c.stage != want {
		return fmt.Errorf("%w: calibration stage is %q, requires %q", ErrNotReady, c.stage, want)
	}
	return nil
}

// SamplePrior draws the N prior candidates from the uniform prior.
func (c *Calibration) SamplePrior() error {
	if err := c.require(stageUninitialized); err != nil {
		return err
	}
	prior := distuv.Uniform{
		Min: c.cfg.PriorLow,
		Max: c.cfg.PriorHigh,
		Src: c.engineSource("prior"),
	}
	c.cohortIDs = make([]int, c.cfg.PriorCount)
	c.priorSamples = make([]float64, c.cfg.PriorCount)
	for i := range c.priorSamples {
		c.cohortIDs[i] = i
		c.priorSamples[i] = prior.Rand()
	}
	c.stage = stagePriorDrawn
	return nil
}

// RunEnsemble simulates one cohort per prior candidate, all of the study's
// population size, and collects each cohort's five-year survival fraction.
func (c *Calibration) RunEnsemble() error {
	if err := c.require(stagePriorDrawn); err != nil {
		return err
	}
	popSizes := make([]int, c.cfg.PriorCount)
	for i := range popSizes {
		popSizes[i] = c.cfg.popSize()
	}
	ensemble, err := NewMultiCohort(c.cohortIDs, popSizes, c.priorSamples)
	if err != nil {
		return err
	}
	if err := ensemble.Simulate(c.cfg.Horizon); err != nil {
		return err
	}
	c.survivalFractions = make([]float64, ensemble.Len())
	for i := range c.survivalFractions {
		frac, err := ensemble.SurvivalFractionFor(i)
		if err != nil {
			return err
		}
		c.survivalFractions[i] = frac
	}
	c.stage = stageSimulated
	return nil
}

// ComputeWeights scores every candidate with the binomial likelihood of the
// observed outcome and normalizes the scores into importance weights.
func (c *Calibration) ComputeWeights() error {
	if err := c.require(stageSimulated); err != nil {
		return err
	}
	weights, err := BinomialPMF(c.cfg.ObservedK, c.cfg.ObservedN, c.survivalFractions)
	if err != nil {
		return err
	}
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		return fmt.Errorf("%w: no prior candidate is compatible with observing %d of %d",
			ErrDegenerateLikelihood, c.cfg.ObservedK, c.cfg.ObservedN)
	}
	c.weights = weights
	c.normWeights = make([]float64, len(weights))
	for i, w := range weights {
		c.normWeights[i] = w / sum
	}
	c.stage = stageWeighted
	return nil
}

// Resample draws M posterior samples with replacement from the prior
// candidates, proportional to the normalized weights. The sampler walks an
// explicit cumulative-weight array with binary search: a candidate is
// selected iff the uniform draw lands strictly inside its weight span, so a
// zero-weight candidate is never selected and every posterior value is an
// exact member of the prior sample vector.
func (c *Calibration) Resample() error {
	if err := c.require(stageWeighted); err != nil {
		return err
	}
	cum := make([]float64, len(c.normWeights))
	total := 0.0
	for i, w := range c.normWeights {
		total += w
		cum[i] = total
	}
	rng := rand.New(c.engineSource("resample"))
	c.posteriorSamples = make([]float64, c.cfg.PosteriorCount)
	for m := range c.posteriorSamples {
		u := rng.Float64()
		idx := sort.Search(len(cum), func(i int) bool { return cum[i] > u })
		if idx == len(cum) {
			// u landed beyond cum[len-1] (< 1 only through rounding in the
			// normalized sum); select the last positive-weight candidate.
			for idx = len(cum) - 1; idx > 0 && c.normWeights[idx] == 0; idx-- {
			}
		}
		c.posteriorSamples[m] = c.priorSamples[idx]
	}
	c.stage = stageResampled
	return nil
}

// Summarize reduces the posterior samples to a mean and an equal-tailed
// credible interval at the configured significance level.
func (c *Calibration) Summarize() error {
	if err := c.require(stageResampled); err != nil {
		return err
	}
	summary, err := NewSummaryStat("posterior samples", c.posteriorSamples)
	if err != nil {
		return err
	}
	lower, upper, err := summary.PercentileInterval(c.cfg.CredibleAlpha)
	if err != nil {
		return err
	}
	c.estimate = PosteriorEstimate{
		Mean:  summary.Mean(),
		Lower: lower,
		Upper: upper,
		Alpha: c.cfg.CredibleAlpha,
	}
	c.stage = stageSummarized
	return nil
}

// Calibrate runs the full pipeline in order. It either completes and leaves
// the posterior estimate queryable, or returns the first stage's failure
// with no partial results exposed.
func (c *Calibration) Calibrate() error {
	for _, step := range []func() error{
		c.SamplePrior,
		c.RunEnsemble,
		c.ComputeWeights,
		c.Resample,
		c.Summarize,
	} {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// Posterior returns the summarized posterior estimate.
func (c *Calibration) Posterior() (PosteriorEstimate, error) {
	if c.stage != stageSummarized {
		return PosteriorEstimate{}, fmt.Errorf("%w: calibration stage is %q, requires %q", ErrNotReady, c.stage, stageSummarized)
	}
	return c.estimate, nil
}

// PosteriorSamples returns a copy of the M resampled mortality
// probabilities.
func (c *Calibration) PosteriorSamples() ([]float64, error) {
	if c.stage != stageResampled && c.stage != stageSummarized {
		return nil, fmt.Errorf("%w: calibration stage is %q, requires %q", ErrNotReady, c.stage, stageResampled)
	}
	return append([]float64(nil), c.posteriorSamples...), nil
}

// SurvivalFractions returns a copy of the per-cohort five-year survival
// fractions the ensemble produced, index-aligned with the prior samples.
func (c *Calibration) SurvivalFractions() ([]float64, error) {
	if c.stage == stageUninitialized || c.stage == stagePriorDrawn {
		return nil, fmt.Errorf("%w: calibration stage is %q, requires %q", ErrNotReady, c.stage, stageSimulated)
	}
	return append([]float64(nil), c.survivalFractions...), nil
}

// Audit returns the three parallel vectors the reporting collaborator
// consumes: cohort ids, normalized weights, and prior mortality samples,
// index-aligned. All three are copies; engine state stays immutable.
func (c *Calibration) Audit() (ids []int, normWeights, priorSamples []float64, err error) {
	switch c.stage {
	case stageWeighted, stageResampled, stageSummarized:
	default:
		return nil, nil, nil, fmt.Errorf("%w: calibration stage is %q, requires %q", ErrNotReady, c.stage, stageWeighted)
	}
	return append([]int(nil), c.cohortIDs...),
		append([]float64(nil), c.normWeights...),
		append([]float64(nil), c.priorSamples...),
		nil
}

// Stage exposes the current pipeline stage as a human-readable string.
func (c *Calibration) Stage() string {
	return string(c.stage)
}
