package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CalibrationConfig groups every knob of a calibration run. Zero PopSize
// defaults to ObservedN (the calibration study's own population size).
type CalibrationConfig struct {
	Horizon        int     `yaml:"horizon"`         // simulation length in steps (must be > 0)
	PriorLow       float64 `yaml:"prior_low"`       // lower bound of the uniform prior
	PriorHigh      float64 `yaml:"prior_high"`      // upper bound of the uniform prior (must be > prior_low)
	PriorCount     int     `yaml:"prior_count"`     // number of prior draws N (must be > 0)
	ObservedK      int     `yaml:"observed_k"`      // survivors reported by the clinical study
	ObservedN      int     `yaml:"observed_n"`      // participants in the clinical study
	PosteriorCount int     `yaml:"posterior_count"` // posterior resample count M (must be > 0)
	CredibleAlpha  float64 `yaml:"credible_alpha"`  // significance level for the credible interval
	PopSize        int     `yaml:"pop_size"`        // simulated cohort population (0 = observed_n)
	Seed           int64   `yaml:"seed"`            // seed for the prior and resampling streams
}

// DefaultCalibrationConfig returns the calibration study's parameters: a
// 1000-step horizon, Uniform(0.05, 0.25) prior, 1000 prior draws, an
// observed outcome of 400 five-year survivors out of 573 participants, 1000
// posterior resamples, and a 95% credible interval.
func DefaultCalibrationConfig() CalibrationConfig {
	return CalibrationConfig{
		Horizon:        1000,
		PriorLow:       0.05,
		PriorHigh:      0.25,
		PriorCount:     1000,
		ObservedK:      400,
		ObservedN:      573,
		PosteriorCount: 1000,
		CredibleAlpha:  0.05,
		PopSize:        573,
		Seed:           42,
	}
}

// LoadCalibrationConfig reads and validates a YAML calibration scenario.
func LoadCalibrationConfig(path string) (*CalibrationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading calibration scenario: %w", err)
	}
	var cfg CalibrationConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing calibration scenario: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every parameter range the calibration pipeline relies on.
func (c *CalibrationConfig) Validate() error {
	if c.Horizon <= 0 {
		return fmt.Errorf("%w: horizon must be positive, got %d", ErrInvalidParameter, c.Horizon)
	}
	if c.PriorLow < 0 || c.PriorHigh > 1 {
		return fmt.Errorf("%w: prior bounds must lie in [0,1], got [%f,%f]", ErrInvalidParameter, c.PriorLow, c.PriorHigh)
	}
	if c.PriorLow >= c.PriorHigh {
		return fmt.Errorf("%w: prior_low must be below prior_high, got [%f,%f]", ErrInvalidParameter, c.PriorLow, c.PriorHigh)
	}
	if c.PriorCount <= 0 {
		return fmt.Errorf("%w: prior_count must be positive, got %d", ErrInvalidParameter, c.PriorCount)
	}
	if c.ObservedN <= 0 {
		return fmt.Errorf("%w: observed_n must be positive, got %d", ErrInvalidParameter, c.ObservedN)
	}
	if c.ObservedK < 0 || c.ObservedK > c.ObservedN {
		return fmt.Errorf("%w: observed_k must be in [0,%d], got %d", ErrInvalidParameter, c.ObservedN, c.ObservedK)
	}
	if c.PosteriorCount <= 0 {
		return fmt.Errorf("%w: posterior_count must be positive, got %d", ErrInvalidParameter, c.PosteriorCount)
	}
	if c.CredibleAlpha <= 0 || c.CredibleAlpha >= 1 {
		return fmt.Errorf("%w: credible_alpha must be in (0,1), got %f", ErrInvalidParameter, c.CredibleAlpha)
	}
	if c.PopSize < 0 {
		return fmt.Errorf("%w: pop_size must be non-negative, got %d", ErrInvalidParameter, c.PopSize)
	}
	return nil
}

// popSize returns the simulated cohort population, defaulting to the
// observed study size.
func (c *CalibrationConfig) popSize() int {
	if c.PopSize > 0 {
		return c.PopSize
	}
	return c.ObservedN
}
