package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/survival-sim/survival-sim/sim"
)

var (
	logLevel string // Log verbosity level

	// CLI flags for the single-cohort run
	cohortID      int     // Cohort ID (determines the patient identity range)
	population    int     // Number of patients in the cohort
	mortalityProb float64 // Per-step probability of death for each patient
	runHorizon    int     // Number of time steps to simulate

	// CLI flags for the calibration pipeline
	scenarioPath   string  // Optional YAML scenario file (overrides the flags below)
	horizon        int     // Simulation length per cohort (in steps)
	priorLow       float64 // Lower bound of the uniform prior
	priorHigh      float64 // Upper bound of the uniform prior
	priorCount     int     // Number of prior draws N
	observedK      int     // Survivors reported by the clinical study
	observedN      int     // Participants in the clinical study
	posteriorCount int     // Posterior resample count M
	credibleAlpha  float64 // Significance level of the credible interval
	popSize        int     // Simulated cohort population size
	seed           int64   // Seed for the prior and resampling streams
	csvPath        string  // Optional CSV audit export path
	decimals       int     // Decimal places in the printed estimate
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "survival-sim",
	Short: "Stochastic survival microsimulation with Bayesian calibration",
}

// setupLogging parses and applies the --log flag.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// runCmd simulates a single cohort and reports its summary statistics
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one patient cohort",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		logrus.Infof("Simulating cohort %d: population=%d, mortality_prob=%f, horizon=%d steps",
			cohortID, population, mortalityProb, runHorizon)
		startTime := time.Now()

		cohort, err := sim.NewCohort(cohortID, population, mortalityProb)
		if err != nil {
			logrus.Fatalf("Invalid cohort parameters: %v", err)
		}
		if err := cohort.Simulate(runHorizon); err != nil {
			logrus.Fatalf("Cohort simulation failed: %v", err)
		}

		logrus.Infof("Cohort simulated in %v: %d of %d patients died", time.Since(startTime), cohort.Deaths(), population)

		frac, err := cohort.FiveYearSurvivalFraction()
		if err != nil {
			logrus.Fatalf("No deaths within the horizon; no survival statistics to report: %v", err)
		}
		mean, err := cohort.MeanSurvivalTime()
		if err != nil {
			logrus.Fatalf("No deaths within the horizon; no survival statistics to report: %v", err)
		}
		cmd.Printf("5-year survival fraction: %f\n", frac)
		cmd.Printf("Mean survival time: %f steps\n", mean)
	},
}

// calibrateCmd runs the full SIR calibration pipeline
var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Calibrate the mortality probability against an observed outcome",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		var cfg sim.CalibrationConfig
		if scenarioPath != "" {
			loaded, err := sim.LoadCalibrationConfig(scenarioPath)
			if err != nil {
				logrus.Fatalf("Unable to load calibration scenario: %v", err)
			}
			cfg = *loaded
		} else {
			cfg = sim.CalibrationConfig{
				Horizon:        horizon,
				PriorLow:       priorLow,
				PriorHigh:      priorHigh,
				PriorCount:     priorCount,
				ObservedK:      observedK,
				ObservedN:      observedN,
				PosteriorCount: posteriorCount,
				CredibleAlpha:  credibleAlpha,
				PopSize:        popSize,
				Seed:           seed,
			}
		}

		logrus.Infof("Starting calibration: prior=U(%f,%f), N=%d draws, observed %d/%d, horizon=%d steps, M=%d resamples",
			cfg.PriorLow, cfg.PriorHigh, cfg.PriorCount, cfg.ObservedK, cfg.ObservedN, cfg.Horizon, cfg.PosteriorCount)
		startTime := time.Now()

		engine, err := sim.NewCalibration(cfg)
		if err != nil {
			logrus.Fatalf("Invalid calibration configuration: %v", err)
		}
		if err := engine.Calibrate(); err != nil {
			logrus.Fatalf("Calibration failed: %v", err)
		}
		estimate, err := engine.Posterior()
		if err != nil {
			logrus.Fatalf("Posterior unavailable: %v", err)
		}

		logrus.Infof("Calibration complete in %v", time.Since(startTime))
		cmd.Printf("Estimate of mortality probability (%.0f%% credible interval): %s\n",
			(1-estimate.Alpha)*100, estimate.Format(decimals))

		if csvPath != "" {
			WriteAuditCSV(engine, csvPath)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Single-cohort run
	runCmd.Flags().IntVar(&cohortID, "cohort-id", 2, "Cohort ID (determines the patient identity range)")
	runCmd.Flags().IntVar(&population, "population", 573, "Number of patients in the cohort")
	runCmd.Flags().Float64Var(&mortalityProb, "mortality-prob", 0.1, "Per-step probability of death")
	runCmd.Flags().IntVar(&runHorizon, "horizon", 40, "Number of time steps to simulate")

	// Calibration pipeline; defaults are the calibration study's parameters
	defaults := sim.DefaultCalibrationConfig()
	calibrateCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file (overrides the other flags)")
	calibrateCmd.Flags().IntVar(&horizon, "horizon", defaults.Horizon, "Simulation length per cohort (in steps)")
	calibrateCmd.Flags().Float64Var(&priorLow, "prior-low", defaults.PriorLow, "Lower bound of the uniform prior")
	calibrateCmd.Flags().Float64Var(&priorHigh, "prior-high", defaults.PriorHigh, "Upper bound of the uniform prior")
	calibrateCmd.Flags().IntVar(&priorCount, "prior-count", defaults.PriorCount, "Number of prior draws")
	calibrateCmd.Flags().IntVar(&observedK, "observed-k", defaults.ObservedK, "Survivors reported by the clinical study")
	calibrateCmd.Flags().IntVar(&observedN, "observed-n", defaults.ObservedN, "Participants in the clinical study")
	calibrateCmd.Flags().IntVar(&posteriorCount, "posterior-count", defaults.PosteriorCount, "Posterior resample count")
	calibrateCmd.Flags().Float64Var(&credibleAlpha, "credible-alpha", defaults.CredibleAlpha, "Significance level of the credible interval")
	calibrateCmd.Flags().IntVar(&popSize, "pop-size", defaults.PopSize, "Simulated cohort population size (0 = observed-n)")
	calibrateCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for the prior and resampling streams")
	calibrateCmd.Flags().StringVar(&csvPath, "csv", "", "CSV audit export path (cohort id, weight, prior sample)")
	calibrateCmd.Flags().IntVar(&decimals, "decimals", 4, "Decimal places in the printed estimate")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(calibrateCmd)
}
