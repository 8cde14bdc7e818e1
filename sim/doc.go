// Package sim provides a stochastic survival microsimulation and the
// Sampling-Importance-Resampling (SIR) calibration engine built on it.
//
// # Reading Guide
//
// Start with these three files to understand the pipeline:
//   - patient.go: one patient's survival as a per-step Bernoulli trial
//     against a private random stream (rng.go)
//   - cohort.go / multicohort.go: cohort-level aggregation and the
//     index-aligned ensemble of independently parameterized cohorts
//   - calibration.go: the SIR pipeline (prior draw, ensemble run, binomial
//     importance weights, weighted resampling, posterior summary)
//
// # Reproducibility
//
// Every random stream in the package is derived deterministically: patient
// streams from the patient's global identity, engine streams from the
// configured seed and a domain label. Rerunning any unit with the same
// parameters reproduces its result bit-for-bit, independent of the order
// other units run in. The reference design is single-threaded; the
// independence structure (private streams, disjoint identity ranges, pure
// reductions) is what makes that guarantee hold.
//
// # Collaborators
//
// BinomialPMF (binomial.go) and SummaryStatistics (summary.go) are the two
// external contracts the engine depends on; both are backed by gonum.
package sim
