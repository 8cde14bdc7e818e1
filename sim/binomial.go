package sim

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// BinomialPMF returns P(X=k) for X ~ Binomial(n, p) at each success
// probability in ps, index-aligned with the input. One call covers a whole
// calibration pass; the same (k, n, p) triple yields the same value whether
// computed standalone or inside the weighting step.
func BinomialPMF(k, n int, ps []float64) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: trial count must be positive, got %d", ErrInvalidParameter, n)
	}
	if k < 0 || k > n {
		return nil, fmt.Errorf("%w: success count must be in [0,%d], got %d", ErrInvalidParameter, n, k)
	}
	pmf := make([]float64, len(ps))
	for i, p := range ps {
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("%w: success probability must be in [0,1], got %f at index %d", ErrInvalidParameter, p, i)
		}
		// distuv computes the PMF in log space, where p=0 with k=0 (and
		// p=1 with k=n) hits 0*log(0) = NaN; the mass is 1 there, 0
		// everywhere else on the boundary.
		switch {
		case p == 0:
			if k == 0 {
				pmf[i] = 1
			}
		case p == 1:
			if k == n {
				pmf[i] = 1
			}
		default:
			pmf[i] = distuv.Binomial{N: float64(n), P: p}.Prob(float64(k))
		}
	}
	return pmf, nil
}
