package analysis

import "math"

// MSY is the maximum sustainable yield rK/4, reached at N = K/2.
func MSY(r, k float64) float64 {
	return r * k / 4
}

type Equilibrium struct {
	Population float64
	Stable     bool
}

// HarvestEquilibria returns the non-negative steady states of the stepped
// map under a constant harvest h, lowest first. Harvests above the MSY
// have none. Stability is judged on the map, |1 + r(1 - 2N/K)| < 1.
func HarvestEquilibria(r, k, h float64) []Equilibrium {
	if r <= 0 || k <= 0 {
		return nil
	}
	disc := 1 - 4*h/(r*k)
	if disc < 0 {
		return nil
	}

	root := math.Sqrt(disc)
	candidates := []float64{k / 2 * (1 - root), k / 2 * (1 + root)}
	if root == 0 {
		candidates = candidates[:1]
	}

	out := make([]Equilibrium, 0, len(candidates))
	for _, n := range candidates {
		if n < 0 {
			continue
		}
		slope := math.Abs(1 + r*(1-2*n/k))
		out = append(out, Equilibrium{Population: n, Stable: slope < 1})
	}
	return out
}
