package analysis

import (
	"math"
)

// LyapunovExponent estimates the Lyapunov exponent of the harvested map
// N' = N + rN(1 - N/K) - h as the orbit average of ln|dN'/dN|. A positive
// value indicates chaos. Orbits that reach zero stop contributing.
func LyapunovExponent(r, k, h, x0 float64, transient, steps int) float64 {
	if k <= 0 || steps <= 0 {
		return 0
	}

	next := func(n float64) float64 {
		n = n + r*n*(1-n/k) - h
		if n < 0 || math.IsNaN(n) {
			return 0
		}
		return n
	}

	n := x0
	for i := 0; i < transient; i++ {
		n = next(n)
	}

	sumLog := 0.0
	count := 0
	for i := 0; i < steps && n > 0; i++ {
		d := math.Abs(1 + r*(1-2*n/k))
		if d > 0 {
			sumLog += math.Log(d)
			count++
		}
		n = next(n)
	}

	if count == 0 {
		return 0
	}
	return sumLog / float64(count)
}
