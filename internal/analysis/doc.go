// Package analysis characterizes the stepped logistic fishery off-line.
//
//   - [Bifurcation]: long-run population levels across growth rates
//   - [LyapunovExponent]: divergence rate of the harvested map
//   - [MSY] and [HarvestEquilibria]: steady states under constant harvest
//   - [Summarize]: statistics over episode returns
//
// # Chaos Detection
//
// The unharvested map N' = N + rN(1 - N/K) period-doubles past r = 2 and
// turns chaotic near r = 2.57:
//
//	lambda := analysis.LyapunovExponent(2.7, 1, 0, 0.5, 500, 2000)
//	if lambda > 0 {
//	    // chaotic
//	}
package analysis
