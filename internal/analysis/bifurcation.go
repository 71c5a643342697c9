package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/fishsim/internal/dynamo"
	"github.com/san-kum/fishsim/internal/integrators"
	"github.com/san-kum/fishsim/internal/models"
)

// BifurcationPoint holds the distinct long-run populations found for one
// growth rate.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// Sweep describes the map iterated by a bifurcation sweep.
type Sweep struct {
	K       float64
	X0      float64
	Harvest float64
}

// DefaultSweep is the unharvested map on the unit carrying capacity.
var DefaultSweep = Sweep{K: 1, X0: 0.5}

// Bifurcation sweeps r over [rMin, rMax] for the unharvested map.
func Bifurcation(rMin, rMax float64, steps, transient, record int) []BifurcationPoint {
	return DefaultSweep.Run(rMin, rMax, steps, transient, record)
}

// Run iterates N' = max(0, N + rN(1 - N/K) - h) for steps values of r,
// discards transient iterations and records the distinct values seen in
// the following record iterations. Parameter values are swept in
// parallel, each with its own model.
func (s Sweep) Run(rMin, rMax float64, steps, transient, record int) []BifurcationPoint {
	if steps <= 0 {
		return nil
	}
	if steps == 1 {
		rMax = rMin
	}
	paramStep := 0.0
	if steps > 1 {
		paramStep = (rMax - rMin) / float64(steps-1)
	}

	results := make([]BifurcationPoint, steps)
	dynamo.ParallelFor(steps, 8, func(start, end int) {
		integ := integrators.NewEuler()
		for i := start; i < end; i++ {
			r := rMin + float64(i)*paramStep
			sys := models.NewLogistic(r, s.K)
			results[i] = BifurcationPoint{
				Param:  r,
				Values: s.orbit(sys, integ, transient, record),
			}
		}
	})
	return results
}

func (s Sweep) orbit(sys dynamo.System, integ dynamo.Integrator, transient, record int) []float64 {
	x := dynamo.State{s.X0}
	h := dynamo.State{s.Harvest}
	step := func(t int) {
		x = integ.Step(sys, x, float64(t), 1).Sub(h)
		if !x.IsValid() || x[0] < 0 {
			x[0] = 0
		}
	}

	for t := 0; t < transient; t++ {
		step(t)
	}

	values := make([]float64, 0, 16)
	seen := make(map[int]bool)
	for t := transient; t < transient+record; t++ {
		step(t)
		// Quantize to merge values that only differ by rounding.
		key := int(math.Round(x[0] * 1000))
		if !seen[key] {
			seen[key] = true
			values = append(values, x[0])
		}
	}
	return values
}

// BifurcationToASCII renders a sweep, growth rate on the x axis.
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	foundFirst := false
	for _, p := range data {
		for _, v := range p.Values {
			if !foundFirst {
				minVal, maxVal = v, v
				foundFirst = true
				continue
			}
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if !foundFirst {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
