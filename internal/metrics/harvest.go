package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/fishsim/internal/dynamo"
)

// TotalHarvest sums the harvested mass over the episode.
type TotalHarvest struct {
	total float64
}

func NewTotalHarvest() *TotalHarvest {
	return &TotalHarvest{}
}

func (h *TotalHarvest) Name() string { return "total_harvest" }

func (h *TotalHarvest) Observe(x dynamo.State, u dynamo.Control, reward float64, t int) {
	h.total += floats.Sum(u)
}

func (h *TotalHarvest) Value() float64 { return h.total }

func (h *TotalHarvest) Reset() { h.total = 0 }

// MeanPopulation averages the total population over the observed steps.
type MeanPopulation struct {
	samples []float64
}

func NewMeanPopulation() *MeanPopulation {
	return &MeanPopulation{}
}

func (m *MeanPopulation) Name() string { return "mean_population" }

func (m *MeanPopulation) Observe(x dynamo.State, u dynamo.Control, reward float64, t int) {
	m.samples = append(m.samples, floats.Sum(x))
}

func (m *MeanPopulation) Value() float64 {
	if len(m.samples) == 0 {
		return 0
	}
	return stat.Mean(m.samples, nil)
}

func (m *MeanPopulation) Reset() { m.samples = m.samples[:0] }

// Default returns a fresh set of the standard fishery metrics.
func Default(threshold float64) []dynamo.Metric {
	return []dynamo.Metric{
		NewTotalHarvest(),
		NewMeanPopulation(),
		NewSustainability(threshold),
		NewHarvestEffort(),
	}
}
