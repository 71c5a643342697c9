package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/fishsim/internal/dynamo"
)

// HarvestEffort is the mean exploitation rate: the share of the grown
// stock removed on each step, harvest / (population after harvest +
// harvest). A step that empties the stock counts as 1.
type HarvestEffort struct {
	name    string
	sum     float64
	samples int
}

func NewHarvestEffort() *HarvestEffort {
	return &HarvestEffort{
		name: "harvest_effort",
	}
}

func (c *HarvestEffort) Name() string {
	return c.name
}

func (c *HarvestEffort) Observe(x dynamo.State, u dynamo.Control, reward float64, t int) {
	h := floats.Sum(u)
	if stock := floats.Sum(x) + h; stock > 0 {
		c.sum += h / stock
	}
	c.samples++
}

func (c *HarvestEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *HarvestEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
