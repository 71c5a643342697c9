package metrics

import (
	"github.com/san-kum/fishsim/internal/dynamo"
)

// Sustainability is the fraction of observed steps on which every
// population stayed at or above level.
type Sustainability struct {
	name       string
	level      float64
	violations int
	samples    int
}

func NewSustainability(level float64) *Sustainability {
	return &Sustainability{
		name:  "sustainability",
		level: level,
	}
}

func (s *Sustainability) Name() string {
	return s.name
}

func (s *Sustainability) Observe(x dynamo.State, u dynamo.Control, reward float64, t int) {
	s.samples++
	if x.Min() < s.level {
		s.violations++
	}
}

func (s *Sustainability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Sustainability) Reset() {
	s.violations = 0
	s.samples = 0
}
