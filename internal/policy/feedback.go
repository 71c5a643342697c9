package policy

import (
	"fmt"
	"math"

	"github.com/san-kum/fishsim/internal/dynamo"
)

// Feedback is a PI controller on the first species: it harvests more the
// further the population sits above Target. Harvest is never negative.
type Feedback struct {
	Kp       float64
	Ki       float64
	Target   float64
	integral float64
}

func NewFeedback(kp, ki, target float64) *Feedback {
	return &Feedback{Kp: kp, Ki: ki, Target: target}
}

func (f *Feedback) Act(x dynamo.State, t int) dynamo.Control {
	if len(x) == 0 {
		return dynamo.Control{}
	}
	err := x[0] - f.Target
	f.integral += err

	u := make(dynamo.Control, len(x))
	u[0] = math.Max(0, f.Kp*err+f.Ki*f.integral)
	return u
}

// Reset clears the integral term.
func (f *Feedback) Reset() {
	f.integral = 0
}

func (f *Feedback) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp":     f.Kp,
		"Ki":     f.Ki,
		"Target": f.Target,
	}
}

func (f *Feedback) SetParam(name string, value float64) error {
	switch name {
	case "Kp":
		f.Kp = value
	case "Ki":
		f.Ki = value
	case "Target":
		f.Target = value
	default:
		return fmt.Errorf("feedback: %q: %w", name, dynamo.ErrUnknownParam)
	}
	return nil
}
