package env

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r1"

	"github.com/san-kum/fishsim/internal/dynamo"
)

// Box is a closed, axis-aligned region of R^n.
type Box struct {
	Bounds []r1.Interval
}

// NewBox returns the n-dimensional box [lo, hi]^n.
func NewBox(n int, lo, hi float64) Box {
	bounds := make([]r1.Interval, n)
	for i := range bounds {
		bounds[i] = r1.Interval{Min: lo, Max: hi}
	}
	return Box{Bounds: bounds}
}

func (b Box) Dim() int { return len(b.Bounds) }

func (b Box) Low() dynamo.State {
	low := make(dynamo.State, len(b.Bounds))
	for i, iv := range b.Bounds {
		low[i] = iv.Min
	}
	return low
}

func (b Box) High() dynamo.State {
	high := make(dynamo.State, len(b.Bounds))
	for i, iv := range b.Bounds {
		high[i] = iv.Max
	}
	return high
}

func (b Box) Contains(x []float64) bool {
	if len(x) != len(b.Bounds) {
		return false
	}
	for i, iv := range b.Bounds {
		if x[i] < iv.Min || x[i] > iv.Max {
			return false
		}
	}
	return true
}

// Clip bounds x to the box in place and reports whether anything changed.
// Extra components beyond the box dimension are left untouched.
func (b Box) Clip(x []float64) bool {
	changed := false
	for i := 0; i < len(x) && i < len(b.Bounds); i++ {
		iv := b.Bounds[i]
		switch {
		case x[i] < iv.Min:
			x[i] = iv.Min
			changed = true
		case x[i] > iv.Max:
			x[i] = iv.Max
			changed = true
		}
	}
	return changed
}

func (b Box) String() string {
	if len(b.Bounds) == 1 {
		return fmt.Sprintf("Box[%g, %g]", b.Bounds[0].Min, b.Bounds[0].Max)
	}
	return fmt.Sprintf("Box(%d)%v", len(b.Bounds), b.Bounds)
}
