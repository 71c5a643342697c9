package analysis

import (
	"math"
	"strings"
	"testing"
)

func TestBifurcationFixedPoint(t *testing.T) {
	data := Bifurcation(1.0, 1.5, 6, 500, 100)
	if len(data) != 6 {
		t.Fatalf("expected 6 points, got %d", len(data))
	}
	for _, p := range data {
		if len(p.Values) != 1 {
			t.Errorf("r=%.2f: expected a single fixed point, got %v", p.Param, p.Values)
			continue
		}
		if math.Abs(p.Values[0]-1) > 1e-3 {
			t.Errorf("r=%.2f: expected convergence to K, got %v", p.Param, p.Values[0])
		}
	}
	if data[0].Param != 1.0 || math.Abs(data[5].Param-1.5) > 1e-12 {
		t.Errorf("unexpected sweep range %v..%v", data[0].Param, data[5].Param)
	}
}

func TestBifurcationPeriodTwo(t *testing.T) {
	data := Bifurcation(2.3, 2.3, 1, 1000, 100)
	if len(data) != 1 || len(data[0].Values) != 2 {
		t.Fatalf("expected a 2-cycle at r=2.3, got %+v", data)
	}
}

func TestBifurcationHarvestCollapse(t *testing.T) {
	s := Sweep{K: 1, X0: 0.5, Harvest: 0.3}
	data := s.Run(1.0, 1.0, 1, 100, 10)
	if len(data[0].Values) != 1 || data[0].Values[0] != 0 {
		t.Errorf("harvest above MSY should drive the stock to 0, got %v", data[0].Values)
	}
}

func TestBifurcationToASCII(t *testing.T) {
	out := BifurcationToASCII(Bifurcation(1.0, 2.8, 40, 300, 50), 40, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Errorf("expected 10 rows, got %d", len(lines))
	}
	if !strings.Contains(out, "•") {
		t.Error("expected plotted points")
	}
	if BifurcationToASCII(nil, 10, 10) != "" {
		t.Error("expected empty output for no data")
	}
}

func TestLyapunovExponent(t *testing.T) {
	if l := LyapunovExponent(0.5, 1, 0, 0.5, 200, 500); l >= 0 {
		t.Errorf("stable regime should have negative exponent, got %v", l)
	}
	if l := LyapunovExponent(2.9, 1, 0, 0.3, 500, 5000); l <= 0 {
		t.Errorf("chaotic regime should have positive exponent, got %v", l)
	}
}

func TestMSY(t *testing.T) {
	if got := MSY(1, 1); got != 0.25 {
		t.Errorf("MSY(1,1) = %v, want 0.25", got)
	}
}

func TestHarvestEquilibria(t *testing.T) {
	tests := []struct {
		name   string
		h      float64
		want   []float64
		stable []bool
	}{
		{"unharvested", 0, []float64{0, 1}, []bool{false, true}},
		{"below msy", 0.16, []float64{0.2, 0.8}, []bool{false, true}},
		{"at msy", 0.25, []float64{0.5}, []bool{false}},
		{"above msy", 0.3, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eq := HarvestEquilibria(1, 1, tt.h)
			if len(eq) != len(tt.want) {
				t.Fatalf("expected %d equilibria, got %+v", len(tt.want), eq)
			}
			for i := range eq {
				if math.Abs(eq[i].Population-tt.want[i]) > 1e-9 {
					t.Errorf("equilibrium %d = %v, want %v", i, eq[i].Population, tt.want[i])
				}
				if eq[i].Stable != tt.stable[i] {
					t.Errorf("equilibrium %d stable = %v, want %v", i, eq[i].Stable, tt.stable[i])
				}
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{3, 1, 2, 4})
	if s.N != 4 || s.Mean != 2.5 || s.Min != 1 || s.Max != 4 {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.Median != 2 {
		t.Errorf("expected empirical median 2, got %v", s.Median)
	}
	if math.Abs(s.Std-math.Sqrt(5.0/3.0)) > 1e-12 {
		t.Errorf("unexpected std %v", s.Std)
	}
	if !strings.HasPrefix(s.String(), "n=4") {
		t.Errorf("unexpected string %q", s.String())
	}

	if Summarize(nil).N != 0 {
		t.Error("empty input should give zero summary")
	}
	if one := Summarize([]float64{7}); one.Std != 0 || one.Median != 7 {
		t.Errorf("single value summary %+v", one)
	}
}
