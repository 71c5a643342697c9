package export

import (
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/fishsim/internal/analysis"
	"github.com/san-kum/fishsim/internal/rollout"
)

const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 4 * vg.Inch
)

// TrajectoryPlot draws population and harvest over one episode, plus the
// collapse threshold when it is positive. The file format follows the
// extension of path (png, svg, pdf).
func TrajectoryPlot(path, title string, res *rollout.Result, threshold float64) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "step"
	p.Y.Label.Text = "population"
	p.Y.Min = 0
	p.Y.Max = 1
	p.Add(plotter.NewGrid())

	pops := res.Populations()
	popXY := make(plotter.XYs, len(pops))
	for i, v := range pops {
		popXY[i] = plotter.XY{X: float64(i), Y: v}
	}
	popLine, err := plotter.NewLine(popXY)
	if err != nil {
		return err
	}
	popLine.Color = plotutil.Color(0)
	p.Add(popLine)
	p.Legend.Add("population", popLine)

	if harvest := res.HarvestSeries(); len(harvest) > 1 {
		harvestXY := make(plotter.XYs, len(harvest)-1)
		for i, h := range harvest[1:] {
			harvestXY[i] = plotter.XY{X: float64(i + 1), Y: h}
		}
		harvestLine, err := plotter.NewLine(harvestXY)
		if err != nil {
			return err
		}
		harvestLine.Color = plotutil.Color(1)
		harvestLine.Dashes = plotutil.Dashes(1)
		p.Add(harvestLine)
		p.Legend.Add("harvest", harvestLine)
	}

	if threshold > 0 {
		limit := plotter.NewFunction(func(float64) float64 { return threshold })
		limit.Color = color.RGBA{R: 200, A: 255}
		limit.Dashes = plotutil.Dashes(2)
		p.Add(limit)
		p.Legend.Add("threshold", limit)
	}

	return p.Save(plotWidth, plotHeight, path)
}

// ReturnsPlot draws one line of episode returns per named series, in
// name order.
func ReturnsPlot(path, title string, series map[string][]float64) error {
	if len(series) == 0 {
		return fmt.Errorf("returns plot %s: no series", path)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "episode"
	p.Y.Label.Text = "return"
	p.Add(plotter.NewGrid())

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		returns := series[name]
		points := make(plotter.XYs, len(returns))
		for j, r := range returns {
			points[j] = plotter.XY{X: float64(j), Y: r}
		}
		line, err := plotter.NewLine(points)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(name, line)
	}

	return p.Save(plotWidth, plotHeight, path)
}

// BifurcationPlot scatters a growth-rate sweep.
func BifurcationPlot(path string, data []analysis.BifurcationPoint) error {
	points := make(plotter.XYs, 0, len(data))
	for _, pt := range data {
		for _, v := range pt.Values {
			points = append(points, plotter.XY{X: pt.Param, Y: v})
		}
	}
	if len(points) == 0 {
		return fmt.Errorf("bifurcation plot %s: no points", path)
	}

	p := plot.New()
	p.Title.Text = "bifurcation"
	p.X.Label.Text = "r"
	p.Y.Label.Text = "population"

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Radius = vg.Points(0.5)
	scatter.GlyphStyle.Color = plotutil.Color(0)
	p.Add(scatter)

	return p.Save(plotWidth, plotHeight, path)
}
