package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fishsim/internal/analysis"
	"github.com/san-kum/fishsim/internal/rollout"
)

// PlotTrajectory charts the population and harvest of one rollout.
func PlotTrajectory(res *rollout.Result, width, height int) string {
	pops := res.Populations()
	if len(pops) < 2 {
		return ""
	}

	harvest := res.HarvestSeries()

	return asciigraph.PlotMany(
		[][]float64{pops, harvest},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Goldenrod),
		asciigraph.SeriesLegends("population", "harvest"),
		asciigraph.Caption(fmt.Sprintf("seed %d", res.Seed)),
	)
}

// Summary renders the outcome of a rollout and its metrics.
func Summary(title string, res *rollout.Result) string {
	var s strings.Builder
	s.WriteString(Title.Render(title) + "\n\n")

	status := StatusRunning.Render("SUSTAINED")
	if res.Collapsed {
		status = StatusCollapsed.Render("COLLAPSED")
	}
	s.WriteString(MetricLabel.Render("outcome") + status + "\n")
	s.WriteString(row("steps", fmt.Sprintf("%d", res.Steps)))
	s.WriteString(row("return", fmt.Sprintf("%.4f", res.Return)))
	s.WriteString(row("seed", fmt.Sprintf("%d", res.Seed)))

	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > 0 {
		s.WriteString("\n")
	}
	for _, name := range names {
		s.WriteString(row(name, fmt.Sprintf("%.4f", res.Metrics[name])))
	}

	return Panel.Render(strings.TrimRight(s.String(), "\n"))
}

// EnsembleSummary renders return statistics next to a sparkline of the
// individual returns.
func EnsembleSummary(title string, returns []float64) string {
	st := analysis.Summarize(returns)

	var s strings.Builder
	s.WriteString(Title.Render(title) + "\n\n")
	s.WriteString(row("episodes", fmt.Sprintf("%d", st.N)))
	s.WriteString(row("mean", fmt.Sprintf("%.4f", st.Mean)))
	s.WriteString(row("std", fmt.Sprintf("%.4f", st.Std)))
	s.WriteString(row("min", fmt.Sprintf("%.4f", st.Min)))
	s.WriteString(row("median", fmt.Sprintf("%.4f", st.Median)))
	s.WriteString(row("max", fmt.Sprintf("%.4f", st.Max)))
	if st.N > 0 {
		s.WriteString("\n" + SparklineChart(returns, 40, st.Min, st.Max))
	}

	return Panel.Render(strings.TrimRight(s.String(), "\n"))
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, MetricLabel.Render(label), MetricValue.Render(value)) + "\n"
}
