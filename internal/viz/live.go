package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fishsim/internal/dynamo"
	"github.com/san-kum/fishsim/internal/env"
	"github.com/san-kum/fishsim/internal/policy"
)

const (
	historyCapacity = 400
	tickRate        = time.Second / 30
)

var (
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(44)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 2)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// tunable is implemented by environments whose growth law can be
// retuned between steps.
type tunable interface {
	System() dynamo.System
}

// Model steps an environment under a policy, one step per tick.
type Model struct {
	env    env.Episodic
	policy dynamo.Policy
	title  string
	seed   uint64

	obs        dynamo.State
	lastAction float64
	lastReward float64
	ret        float64
	episode    int
	running    bool

	popHistory     []float64
	harvestHistory []float64

	params        dynamo.Configurable
	initialParams map[string]float64
	paramKeys     []string
	selected      int
}

// NewModel resets e with seed and returns a model ready to run.
func NewModel(e env.Episodic, p dynamo.Policy, seed uint64, title string) Model {
	m := Model{
		env:     e,
		policy:  p,
		title:   title,
		seed:    seed,
		running: true,
	}

	if t, ok := e.(tunable); ok {
		if c, ok := t.System().(dynamo.Configurable); ok {
			m.params = c
			m.initialParams = c.GetParams()
			for k := range m.initialParams {
				m.paramKeys = append(m.paramKeys, k)
			}
			sort.Strings(m.paramKeys)
		}
	}

	m.resetEpisode()
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the environment.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.env.Phase() == env.Active {
				m.running = !m.running
			}
		case "n":
			if !m.running {
				m.step()
			}
		case "r":
			m.seed++
			m.resetEpisode()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) resetEpisode() {
	if rp, ok := m.policy.(policy.Resetter); ok {
		rp.Reset()
	}
	m.obs = m.env.Reset(m.seed, nil)
	m.lastAction, m.lastReward, m.ret = 0, 0, 0
	m.popHistory = append(m.popHistory[:0], first(m.obs))
	m.harvestHistory = append(m.harvestHistory[:0], 0)
	m.episode++
	m.running = true
}

func (m *Model) step() {
	if m.env.Phase() != env.Active {
		m.running = false
		return
	}

	u := m.policy.Act(m.obs, m.env.TimeStep())
	obs, reward, terminated, _ := m.env.Step(u)

	m.obs = obs
	m.lastAction = first(dynamo.State(m.env.LastHarvest()))
	m.lastReward = reward
	m.ret += reward

	m.popHistory = appendCapped(m.popHistory, first(obs))
	m.harvestHistory = appendCapped(m.harvestHistory, m.lastAction)

	if terminated {
		m.running = false
	}
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	val := m.params.GetParams()[key] * factor
	// Rejected values leave the system unchanged.
	_ = m.params.SetParam(key, val)
}

func (m Model) status() string {
	switch {
	case m.env.Phase() == env.Terminated && m.env.Collapsed():
		return StatusCollapsed.Render("COLLAPSED")
	case m.env.Phase() == env.Terminated:
		return StatusRunning.Render("FINISHED")
	case m.running:
		return StatusRunning.Render("RUNNING")
	default:
		return StatusPaused.Render("PAUSED")
	}
}

// View renders the chart and the stats panel side by side.
func (m Model) View() string {
	chart := ""
	if len(m.popHistory) > 1 {
		chart = asciigraph.PlotMany(
			[][]float64{m.popHistory, m.harvestHistory},
			asciigraph.Height(16),
			asciigraph.Width(60),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.SeriesColors(asciigraph.Green, asciigraph.Goldenrod),
			asciigraph.SeriesLegends("population", "harvest"),
		)
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(m.status() + "\n\n")

	tMax := 0
	if f, ok := m.env.(interface{ Params() env.Params }); ok {
		tMax = f.Params().TMax
	}
	step := m.env.TimeStep()
	if tMax > 0 {
		s.WriteString(ProgressBar(float64(step)/float64(tMax), 30) + "\n\n")
	}

	s.WriteString(row("episode", fmt.Sprintf("%d (seed %d)", m.episode, m.seed)))
	s.WriteString(row("step", fmt.Sprintf("%d", step)))
	s.WriteString(row("population", fmt.Sprintf("%.4f", first(m.obs))))
	s.WriteString(row("harvest", fmt.Sprintf("%.4f", m.lastAction)))
	s.WriteString(row("reward", fmt.Sprintf("%.4f", m.lastReward)))
	s.WriteString(row("return", fmt.Sprintf("%.4f", m.ret)))

	s.WriteString("\nPARAMETERS\n")
	if len(m.paramKeys) == 0 {
		s.WriteString(Subtle.Render("  (none)") + "\n")
	} else {
		params := m.params.GetParams()
		for i, k := range m.paramKeys {
			line := fmt.Sprintf("%-4s %.4f", k, params[k])
			if i == m.selected {
				s.WriteString(ActiveParam.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + Subtle.Render(line) + "\n")
			}
		}
	}

	s.WriteString(helpStyle.Render("SP:Pause N:Step R:Reset Q:Quit\nTab:Param ↑↓:Tune"))

	return lipgloss.JoinHorizontal(lipgloss.Top, graphStyle.Render(chart), statsStyle.Render(s.String()))
}

// Run starts a full-screen program for the model.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func first(s dynamo.State) float64 {
	if len(s) == 0 {
		return 0
	}
	return s[0]
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}
