package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/papari-man/LVILC/internal/dataset"
	"github.com/papari-man/LVILC/internal/experiment"
	"github.com/papari-man/LVILC/internal/mcmc"
)

const (
	scatterWidth    = 40
	scatterHeight   = 16
	historyCapacity = 600
)

var (
	canvasStyle      = lipgloss.NewStyle().Padding(1, 2)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(48)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Live drives an ensemble sampler one sweep per frame and shows the
// walkers moving through parameter space while the chain grows.
type Live struct {
	exp       *experiment.Experiment
	data      *dataset.CosmologyData
	sampler   *mcmc.Sampler
	chain     *mcmc.Chain
	modelName string
	steps     int
	selected  int
	running   bool
	done      bool
	failed    error
	showHelp  bool
	meanLogp  []float64
	started   time.Time
}

// NewLive wraps a set-up experiment. The walkers are scattered
// immediately so the first frame already has positions to draw.
func NewLive(exp *experiment.Experiment, data *dataset.CosmologyData, modelName string) (Live, error) {
	sampler := exp.Sampler()
	if sampler == nil {
		return Live{}, fmt.Errorf("viz: experiment not setup")
	}
	if err := sampler.Init(); err != nil {
		return Live{}, err
	}

	cfg := exp.Config()
	return Live{
		exp:       exp,
		data:      data,
		sampler:   sampler,
		chain:     mcmc.NewChain(exp.Problem().Names(), cfg.Walkers, cfg.BurnIn, cfg.Seed),
		modelName: modelName,
		steps:     cfg.Steps,
		running:   true,
		meanLogp:  make([]float64, 0, historyCapacity),
		started:   time.Now(),
	}, nil
}

func (l Live) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances the sampler.
func (l Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return l, tea.Quit
		case " ":
			if !l.done && l.failed == nil {
				l.running = !l.running
			}
		case "r":
			l.restart()
		case "tab":
			l.selected = (l.selected + 1) % l.chain.Dim()
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "?":
			l.showHelp = !l.showHelp
		}
	case TickMsg:
		if l.running && !l.done && l.failed == nil {
			l.advance()
		}
		return l, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return l, nil
}

// advance runs one sweep and records it.
func (l *Live) advance() {
	if _, err := l.sampler.Sweep(); err != nil {
		l.failed = err
		l.running = false
		return
	}
	l.chain.Append(l.sampler.Positions(), l.sampler.LogProbs())

	mean := 0.0
	for _, lp := range l.sampler.LogProbs() {
		mean += lp
	}
	mean /= float64(l.chain.Walkers())
	l.meanLogp = append(l.meanLogp, mean)
	if len(l.meanLogp) > historyCapacity {
		l.meanLogp = l.meanLogp[1:]
	}

	if l.sampler.StepCount() >= l.steps {
		l.done = true
		l.running = false
	}
}

// restart rebuilds the sampler and starts a fresh chain.
func (l *Live) restart() {
	if err := l.exp.Setup(l.data); err != nil {
		l.failed = err
		l.running = false
		return
	}
	sampler := l.exp.Sampler()
	if err := sampler.Init(); err != nil {
		l.failed = err
		l.running = false
		return
	}

	cfg := l.exp.Config()
	l.sampler = sampler
	l.chain = mcmc.NewChain(l.exp.Problem().Names(), cfg.Walkers, cfg.BurnIn, cfg.Seed)
	l.meanLogp = l.meanLogp[:0]
	l.failed = nil
	l.done = false
	l.running = true
	l.started = time.Now()
}

// Chain returns the sweeps recorded so far with the acceptance rate
// filled in.
func (l Live) Chain() *mcmc.Chain {
	l.chain.SetAcceptance(l.sampler.Acceptance())
	return l.chain
}

// View renders the TUI interface.
func (l Live) View() string {
	headerStyle := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true).MarginBottom(1)

	status := StatusRunning.Render("SAMPLING")
	switch {
	case l.failed != nil:
		status = lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Error).Render("FAILED: " + l.failed.Error())
	case l.done:
		status = StatusDone.Render("DONE")
	case !l.running:
		status = StatusPaused.Render("PAUSED")
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(l.modelName)) + "\n")
	s.WriteString(status + "\n\n")

	frac := float64(l.sampler.StepCount()) / float64(l.steps)
	s.WriteString(fmt.Sprintf("%s %d/%d\n", ProgressBar(frac, 24), l.sampler.StepCount(), l.steps))

	if len(l.meanLogp) > 1 {
		chart := TracePlot(l.meanLogp, 30, 4, "mean log posterior")
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Elapsed") + valueStyle.Render(time.Since(l.started).Round(time.Second).String()) + "\n")
	s.WriteString(labelStyle.Render("Acceptance") + valueStyle.Render(fmt.Sprintf("%.3f", l.sampler.Acceptance())) + "\n")
	if best, lp := l.chain.MaxLogProb(); best != nil {
		s.WriteString(labelStyle.Render("Best log p") + valueStyle.Render(fmt.Sprintf("%.2f", lp)) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	names := l.chain.Names()
	for i, name := range names {
		mean := 0.0
		for _, p := range l.sampler.Positions() {
			mean += p[i]
		}
		mean /= float64(l.chain.Walkers())
		line := fmt.Sprintf("%-10s %12.5g", name, mean)
		if i == l.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\n" + Separator(24) + "\nSP:Pause R:Restart Q:Quit\nTab:Param T:Theme ?:Help"))
	statsView := statsStyle.Render(s.String())

	canvasView := canvasStyle.Render(l.scatterPane())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if l.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume sampling    ║
║  R        - Restart from the ball    ║
║  Q        - Quit                     ║
║  Tab      - Cycle parameters         ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// scatterPane plots the walkers over the highlighted parameter pair,
// or against log density for one-parameter models.
func (l Live) scatterPane() string {
	positions := l.sampler.Positions()
	dim := l.chain.Dim()

	xs := make([]float64, len(positions))
	ys := make([]float64, len(positions))
	xName := l.chain.Names()[l.selected]
	yName := "log p"
	for w, p := range positions {
		xs[w] = p[l.selected]
		if dim > 1 {
			ys[w] = p[(l.selected+1)%dim]
		} else {
			ys[w] = l.sampler.LogProbs()[w]
		}
	}
	if dim > 1 {
		yName = l.chain.Names()[(l.selected+1)%dim]
	}

	return Scatter(xs, ys, scatterWidth, scatterHeight, xName, yName)
}

// RunLive runs the live view until quit and returns the chain recorded
// up to that point.
func RunLive(exp *experiment.Experiment, data *dataset.CosmologyData, modelName string) (*mcmc.Chain, error) {
	live, err := NewLive(exp, data, modelName)
	if err != nil {
		return nil, err
	}

	final, err := tea.NewProgram(live, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	return final.(Live).Chain(), nil
}
