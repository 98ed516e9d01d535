package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/papari-man/LVILC/internal/cosmo"
	"github.com/papari-man/LVILC/internal/dataset"
	"github.com/papari-man/LVILC/internal/experiment"
	"github.com/papari-man/LVILC/internal/mcmc"
)

var modelInfo = map[string]string{
	"lvilc":       "black hole infall cosmology",
	"lcdm":        "standard flat cosmology",
	"lcdm-approx": "low-redshift expansion",
	"eds":         "matter-only universe",
}

const (
	stateMenu = iota
	stateParams
	statePredict
)

var predictRedshifts = []float64{0.1, 0.5, 1.0, 1.5, 2.0}

// Explorer is a Bubble Tea model for browsing the cosmological models,
// adjusting their parameters and reading off the predicted observables
// against the loaded sample.
type Explorer struct {
	state       int
	cursor      int
	models      []string
	selected    string
	model       cosmo.Model
	paramNames  []string
	paramCursor int
	editing     bool
	editBuf     string
	data        *dataset.CosmologyData
	registry    *experiment.Registry
}

func NewExplorer(data *dataset.CosmologyData) *Explorer {
	reg := experiment.NewRegistry()
	return &Explorer{
		state:    stateMenu,
		models:   reg.ListModels(),
		data:     data,
		registry: reg,
	}
}

func (e Explorer) Init() tea.Cmd { return nil }

func (e Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch e.state {
		case stateMenu:
			return e.menuKey(msg)
		case stateParams:
			return e.paramsKey(msg)
		case statePredict:
			return e.predictKey(msg)
		}
	}
	return e, nil
}

func (e Explorer) menuKey(msg tea.KeyMsg) (Explorer, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return e, tea.Quit
	case "up", "k":
		if e.cursor > 0 {
			e.cursor--
		}
	case "down", "j":
		if e.cursor < len(e.models)-1 {
			e.cursor++
		}
	case "enter", " ":
		e.selected = e.models[e.cursor]
		model, err := e.registry.GetModel(e.selected)
		if err != nil {
			return e, nil
		}
		e.model = model
		e.paramNames = model.ParamNames()
		e.paramCursor = 0
		e.state = stateParams
	}
	return e, nil
}

func (e Explorer) paramsKey(msg tea.KeyMsg) (Explorer, tea.Cmd) {
	if e.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(e.editBuf, "%f", &val); err == nil {
				e.model.SetParam(e.paramNames[e.paramCursor], val)
			}
			e.editing, e.editBuf = false, ""
		case "escape":
			e.editing, e.editBuf = false, ""
		case "backspace":
			if len(e.editBuf) > 0 {
				e.editBuf = e.editBuf[:len(e.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E' {
					e.editBuf += string(c)
				}
			}
		}
		return e, nil
	}
	switch msg.String() {
	case "ctrl+c":
		return e, tea.Quit
	case "q", "escape":
		e.state = stateMenu
	case "up", "k":
		if e.paramCursor > 0 {
			e.paramCursor--
		}
	case "down", "j":
		if e.paramCursor < len(e.paramNames)-1 {
			e.paramCursor++
		}
	case "enter":
		e.editing = true
		e.editBuf = fmt.Sprintf("%g", e.paramValue(e.paramCursor))
	case "left", "h":
		e.scaleParam(0.95)
	case "right", "l":
		e.scaleParam(1.05)
	case "s", " ":
		e.state = statePredict
	}
	return e, nil
}

func (e Explorer) predictKey(msg tea.KeyMsg) (Explorer, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return e, tea.Quit
	case "q", "escape":
		e.state = stateParams
	case "m":
		e.state = stateMenu
	}
	return e, nil
}

func (e *Explorer) paramValue(i int) float64 {
	return e.model.Params()[i]
}

func (e *Explorer) scaleParam(factor float64) {
	name := e.paramNames[e.paramCursor]
	val := e.paramValue(e.paramCursor) * factor
	e.model.SetParam(name, val)
}

func (e Explorer) View() string {
	switch e.state {
	case stateMenu:
		return e.viewMenu()
	case stateParams:
		return e.viewParams()
	case statePredict:
		return e.viewPredict()
	}
	return ""
}

func (e Explorer) viewMenu() string {
	var b strings.Builder
	h := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true)
	b.WriteString("\n\n    " + h.Render("LVILC") + "\n    " + Subtle.Render("cosmological model explorer") + "\n    " + Subtle.Render(strings.Repeat("─", 27)) + "\n\n")
	for i, name := range e.models {
		desc := modelInfo[name]
		if i == e.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true).Render("▸"),
				lipgloss.NewStyle().Foreground(CurrentTheme.Text).Bold(true).Render(fmt.Sprintf("%-14s", name)),
				lipgloss.NewStyle().Foreground(CurrentTheme.Secondary).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n",
				Subtle.Render(fmt.Sprintf("%-14s", name)),
				lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Render(desc)))
		}
	}
	b.WriteString("\n    " + KeyHint.Render("j/k navigate  enter select  q quit") + "\n")
	return b.String()
}

func (e Explorer) viewParams() string {
	var b strings.Builder
	h := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true)
	b.WriteString("\n\n    " + h.Render(strings.ToUpper(e.selected)) + "\n    " + Subtle.Render(modelInfo[e.selected]) + "\n    " + Subtle.Render(strings.Repeat("─", 27)) + "\n\n")
	for i, name := range e.paramNames {
		valStr := fmt.Sprintf("%12.5g", e.paramValue(i))
		if e.editing && i == e.paramCursor {
			valStr = fmt.Sprintf("%12s", e.editBuf+"_")
		}
		if i == e.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n",
				lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true).Render("▸"),
				lipgloss.NewStyle().Foreground(CurrentTheme.Text).Bold(true).Render(fmt.Sprintf("%-10s", name)),
				lipgloss.NewStyle().Foreground(CurrentTheme.Secondary).Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("      %s %s\n",
				Subtle.Render(fmt.Sprintf("%-10s", name)),
				lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Render(valStr)))
		}
	}
	b.WriteString("\n    " + KeyHint.Render("j/k select  h/l adjust  enter edit  s predict  esc back") + "\n")
	return b.String()
}

func (e Explorer) viewPredict() string {
	var b strings.Builder
	h := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true)
	b.WriteString("\n\n    " + h.Render(strings.ToUpper(e.selected)+" PREDICTIONS") + "\n    " + Subtle.Render(strings.Repeat("─", 40)) + "\n\n")

	b.WriteString("    " + MetricLabel.Render(fmt.Sprintf("%-8s %-14s %-10s %-16s", "z", "d_L (Mpc)", "μ", "H(z) (km/s/Mpc)")) + "\n")
	for _, z := range predictRedshifts {
		row := fmt.Sprintf("%-8.2f %-14.2f %-10.2f %-16.2f",
			z, e.model.LuminosityDistance(z), e.model.DistanceModulus(z), e.model.HubbleParameter(z))
		b.WriteString("    " + MetricValue.Render(row) + "\n")
	}

	mus := make([]float64, 0, 40)
	for i := 0; i < 40; i++ {
		z := 0.05 + float64(i)*0.05
		mus = append(mus, e.model.DistanceModulus(z))
	}
	b.WriteString("\n    " + MetricLabel.Render("μ(z), z ∈ [0.05, 2.0]") + "\n")
	b.WriteString("    " + SparklineChart(mus, 40) + "\n")

	chi2 := mcmc.ChiSquared(e.model, e.data)
	dof := e.data.Len() - len(e.paramNames)
	b.WriteString("\n    " + MetricLabel.Render("chi2 / dof") + " " + MetricValue.Render(fmt.Sprintf("%.2f / %d", chi2, dof)) + "\n")

	b.WriteString("\n    " + KeyHint.Render("esc params  m models  ctrl+c quit") + "\n")
	return b.String()
}

// RunExplore opens the explorer over a sample.
func RunExplore(data *dataset.CosmologyData) error {
	_, err := tea.NewProgram(NewExplorer(data), tea.WithAltScreen()).Run()
	return err
}
