package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pfeifer.dev/scurve/profile"
)

var (
	activePhaseStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")).Padding(0, 1)
	phaseStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
)

type outputModel struct {
	queue string
	state profile.State
	phase profile.PhaseKind
	done  bool
	valid bool
}

func (m outputModel) Update(msg tea.Msg, mm *uiModel) (outputModel, tea.Cmd) {
	if mm.sub == nil {
		return m, nil
	}
	out, success := mm.sub.Read()
	if success {
		m.valid = true
		m.state = out.State()
		m.phase = out.Phase()
		m.done = out.Done()
	}

	return m, nil
}

func phaseBar(active profile.PhaseKind) string {
	cells := make([]string, 0, profile.PhaseCount)
	for k := range profile.PhaseCount {
		kind := profile.PhaseKind(k)
		if kind == active {
			cells = append(cells, activePhaseStyle.Render(kind.String()))
		} else {
			cells = append(cells, phaseStyle.Render(kind.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m outputModel) View() string {
	if !m.valid {
		return docStyle.Render(fmt.Sprintf("waiting for samples on %s\n\n(esc to return)", m.queue) + "\n")
	}
	status := "moving"
	if m.done {
		status = "done"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "time: %.4f\nposition: %.6f\nvelocity: %.6f\nacceleration: %.6f\njerk: %.6f\nstatus: %s\n\n",
		m.state.Time,
		m.state.Position,
		m.state.Velocity,
		m.state.Acceleration,
		m.state.Jerk,
		status,
	)
	b.WriteString(phaseBar(m.phase))
	b.WriteString("\n\n(esc to return)")
	return docStyle.Render(b.String()) + "\n"
}
