package cli

import (
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"pfeifer.dev/scurve/cereal"
	"pfeifer.dev/scurve/utils"
)

type mainState int

const (
	showMenu mainState = iota
	showSettings
	showOutput
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)

type TickMsg time.Time

func tickEvery() tea.Cmd {
	return tea.Every(50*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type uiModel struct {
	list     list.Model
	state    mainState
	settings settingsModel
	output   outputModel
	sub      *cereal.Subscriber[cereal.Sample]
}

type item struct {
	title, desc string
	state       mainState
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

func initialModel(sub *cereal.Subscriber[cereal.Sample]) uiModel {
	items := []list.Item{
		item{title: "Settings", desc: "Modify the planner settings", state: showSettings},
		item{title: "Watch", desc: "Watch the samples of a running stream", state: showOutput},
	}

	listDelegate := list.NewDefaultDelegate()
	m := uiModel{list: list.New(items, listDelegate, 0, 0), settings: getSettingsModel(), sub: sub}
	m.list.Title = "Scurve Actions"
	return m
}

func (m uiModel) Init() tea.Cmd {
	return tickEvery()
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEsc && m.state == showOutput {
			m.state = showMenu
			return m, nil
		}
		if msg.Type == tea.KeyEnter && m.state == showMenu && m.list.FilterState() != list.Filtering {
			it := m.list.SelectedItem().(item)
			m.state = it.state
			return m, nil
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		m.settings, _ = m.settings.Update(msg, &m)
		return m, nil
	case TickMsg:
		m.output, _ = m.output.Update(msg, &m)
		return m, tickEvery()
	}

	var cmd tea.Cmd
	switch m.state {
	case showSettings:
		m.settings, cmd = m.settings.Update(msg, &m)
	case showOutput:
		m.output, cmd = m.output.Update(msg, &m)
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m uiModel) View() string {
	switch m.state {
	case showSettings:
		return m.settings.View()
	case showOutput:
		return m.output.View()
	}
	return docStyle.Render(m.list.View())
}

// runUI starts the terminal menu in the given state. The queue is only opened
// when the watch view can be reached.
func runUI(state mainState, queue string) error {
	var sub *cereal.Subscriber[cereal.Sample]
	if state != showSettings {
		s, err := cereal.NewSampleSubscriber(queue, true)
		if err != nil {
			return err
		}
		sub = &s
	}
	m := initialModel(sub)
	m.state = state
	m.output.queue = queue

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		utils.Loge(err)
		return errors.Wrap(err, "terminal ui failed")
	}
	return nil
}
