package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"pfeifer.dev/scurve/params"
	ms "pfeifer.dev/scurve/settings"
)

func settingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Show or change the persisted planner settings",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the current settings as json",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return printSettings(cmd)
				},
			},
			{
				Name:  "save",
				Usage: "Persist the current settings",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					ms.Settings.Save()
					return printSettings(cmd)
				},
			},
			{
				Name:  "default",
				Usage: "Reset and persist the default settings",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					ms.Settings.Default()
					ms.Settings.Save()
					return printSettings(cmd)
				},
			},
			{
				Name:  "recommended",
				Usage: "Persist the recommended settings",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					ms.Settings.Recommended()
					ms.Settings.Save()
					return printSettings(cmd)
				},
			},
			{
				Name:      "set",
				Usage:     "Change and persist a single setting",
				ArgsUsage: "<key> <value>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 2 {
						return errors.New("expected a key and a value")
					}
					if err := ms.Settings.Set(cmd.Args().Get(0), cmd.Args().Get(1)); err != nil {
						return err
					}
					ms.Settings.Save()
					return printSettings(cmd)
				},
			},
			{
				Name:  "reset",
				Usage: "Remove the persisted settings and the last plan",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if err := params.RemoveParam(params.PLANNER_SETTINGS); err != nil {
						return err
					}
					return params.RemoveParam(params.LAST_REQUEST)
				},
			},
			{
				Name:  "edit",
				Usage: "Edit settings in a terminal menu",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runUI(showSettings, ms.Settings.Queue)
				},
			},
		},
	}
}

func printSettings(cmd *cli.Command) error {
	data, err := json.MarshalIndent(ms.Settings, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not encode settings")
	}
	_, err = fmt.Fprintln(cmd.Root().Writer, string(data))
	return err
}

type settingsState int

const (
	showSettingsMenu settingsState = iota
	settingsExit
	settingsInput
	saveSettings
	defaultSettings
	recommendedSettings
)

type settingsItem struct {
	title, desc string
	key         string
	state       settingsState
}

func (i settingsItem) Title() string { return i.title }
func (i settingsItem) Description() string {
	if i.key == "" {
		return i.desc
	}
	val, err := ms.Settings.Get(i.key)
	if err != nil {
		return i.desc
	}
	return fmt.Sprintf("%s (%s)", i.desc, val)
}
func (i settingsItem) FilterValue() string { return i.title }

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

type settingsModel struct {
	list         list.Model
	state        settingsState
	textInput    textinput.Model
	selectedItem settingsItem
	prompt       string
	err          error
}

func (m settingsModel) Init() tea.Cmd {
	return nil
}

func (m settingsModel) Update(msg tea.Msg, mm *uiModel) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == settingsInput {
			switch msg.Type {
			case tea.KeyEnter:
				m.state = showSettingsMenu
				m.err = ms.Settings.Set(m.selectedItem.key, m.textInput.Value())
				m.textInput.Blur()
				return m, nil
			case tea.KeyEsc:
				m.state = showSettingsMenu
				m.textInput.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}
		if msg.Type == tea.KeyEnter && m.list.FilterState() != list.Filtering {
			it, ok := m.list.SelectedItem().(settingsItem)
			if !ok {
				return m, nil
			}
			m.selectedItem = it
			m.err = nil
			switch it.state {
			case settingsExit:
				mm.state = showMenu
			case settingsInput:
				m.state = settingsInput
				m.prompt = it.title
				val, _ := ms.Settings.Get(it.key)
				m.textInput.SetValue(val)
				m.textInput.CursorEnd()
				cmd := m.textInput.Focus()
				return m, cmd
			case saveSettings:
				ms.Settings.Save()
				mm.state = showMenu
			case defaultSettings:
				ms.Settings.Default()
			case recommendedSettings:
				ms.Settings.Recommended()
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m settingsModel) View() string {
	switch m.state {
	case settingsInput:
		return docStyle.Render(fmt.Sprintf(
			"%s\n\n%s\n\n%s",
			m.prompt,
			m.textInput.View(),
			"(enter to apply, esc to cancel)",
		) + "\n")
	default:
		view := m.list.View()
		if m.err != nil {
			view = errorStyle.Render(m.err.Error()) + "\n" + view
		}
		return docStyle.Render(view)
	}
}

func getSettingsModel() settingsModel {
	items := []list.Item{
		settingsItem{title: "Max Velocity", desc: "Velocity limit of planned profiles", key: "max_velocity", state: settingsInput},
		settingsItem{title: "Max Acceleration", desc: "Acceleration limit of planned profiles", key: "max_acceleration", state: settingsInput},
		settingsItem{title: "Max Jerk", desc: "Jerk limit of planned profiles", key: "max_jerk", state: settingsInput},
		settingsItem{title: "Start Position", desc: "Default start position", key: "start_position", state: settingsInput},
		settingsItem{title: "End Position", desc: "Default end position", key: "end_position", state: settingsInput},
		settingsItem{title: "Start Velocity", desc: "Default velocity at the start position", key: "start_velocity", state: settingsInput},
		settingsItem{title: "End Velocity", desc: "Default velocity at the end position", key: "end_velocity", state: settingsInput},
		settingsItem{title: "Epsilon", desc: "Tolerance under which values are treated as zero", key: "epsilon", state: settingsInput},
		settingsItem{title: "Sample Rate", desc: "Samples per second for sample and stream", key: "sample_rate", state: settingsInput},
		settingsItem{title: "Queue", desc: "Message queue used by stream and watch", key: "queue", state: settingsInput},
		settingsItem{title: "Set Log Level", desc: "Modify how verbose logging will be", key: "log_level", state: settingsInput},
		settingsItem{title: "Load Default Settings", desc: "Replace all settings with the defaults", state: defaultSettings},
		settingsItem{title: "Load Recommended Settings", desc: "Replace all settings with the recommended values", state: recommendedSettings},
		settingsItem{title: "Save Settings", desc: "Persists any updates to the settings", state: saveSettings},
		settingsItem{title: "Return to Main Menu", desc: "Exit settings configuration and return to the initial actions menu", state: settingsExit},
	}

	listDelegate := list.NewDefaultDelegate()
	m := settingsModel{list: list.New(items, listDelegate, 0, 0), textInput: textinput.New()}
	m.list.Title = "Planner Settings"
	return m
}
