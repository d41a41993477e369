package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wippyai/hexlayout/errors"
	"github.com/wippyai/hexlayout/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// browseRows is the number of values listed at once.
const browseRows = 15

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse IMAGE LAYOUT",
		Short: "Browse the decoded values interactively.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.isTerminal() {
				return errors.Unsupported(errors.PhaseRender, "browse needs an interactive terminal")
			}
			_, rep, err := a.materialize(cmd.ErrOrStderr(), args[0], args[1])
			if err != nil {
				return err
			}
			p := tea.NewProgram(newBrowseModel(args[0], rep),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}
}

type browseModel struct {
	filename string
	values   []*report.Value
	visible  []int
	filter   textinput.Model
	selected int
}

func newBrowseModel(filename string, rep *report.Report) *browseModel {
	ti := textinput.New()
	ti.Placeholder = "filter by path"
	ti.Prompt = "/ "
	ti.Width = 40
	ti.Focus()

	m := &browseModel{
		filename: filename,
		values:   rep.List,
		filter:   ti,
	}
	m.applyFilter()
	return m
}

func (m *browseModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.selected < len(m.visible)-1 {
				m.selected++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.filter.Value()
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

// applyFilter keeps the values whose path contains the filter text.
func (m *browseModel) applyFilter() {
	needle := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, v := range m.values {
		if strings.Contains(strings.ToLower(v.Path()), needle) {
			m.visible = append(m.visible, i)
		}
	}
	m.selected = 0
}

func (m *browseModel) current() (*report.Value, bool) {
	if len(m.visible) == 0 {
		return nil, false
	}
	return m.values[m.visible[m.selected]], true
}

func (m *browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("hexlayout"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	first := 0
	if m.selected >= browseRows {
		first = m.selected - browseRows + 1
	}
	last := min(first+browseRows, len(m.visible))
	for i := first; i < last; i++ {
		v := m.values[m.visible[i]]
		line := fmt.Sprintf("%-32s %08X", v.Path(), v.Addr())
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	if len(m.visible) == 0 {
		b.WriteString(helpStyle.Render("  no matching values"))
		b.WriteString("\n")
	}

	if v, ok := m.current(); ok {
		b.WriteString("\n")
		b.WriteString(pathStyle.Render(v.Path()))
		b.WriteString(" ")
		b.WriteString(typeStyle.Render(v.Type()))
		b.WriteString(fmt.Sprintf(" @ 0x%08X\n", v.Addr()))
		b.WriteString(valueStyle.Render(v.String()))
		b.WriteString("\n")
		b.WriteString(valueStyle.Render(v.Hex()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("type to filter • ↑/↓ select • esc quit"))
	return b.String()
}
