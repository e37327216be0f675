package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/abigen/abi"
	"github.com/wippyai/abigen/codegen"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateBrowse modelState = iota
	stateFilter
	stateCode
	stateWarnings
)

type interactiveModel struct {
	res      *codegen.Result
	filename string
	visible  []int
	filter   textinput.Model
	code     viewport.Model
	selected int
	width    int
	height   int
	state    modelState
}

func newInteractiveModel(filename string, res *codegen.Result) *interactiveModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter entries"
	ti.Width = 40

	m := &interactiveModel{
		res:      res,
		filename: filename,
		filter:   ti,
		code:     viewport.New(80, 20),
		state:    stateBrowse,
	}
	m.applyFilter()
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

// applyFilter keeps the fragments whose entry name contains the filter text.
func (m *interactiveModel) applyFilter() {
	q := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, f := range m.res.Fragments {
		if q == "" || strings.Contains(strings.ToLower(f.Entry), q) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *interactiveModel) current() (codegen.Fragment, bool) {
	if len(m.visible) == 0 {
		return codegen.Fragment{}, false
	}
	return m.res.Fragments[m.visible[m.selected]], true
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.code.Width = msg.Width
		m.code.Height = max(msg.Height-4, 1)
		return m, nil

	case tea.KeyMsg:
		if m.state == stateFilter {
			switch msg.String() {
			case "enter", "esc":
				m.filter.Blur()
				m.state = stateBrowse
				return m, nil
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateBrowse && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "/":
			if m.state == stateBrowse {
				m.state = stateFilter
				return m, m.filter.Focus()
			}

		case "w":
			if m.state == stateBrowse {
				m.code.SetContent(m.warningText())
				m.code.GotoTop()
				m.state = stateWarnings
			}

		case "enter":
			if m.state == stateBrowse {
				if f, ok := m.current(); ok {
					m.code.SetContent(codeStyle.Render(f.Code))
					m.code.GotoTop()
					m.state = stateCode
				}
			}

		case "esc":
			if m.state == stateCode || m.state == stateWarnings {
				m.state = stateBrowse
			}
		}
	}

	if m.state == stateCode || m.state == stateWarnings {
		var cmd tea.Cmd
		m.code, cmd = m.code.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) warningText() string {
	if len(m.res.Warnings) == 0 {
		return "No warnings."
	}
	var b strings.Builder
	for _, w := range m.res.Warnings {
		b.WriteString(w.Error())
		b.WriteString("\n")
	}
	return b.String()
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ABI Explorer"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(helpStyle.Render(fmt.Sprintf("  %d entries, %d warnings", len(m.res.Fragments), len(m.res.Warnings))))
	b.WriteString("\n\n")

	switch m.state {
	case stateBrowse, stateFilter:
		if m.state == stateFilter || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n\n")
		}
		if len(m.visible) == 0 {
			b.WriteString(helpStyle.Render("no matching entries"))
			b.WriteString("\n")
		}
		for i, idx := range m.visible {
			line := m.formatFragment(m.res.Fragments[idx])
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter code • / filter • w warnings • q quit"))

	case stateCode, stateWarnings:
		b.WriteString(m.code.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatFragment(f codegen.Fragment) string {
	return kindStyle.Render(fmt.Sprintf("%-10s", kindLabel(f.Type))) + " " + f.Signature
}

func kindLabel(t abi.EntryType) string {
	switch t {
	case abi.EntryStruct:
		return "struct"
	case abi.EntryEnum:
		return "enum"
	case abi.EntryFunction:
		return "fn"
	case abi.EntryTypeAlias:
		return "alias"
	default:
		return string(t)
	}
}

func runInteractive(filename string, res *codegen.Result) error {
	p := tea.NewProgram(newInteractiveModel(filename, res), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
