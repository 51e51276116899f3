package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spindleworks/spindle/stack"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	demoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	exhaustedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectDemo modelState = iota
	stateStepping
	stateInputCount
)

type stepModel struct {
	err       error
	pull      func() (string, bool)
	close     func() error
	demos     []demo
	values    []string
	input     textinput.Model
	stackSize int
	selected  int
	exhausted bool
	state     modelState
}

func newStepModel(stackSize int) *stepModel {
	return &stepModel{
		demos:     demos(),
		stackSize: stackSize,
		state:     stateSelectDemo,
	}
}

func (m *stepModel) Init() tea.Cmd {
	return nil
}

func (m *stepModel) closeCurrent() {
	if m.close != nil {
		m.close()
	}
	m.pull = nil
	m.close = nil
	m.values = nil
	m.exhausted = false
}

func (m *stepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.closeCurrent()
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectDemo && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectDemo && m.selected < len(m.demos)-1 {
				m.selected++
			}

		case "enter":
			if m.state == stateInputCount {
				n, err := strconv.Atoi(m.input.Value())
				if err == nil {
					for i := 0; i < n && !m.exhausted; i++ {
						m.step()
					}
				}
				m.state = stateStepping
				return m, nil
			}
			if m.state == stateSelectDemo {
				pull, close, err := m.demos[m.selected].make(m.stackSize)
				if err != nil {
					m.err = err
					return m, nil
				}
				m.pull = pull
				m.close = close
				m.state = stateStepping
				return m, nil
			}
			m.step()

		case "n", " ":
			if m.state == stateStepping {
				m.step()
			}

		case "p":
			if m.state == stateStepping {
				ti := textinput.New()
				ti.Placeholder = "count"
				ti.Prompt = "pull: "
				ti.Width = 10
				ti.Focus()
				m.input = ti
				m.state = stateInputCount
				return m, nil
			}

		case "r":
			if m.state == stateStepping {
				m.closeCurrent()
				pull, close, err := m.demos[m.selected].make(m.stackSize)
				if err != nil {
					m.err = err
					m.state = stateSelectDemo
					return m, nil
				}
				m.pull = pull
				m.close = close
			}

		case "esc":
			switch m.state {
			case stateStepping:
				m.closeCurrent()
				m.state = stateSelectDemo
			case stateInputCount:
				m.state = stateStepping
			}
		}
	}

	if m.state == stateInputCount {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// step pulls one value out of the running generator.
func (m *stepModel) step() {
	if m.exhausted || m.pull == nil {
		return
	}
	v, ok := m.pull()
	if !ok {
		m.exhausted = true
		return
	}
	m.values = append(m.values, v)
}

func (m *stepModel) View() string {
	if m.err != nil {
		return exhaustedStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("spindle generator stepper"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectDemo:
		b.WriteString("Pick a generator:\n\n")
		for i, d := range m.demos {
			line := fmt.Sprintf("  %-8s %s", d.name, d.desc)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("▸" + line[1:]))
			} else {
				b.WriteString(demoStyle.Render(line))
			}
			b.WriteByte('\n')
		}
		b.WriteString(helpStyle.Render("\n↑/↓ select · enter start · q quit\n"))

	case stateStepping, stateInputCount:
		d := m.demos[m.selected]
		b.WriteString(demoStyle.Render(fmt.Sprintf("%s — %s", d.name, d.desc)))
		b.WriteString("\n\n")

		if len(m.values) == 0 && !m.exhausted {
			b.WriteString(helpStyle.Render("no values pulled yet\n"))
		}
		start := 0
		if len(m.values) > 16 {
			start = len(m.values) - 16
			b.WriteString(helpStyle.Render(fmt.Sprintf("… %d earlier values\n", start)))
		}
		for i := start; i < len(m.values); i++ {
			b.WriteString(valueStyle.Render(fmt.Sprintf("  #%-3d %s", i+1, m.values[i])))
			b.WriteByte('\n')
		}
		if m.exhausted {
			b.WriteString(exhaustedStyle.Render("  (exhausted)"))
			b.WriteByte('\n')
		}

		st := stack.ReadStats()
		b.WriteString(statStyle.Render(fmt.Sprintf(
			"\nstacks live %d · bytes live %d · allocated %d · released %d\n",
			st.Live, st.LiveBytes, st.AllocatedBytes, st.ReleasedBytes)))

		if m.state == stateInputCount {
			b.WriteString("\n" + m.input.View() + "\n")
			b.WriteString(helpStyle.Render("enter pull that many · esc cancel\n"))
		} else {
			b.WriteString(helpStyle.Render("\nn/space/enter pull · p pull many · r restart · esc back · q quit\n"))
		}
	}

	return b.String()
}

func runInteractive(stackSize int) error {
	p := tea.NewProgram(newStepModel(stackSize), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
