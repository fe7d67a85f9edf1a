package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/FalsePattern/satori/coroutine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	demoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	transcriptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	stateStyles = map[coroutine.State]lipgloss.Style{
		coroutine.Suspended: lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")),
		coroutine.Running:   lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		coroutine.Idle:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		coroutine.Dead:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
)

type modelState int

const (
	stateSelectDemo modelState = iota
	stateStepping
)

type stepperModel struct {
	err        error
	co         *coroutine.Coroutine
	demo       demoInfo
	input      textinput.Model
	transcript []string
	selected   int
	state      modelState
}

func newStepperModel() *stepperModel {
	return &stepperModel{state: stateSelectDemo}
}

func (m *stepperModel) Init() tea.Cmd {
	return nil
}

func (m *stepperModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.teardown()
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectDemo && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectDemo && m.selected < len(demos)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectDemo:
				m.startDemo(demos[m.selected])
			case stateStepping:
				m.stepOnce()
			}
			return m, nil

		case "x":
			if m.state == stateStepping && m.co.State() == coroutine.Suspended {
				coroutine.Kill(m.co, 0)
				m.transcript = append(m.transcript, fmt.Sprintf("kill(0) [%s]", m.co.State()))
			}
			return m, nil

		case "r":
			if m.state == stateStepping {
				if err := m.co.Recycle(m.demo.entry()); err != nil {
					m.err = err
				} else {
					m.transcript = append(m.transcript, fmt.Sprintf("recycle [%s]", m.co.State()))
				}
			}
			return m, nil

		case "esc":
			if m.state == stateStepping {
				m.teardown()
				m.state = stateSelectDemo
				m.transcript = nil
				m.err = nil
			}
			return m, nil
		}
	}

	if m.state == stateStepping {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *stepperModel) startDemo(d demoInfo) {
	co, err := coroutine.New(0, d.entry())
	if err != nil {
		m.err = err
		return
	}
	m.demo = d
	m.co = co
	m.state = stateStepping

	ti := textinput.New()
	ti.Placeholder = "int"
	ti.Prompt = "resume arg: "
	ti.Width = 20
	ti.Focus()
	m.input = ti
}

func (m *stepperModel) stepOnce() {
	if m.co.State() != coroutine.Suspended {
		m.transcript = append(m.transcript, fmt.Sprintf("not resumable [%s]", m.co.State()))
		return
	}
	arg, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
	if err != nil {
		arg = 0
	}
	m.transcript = append(m.transcript, step(m.co, arg))
	m.input.SetValue("")
}

func (m *stepperModel) teardown() {
	if m.co != nil {
		if m.co.State() == coroutine.Suspended {
			coroutine.Kill(m.co, 0)
		}
		m.co.Deinit()
		m.co = nil
	}
}

func (m *stepperModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("satori stepper"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	switch m.state {
	case stateSelectDemo:
		b.WriteString("Select a demo coroutine:\n\n")
		for i, d := range demos {
			line := demoStyle.Render(d.name) + " " + typeStyle.Render(d.signature) + " — " + d.desc
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter start • q quit"))

	case stateStepping:
		st := m.co.State()
		b.WriteString(fmt.Sprintf("Demo %s  state %s\n\n",
			demoStyle.Render(m.demo.name),
			stateStyles[st].Render(st.String())))

		for _, line := range m.transcript {
			b.WriteString(transcriptStyle.Render(line))
			b.WriteString("\n")
		}
		if len(m.transcript) > 0 {
			b.WriteString("\n")
		}

		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter resume • x kill • r recycle • esc back • q quit"))
	}

	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newStepperModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
