// Package prompt asks for admin credentials in the terminal.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user quits with Esc or Ctrl+C.
var ErrCancelled = errors.New("prompt cancelled")

const (
	msgRequired = "A value is required."
	msgMismatch = "The two entered values do not match."
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type fieldKind int

const (
	fieldUsername fieldKind = iota
	fieldPassword
	fieldConfirm
)

// Credentials holds what the user typed. Fields that were not asked for are empty.
type Credentials struct {
	Username string
	Password string
}

type model struct {
	kinds     []fieldKind
	inputs    []textinput.Model
	focus     int
	err       string
	done      bool
	cancelled bool
}

func newModel(askUsername, askPassword bool) model {
	m := model{}
	if askUsername {
		m.add(fieldUsername, "Username: ", false)
	}
	if askPassword {
		m.add(fieldPassword, "Password: ", true)
		m.add(fieldConfirm, "Repeat for confirmation: ", true)
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	return m
}

func (m *model) add(kind fieldKind, label string, hidden bool) {
	in := textinput.New()
	in.Prompt = label
	if hidden {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	m.kinds = append(m.kinds, kind)
	m.inputs = append(m.inputs, in)
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submit validates the focused field and moves on, or finishes after the last one.
func (m model) submit() (tea.Model, tea.Cmd) {
	if m.inputs[m.focus].Value() == "" {
		m.err = msgRequired
		return m, nil
	}
	m.err = ""

	if m.kinds[m.focus] == fieldConfirm && m.value(fieldPassword) != m.value(fieldConfirm) {
		m.err = msgMismatch
		m.inputs[m.focus].Reset()
		m.inputs[m.focus].Blur()
		m.focus = m.indexOf(fieldPassword)
		m.inputs[m.focus].Reset()
		m.inputs[m.focus].Focus()
		return m, nil
	}

	if m.focus == len(m.inputs)-1 {
		m.done = true
		m.inputs[m.focus].Blur()
		return m, tea.Quit
	}
	m.inputs[m.focus].Blur()
	m.focus++
	m.inputs[m.focus].Focus()
	return m, textinput.Blink
}

func (m model) indexOf(kind fieldKind) int {
	for i, k := range m.kinds {
		if k == kind {
			return i
		}
	}
	return -1
}

func (m model) value(kind fieldKind) string {
	if i := m.indexOf(kind); i >= 0 {
		return m.inputs[i].Value()
	}
	return ""
}

func (m model) credentials() Credentials {
	return Credentials{Username: m.value(fieldUsername), Password: m.value(fieldPassword)}
}

func (m model) View() string {
	if m.done || m.cancelled {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Watchlist admin account") + "\n\n")
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteRune('\n')
	}
	if m.err != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.err) + "\n")
	}
	b.WriteString("\n" + hintStyle.Render("Enter to continue, Esc to cancel"))
	return b.String()
}

// Ask prompts for the username and/or password. The password is typed twice and
// never echoed.
func Ask(in io.Reader, out io.Writer, askUsername, askPassword bool) (Credentials, error) {
	if !askUsername && !askPassword {
		return Credentials{}, nil
	}
	p := tea.NewProgram(newModel(askUsername, askPassword), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return Credentials{}, fmt.Errorf("run prompt: %w", err)
	}
	m := final.(model)
	if m.cancelled || !m.done {
		return Credentials{}, ErrCancelled
	}
	return m.credentials(), nil
}
