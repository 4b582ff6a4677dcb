package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/nexusshelf/internal/session"
)

type loginFormModel struct {
	mode       session.Mode
	inputs     [3]textinput.Model
	focused    int
	result     *session.Credentials
	err        error
	canceled   bool
	standalone bool
	width      int
	height     int
}

// loginFields is the fixed input order; the mode decides which are shown.
var loginFields = [3]session.Field{session.FieldFullName, session.FieldEmail, session.FieldPassword}

var loginPlaceholders = map[session.Field]string{
	session.FieldFullName: "Your name",
	session.FieldEmail:    "librarian@example.org",
	session.FieldPassword: "••••••••",
}

func newLoginForm(mode session.Mode) loginFormModel {
	m := loginFormModel{mode: mode}

	const inputWidth = 40
	for i, f := range loginFields {
		ti := textinput.New()
		ti.Placeholder = loginPlaceholders[f]
		ti.CharLimit = 120
		ti.Width = inputWidth
		ti.Prompt = ""
		if f == session.FieldPassword {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		m.inputs[i] = ti
	}
	m.focus()
	return m
}

// fields returns the inputs shown for the current mode.
func (m loginFormModel) fields() []session.Field {
	return session.RequiredFields(m.mode)
}

func (m *loginFormModel) input(f session.Field) *textinput.Model {
	for i, lf := range loginFields {
		if lf == f {
			return &m.inputs[i]
		}
	}
	return nil
}

func (m *loginFormModel) focus() tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	return m.input(m.fields()[m.focused]).Focus()
}

func (m loginFormModel) credentials() session.Credentials {
	c := session.Credentials{
		Mode:     m.mode,
		Email:    strings.TrimSpace(m.input(session.FieldEmail).Value()),
		Password: m.input(session.FieldPassword).Value(),
	}
	if m.mode == session.ModeSignUp {
		c.FullName = strings.TrimSpace(m.input(session.FieldFullName).Value())
	}
	return c
}

func (m loginFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.canceled = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case "ctrl+t":
			// Switch between sign in and sign up
			if m.mode == session.ModeSignIn {
				m.mode = session.ModeSignUp
			} else {
				m.mode = session.ModeSignIn
			}
			m.focused = 0
			m.err = nil
			return m, m.focus()

		case "enter":
			if m.focused < len(m.fields())-1 {
				m.focused++
				return m, m.focus()
			}
			c := m.credentials()
			if err := c.Validate(); err != nil {
				m.err = err
				return m, nil
			}
			m.result = &c
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case "tab", "shift+tab", "up", "down":
			if msg.String() == "up" || msg.String() == "shift+tab" {
				m.focused--
			} else {
				m.focused++
			}
			n := len(m.fields())
			if m.focused < 0 {
				m.focused = n - 1
			} else if m.focused >= n {
				m.focused = 0
			}
			return m, m.focus()
		}
	}

	in := m.input(m.fields()[m.focused])
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return m, cmd
}

func (m loginFormModel) View() string {
	outerStyle := lipgloss.NewStyle().
		Padding(2, 4)

	var b strings.Builder

	title := "Sign in to NexusShelf"
	other := "ctrl+t: create an account"
	if m.mode == session.ModeSignUp {
		title = "Create a NexusShelf account"
		other = "ctrl+t: sign in instead"
	}
	b.WriteString(StyleHeader.Render(title))
	b.WriteString("\n")
	b.WriteString(StyleHelp.Render("Sindhi & English book digitization catalog"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	for i, f := range m.fields() {
		label := strings.ToUpper(string(f[:1])) + string(f[1:]) + ":"
		if i == m.focused {
			b.WriteString(StyleHighlight.Render("› " + label))
		} else {
			b.WriteString(StyleNormal.Render("  " + label))
		}
		b.WriteString("\n  ")
		b.WriteString(m.input(f).View())
		b.WriteString("\n\n")
	}

	b.WriteString(StyleHelp.Render("Tab/↑↓: Navigate  Enter: Continue  " + other + "  Esc: Cancel"))
	b.WriteString("\n")

	innerPadding := lipgloss.NewStyle().
		Padding(0, 2, 0, 1)

	return outerStyle.Render(StyleBorder.Render(innerPadding.Render(b.String())))
}

// RunLoginForm launches the sign-in form and returns the collected
// credentials, or an error if canceled.
func RunLoginForm(mode session.Mode) (*session.Credentials, error) {
	m := newLoginForm(mode)
	m.standalone = true
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running form: %w", err)
	}

	fm, ok := finalModel.(loginFormModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	if fm.canceled {
		return nil, fmt.Errorf("canceled")
	}
	if fm.result == nil {
		return nil, fmt.Errorf("no data collected")
	}
	return fm.result, nil
}
