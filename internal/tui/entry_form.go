package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
	"github.com/blackwell-systems/nexusshelf/internal/editor"
	"github.com/blackwell-systems/nexusshelf/internal/ingest"
	"github.com/blackwell-systems/nexusshelf/internal/session"
)

// ErrCanceled is returned when a form is closed without submitting.
var ErrCanceled = errors.New("canceled")

// entryField binds one text input to a Book field.
type entryField struct {
	label       string
	placeholder string
	limit       int
	ref         func(*catalog.Book) *string
}

var entryFields = []entryField{
	{"File name", "Title-Author-Year-Source", 255, func(b *catalog.Book) *string { return &b.FileName }},
	{"Title (EN)", "Shah Jo Risalo", 200, func(b *catalog.Book) *string { return &b.TitleEnglish }},
	{"Title (SD)", "شاهه جو رسالو", 200, func(b *catalog.Book) *string { return &b.TitleSindhi }},
	{"Author (EN)", "Author name", 120, func(b *catalog.Book) *string { return &b.AuthorEnglish }},
	{"Author (SD)", "ليکڪ", 120, func(b *catalog.Book) *string { return &b.AuthorSindhi }},
	{"Year", "1744", 10, func(b *catalog.Book) *string { return &b.Year }},
	{"Publisher", "Publisher", 120, func(b *catalog.Book) *string { return &b.Publisher }},
	{"Category", "ctrl+g to suggest", 60, func(b *catalog.Book) *string { return &b.Category }},
	{"Language", editor.DefaultLanguage, 60, func(b *catalog.Book) *string { return &b.Language }},
	{"Source", "SLA", 120, func(b *catalog.Book) *string { return &b.Source }},
	{"Link", "https://", 500, func(b *catalog.Book) *string { return &b.Link }},
	{"Thumbnail", "https://", 500, func(b *catalog.Book) *string { return &b.Thumbnail }},
	{"Stage", editor.DefaultStage, 60, func(b *catalog.Book) *string { return &b.Stage }},
	{"Scanned by", "", 120, func(b *catalog.Book) *string { return &b.ScannedBy }},
	{"Assigned to", "", 120, func(b *catalog.Book) *string { return &b.AssignedTo }},
}

const (
	entryFieldFileName = 0
	entryFieldCategory = 7
)

// categoryMsg carries a finished suggestion back to the form.
type categoryMsg struct {
	category string
	err      error
}

type entryFormModel struct {
	ctx        context.Context
	draft      *editor.Draft
	user       session.User
	suggester  editor.CategorySuggester
	now        func() time.Time
	inputs     []textinput.Model
	focused    int
	spinner    spinner.Model
	suggesting bool
	result     *catalog.Book
	err        error
	canceled   bool
	standalone bool
	width      int
	height     int
	activeCmd  string
}

func newEntryForm(ctx context.Context, d *editor.Draft, u session.User, s editor.CategorySuggester) entryFormModel {
	m := entryFormModel{
		ctx:       ctx,
		draft:     d,
		user:      u,
		suggester: s,
		now:       time.Now,
		inputs:    make([]textinput.Model, len(entryFields)),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}

	const fieldWidth = 48
	for i, f := range entryFields {
		ti := textinput.New()
		ti.Placeholder = f.placeholder
		ti.CharLimit = f.limit
		ti.Width = fieldWidth
		ti.Prompt = "│ "
		m.inputs[i] = ti
	}
	m.fill(-1)
	m.inputs[0].Focus()
	return m
}

// fill copies the draft into every input except skip.
func (m *entryFormModel) fill(skip int) {
	for i, f := range entryFields {
		if i == skip {
			continue
		}
		m.inputs[i].SetValue(*f.ref(&m.draft.Book))
	}
}

// collect copies the inputs into the draft. A changed file name is
// decoded into the title, author, year and source fields.
func (m *entryFormModel) collect() {
	prev := m.draft.Book.FileName
	for i, f := range entryFields {
		if i == entryFieldFileName {
			continue
		}
		*f.ref(&m.draft.Book) = m.inputs[i].Value()
	}
	if raw := m.inputs[entryFieldFileName].Value(); raw != prev {
		m.draft.SetFileName(raw)
		m.fill(entryFieldFileName)
	}
}

func (m entryFormModel) suggest() tea.Cmd {
	d := *m.draft
	ctx, s := m.ctx, m.suggester
	return func() tea.Msg {
		err := d.SuggestCategory(ctx, s)
		return categoryMsg{category: d.Book.Category, err: err}
	}
}

func (m entryFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m entryFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.suggesting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case categoryMsg:
		m.suggesting = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.draft.Book.Category = msg.category
		m.inputs[entryFieldCategory].SetValue(msg.category)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.canceled = true
			return m, m.quit()

		case "ctrl+s":
			m.collect()
			b, err := m.draft.Submit(m.user, m.now())
			if err != nil {
				m.err = err
				return m, nil
			}
			m.result = &b
			return m, m.quit()

		case "ctrl+g":
			m.collect()
			if m.suggesting {
				return m, nil
			}
			if strings.TrimSpace(m.draft.Book.TitleEnglish) == "" {
				m.err = editor.ErrEnglishTitleRequired
				return m, nil
			}
			m.err = nil
			m.suggesting = true
			m.activeCmd = "ctrl+g"
			return m, tea.Batch(m.suggest(), m.spinner.Tick, HighlightCmd())

		case "ctrl+t":
			m.collect()
			m.draft.Book.Status = m.draft.Book.Status.Next()
			m.activeCmd = "ctrl+t"
			return m, HighlightCmd()

		case "tab", "shift+tab", "up", "down", "enter":
			m.collect()
			if msg.String() == "up" || msg.String() == "shift+tab" {
				m.focused--
			} else {
				m.focused++
			}
			if m.focused < 0 {
				m.focused = len(m.inputs) - 1
			} else if m.focused >= len(m.inputs) {
				m.focused = 0
			}

			cmds := make([]tea.Cmd, 0, 2)
			for i := range m.inputs {
				if i == m.focused {
					cmds = append(cmds, m.inputs[i].Focus())
				} else {
					m.inputs[i].Blur()
				}
			}
			m.activeCmd = "tab"
			cmds = append(cmds, HighlightCmd())
			return m, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		m.err = nil
		m.collect()
	}
	return m, cmd
}

func (m entryFormModel) quit() tea.Cmd {
	if m.standalone {
		return tea.Quit
	}
	return nil
}

// visibleRows is how many fields fit the terminal.
func (m entryFormModel) visibleRows() int {
	if m.height == 0 {
		return len(m.inputs)
	}
	// header, separators, status and footer take about 14 lines
	n := (m.height - 14) / 2
	if n < 3 {
		n = 3
	}
	if n > len(m.inputs) {
		n = len(m.inputs)
	}
	return n
}

func (m entryFormModel) View() string {
	outerStyle := lipgloss.NewStyle().Padding(1, 4)

	sepStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#444444"})
	formLabel := lipgloss.NewStyle().
		Foreground(ColorGray).
		Width(13).
		Align(lipgloss.Right).
		PaddingRight(1)
	formLabelActive := formLabel.
		Foreground(ColorYellow).
		Bold(true)

	const w = 66
	sep := sepStyle.Render(strings.Repeat("─", w))

	var b strings.Builder

	// ── Header ──
	if m.draft.IsNew() {
		b.WriteString(StyleHeader.Render("New Catalog Entry"))
	} else {
		b.WriteString(StyleHeader.Render("Edit Catalog Entry"))
		b.WriteString("\n")
		b.WriteString(StyleHelp.Render(m.draft.Book.ID))
	}
	b.WriteString("\n")
	status := m.draft.Book.Status
	b.WriteString(StyleHelp.Render("Status: "))
	b.WriteString(StatusStyle(status).Render(string(status)))
	if m.suggesting {
		b.WriteString("  ")
		b.WriteString(m.spinner.View())
		b.WriteString(StyleHelp.Render(" suggesting category..."))
	}
	b.WriteString("\n")
	b.WriteString(sep)
	b.WriteString("\n\n")

	// ── Error ──
	if m.err != nil {
		b.WriteString(StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	// ── Form fields ──
	rows := m.visibleRows()
	start := m.focused - rows + 1
	if start < 0 {
		start = 0
	}
	for i := start; i < start+rows && i < len(m.inputs); i++ {
		label := entryFields[i].label
		if i == m.focused {
			b.WriteString(formLabelActive.Render("› " + label))
		} else {
			b.WriteString(formLabel.Render(label))
		}
		b.WriteString(m.inputs[i].View())
		if ingest.HasArabicScript(m.inputs[i].Value()) {
			b.WriteString(StyleTag.Render(" ⟵"))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(sep)
	b.WriteString("\n")

	// ── Footer ──
	b.WriteString(RenderFooterBar([]ShortcutEntry{
		{Key: "tab", Label: "Tab/↑↓ navigate"},
		{Key: "ctrl+g", Label: "ctrl+g suggest category"},
		{Key: "ctrl+t", Label: "ctrl+t status"},
		{Key: "", Label: "ctrl+s save"},
		{Key: "", Label: "esc cancel"},
	}, m.activeCmd))
	b.WriteString("\n")

	innerPadding := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	return outerStyle.Render(StyleBorder.Render(innerPadding.Render(b.String())))
}

// EntryFormOptions configures RunEntryForm.
type EntryFormOptions struct {
	User      session.User
	Suggester editor.CategorySuggester
}

// RunEntryForm launches the entry editor for d. Returns the submitted
// record, or ErrCanceled.
func RunEntryForm(ctx context.Context, d *editor.Draft, opts EntryFormOptions) (*catalog.Book, error) {
	m := newEntryForm(ctx, d, opts.User, opts.Suggester)
	m.standalone = true
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running form: %w", err)
	}

	fm, ok := finalModel.(entryFormModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	if fm.canceled {
		return nil, ErrCanceled
	}
	if fm.result == nil {
		return nil, fmt.Errorf("no data collected")
	}
	return fm.result, nil
}
