package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
	"github.com/blackwell-systems/nexusshelf/internal/editor"
	"github.com/blackwell-systems/nexusshelf/internal/operations"
	"github.com/blackwell-systems/nexusshelf/internal/session"
)

// deleteQuestion is asked before any record is removed.
const deleteQuestion = "Are you sure you want to delete this book entry from the database?"

type screen int

const (
	screenStarting screen = iota
	screenLogin
	screenTable
	screenForm
	screenConfirm
)

// DashboardOptions configures RunDashboard.
type DashboardOptions struct {
	Effects   *operations.Effects
	Suggester editor.CategorySuggester
	// Backend is shown in the header, e.g. "supabase".
	Backend string
}

type dashboardModel struct {
	ctx       context.Context
	fx        *operations.Effects
	suggester editor.CategorySuggester
	backend   string

	state  operations.State
	screen screen
	login  loginFormModel
	form   entryFormModel

	table   table.Model
	rows    []catalog.Book
	search  textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    DashboardKeys

	confirmID string
	width     int
	height    int
	activeCmd string
}

var dashboardColumns = []table.Column{
	{Title: "File name", Width: 26},
	{Title: "Title", Width: 24},
	{Title: "عنوان", Width: 20},
	{Title: "Author", Width: 20},
	{Title: "Category", Width: 12},
	{Title: "Status", Width: 11},
}

func newDashboard(ctx context.Context, opts DashboardOptions) dashboardModel {
	search := textinput.New()
	search.Placeholder = "title, author or file name"
	search.Prompt = "/ "
	search.CharLimit = 100
	search.Width = 40

	t := table.New(
		table.WithColumns(dashboardColumns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(st)

	return dashboardModel{
		ctx:       ctx,
		fx:        opts.Effects,
		suggester: opts.Suggester,
		backend:   opts.Backend,
		table:     t,
		search:    search,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(StyleHighlight)),
		help:      help.New(),
		keys:      NewDashboardKeys(),
	}
}

func (m dashboardModel) Init() tea.Cmd {
	fx := m.fx
	restore := func() tea.Msg { return fx.RestoreSession() }
	return tea.Batch(restore, m.spinner.Tick)
}

// load raises the loading flag and fetches the catalog.
func (m *dashboardModel) load() tea.Cmd {
	m.state = operations.Reduce(m.state, operations.LoadStarted{})
	fx, ctx := m.fx, m.ctx
	return func() tea.Msg { return fx.LoadCatalog(ctx) }
}

// write counts one in-flight write and runs it.
func (m *dashboardModel) write(run func(context.Context) operations.Event) tea.Cmd {
	m.state = operations.Reduce(m.state, operations.WriteStarted{})
	ctx := m.ctx
	return func() tea.Msg { return run(ctx) }
}

func (m *dashboardModel) refreshRows() {
	m.rows = m.state.Filtered()
	rows := make([]table.Row, len(m.rows))
	for i, b := range m.rows {
		rows[i] = table.Row{b.FileName, b.TitleEnglish, b.TitleSindhi, b.AuthorEnglish, b.Category, string(b.Status)}
	}
	m.table.SetRows(rows)
	switch c := m.table.Cursor(); {
	case len(rows) == 0:
	case c < 0:
		m.table.SetCursor(0)
	case c >= len(rows):
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m dashboardModel) selected() *catalog.Book {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return nil
	}
	b := m.rows[i]
	return &b
}

func (m dashboardModel) apply(e operations.Event) (tea.Model, tea.Cmd) {
	m.state = operations.Reduce(m.state, e)
	var cmd tea.Cmd
	switch e.(type) {
	case operations.SessionRestored, operations.SignedIn:
		m.screen = screenTable
		cmd = m.load()
	case operations.SignedOut:
		m.screen = screenLogin
		m.login = newLoginForm(session.ModeSignIn)
		cmd = m.login.Init()
	}
	m.refreshRows()
	return m, cmd
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case operations.Event:
		return m.apply(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.login, _ = updateLogin(m.login, msg)
		if m.screen == screenForm {
			var cmd tea.Cmd
			m.form, cmd = updateForm(m.form, msg)
			return m, cmd
		}
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		if m.screen == screenForm {
			m.form, cmd = updateForm(m.form, msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case ClearActiveCmdMsg:
		m.activeCmd = ""
		if m.screen == screenForm {
			m.form, _ = updateForm(m.form, msg)
		}
		return m, nil
	}

	switch m.screen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenForm:
		return m.updateForm(msg)
	case screenConfirm:
		return m.updateConfirm(msg)
	case screenTable:
		return m.updateTable(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
		return m, tea.Quit
	}
	return m, nil
}

func updateLogin(l loginFormModel, msg tea.Msg) (loginFormModel, tea.Cmd) {
	next, cmd := l.Update(msg)
	return next.(loginFormModel), cmd
}

func updateForm(f entryFormModel, msg tea.Msg) (entryFormModel, tea.Cmd) {
	next, cmd := f.Update(msg)
	return next.(entryFormModel), cmd
}

func (m dashboardModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.login, cmd = updateLogin(m.login, msg)
	switch {
	case m.login.canceled:
		return m, tea.Quit
	case m.login.result != nil:
		cred := *m.login.result
		m.login.result = nil
		fx := m.fx
		return m, func() tea.Msg { return fx.Authenticate(cred) }
	}
	return m, cmd
}

func (m dashboardModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = updateForm(m.form, msg)
	switch {
	case m.form.canceled:
		m.screen = screenTable
		return m, nil
	case m.form.result != nil:
		b := *m.form.result
		m.screen = screenTable
		fx := m.fx
		return m, m.write(func(ctx context.Context) operations.Event { return fx.SaveEntry(ctx, b) })
	}
	return m, cmd
}

func (m dashboardModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	id := m.confirmID
	switch k.String() {
	case "y", "Y":
		m.screen = screenTable
		m.confirmID = ""
		fx := m.fx
		return m, m.write(func(ctx context.Context) operations.Event { return fx.DeleteEntry(ctx, id) })
	case "n", "N", "esc", "enter", "ctrl+c":
		m.screen = screenTable
		m.confirmID = ""
		return m.apply(operations.DeleteCanceled{ID: id})
	}
	return m, nil
}

func (m dashboardModel) updateTable(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, isKey := msg.(tea.KeyMsg)

	if m.search.Focused() {
		if isKey {
			switch k.String() {
			case "esc":
				m.search.Blur()
				m.search.SetValue("")
				return m.apply(operations.SearchChanged{Term: ""})
			case "enter", "tab", "down":
				m.search.Blur()
				m.table.Focus()
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		next, _ := m.apply(operations.SearchChanged{Term: m.search.Value()})
		return next, cmd
	}

	if !isKey {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(k, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(k, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(k, m.keys.Search):
		m.table.Blur()
		m.activeCmd = "/"
		return m, tea.Batch(m.search.Focus(), HighlightCmd())

	case key.Matches(k, m.keys.New):
		d := editor.New(*m.state.CurrentUser, time.Now())
		return m.openForm(d)

	case key.Matches(k, m.keys.Select):
		if b := m.selected(); b != nil {
			return m.openForm(editor.Edit(*b))
		}
		return m, nil

	case key.Matches(k, m.keys.Delete):
		if b := m.selected(); b != nil {
			m.confirmID = b.ID
			m.screen = screenConfirm
		}
		return m, nil

	case key.Matches(k, m.keys.Seed):
		u := *m.state.CurrentUser
		fx := m.fx
		m.activeCmd = "S"
		return m, tea.Batch(
			m.write(func(ctx context.Context) operations.Event { return fx.SeedSamples(ctx, u) }),
			HighlightCmd(),
		)

	case key.Matches(k, m.keys.Refresh):
		if m.state.Loading {
			return m, nil
		}
		m.activeCmd = "r"
		return m, tea.Batch(m.load(), HighlightCmd())

	case key.Matches(k, m.keys.Dismiss):
		return m.apply(operations.NoticeDismissed{})

	case key.Matches(k, m.keys.Logout):
		fx := m.fx
		return m, func() tea.Msg { return fx.Logout() }
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m dashboardModel) openForm(d *editor.Draft) (tea.Model, tea.Cmd) {
	m.form = newEntryForm(m.ctx, d, *m.state.CurrentUser, m.suggester)
	m.form.width, m.form.height = m.width, m.height
	m.screen = screenForm
	return m, m.form.Init()
}

func (m *dashboardModel) resize() {
	// header, tiles, notice, search, help and borders
	const chrome = 18
	h := m.height - chrome
	if h < 5 {
		h = 5
	}
	m.table.SetHeight(h)
	w := m.width - 12
	if w < 60 {
		w = 60
	}
	m.table.SetWidth(w)
	m.help.Width = w
}

func (m dashboardModel) View() string {
	switch m.screen {
	case screenLogin:
		return m.login.View()
	case screenForm:
		return m.form.View()
	case screenConfirm:
		return m.confirmView()
	case screenStarting:
		return lipgloss.NewStyle().Padding(2, 4).Render(m.spinner.View() + StyleHelp.Render(" Restoring session..."))
	}
	return m.tableView()
}

func (m dashboardModel) header() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		Render("NexusShelf · Sindhi Digitization Catalog")

	var who string
	if u := m.state.CurrentUser; u != nil {
		who = fmt.Sprintf("  %s", u.FullName)
		if u.Email != "" {
			who += " <" + u.Email + ">"
		}
	}
	if m.backend != "" {
		who += " · " + m.backend
	}

	var activity string
	switch {
	case m.state.Loading:
		activity = "  " + m.spinner.View() + StyleHelp.Render(" loading")
	case m.state.Syncing():
		activity = "  " + m.spinner.View() + StyleHelp.Render(" syncing")
	}
	return title + StyleHelp.Render(who) + activity
}

func (m dashboardModel) tiles() string {
	s := m.state.Stats()
	tile := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorGray).
		Padding(0, 2).
		Width(20)
	render := func(label string, n int, style lipgloss.Style) string {
		return tile.Render(StyleHelp.Render(label) + "\n" + style.Bold(true).Render(fmt.Sprintf("%d", n)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		render("Total Books", s.Total, StyleNormal),
		render("Categories", s.Categories, StyleTag),
		render("Completed", s.Completed, StyleSuccess),
	)
}

func (m dashboardModel) notice() string {
	n := m.state.Notice
	if n == nil {
		return ""
	}
	style := StyleSuccess
	mark := "✓ "
	if n.Level == operations.NoticeError {
		style = StyleError
		mark = "✗ "
	}
	return style.Render(mark+n.Text) + StyleHelp.Render("  (x to dismiss)")
}

func (m dashboardModel) tableView() string {
	outerStyle := lipgloss.NewStyle().Padding(1, 2)

	parts := []string{m.header(), m.tiles()}
	if n := m.notice(); n != "" {
		parts = append(parts, n)
	}
	parts = append(parts, m.search.View())

	if len(m.rows) == 0 && !m.state.Loading {
		empty := "No books found. Press n to add one."
		if len(m.state.Books) == 0 {
			empty = "The catalog is empty. Press n to add an entry or S to seed sample books."
		}
		parts = append(parts, StyleHelp.Render(empty))
	} else {
		parts = append(parts, m.table.View())
	}
	parts = append(parts, m.help.View(m.keys))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	innerPadding := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	return outerStyle.Render(RenderWithFooter(innerPadding.Render(content), dashboardShortcuts, m.activeCmd))
}

var dashboardShortcuts = []ShortcutEntry{
	{Key: "/", Label: "/ search"},
	{Key: "r", Label: "r refresh"},
	{Key: "S", Label: "S seed samples"},
}

func (m dashboardModel) confirmView() string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render("Delete entry"))
	b.WriteString("\n\n")
	if bk := catalog.ByID(m.state.Books, m.confirmID); bk != nil {
		b.WriteString(StyleNormal.Render(bk.DisplayTitle()))
		b.WriteString("\n")
		b.WriteString(StyleHelp.Render(bk.FileName))
		b.WriteString("\n\n")
	}
	b.WriteString(StyleHighlight.Render(deleteQuestion))
	b.WriteString(" ")
	b.WriteString(StyleHelp.Render("y/N"))

	outerStyle := lipgloss.NewStyle().Padding(2, 4)
	innerPadding := lipgloss.NewStyle().Padding(1, 2)
	return outerStyle.Render(StyleBorder.Render(innerPadding.Render(b.String())))
}

// RunDashboard launches the interactive catalog. Quitting cancels every
// call still in flight.
func RunDashboard(ctx context.Context, opts DashboardOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newDashboard(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
