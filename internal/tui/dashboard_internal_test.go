package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/nexusshelf/internal/cache"
	"github.com/blackwell-systems/nexusshelf/internal/catalog"
	"github.com/blackwell-systems/nexusshelf/internal/editor"
	"github.com/blackwell-systems/nexusshelf/internal/operations"
	"github.com/blackwell-systems/nexusshelf/internal/session"
	"github.com/blackwell-systems/nexusshelf/internal/store"
)

type fixedSuggester string

func (s fixedSuggester) Category(context.Context, string) string { return string(s) }

func newTestDashboard(t *testing.T, user *session.User, books ...catalog.Book) (dashboardModel, *store.Memory) {
	t.Helper()
	sessions := session.NewFileStore(cache.New(t.TempDir()))
	if user != nil {
		require.NoError(t, sessions.Save(*user))
	}
	st := store.NewMemory(books...)
	m := newDashboard(context.Background(), DashboardOptions{
		Effects:   &operations.Effects{Store: st, Sessions: sessions},
		Suggester: fixedSuggester("Poetry"),
		Backend:   "memory",
	})
	return m, st
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// settle feeds every effect result produced by cmd back into the model.
// Timers and cursor blinks are dropped.
func settle(m tea.Model, cmd tea.Cmd) dashboardModel {
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case operations.Event, categoryMsg:
			var next tea.Cmd
			m, next = m.Update(msg)
			m = settle(m, next)
		}
	}
	return m.(dashboardModel)
}

func send(m dashboardModel, msgs ...tea.Msg) dashboardModel {
	var model tea.Model = m
	for _, msg := range msgs {
		var cmd tea.Cmd
		model, cmd = model.Update(msg)
		model = settle(model, cmd)
	}
	return model.(dashboardModel)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func start(m dashboardModel) dashboardModel {
	return send(m, m.fx.RestoreSession())
}

func TestDashboard_RestoresSessionAndLoads(t *testing.T) {
	m, _ := newTestDashboard(t, &session.User{ID: "1", FullName: "Ali"},
		catalog.Book{ID: "a", FileName: "A", CreatedTime: "2026-01-01T00:00:00.000Z"},
		catalog.Book{ID: "b", FileName: "B", CreatedTime: "2026-02-01T00:00:00.000Z"},
	)
	m = start(m)

	assert.Equal(t, screenTable, m.screen)
	assert.False(t, m.state.Loading)
	require.Len(t, m.rows, 2)
	assert.Equal(t, "b", m.rows[0].ID)
	assert.Contains(t, m.View(), "Total Books")
}

func TestDashboard_SignIn(t *testing.T) {
	m, _ := newTestDashboard(t, nil)
	m = start(m)
	require.Equal(t, screenLogin, m.screen)

	// Submitting blank fields shows an error and stays on the form.
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, screenLogin, m.screen)
	assert.ErrorIs(t, m.login.err, session.ErrMissingField)

	m = send(m,
		tea.KeyMsg{Type: tea.KeyShiftTab},
		runes("ali@example.org"),
		tea.KeyMsg{Type: tea.KeyEnter},
		runes("secret"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	require.Equal(t, screenTable, m.screen)
	require.NotNil(t, m.state.CurrentUser)
	assert.Equal(t, "ali@example.org", m.state.CurrentUser.Email)
	assert.Equal(t, session.DefaultFullName, m.state.CurrentUser.FullName)
}

func TestDashboard_SeedAndSearch(t *testing.T) {
	m, _ := newTestDashboard(t, &session.User{ID: "1", FullName: "Ali"})
	m = start(m)

	m = send(m, runes("S"))
	require.Len(t, m.rows, 3)
	require.NotNil(t, m.state.Notice)
	assert.Equal(t, operations.NoticeInfo, m.state.Notice.Level)
	assert.False(t, m.state.Syncing())

	m = send(m, runes("/"), runes("sachal"))
	require.Len(t, m.rows, 1)
	assert.Equal(t, "The Poetry of Sachal Sarmast", m.rows[0].TitleEnglish)

	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.rows, 3)
}

func TestDashboard_DeleteNeedsConfirmation(t *testing.T) {
	m, st := newTestDashboard(t, &session.User{ID: "1", FullName: "Ali"},
		catalog.Book{ID: "a", FileName: "A"},
	)
	m = start(m)

	m = send(m, runes("d"))
	require.Equal(t, screenConfirm, m.screen)
	assert.Contains(t, m.View(), deleteQuestion)

	m = send(m, runes("n"))
	assert.Equal(t, screenTable, m.screen)
	assert.Len(t, m.rows, 1)

	m = send(m, runes("d"), runes("y"))
	assert.Empty(t, m.rows)
	left, err := st.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestDashboard_NewEntryDecodesFileName(t *testing.T) {
	m, st := newTestDashboard(t, &session.User{ID: "1", FullName: "Ali"})
	m = start(m)

	m = send(m, runes("n"))
	require.Equal(t, screenForm, m.screen)

	m = send(m, runes("Shah_Jo_Risalo-Shah_Abdul_Latif-1744-SLA"))
	b := m.form.draft.Book
	assert.Equal(t, "Shah Jo Risalo", b.TitleEnglish)
	assert.Equal(t, "Shah Abdul Latif", b.AuthorEnglish)
	assert.Equal(t, "1744", b.Year)
	assert.Equal(t, "SLA", b.Source)
	assert.Equal(t, "Shah Jo Risalo", m.form.inputs[1].Value())

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlG})
	assert.Equal(t, "Poetry", m.form.draft.Book.Category)

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Equal(t, screenTable, m.screen)
	require.Len(t, m.rows, 1)
	assert.Equal(t, "Ali", m.rows[0].CreatedBy)
	assert.Equal(t, catalog.StatusPending, m.rows[0].Status)

	stored, err := st.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, m.rows[0].ID, stored[0].ID)
}

func TestEntryForm_SuggestNeedsTitle(t *testing.T) {
	m, _ := newTestDashboard(t, &session.User{ID: "1", FullName: "Ali"})
	m = start(m)
	m = send(m, runes("n"), tea.KeyMsg{Type: tea.KeyCtrlG})

	assert.ErrorIs(t, m.form.err, editor.ErrEnglishTitleRequired)
	assert.False(t, m.form.suggesting)
}
