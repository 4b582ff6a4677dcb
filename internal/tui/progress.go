package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// progressMsg is sent when progress updates
type progressMsg int

// tickMsg is sent periodically to refresh the UI
type tickMsg time.Time

// progressModel is the Bubble Tea model for showing batch progress
type progressModel struct {
	progress   progress.Model
	total      int
	current    int
	label      string
	done       bool
	cancelled  bool
	progressCh <-chan int
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		waitForProgress(m.progressCh),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForProgress(ch <-chan int) tea.Cmd {
	return func() tea.Msg {
		// Block on channel read - UI stays alive via tickCmd
		n, ok := <-ch
		if !ok {
			// Channel closed, operation complete
			return progressMsg(-1)
		}
		return progressMsg(n)
	}
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.cancelled = true
			return m, tea.Quit
		}

	case tickMsg:
		if m.done {
			return m, tea.Quit
		}
		return m, tickCmd()

	case progressMsg:
		if int(msg) == -1 {
			m.done = true
			return m, tea.Quit
		}
		m.current = int(msg)
		return m, waitForProgress(m.progressCh)

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		return m, nil
	}

	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.current) / float64(m.total)
	}

	return fmt.Sprintf(
		"%s\n%s\n%d / %d records (%.0f%%)\n",
		m.label,
		m.progress.ViewAs(percent),
		m.current,
		m.total,
		percent*100,
	)
}

// ShowProgress displays a progress bar while a batch of total records is
// written. The writer sends the running count on progressCh and closes it
// when finished. Returns an error if cancelled by the user (Ctrl+C).
func ShowProgress(label string, total int, progressCh <-chan int) error {
	prog := progress.New(progress.WithDefaultGradient())

	m := progressModel{
		progress:   prog,
		total:      total,
		label:      label,
		progressCh: progressCh,
	}

	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := finalModel.(progressModel); ok && fm.cancelled {
		return fmt.Errorf("cancelled by user")
	}

	return nil
}
