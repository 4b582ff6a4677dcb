// Package operations is the session and catalog controller. Application
// state is a plain value; effects perform the external calls and return
// events; Reduce folds events into state. The CLI and HTTP API drive it
// synchronously through Controller, the TUI through bubbletea commands.
package operations

import (
	"github.com/blackwell-systems/nexusshelf/internal/catalog"
	"github.com/blackwell-systems/nexusshelf/internal/session"
)

// NoticeLevel distinguishes confirmations from failures.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

// Notice is a user-visible message.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// State is the whole application state.
type State struct {
	CurrentUser *session.User
	Books       []catalog.Book
	Loading     bool
	Notice      *Notice
	Search      string

	pendingWrites int
}

// SignedIn reports whether a user session is established.
func (s State) SignedIn() bool {
	return s.CurrentUser != nil
}

// Syncing reports whether any write is in flight. It is a display hint,
// not a lock.
func (s State) Syncing() bool {
	return s.pendingWrites > 0
}

// Filtered returns the books matching the current search term.
func (s State) Filtered() []catalog.Book {
	return catalog.Filter{Search: s.Search}.Apply(s.Books)
}

// Stats returns the dashboard aggregates.
func (s State) Stats() catalog.Stats {
	return catalog.Summarize(s.Books)
}
