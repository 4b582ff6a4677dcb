package operations

import (
	"github.com/blackwell-systems/nexusshelf/internal/catalog"
	"github.com/blackwell-systems/nexusshelf/internal/session"
)

// Event is a state transition produced by an effect or by user input.
type Event interface {
	event()
}

type (
	// SessionRestored carries a user found in session storage.
	SessionRestored struct{ User session.User }
	// SignedIn carries a freshly authenticated user.
	SignedIn struct{ User session.User }
	// SignedOut clears the session and the catalog.
	SignedOut struct{}

	// LoadStarted raises the loading flag.
	LoadStarted struct{}
	// CatalogLoaded replaces the collection with the server's copy.
	CatalogLoaded struct{ Books []catalog.Book }
	// CatalogLoadFailed lowers the loading flag and keeps the collection.
	CatalogLoadFailed struct{ Err error }

	// WriteStarted marks one write-class call in flight.
	WriteStarted struct{}
	// EntrySaved carries the canonical record returned by the backend.
	EntrySaved struct{ Book catalog.Book }
	// EntrySaveFailed leaves the collection untouched.
	EntrySaveFailed struct{ Err error }
	// EntryDeleted removes a record after the backend confirmed it.
	EntryDeleted struct{ ID string }
	// EntryDeleteFailed leaves the collection untouched.
	EntryDeleteFailed struct {
		ID  string
		Err error
	}
	// DeleteCanceled is a declined confirmation; nothing changes.
	DeleteCanceled struct{ ID string }
	// SamplesSeeded carries the stored sample batch.
	SamplesSeeded struct{ Books []catalog.Book }
	// SeedFailed leaves the collection untouched.
	SeedFailed struct{ Err error }
	// EntriesImported carries the records stored by a bulk import.
	EntriesImported struct{ Books []catalog.Book }
	// ImportFailed carries the records stored before the failing batch.
	ImportFailed struct {
		Stored []catalog.Book
		Err    error
	}

	// SearchChanged sets the search term.
	SearchChanged struct{ Term string }
	// NoticeDismissed clears the notice.
	NoticeDismissed struct{}
)

func (SessionRestored) event()   {}
func (SignedIn) event()          {}
func (SignedOut) event()         {}
func (LoadStarted) event()       {}
func (CatalogLoaded) event()     {}
func (CatalogLoadFailed) event() {}
func (WriteStarted) event()      {}
func (EntrySaved) event()        {}
func (EntrySaveFailed) event()   {}
func (EntryDeleted) event()      {}
func (EntryDeleteFailed) event() {}
func (DeleteCanceled) event()    {}
func (SamplesSeeded) event()     {}
func (SeedFailed) event()        {}
func (EntriesImported) event()   {}
func (ImportFailed) event()      {}
func (SearchChanged) event()     {}
func (NoticeDismissed) event()   {}
