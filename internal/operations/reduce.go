package operations

import (
	"fmt"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
)

// User-visible notice texts.
const (
	msgLoadFailed   = "Could not load the catalog from the database."
	msgSaveFailed   = "Failed to save to cloud database."
	msgDeleteFailed = "Failed to delete from cloud database."
	msgSeedFailed   = "Failed to connect to database. Check the backend credentials."
	msgImportFailed = "Import stopped after %d records."
)

// Reduce returns the state after e. It does not modify s: slices in the
// result are fresh whenever their contents change.
func Reduce(s State, e Event) State {
	switch e.(type) {
	case LoadStarted, CatalogLoaded, CatalogLoadFailed:
		// A load that finishes after sign-out must not refill the catalog.
		if !s.SignedIn() {
			return s
		}
	}

	switch e := e.(type) {
	case SessionRestored:
		u := e.User
		s.CurrentUser = &u
	case SignedIn:
		u := e.User
		s.CurrentUser = &u
		s.Notice = nil
	case SignedOut:
		return State{}

	case LoadStarted:
		s.Loading = true
	case CatalogLoaded:
		s.Loading = false
		s.Books = append([]catalog.Book{}, e.Books...)
	case CatalogLoadFailed:
		s.Loading = false
		s.Notice = errorNotice(msgLoadFailed, e.Err)

	case WriteStarted:
		s.pendingWrites++
	case EntrySaved:
		s = writeDone(s)
		s.Books = catalog.Merge(s.Books, e.Book)
	case EntrySaveFailed:
		s = writeDone(s)
		s.Notice = errorNotice(msgSaveFailed, e.Err)
	case EntryDeleted:
		s = writeDone(s)
		s.Books, _ = catalog.Remove(s.Books, e.ID)
	case EntryDeleteFailed:
		s = writeDone(s)
		s.Notice = errorNotice(msgDeleteFailed, e.Err)
	case DeleteCanceled:
	case SamplesSeeded:
		s = writeDone(s)
		s.Books = catalog.MergeAll(s.Books, e.Books)
		s.Notice = &Notice{Level: NoticeInfo, Text: fmt.Sprintf("Successfully added %d sample books to database!", len(e.Books))}
	case SeedFailed:
		s = writeDone(s)
		s.Notice = errorNotice(msgSeedFailed, e.Err)

	case EntriesImported:
		s = writeDone(s)
		s.Books = catalog.MergeAll(s.Books, e.Books)
		s.Notice = &Notice{Level: NoticeInfo, Text: fmt.Sprintf("Imported %d records.", len(e.Books))}
	case ImportFailed:
		s = writeDone(s)
		s.Books = catalog.MergeAll(s.Books, e.Stored)
		s.Notice = errorNotice(fmt.Sprintf(msgImportFailed, len(e.Stored)), e.Err)

	case SearchChanged:
		s.Search = e.Term
	case NoticeDismissed:
		s.Notice = nil
	}
	return s
}

func writeDone(s State) State {
	if s.pendingWrites > 0 {
		s.pendingWrites--
	}
	return s
}

func errorNotice(msg string, err error) *Notice {
	if err != nil {
		msg = fmt.Sprintf("%s (%v)", msg, err)
	}
	return &Notice{Level: NoticeError, Text: msg}
}
