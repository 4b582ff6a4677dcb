package operations

import (
	"context"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
	"github.com/blackwell-systems/nexusshelf/internal/session"
)

// Confirmer asks the user to confirm deleting id. b is the in-memory
// record when one is loaded, nil otherwise.
type Confirmer func(id string, b *catalog.Book) bool

// Controller runs effects one at a time and folds their events into its
// state. It is not safe for concurrent use; callers that share one across
// goroutines serialize access themselves.
type Controller struct {
	fx    *Effects
	state State
}

// NewController returns a Controller with an empty, signed-out state.
func NewController(fx *Effects) *Controller {
	return &Controller{fx: fx}
}

// Effects exposes the underlying effects.
func (c *Controller) Effects() *Effects {
	return c.fx
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Dispatch applies e to the state.
func (c *Controller) Dispatch(e Event) {
	c.state = Reduce(c.state, e)
}

// RestoreSession resumes a stored session and loads the catalog. It
// reports whether a user was restored.
func (c *Controller) RestoreSession(ctx context.Context) (bool, error) {
	e := c.fx.RestoreSession()
	c.Dispatch(e)
	if _, ok := e.(SessionRestored); !ok {
		return false, nil
	}
	return true, c.LoadCatalog(ctx)
}

// Authenticate starts a session for the credentials and loads the
// catalog. The returned error is the load's, if any.
func (c *Controller) Authenticate(ctx context.Context, cred session.Credentials) error {
	c.Dispatch(c.fx.Authenticate(cred))
	return c.LoadCatalog(ctx)
}

// Logout ends the session and drops the catalog.
func (c *Controller) Logout() {
	c.Dispatch(c.fx.Logout())
}

// LoadCatalog replaces the in-memory catalog with the backend's. On
// failure the previous catalog stays.
func (c *Controller) LoadCatalog(ctx context.Context) error {
	c.Dispatch(LoadStarted{})
	e := c.fx.LoadCatalog(ctx)
	c.Dispatch(e)
	if f, ok := e.(CatalogLoadFailed); ok {
		return f.Err
	}
	return nil
}

// SaveEntry upserts b and merges the stored copy into the catalog.
func (c *Controller) SaveEntry(ctx context.Context, b catalog.Book) (catalog.Book, error) {
	c.Dispatch(WriteStarted{})
	e := c.fx.SaveEntry(ctx, b)
	c.Dispatch(e)
	switch e := e.(type) {
	case EntrySaved:
		return e.Book, nil
	case EntrySaveFailed:
		return catalog.Book{}, e.Err
	}
	return catalog.Book{}, nil
}

// DeleteEntry deletes id after confirm approves. It reports whether the
// deletion was confirmed.
func (c *Controller) DeleteEntry(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	if confirm == nil || !confirm(id, catalog.ByID(c.state.Books, id)) {
		c.Dispatch(DeleteCanceled{ID: id})
		return false, nil
	}
	c.Dispatch(WriteStarted{})
	e := c.fx.DeleteEntry(ctx, id)
	c.Dispatch(e)
	if f, ok := e.(EntryDeleteFailed); ok {
		return true, f.Err
	}
	return true, nil
}

// SeedSamples stores the demo records for the signed-in user.
func (c *Controller) SeedSamples(ctx context.Context) ([]catalog.Book, error) {
	if c.state.CurrentUser == nil {
		return nil, ErrNotSignedIn
	}
	c.Dispatch(WriteStarted{})
	e := c.fx.SeedSamples(ctx, *c.state.CurrentUser)
	c.Dispatch(e)
	switch e := e.(type) {
	case SamplesSeeded:
		return e.Books, nil
	case SeedFailed:
		return nil, e.Err
	}
	return nil, nil
}

// ImportEntries stores books in batches and merges them into the
// catalog. On failure the records already stored are still merged.
func (c *Controller) ImportEntries(ctx context.Context, books []catalog.Book, progress func(done int)) ([]catalog.Book, error) {
	c.Dispatch(WriteStarted{})
	e := c.fx.ImportEntries(ctx, books, progress)
	c.Dispatch(e)
	switch e := e.(type) {
	case EntriesImported:
		return e.Books, nil
	case ImportFailed:
		return e.Stored, e.Err
	}
	return nil, nil
}

// SetSearch changes the search term used by State.Filtered.
func (c *Controller) SetSearch(term string) {
	c.Dispatch(SearchChanged{Term: term})
}

// Filtered returns the books matching term without changing the stored
// search term.
func (c *Controller) Filtered(term string) []catalog.Book {
	return catalog.Filter{Search: term}.Apply(c.state.Books)
}

// Stats returns the dashboard aggregates.
func (c *Controller) Stats() catalog.Stats {
	return c.state.Stats()
}
