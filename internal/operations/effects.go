package operations

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
	"github.com/blackwell-systems/nexusshelf/internal/session"
	"github.com/blackwell-systems/nexusshelf/internal/store"
)

// DefaultTimeout bounds each backend call when Effects.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// ErrNotSignedIn is returned by operations that need a session.
var ErrNotSignedIn = errors.New("not signed in")

// Effects performs the external calls. Each method returns the event that
// describes its outcome and never touches State.
type Effects struct {
	Store    store.Store
	Sessions session.Store
	Log      *zap.Logger
	Timeout  time.Duration
	Now      func() time.Time
}

func (fx *Effects) log() *zap.Logger {
	if fx.Log == nil {
		return zap.NewNop()
	}
	return fx.Log
}

func (fx *Effects) now() time.Time {
	if fx.Now == nil {
		return time.Now()
	}
	return fx.Now()
}

func (fx *Effects) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	d := fx.Timeout
	if d <= 0 {
		d = DefaultTimeout
	}
	return context.WithTimeout(ctx, d)
}

// RestoreSession reads the stored user. Corrupt session data is logged
// and treated as no session.
func (fx *Effects) RestoreSession() Event {
	u, err := fx.Sessions.Load()
	if err != nil {
		fx.log().Warn("ignoring unreadable session", zap.Error(err))
		return SignedOut{}
	}
	if u == nil {
		return SignedOut{}
	}
	return SessionRestored{User: *u}
}

// Authenticate builds the local user and stores it. It cannot fail: a
// storage error is logged and the session still starts.
func (fx *Effects) Authenticate(c session.Credentials) Event {
	u := session.NewUser(c, fx.now())
	if err := fx.Sessions.Save(u); err != nil {
		fx.log().Error("saving session", zap.String("user", u.ID), zap.Error(err))
	}
	fx.log().Info("signed in", zap.String("user", u.ID), zap.Stringer("mode", c.Mode))
	return SignedIn{User: u}
}

// Logout clears session storage.
func (fx *Effects) Logout() Event {
	if err := fx.Sessions.Clear(); err != nil {
		fx.log().Error("clearing session", zap.Error(err))
	}
	return SignedOut{}
}

// LoadCatalog fetches every record, newest first.
func (fx *Effects) LoadCatalog(ctx context.Context) Event {
	ctx, cancel := fx.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	books, err := fx.Store.List(ctx)
	if err != nil {
		fx.log().Error("error fetching books", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return CatalogLoadFailed{Err: err}
	}
	fx.log().Debug("catalog loaded", zap.Int("books", len(books)), zap.Duration("elapsed", time.Since(start)))
	return CatalogLoaded{Books: books}
}

// SaveEntry upserts one record.
func (fx *Effects) SaveEntry(ctx context.Context, b catalog.Book) Event {
	ctx, cancel := fx.withTimeout(ctx)
	defer cancel()

	saved, err := fx.Store.Upsert(ctx, b)
	if err != nil {
		fx.log().Error("error saving book", zap.String("id", b.ID), zap.Error(err))
		return EntrySaveFailed{Err: err}
	}
	fx.log().Info("book saved", zap.String("id", saved.ID), zap.String("fileName", saved.FileName))
	return EntrySaved{Book: saved}
}

// DeleteEntry deletes one record by id.
func (fx *Effects) DeleteEntry(ctx context.Context, id string) Event {
	ctx, cancel := fx.withTimeout(ctx)
	defer cancel()

	if err := fx.Store.Delete(ctx, id); err != nil {
		fx.log().Error("error deleting book", zap.String("id", id), zap.Error(err))
		return EntryDeleteFailed{ID: id, Err: err}
	}
	fx.log().Info("book deleted", zap.String("id", id))
	return EntryDeleted{ID: id}
}

// SeedSamples writes the demo records stamped for u.
func (fx *Effects) SeedSamples(ctx context.Context, u session.User) Event {
	ctx, cancel := fx.withTimeout(ctx)
	defer cancel()

	stored, err := fx.Store.UpsertMany(ctx, catalog.Samples(u.FullName, fx.now()))
	if err != nil {
		fx.log().Error("error seeding data", zap.Error(err))
		return SeedFailed{Err: err}
	}
	fx.log().Info("samples seeded", zap.Int("books", len(stored)))
	return SamplesSeeded{Books: stored}
}

// ImportBatchSize is how many records ImportEntries writes per request.
const ImportBatchSize = 25

// ImportEntries upserts books in batches. progress, when set, receives
// the running count after each batch. A failed batch stops the import;
// earlier batches stay stored.
func (fx *Effects) ImportEntries(ctx context.Context, books []catalog.Book, progress func(done int)) Event {
	stored := make([]catalog.Book, 0, len(books))
	for start := 0; start < len(books); start += ImportBatchSize {
		end := min(start+ImportBatchSize, len(books))
		batch, err := fx.importBatch(ctx, books[start:end])
		if err != nil {
			fx.log().Error("error importing books", zap.Int("stored", len(stored)), zap.Error(err))
			return ImportFailed{Stored: stored, Err: err}
		}
		stored = append(stored, batch...)
		if progress != nil {
			progress(len(stored))
		}
	}
	fx.log().Info("books imported", zap.Int("books", len(stored)))
	return EntriesImported{Books: stored}
}

func (fx *Effects) importBatch(ctx context.Context, batch []catalog.Book) ([]catalog.Book, error) {
	ctx, cancel := fx.withTimeout(ctx)
	defer cancel()
	return fx.Store.UpsertMany(ctx, batch)
}
