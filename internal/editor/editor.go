// Package editor builds one catalog record for saving: defaults for new
// entries, filename decoding, category suggestion and final stamping.
package editor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
	"github.com/blackwell-systems/nexusshelf/internal/ingest"
	"github.com/blackwell-systems/nexusshelf/internal/session"
)

// Defaults applied to new entries.
const (
	DefaultLanguage = "Sindhi/English"
	DefaultStage    = "Initial"
)

var (
	// ErrEnglishTitleRequired blocks a category suggestion without a title.
	ErrEnglishTitleRequired = errors.New("enter an English title first")
	// ErrFileNameRequired blocks submitting an entry without a file name.
	ErrFileNameRequired = errors.New("file name is required")
)

// CategorySuggester answers a category for an English title.
type CategorySuggester interface {
	Category(ctx context.Context, title string) string
}

// Draft is a record being created or edited.
type Draft struct {
	Book  catalog.Book
	isNew bool
}

// New starts a fresh entry stamped with the creating user and time.
func New(u session.User, now time.Time) *Draft {
	return &Draft{
		isNew: true,
		Book: catalog.Book{
			Status:          catalog.StatusPending,
			Language:        DefaultLanguage,
			Stage:           DefaultStage,
			CreatedTime:     catalog.Timestamp(now),
			CreatedBy:       u.FullName,
			CurrentHolderID: u.ID,
		},
	}
}

// Edit loads an existing record as-is.
func Edit(b catalog.Book) *Draft {
	return &Draft{Book: b}
}

// IsNew reports whether Submit will assign a fresh id.
func (d *Draft) IsNew() bool {
	return d.isNew
}

// SetFileName records raw and decodes whatever metadata it carries.
func (d *Draft) SetFileName(raw string) {
	ingest.ApplyFileName(&d.Book, raw)
}

// SuggestCategory overwrites the category with a suggestion for the
// English title.
func (d *Draft) SuggestCategory(ctx context.Context, s CategorySuggester) error {
	title := strings.TrimSpace(d.Book.TitleEnglish)
	if title == "" {
		return ErrEnglishTitleRequired
	}
	d.Book.Category = s.Category(ctx, title)
	return nil
}

// Submit returns the finished record: new drafts get an id, edits keep
// theirs, and the last-edited fields are stamped.
func (d *Draft) Submit(u session.User, now time.Time) (catalog.Book, error) {
	if strings.TrimSpace(d.Book.FileName) == "" {
		return catalog.Book{}, ErrFileNameRequired
	}
	b := d.Book
	if d.isNew || b.ID == "" {
		b.ID = catalog.NewID()
	}
	if !b.Status.Valid() {
		b.Status = catalog.StatusPending
	}
	b.LastEditedTime = catalog.Timestamp(now)
	b.LastEditedBy = u.FullName
	return b, nil
}
