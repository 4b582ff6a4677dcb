package store

import (
	"database/sql"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
)

// DefaultTable is used when Config.Table is empty.
const DefaultTable = "books"

// columns are the books table columns, named like the JSON wire fields.
var columns = []string{
	"id",
	"fileName",
	"titleEnglish",
	"titleSindhi",
	"authorEnglish",
	"authorSindhi",
	"year",
	"publisher",
	"category",
	"language",
	"link",
	"thumbnail",
	"source",
	"status",
	"stage",
	"currentHolderId",
	"scannedBy",
	"assignedTo",
	"createdTime",
	"createdBy",
	"lastEditedTime",
	"lastEditedBy",
}

// fields returns pointers to b's fields in column order.
func fields(b *catalog.Book) []*string {
	return []*string{
		&b.ID,
		&b.FileName,
		&b.TitleEnglish,
		&b.TitleSindhi,
		&b.AuthorEnglish,
		&b.AuthorSindhi,
		&b.Year,
		&b.Publisher,
		&b.Category,
		&b.Language,
		&b.Link,
		&b.Thumbnail,
		&b.Source,
		(*string)(&b.Status),
		&b.Stage,
		&b.CurrentHolderID,
		&b.ScannedBy,
		&b.AssignedTo,
		&b.CreatedTime,
		&b.CreatedBy,
		&b.LastEditedTime,
		&b.LastEditedBy,
	}
}

func args(b catalog.Book) []any {
	ptrs := fields(&b)
	out := make([]any, len(ptrs))
	for i, p := range ptrs {
		out[i] = *p
	}
	return out
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanBook reads one row. Columns may be NULL in tables created outside
// this program; NULL reads as the empty string.
func scanBook(s rowScanner) (catalog.Book, error) {
	vals := make([]sql.NullString, len(columns))
	dest := make([]any, len(vals))
	for i := range vals {
		dest[i] = &vals[i]
	}
	if err := s.Scan(dest...); err != nil {
		return catalog.Book{}, err
	}

	var b catalog.Book
	for i, p := range fields(&b) {
		*p = vals[i].String
	}
	if st, err := catalog.ParseStatus(string(b.Status)); err == nil {
		b.Status = st
	}
	return b, nil
}
