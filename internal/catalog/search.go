package catalog

import "strings"

// Filter narrows a book list. Empty fields match everything.
type Filter struct {
	Search string // matches titleEnglish, titleSindhi, authorEnglish or fileName
	Status Status
}

// Apply returns the subset of books matching all non-empty filter fields.
// Order is preserved. An empty filter returns the input slice itself.
func (f Filter) Apply(books []Book) []Book {
	if f.Search == "" && f.Status == "" {
		return books
	}
	out := []Book{}
	for _, b := range books {
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.Search != "" && !matchesSearch(b, f.Search) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// ByID returns the first book with the given ID, or nil.
func ByID(books []Book, id string) *Book {
	for i := range books {
		if books[i].ID == id {
			return &books[i]
		}
	}
	return nil
}

// SearchText is the text a search term is matched against.
func SearchText(b Book) string {
	return b.TitleEnglish + " " + b.TitleSindhi + " " + b.AuthorEnglish + " " + b.FileName
}

func matchesSearch(b Book, q string) bool {
	return strings.Contains(strings.ToLower(SearchText(b)), strings.ToLower(q))
}
