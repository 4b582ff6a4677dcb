package catalog

// Stats are the dashboard aggregates over a book list.
type Stats struct {
	Total      int `json:"total"`
	Categories int `json:"categories"`
	Completed  int `json:"completed"`
}

// Summarize computes Stats. Categories counts distinct category values,
// the empty category included.
func Summarize(books []Book) Stats {
	cats := make(map[string]struct{}, len(books))
	s := Stats{Total: len(books)}
	for _, b := range books {
		cats[b.Category] = struct{}{}
		if b.Status == StatusCompleted {
			s.Completed++
		}
	}
	s.Categories = len(cats)
	return s
}
