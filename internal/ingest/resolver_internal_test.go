package ingest

import "testing"

func TestGuessFilenameFromURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://example.com/books/risalo.pdf", "risalo.pdf"},
		{"https://example.com/book.pdf?token=abc123", "book.pdf"},
		{"https://example.com/book.pdf#page=3", "book.pdf"},
		{"https://example.com/Shah%20Jo%20Risalo.pdf", "Shah Jo Risalo.pdf"},
		{"https://example.com/", "download"},
		{"https://example.com", "download"},
	}
	for _, tt := range tests {
		if got := guessFilenameFromURL(tt.in); got != tt.want {
			t.Errorf("guessFilenameFromURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripExt(t *testing.T) {
	cases := map[string]string{
		"Title-Author-1950-Src.pdf": "Title-Author-1950-Src",
		"no_extension":              "no_extension",
		"archive.tar.gz":            "archive.tar",
	}
	for in, want := range cases {
		if got := stripExt(in); got != want {
			t.Errorf("stripExt(%q) = %q, want %q", in, got, want)
		}
	}
}
