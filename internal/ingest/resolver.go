package ingest

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Source is a resolved add-command input.
type Source struct {
	// FileName is the base name with its extension removed; this is what
	// the filename decoder reads.
	FileName string
	// Link is set for URL inputs.
	Link string
	// Path is set for local files.
	Path string
}

// IsPDF reports whether the source is a local PDF whose metadata can be read.
func (s *Source) IsPDF() bool {
	return s.Path != "" && strings.EqualFold(filepath.Ext(s.Path), ".pdf")
}

// Resolve determines the type of input and returns a Source.
// Supported formats:
//
//	/path/to/Title-Author-1950-Src.pdf  local file
//	https://example.com/Title-Author.pdf  URL
//	Title-Author-1950-Src                 bare asset name
func Resolve(input string) (*Source, error) {
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return nil, fmt.Errorf("empty input")
	case strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://"):
		return resolveURL(input)
	default:
		if fi, err := os.Stat(input); err == nil {
			if fi.IsDir() {
				return nil, fmt.Errorf("%q is a directory", input)
			}
			return &Source{FileName: stripExt(filepath.Base(input)), Path: input}, nil
		}
		if strings.ContainsRune(input, os.PathSeparator) {
			return nil, fmt.Errorf("reading %q: %w", input, os.ErrNotExist)
		}
		return &Source{FileName: input}, nil
	}
}

func resolveURL(raw string) (*Source, error) {
	if _, err := url.Parse(raw); err != nil {
		return nil, fmt.Errorf("parsing %q: %w", raw, err)
	}
	return &Source{FileName: stripExt(guessFilenameFromURL(raw)), Link: raw}, nil
}

func guessFilenameFromURL(rawURL string) string {
	// Strip query string and fragment.
	if idx := strings.IndexAny(rawURL, "?#"); idx >= 0 {
		rawURL = rawURL[:idx]
	}
	if u, err := url.Parse(rawURL); err == nil {
		if p, err := url.PathUnescape(u.Path); err == nil {
			rawURL = p
		} else {
			rawURL = u.Path
		}
	}
	base := path.Base(rawURL)
	if base == "" || base == "." || base == "/" {
		return "download"
	}
	return base
}

func stripExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
