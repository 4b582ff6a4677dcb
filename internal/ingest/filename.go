package ingest

import (
	"strings"
	"unicode"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
)

// Segment positions in a hyphen-separated asset name:
//
//	Title-Author-Year-Source
const (
	segTitle = iota
	segAuthor
	segYear
	segSource
)

// HasArabicScript reports whether s contains any code point in the
// Arabic block (U+0600 to U+06FF), which is what Sindhi is written in.
func HasArabicScript(s string) bool {
	for _, r := range s {
		if r >= 0x0600 && r <= 0x06FF {
			return true
		}
	}
	return false
}

// ApplyFileName records raw as the book's file name and fills whatever
// fields its segments can supply. Fields the name does not reach are left
// as they were. Segments past the fourth are ignored.
func ApplyFileName(b *catalog.Book, raw string) {
	b.FileName = raw

	parts := strings.Split(raw, "-")
	for i, p := range parts {
		switch i {
		case segTitle:
			routeScript(p, &b.TitleEnglish, &b.TitleSindhi)
		case segAuthor:
			routeScript(p, &b.AuthorEnglish, &b.AuthorSindhi)
		case segYear:
			b.Year = p
		case segSource:
			b.Source = p
		}
	}
}

// Decode is ApplyFileName on a zero record, for previews.
func Decode(raw string) catalog.Book {
	var b catalog.Book
	ApplyFileName(&b, raw)
	return b
}

// routeScript writes the humanized segment to the Sindhi field when it
// carries Arabic script and to the English field otherwise.
func routeScript(seg string, english, sindhi *string) {
	v := humanize(seg)
	if HasArabicScript(v) {
		*sindhi = v
	} else {
		*english = v
	}
}

func humanize(seg string) string {
	return strings.TrimFunc(strings.ReplaceAll(seg, "_", " "), unicode.IsSpace)
}

// FillBlank copies PDF metadata into title/author fields that are still
// empty, routing each value by script the same way file names are.
func FillBlank(b *catalog.Book, md *PDFMetadata) {
	if md == nil {
		return
	}
	if t := sanitizeForTerminal(md.Title); t != "" {
		if HasArabicScript(t) {
			setIfBlank(&b.TitleSindhi, t)
		} else {
			setIfBlank(&b.TitleEnglish, t)
		}
	}
	if a := sanitizeForTerminal(md.Author); a != "" {
		if HasArabicScript(a) {
			setIfBlank(&b.AuthorSindhi, a)
		} else {
			setIfBlank(&b.AuthorEnglish, a)
		}
	}
}

func setIfBlank(dst *string, v string) {
	if strings.TrimSpace(*dst) == "" {
		*dst = v
	}
}
