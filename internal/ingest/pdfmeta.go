package ingest

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf16"
)

// PDFMetadata holds the Info dictionary fields a catalog entry can use.
type PDFMetadata struct {
	Title   string
	Author  string
	Subject string
}

// pdfWindow is how much of the head and the tail of a file is scanned.
// Info dictionaries sit near the start of small files and near the
// trailer of incrementally updated ones.
const pdfWindow = 64 << 10

var pdfFieldPatterns = map[string][2]*regexp.Regexp{}

func init() {
	for _, f := range []string{"Title", "Author", "Subject"} {
		pdfFieldPatterns[f] = [2]*regexp.Regexp{
			regexp.MustCompile(`/` + f + `\s*\(((?:\\.|[^\\)])*)\)`),
			regexp.MustCompile(`/` + f + `\s*<([0-9A-Fa-f\s]+)>`),
		}
	}
}

// ExtractPDFMetadata reads the Info dictionary of a PDF file. It is best
// effort: encrypted or object-stream-compressed files yield empty fields
// rather than an error.
func ExtractPDFMetadata(path string) (*PDFMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	text, err := readHeadAndTail(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return &PDFMetadata{
		Title:   extractField(text, "Title"),
		Author:  extractField(text, "Author"),
		Subject: extractField(text, "Subject"),
	}, nil
}

func readHeadAndTail(f *os.File) (string, error) {
	fi, err := f.Stat()
	if err != nil {
		return "", err
	}
	if fi.Size() <= 2*pdfWindow {
		b, err := io.ReadAll(f)
		return string(b), err
	}

	head := make([]byte, pdfWindow)
	if _, err := io.ReadFull(f, head); err != nil {
		return "", err
	}
	tail := make([]byte, pdfWindow)
	if _, err := f.ReadAt(tail, fi.Size()-pdfWindow); err != nil && err != io.EOF {
		return "", err
	}
	return string(head) + "\n" + string(tail), nil
}

// extractField looks for /Field (literal) first and /Field <hex> second.
func extractField(text, field string) string {
	pats, ok := pdfFieldPatterns[field]
	if !ok {
		return ""
	}
	if m := pats[0].FindStringSubmatch(text); len(m) > 1 {
		return decodePDFString(m[1])
	}
	if m := pats[1].FindStringSubmatch(text); len(m) > 1 {
		return strings.TrimSpace(decodeHexString(m[1]))
	}
	return ""
}

var pdfEscapes = strings.NewReplacer(
	`\n`, "\n",
	`\r`, "\r",
	`\t`, "\t",
	`\(`, "(",
	`\)`, ")",
	`\\`, `\`,
)

// decodePDFString undoes literal-string escaping.
func decodePDFString(s string) string {
	return strings.TrimSpace(pdfEscapes.Replace(s))
}

// decodeHexString decodes a hex string. With a FEFF byte order mark the
// payload is UTF-16BE, which is how producers store Sindhi titles;
// otherwise the bytes are taken as-is.
func decodeHexString(hex string) string {
	hex = strings.Join(strings.Fields(hex), "")
	if len(hex)%2 != 0 {
		return ""
	}

	raw := make([]byte, len(hex)/2)
	for i := range raw {
		raw[i] = hexValue(hex[i*2])<<4 | hexValue(hex[i*2+1])
	}

	if len(raw) < 2 || raw[0] != 0xFE || raw[1] != 0xFF {
		return string(raw)
	}
	raw = raw[2:]
	if len(raw)%2 != 0 {
		return ""
	}
	u16 := make([]uint16, len(raw)/2)
	for i := range u16 {
		u16[i] = uint16(raw[i*2])<<8 | uint16(raw[i*2+1])
	}
	return string(utf16.Decode(u16))
}

func hexValue(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
