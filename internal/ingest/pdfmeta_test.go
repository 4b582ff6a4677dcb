package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const pdfWithInfo = `%PDF-1.4
1 0 obj
<<
/Type /Catalog
/Pages 2 0 R
>>
endobj
4 0 obj
<<
/Title (Shah Jo Risalo \(Selections\))
/Author <FEFF0634062706470020064406370628>
/Subject (Poetry)
>>
endobj
trailer
<<
/Size 5
/Root 1 0 R
/Info 4 0 R
>>
%%EOF`

func writePDF(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scan.pdf")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("writing test PDF: %v", err)
	}
	return path
}

func TestExtractPDFMetadata(t *testing.T) {
	meta, err := ExtractPDFMetadata(writePDF(t, pdfWithInfo))
	if err != nil {
		t.Fatalf("ExtractPDFMetadata: %v", err)
	}
	if meta.Title != "Shah Jo Risalo (Selections)" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Author != "شاه لطب" {
		t.Errorf("Author = %q", meta.Author)
	}
	if meta.Subject != "Poetry" {
		t.Errorf("Subject = %q", meta.Subject)
	}
}

func TestExtractPDFMetadata_NoInfo(t *testing.T) {
	meta, err := ExtractPDFMetadata(writePDF(t, "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF"))
	if err != nil {
		t.Fatalf("ExtractPDFMetadata: %v", err)
	}
	if *meta != (PDFMetadata{}) {
		t.Errorf("expected empty metadata, got %+v", *meta)
	}
}

func TestExtractPDFMetadata_InfoInTrailerOfLargeFile(t *testing.T) {
	body := "%PDF-1.4\n" + strings.Repeat("0", 3*pdfWindow) + "\n<< /Title (Tail Title) >>\n%%EOF"
	meta, err := ExtractPDFMetadata(writePDF(t, body))
	if err != nil {
		t.Fatalf("ExtractPDFMetadata: %v", err)
	}
	if meta.Title != "Tail Title" {
		t.Errorf("Title = %q, want %q", meta.Title, "Tail Title")
	}
}

func TestExtractPDFMetadata_MissingFile(t *testing.T) {
	if _, err := ExtractPDFMetadata(filepath.Join(t.TempDir(), "nope.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDecodePDFString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Simple Title", "Simple Title"},
		{`Title\nWith\nNewlines`, "Title\nWith\nNewlines"},
		{`Title with \(parens\)`, "Title with (parens)"},
		{`Path\\with\\backslash`, `Path\with\backslash`},
		{"  Spaces  ", "Spaces"},
	}
	for _, tt := range tests {
		if got := decodePDFString(tt.input); got != tt.want {
			t.Errorf("decodePDFString(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDecodeHexString(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"utf16 with bom", "FEFF00480069", "Hi"},
		{"lowercase bom", "feff00480069", "Hi"},
		{"arabic block", "FEFF06330646068C064A", "سنڌي"},
		{"whitespace inside", "FEFF 0048 0069", "Hi"},
		{"plain bytes", "4869", "Hi"},
		{"odd length", "ABC", ""},
		{"odd utf16 payload", "FEFF004800", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeHexString(tt.in); got != tt.want {
				t.Errorf("decodeHexString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexValue(t *testing.T) {
	cases := map[byte]byte{'0': 0, '9': 9, 'a': 10, 'f': 15, 'A': 10, 'F': 15, 'G': 0}
	for c, want := range cases {
		if got := hexValue(c); got != want {
			t.Errorf("hexValue(%q) = %d, want %d", c, got, want)
		}
	}
}

func TestExtractField(t *testing.T) {
	tests := []struct {
		name, text, field, want string
	}{
		{"literal", `/Title (My Great Book)`, "Title", "My Great Book"},
		{"hex", `/Title <FEFF00480069>`, "Title", "Hi"},
		{"escaped paren", `/Title (A \) B)`, "Title", "A ) B"},
		{"not found", `/Author (Someone)`, "Title", ""},
		{"unknown field", `/Keywords (x)`, "Keywords", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractField(tt.text, tt.field); got != tt.want {
				t.Errorf("extractField(%q, %q) = %q, want %q", tt.text, tt.field, got, tt.want)
			}
		})
	}
}

func TestSanitizeForTerminal(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"\u201CHello\u201D", `"Hello"`},
		{"it\u2019s", "it's"},
		{"a\u2013b\u2014c", "a-b--c"},
		{"wait\u2026", "wait..."},
		{"hello\u00A0world", "hello world"},
		{"\u2022 item", "* item"},
		{"\u00ABquote\u00BB", "<<quote>>"},
		{"شاهه جو رسالو", "شاهه جو رسالو"},
		{"  padded  ", "padded"},
	}
	for _, tt := range tests {
		if got := sanitizeForTerminal(tt.in); got != tt.want {
			t.Errorf("sanitizeForTerminal(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
