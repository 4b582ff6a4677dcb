package ingest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/nexusshelf/internal/ingest"
)

func TestResolve_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Shah_Jo_Risalo-Latif-1744-SLA.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4\n"), 0600); err != nil {
		t.Fatal(err)
	}
	src, err := ingest.Resolve(path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if src.FileName != "Shah_Jo_Risalo-Latif-1744-SLA" {
		t.Errorf("FileName = %q", src.FileName)
	}
	if src.Path != path || src.Link != "" {
		t.Errorf("Path = %q, Link = %q", src.Path, src.Link)
	}
	if !src.IsPDF() {
		t.Error("IsPDF() = false for .pdf file")
	}
}

func TestResolve_URL(t *testing.T) {
	src, err := ingest.Resolve("https://archive.example.org/scans/Tarikh-Badwi-1950.pdf?dl=1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if src.FileName != "Tarikh-Badwi-1950" {
		t.Errorf("FileName = %q", src.FileName)
	}
	if src.Link != "https://archive.example.org/scans/Tarikh-Badwi-1950.pdf?dl=1" {
		t.Errorf("Link = %q", src.Link)
	}
	if src.IsPDF() {
		t.Error("URL sources have no local metadata")
	}
}

func TestResolve_BareName(t *testing.T) {
	src, err := ingest.Resolve("  Sachal-Sarmast-1820  ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if src.FileName != "Sachal-Sarmast-1820" || src.Path != "" || src.Link != "" {
		t.Errorf("unexpected source %+v", src)
	}
}

func TestResolve_Errors(t *testing.T) {
	dir := t.TempDir()
	for _, in := range []string{"", "   ", dir, filepath.Join(dir, "missing.pdf")} {
		if _, err := ingest.Resolve(in); err == nil {
			t.Errorf("Resolve(%q): expected error", in)
		}
	}
}
