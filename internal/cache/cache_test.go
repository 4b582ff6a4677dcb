package cache_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/nexusshelf/internal/cache"
	"github.com/blackwell-systems/nexusshelf/internal/catalog"
)

func TestPath_Layout(t *testing.T) {
	m := cache.New("/base")
	got := m.Path("session.json")
	want := filepath.Join("/base", "session.json")
	if got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	if m.Dir() != "/base" {
		t.Errorf("Dir() = %q", m.Dir())
	}
}

func TestExists_False(t *testing.T) {
	m := cache.New("/no/such/base")
	if m.Exists("session.json") {
		t.Error("Exists() should be false for missing file")
	}
}

func TestStore_CreatesDirAndWrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	m := cache.New(dir)

	path, err := m.Store("session.json", strings.NewReader(`{"id":"1"}`), 0600)
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if !m.Exists("session.json") {
		t.Error("Exists() false after successful Store")
	}
	got, err := m.ReadFile("session.json")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != `{"id":"1"}` {
		t.Errorf("content = %q", got)
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := fi.Mode().Perm(); perm != 0600 {
		t.Errorf("perm = %o, want 0600", perm)
	}
}

func TestStore_ReplacesAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	m := cache.New(dir)

	for _, v := range []string{"first", "second"} {
		if _, err := m.WriteFile("f.txt", []byte(v), 0644); err != nil {
			t.Fatalf("WriteFile(%s): %v", v, err)
		}
	}
	got, _ := m.ReadFile("f.txt")
	if string(got) != "second" {
		t.Errorf("content = %q, want second", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only f.txt, got %v", names)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestStore_ReaderErrorKeepsOldFile(t *testing.T) {
	m := cache.New(t.TempDir())
	if _, err := m.WriteFile("f.txt", []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Store("f.txt", failingReader{}, 0644); err == nil {
		t.Fatal("expected error from failing reader")
	}
	got, _ := m.ReadFile("f.txt")
	if string(got) != "old" {
		t.Errorf("content = %q, want old", got)
	}
}

func TestRemove(t *testing.T) {
	m := cache.New(t.TempDir())
	if _, err := m.WriteFile("f.txt", []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := m.Remove("f.txt"); err != nil {
		t.Errorf("Remove: %v", err)
	}
	if err := m.Remove("f.txt"); err != nil {
		t.Errorf("Remove of missing file should be nil, got %v", err)
	}
}

func TestGenerateHTMLIndex(t *testing.T) {
	m := cache.New(t.TempDir())
	books := []catalog.Book{
		{
			ID:           "r1",
			TitleEnglish: "Shah Jo Risalo",
			TitleSindhi:  "شاهه جو رسالو",
			Category:     "Poetry",
			Status:       catalog.StatusInProgress,
			Link:         "https://example.org/risalo.pdf",
			FileName:     "Shah_Jo_Risalo-Latif",
		},
		{ID: "x2", TitleEnglish: `<script>alert("x")</script>`, Status: catalog.StatusPending},
	}

	path, err := m.GenerateHTMLIndex(books, cache.IndexOptions{
		GeneratedBy: "Librarian",
		GeneratedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("GenerateHTMLIndex: %v", err)
	}
	if filepath.Base(path) != cache.IndexFile {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	page := string(data)

	for _, want := range []string{
		"<title>NexusShelf Catalog</title>",
		`dir="rtl"`,
		"شاهه جو رسالو",
		`class="status status-in-progress"`,
		`data-category="Poetry"`,
		`href="https://example.org/risalo.pdf"`,
		"2 records",
		"by Librarian",
		"&lt;script&gt;",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(page, `<script>alert`) {
		t.Error("titles must be escaped")
	}
}

func TestGenerateHTMLIndex_OnlyLinksWebURLs(t *testing.T) {
	m := cache.New(t.TempDir())
	books := []catalog.Book{
		{ID: "a", TitleEnglish: "Script", Link: "javascript:alert(1)"},
		{ID: "b", TitleEnglish: "Data", Link: "data:text/html,<b>x</b>"},
		{ID: "c", TitleEnglish: "Relative", Link: "/files/c.pdf"},
		{ID: "d", TitleEnglish: "Web", Link: "HTTP://example.org/d.pdf"},
	}
	path, err := m.GenerateHTMLIndex(books, cache.IndexOptions{})
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	page := string(data)

	for _, bad := range []string{"javascript:", "data:text", `href="/files`} {
		if strings.Contains(page, bad) {
			t.Errorf("page links %q", bad)
		}
	}
	if !strings.Contains(page, `href="HTTP://example.org/d.pdf"`) {
		t.Error("http link with upper-case scheme should be kept")
	}
	if !strings.Contains(page, ">Script<") {
		t.Error("title without a safe link should still be shown")
	}
}
