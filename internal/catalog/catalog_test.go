package catalog_test

import (
	"testing"
	"time"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
	"github.com/google/go-cmp/cmp"
)

var sampleYAML = []byte(`
- id: risalo
  fileName: Shah_Jo_Risalo-Shah_Abdul_Latif-1744-SLA
  titleEnglish: "Shah Jo Risalo"
  titleSindhi: "شاهه جو رسالو"
  authorEnglish: "Shah Abdul Latif Bhittai"
  year: "1744"
  category: Poetry
  status: Completed
  stage: Archived
  createdTime: "2026-01-02T00:00:00Z"

- id: tarikh
  fileName: Sindh_Ji_Adabi_Tarikh-Lutfullah_Badwi-1950
  titleEnglish: "History of Sindhi Literature"
  authorEnglish: "Lutfullah Badwi"
  year: "1950"
  category: History
  status: In Progress
  stage: Formatting
  createdTime: "2026-01-01T00:00:00Z"
`)

// --- Parse / Marshal round-trip ---

func TestParse_ValidYAML(t *testing.T) {
	books, err := catalog.Parse(sampleYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}
	if books[0].ID != "risalo" {
		t.Errorf("books[0].ID = %q, want %q", books[0].ID, "risalo")
	}
	if books[1].Status != catalog.StatusInProgress {
		t.Errorf("books[1].Status = %q, want %q", books[1].Status, catalog.StatusInProgress)
	}
	if books[0].TitleSindhi != "شاهه جو رسالو" {
		t.Errorf("books[0].TitleSindhi = %q", books[0].TitleSindhi)
	}
}

func TestParse_Empty(t *testing.T) {
	books, err := catalog.Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse empty: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("expected 0 books, got %d", len(books))
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := catalog.Parse([]byte(":: bad yaml ["))
	if err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}

func TestParse_UnknownStatus(t *testing.T) {
	_, err := catalog.Parse([]byte("- id: x\n  status: Lost\n"))
	if err == nil {
		t.Error("expected error for unknown status, got nil")
	}
}

func TestParse_MissingStatusDefaultsPending(t *testing.T) {
	books, err := catalog.Parse([]byte("- id: x\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if books[0].Status != catalog.StatusPending {
		t.Errorf("Status = %q, want Pending", books[0].Status)
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	books, err := catalog.Parse(sampleYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	data, err := catalog.Marshal(books)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	books2, err := catalog.Parse(data)
	if err != nil {
		t.Fatalf("re-Parse: %v", err)
	}
	if diff := cmp.Diff(books, books2); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

// --- Status ---

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want catalog.Status
	}{
		{"", catalog.StatusPending},
		{"pending", catalog.StatusPending},
		{"In Progress", catalog.StatusInProgress},
		{"in-progress", catalog.StatusInProgress},
		{"InProgress", catalog.StatusInProgress},
		{"COMPLETED", catalog.StatusCompleted},
		{"rejected", catalog.StatusRejected},
	}
	for _, c := range cases {
		got, err := catalog.ParseStatus(c.in)
		if err != nil {
			t.Errorf("ParseStatus(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", c.in, got, c.want)
		}
	}
	if _, err := catalog.ParseStatus("archived"); err == nil {
		t.Error("ParseStatus(archived) should fail")
	}
}

func TestStatusNext_Wraps(t *testing.T) {
	if got := catalog.StatusRejected.Next(); got != catalog.StatusPending {
		t.Errorf("Rejected.Next() = %q, want Pending", got)
	}
	if got := catalog.StatusPending.Next(); got != catalog.StatusInProgress {
		t.Errorf("Pending.Next() = %q, want In Progress", got)
	}
}

// --- Merge / Remove ---

func TestMerge_PrependsNew(t *testing.T) {
	books, _ := catalog.Parse(sampleYAML)
	newBook := catalog.Book{ID: "newbook", TitleEnglish: "New Book"}
	merged := catalog.Merge(books, newBook)
	if len(merged) != 3 {
		t.Fatalf("expected 3 after merge, got %d", len(merged))
	}
	if merged[0].ID != "newbook" {
		t.Errorf("first book ID = %q, want %q", merged[0].ID, "newbook")
	}
	if len(books) != 2 {
		t.Errorf("input slice modified: len %d", len(books))
	}
}

func TestMerge_ReplacesExistingInPlace(t *testing.T) {
	books, _ := catalog.Parse(sampleYAML)
	updated := catalog.Book{ID: "tarikh", TitleEnglish: "Tarikh (updated)"}
	merged := catalog.Merge(books, updated)
	if len(merged) != 2 {
		t.Fatalf("expected 2 after update, got %d", len(merged))
	}
	if merged[1].TitleEnglish != "Tarikh (updated)" {
		t.Errorf("title not updated: %q", merged[1].TitleEnglish)
	}
	if books[1].TitleEnglish != "History of Sindhi Literature" {
		t.Errorf("input slice modified: %q", books[1].TitleEnglish)
	}
}

func TestMerge_NeverDuplicatesIDs(t *testing.T) {
	var books []catalog.Book
	for _, id := range []string{"a", "b", "a", "c", "b", "a"} {
		books = catalog.Merge(books, catalog.Book{ID: id})
	}
	seen := map[string]bool{}
	for _, b := range books {
		if seen[b.ID] {
			t.Fatalf("duplicate id %q in %v", b.ID, ids(books))
		}
		seen[b.ID] = true
	}
	if diff := cmp.Diff([]string{"c", "b", "a"}, ids(books)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeAll_KeepsBatchOrder(t *testing.T) {
	books := []catalog.Book{{ID: "old"}, {ID: "b", TitleEnglish: "stale"}}
	got := catalog.MergeAll(books, []catalog.Book{{ID: "a"}, {ID: "b", TitleEnglish: "fresh"}, {ID: "c"}})
	if diff := cmp.Diff([]string{"a", "c", "old", "b"}, ids(got)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if got[3].TitleEnglish != "fresh" {
		t.Errorf("existing record not replaced: %q", got[3].TitleEnglish)
	}
}

func TestRemove_Existing(t *testing.T) {
	books, _ := catalog.Parse(sampleYAML)
	out, ok := catalog.Remove(books, "risalo")
	if !ok {
		t.Error("Remove returned ok=false for existing book")
	}
	if len(out) != 1 || out[0].ID != "tarikh" {
		t.Errorf("remaining = %v, want [tarikh]", ids(out))
	}
	if len(books) != 2 || books[0].ID != "risalo" {
		t.Errorf("input slice modified: %v", ids(books))
	}
}

func TestRemove_Missing(t *testing.T) {
	books, _ := catalog.Parse(sampleYAML)
	out, ok := catalog.Remove(books, "nope")
	if ok {
		t.Error("Remove returned ok=true for missing book")
	}
	if len(out) != 2 {
		t.Errorf("expected 2 books after no-op remove, got %d", len(out))
	}
}

// --- ByID ---

func TestByID(t *testing.T) {
	books, _ := catalog.Parse(sampleYAML)
	if b := catalog.ByID(books, "tarikh"); b == nil || b.ID != "tarikh" {
		t.Errorf("ByID(tarikh) = %v", b)
	}
	if b := catalog.ByID(books, "missing"); b != nil {
		t.Errorf("ByID returned non-nil for missing book")
	}
}

// --- Filter ---

func TestFilter_Empty_ReturnsAllInOrder(t *testing.T) {
	books, _ := catalog.Parse(sampleYAML)
	result := catalog.Filter{}.Apply(books)
	if diff := cmp.Diff(books, result); diff != "" {
		t.Errorf("empty filter changed result (-want +got):\n%s", diff)
	}
}

func TestFilter_SearchFields(t *testing.T) {
	books, _ := catalog.Parse(sampleYAML)
	cases := []struct {
		name, q string
		want    []string
	}{
		{"english title", "shah jo", []string{"risalo"}},
		{"sindhi title", "رسالو", []string{"risalo"}},
		{"english author", "BADWI", []string{"tarikh"}},
		{"file name", "adabi_tarikh", []string{"tarikh"}},
		{"shared substring", "s", []string{"risalo", "tarikh"}},
		{"category is not searched", "poetry", []string{}},
		{"no match", "zzznomatch", []string{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ids(catalog.Filter{Search: c.q}.Apply(books))
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("Filter{Search: %q} (-want +got):\n%s", c.q, diff)
			}
		})
	}
}

func TestFilter_ByStatus(t *testing.T) {
	books, _ := catalog.Parse(sampleYAML)
	got := catalog.Filter{Status: catalog.StatusCompleted}.Apply(books)
	if len(got) != 1 || got[0].ID != "risalo" {
		t.Errorf("status filter: got %v", ids(got))
	}
}

// --- Stats ---

func TestSummarize(t *testing.T) {
	books := []catalog.Book{
		{ID: "1", Category: "Poetry", Status: catalog.StatusCompleted},
		{ID: "2", Category: "Poetry", Status: catalog.StatusPending},
		{ID: "3", Category: "History", Status: catalog.StatusCompleted},
		{ID: "4", Category: "", Status: catalog.StatusRejected},
	}
	got := catalog.Summarize(books)
	want := catalog.Stats{Total: 4, Categories: 3, Completed: 2}
	if got != want {
		t.Errorf("Summarize = %+v, want %+v", got, want)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if got := catalog.Summarize(nil); got != (catalog.Stats{}) {
		t.Errorf("Summarize(nil) = %+v", got)
	}
}

// --- Samples ---

func TestTimestamp_SortsLexically(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := catalog.Timestamp(base)
	b := catalog.Timestamp(base.Add(500 * time.Millisecond))
	c := catalog.Timestamp(base.Add(time.Second).In(time.FixedZone("PKT", 5*3600)))
	if !(a < b && b < c) {
		t.Errorf("timestamps out of order: %q %q %q", a, b, c)
	}
	if c != "2026-03-01T12:00:01.000Z" {
		t.Errorf("Timestamp not normalized to UTC: %q", c)
	}
}

func TestSamples(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := catalog.Samples("Ayesha", now)
	b := catalog.Samples("Ayesha", now)
	if len(a) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(a))
	}
	for i := range a {
		if a[i].ID == "" || a[i].ID == b[i].ID {
			t.Errorf("sample %d: IDs must be fresh per call (%q, %q)", i, a[i].ID, b[i].ID)
		}
		if a[i].CreatedBy != "Ayesha" {
			t.Errorf("sample %d: CreatedBy = %q", i, a[i].CreatedBy)
		}
		if a[i].CreatedTime != "2026-03-01T12:00:00.000Z" {
			t.Errorf("sample %d: CreatedTime = %q", i, a[i].CreatedTime)
		}
		if !a[i].Status.Valid() {
			t.Errorf("sample %d: invalid status %q", i, a[i].Status)
		}
	}
}

func ids(books []catalog.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}
