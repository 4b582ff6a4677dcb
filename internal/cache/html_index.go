package cache

import (
	"fmt"
	"html"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
)

// IndexFile is the name of the generated catalog page.
const IndexFile = "index.html"

// IndexOptions controls the generated page header.
type IndexOptions struct {
	Title       string
	GeneratedBy string
	GeneratedAt time.Time
}

// GenerateHTMLIndex writes a self-contained catalog page into the data
// directory and returns its path.
func (m *Manager) GenerateHTMLIndex(books []catalog.Book, opts IndexOptions) (string, error) {
	page := generateHTML(books, opts)
	path, err := m.WriteFile(IndexFile, []byte(page), 0644)
	if err != nil {
		return "", fmt.Errorf("writing %s: %w", IndexFile, err)
	}
	return path, nil
}

func generateHTML(books []catalog.Book, opts IndexOptions) string {
	if opts.Title == "" {
		opts.Title = "NexusShelf Catalog"
	}
	var s strings.Builder
	stats := catalog.Summarize(books)

	fmt.Fprintf(&s, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>%s</style>
</head>
<body>
    <div class="sticky-nav">
        <header>
            <h1>%s</h1>
            <p class="subtitle">%d records &middot; %d categories &middot; %d completed%s</p>
        </header>
        <div class="controls">
            <input type="text" id="search" placeholder="Search English or Sindhi title, author, file name..." autofocus>
        </div>
`, html.EscapeString(opts.Title), indexCSS, html.EscapeString(opts.Title),
		stats.Total, stats.Categories, stats.Completed, generatedLine(opts))

	renderCategoryFilters(&s, books)

	s.WriteString(`    </div>

    <div class="content-wrapper">
        <table id="library">
            <thead>
                <tr><th>Title</th><th>Author</th><th>Year</th><th>Category</th><th>Status</th><th>Stage</th><th>File</th></tr>
            </thead>
            <tbody>
`)
	for _, b := range books {
		renderBookRow(&s, b)
	}
	s.WriteString(`            </tbody>
        </table>
        <div id="no-results" class="no-results" style="display:none;">No records match your search.</div>
    </div>
`)
	s.WriteString(indexScript)
	s.WriteString("</body>\n</html>\n")
	return s.String()
}

func generatedLine(opts IndexOptions) string {
	if opts.GeneratedAt.IsZero() {
		return ""
	}
	line := " &middot; generated " + html.EscapeString(catalog.Timestamp(opts.GeneratedAt))
	if opts.GeneratedBy != "" {
		line += " by " + html.EscapeString(opts.GeneratedBy)
	}
	return line
}

func renderCategoryFilters(s *strings.Builder, books []catalog.Book) {
	counts := map[string]int{}
	for _, b := range books {
		if b.Category != "" {
			counts[b.Category]++
		}
	}
	if len(counts) == 0 {
		return
	}
	names := make([]string, 0, len(counts))
	for c := range counts {
		names = append(names, c)
	}
	sort.Strings(names)

	s.WriteString(`        <div class="category-filters">
`)
	for _, c := range names {
		fmt.Fprintf(s, `            <span class="category-filter" data-category="%s">%s<span class="count">%d</span></span>
`, html.EscapeString(c), html.EscapeString(c), counts[c])
	}
	s.WriteString(`        </div>
`)
}

func renderBookRow(s *strings.Builder, b catalog.Book) {
	fmt.Fprintf(s, `                <tr class="book-row" data-id="%s" data-category="%s" data-search="%s">
`,
		html.EscapeString(b.ID),
		html.EscapeString(b.Category),
		html.EscapeString(strings.ToLower(catalog.SearchText(b))),
	)

	s.WriteString("                    <td>")
	bilingualCell(s, b.TitleEnglish, b.TitleSindhi, b.Link)
	s.WriteString("</td>\n                    <td>")
	bilingualCell(s, b.AuthorEnglish, b.AuthorSindhi, "")
	s.WriteString("</td>\n")

	fmt.Fprintf(s, `                    <td>%s</td>
                    <td>%s</td>
                    <td><span class="status %s">%s</span></td>
                    <td>%s</td>
                    <td class="file">%s</td>
                </tr>
`,
		html.EscapeString(b.Year),
		html.EscapeString(b.Category),
		statusClass(b.Status), html.EscapeString(string(b.Status)),
		html.EscapeString(b.Stage),
		html.EscapeString(b.FileName),
	)
}

func bilingualCell(s *strings.Builder, english, sindhi, link string) {
	en := html.EscapeString(english)
	if safeLink(link) && en != "" {
		en = fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(link), en)
	}
	if en != "" {
		s.WriteString(`<div class="en">` + en + `</div>`)
	}
	if sindhi != "" {
		s.WriteString(`<div class="sd" dir="rtl" lang="sd">` + html.EscapeString(sindhi) + `</div>`)
	}
}

// safeLink reports whether link is an absolute http(s) URL.
func safeLink(link string) bool {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func statusClass(st catalog.Status) string {
	return "status-" + strings.ReplaceAll(strings.ToLower(string(st)), " ", "-")
}

const indexCSS = `
        :root {
            --emerald: #10b981;
            --emerald-dark: #047857;
            --slate: #0f172a;
            --slate-card: #1e293b;
            --slate-border: #334155;
        }
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            background: var(--slate);
            color: #e2e8f0;
            line-height: 1.5;
        }
        .sticky-nav {
            position: sticky;
            top: 0;
            background: var(--slate);
            padding: 20px 20px 10px;
            border-bottom: 2px solid var(--slate-border);
        }
        header, .controls, .category-filters { max-width: 1200px; margin: 0 auto 12px; }
        h1 { font-size: 1.8rem; color: var(--emerald); }
        .subtitle { color: #94a3b8; font-size: 0.9rem; }
        #search {
            width: 100%;
            padding: 10px 16px;
            font-size: 1rem;
            background: var(--slate-card);
            border: 1px solid var(--slate-border);
            border-radius: 8px;
            color: inherit;
        }
        #search:focus { outline: none; border-color: var(--emerald); }
        .category-filters { display: flex; flex-wrap: wrap; gap: 8px; }
        .category-filter {
            background: var(--slate-card);
            border: 1px solid var(--slate-border);
            padding: 4px 12px;
            border-radius: 999px;
            cursor: pointer;
            font-size: 0.85rem;
            user-select: none;
        }
        .category-filter.active { background: var(--emerald-dark); border-color: var(--emerald); }
        .category-filter .count { color: #94a3b8; margin-left: 6px; }
        .content-wrapper { max-width: 1200px; margin: 20px auto; padding: 0 20px; }
        table { width: 100%; border-collapse: collapse; }
        th { text-align: left; color: #94a3b8; font-weight: 600; font-size: 0.8rem; text-transform: uppercase; }
        th, td { padding: 10px 8px; border-bottom: 1px solid var(--slate-border); vertical-align: top; }
        td a { color: var(--emerald); text-decoration: none; }
        .sd { font-size: 1.05rem; color: #cbd5e1; }
        .file { font-family: ui-monospace, monospace; font-size: 0.8rem; color: #94a3b8; }
        .status { padding: 2px 8px; border-radius: 6px; font-size: 0.8rem; white-space: nowrap; }
        .status-pending { background: #334155; }
        .status-in-progress { background: #1e3a8a; }
        .status-completed { background: var(--emerald-dark); }
        .status-rejected { background: #7f1d1d; }
        .no-results { text-align: center; color: #94a3b8; padding: 40px; }
`

const indexScript = `    <script>
        const search = document.getElementById('search');
        const rows = document.querySelectorAll('.book-row');
        const noResults = document.getElementById('no-results');
        let activeCategory = '';

        document.querySelectorAll('.category-filter').forEach(chip => {
            chip.addEventListener('click', () => {
                const c = chip.dataset.category;
                activeCategory = activeCategory === c ? '' : c;
                document.querySelectorAll('.category-filter').forEach(x =>
                    x.classList.toggle('active', x.dataset.category === activeCategory));
                applyFilters();
            });
        });
        search.addEventListener('input', applyFilters);

        function applyFilters() {
            const q = search.value.toLowerCase();
            let visible = 0;
            rows.forEach(row => {
                const ok = (q === '' || row.dataset.search.includes(q)) &&
                    (activeCategory === '' || row.dataset.category === activeCategory);
                row.style.display = ok ? '' : 'none';
                if (ok) visible++;
            });
            noResults.style.display = visible === 0 ? 'block' : 'none';
        }
    </script>
`
