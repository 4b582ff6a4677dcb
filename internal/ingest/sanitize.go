package ingest

import "strings"

var terminalReplacer = strings.NewReplacer(
	"\u201C", `"`, "\u201D", `"`,
	"\u2018", "'", "\u2019", "'",
	"\u2013", "-", "\u2014", "--",
	"\u2026", "...",
	"\u00A0", " ",
	"\u2022", "*",
	"\u00AB", "<<", "\u00BB", ">>",
)

// sanitizeForTerminal folds typographic punctuation that PDF producers
// like to emit into plain ASCII. Arabic-script text passes through.
func sanitizeForTerminal(s string) string {
	return strings.TrimSpace(terminalReplacer.Replace(s))
}
