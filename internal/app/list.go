package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
)

func newListCmd() *cobra.Command {
	var (
		status string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:     "list [query]",
		Aliases: []string{"ls"},
		Short:   "List catalog records, newest first",
		Long: `List catalog records, newest first.

The optional query matches the English title, Sindhi title, English
author and file name, case-insensitively.`,
		Example: `  nexusshelf list
  nexusshelf list risalo
  nexusshelf list --status in-progress --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var want catalog.Status
			if status != "" {
				s, err := catalog.ParseStatus(status)
				if err != nil {
					return err
				}
				want = s
			}

			ctrl, cleanup, err := openController(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			books := ctrl.Filtered(query)
			if want != "" {
				kept := books[:0:0]
				for _, b := range books {
					if b.Status == want {
						kept = append(kept, b)
					}
				}
				books = kept
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(books)
			}

			if len(books) == 0 {
				fmt.Println("No books found.")
				return nil
			}
			for _, b := range books {
				printBookLine(b)
			}
			fmt.Printf("\n%d of %d records\n", len(books), len(ctrl.State().Books))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending, in-progress, completed, rejected)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func printBookLine(b catalog.Book) {
	var extra []string
	if b.AuthorEnglish != "" {
		extra = append(extra, b.AuthorEnglish)
	}
	if b.Year != "" {
		extra = append(extra, b.Year)
	}
	detail := ""
	if len(extra) > 0 {
		detail = color.HiBlackString(" · " + strings.Join(extra, ", "))
	}
	category := ""
	if b.Category != "" {
		category = " " + color.CyanString("["+b.Category+"]")
	}
	fmt.Printf("  %-8s  %-11s  %s%s%s\n",
		color.WhiteString(shortID(b.ID)),
		statusColor(b.Status),
		b.DisplayTitle(),
		detail,
		category,
	)
}

// shortID abbreviates a UUID for tables; any unique prefix is accepted
// where an id is expected.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func statusColor(s catalog.Status) string {
	switch s {
	case catalog.StatusCompleted:
		return color.GreenString("%-11s", s)
	case catalog.StatusInProgress:
		return color.YellowString("%-11s", s)
	case catalog.StatusRejected:
		return color.RedString("%-11s", s)
	default:
		return fmt.Sprintf("%-11s", s)
	}
}

var (
	errBookNotFound = errors.New("book not found")
	errAmbiguousID  = errors.New("ambiguous id prefix")
)

// findBook resolves an id or unique id prefix in the loaded catalog.
func findBook(books []catalog.Book, id string) (*catalog.Book, error) {
	if id == "" {
		return nil, fmt.Errorf("book id required")
	}
	if b := catalog.ByID(books, id); b != nil {
		return b, nil
	}
	var found *catalog.Book
	for i := range books {
		if strings.HasPrefix(books[i].ID, id) {
			if found != nil {
				return nil, fmt.Errorf("%w %q", errAmbiguousID, id)
			}
			found = &books[i]
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %q", errBookNotFound, id)
	}
	return found, nil
}
