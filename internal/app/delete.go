package app

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
	"github.com/blackwell-systems/nexusshelf/internal/util"
)

// deleteQuestion is asked before any record is removed.
const deleteQuestion = "Are you sure you want to delete this book entry from the database?"

func newDeleteCmd() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a catalog record",
		Long: `Delete a catalog record by id (or unique id prefix).

This removes the record from the backend and cannot be undone. You are
asked to type the id prefix shown to confirm, unless --yes is given.`,
		Example: `  nexusshelf delete 3f2a9c1e
  nexusshelf delete 3f2a9c1e --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, cleanup, err := openController(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := deleteTarget(ctrl.State().Books, args[0])
			if err != nil {
				return err
			}

			if !skipConfirm && !util.IsStdinTTY() {
				return fmt.Errorf("refusing to delete without confirmation; pass --yes")
			}
			confirm := func(id string, b *catalog.Book) bool {
				if skipConfirm {
					return true
				}
				return confirmDelete(id, b)
			}

			deleted, err := ctrl.DeleteEntry(cmd.Context(), id, confirm)
			if err != nil {
				return noticeError(ctrl, err)
			}
			if !deleted {
				fmt.Println(color.YellowString("Cancelled."))
				return nil
			}
			ok("Deleted %s", shortID(id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// deleteTarget resolves the id to delete. An id absent from the loaded
// catalog is passed through so the backend still gets the request; an
// ambiguous prefix is an error.
func deleteTarget(books []catalog.Book, id string) (string, error) {
	b, err := findBook(books, id)
	switch {
	case err == nil:
		return b.ID, nil
	case errors.Is(err, errBookNotFound):
		return id, nil
	default:
		return "", err
	}
}

// confirmDelete asks the user to type the record's short id.
func confirmDelete(id string, b *catalog.Book) bool {
	fmt.Println(color.RedString(deleteQuestion))
	if b != nil {
		printField("title", b.DisplayTitle())
		printField("file name", b.FileName)
	} else {
		warn("%s is not in the loaded catalog", id)
	}
	want := shortID(id)
	got, err := prompt(fmt.Sprintf("Type %s to confirm: ", color.WhiteString(want)))
	if err != nil {
		return false
	}
	return got == want || got == id
}
