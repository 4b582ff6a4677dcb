package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
	"github.com/blackwell-systems/nexusshelf/internal/operations"
	"github.com/blackwell-systems/nexusshelf/internal/session"
	"github.com/blackwell-systems/nexusshelf/internal/tui"
	"github.com/blackwell-systems/nexusshelf/internal/util"
)

func newExportCmd() *cobra.Command {
	var (
		out    string
		backup bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog as YAML",
		Long: `Write every catalog record as YAML, to stdout or to --out.

The file can be loaded back with 'nexusshelf import'.`,
		Example: `  nexusshelf export > catalog.yml
  nexusshelf export --out ~/backups/catalog.yml --backup`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, cleanup, err := openController(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			books := ctrl.State().Books
			if out == "" {
				data, err := catalog.Marshal(books)
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(data)
				return err
			}

			if backup {
				if _, err := os.Stat(out); err == nil {
					bak := out + ".bak"
					if err := util.CopyFile(out, bak); err != nil {
						return fmt.Errorf("backing up %s: %w", out, err)
					}
					ok("Backed up previous export to %s", bak)
				}
			}
			if err := catalog.Save(out, books); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			ok("Exported %d records to %s", len(books), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&backup, "backup", false, "Copy an existing output file to <out>.bak first")
	return cmd
}

func newImportCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load records from a YAML export",
		Long: `Load records from a YAML file written by 'nexusshelf export'.

Records keep their ids, so importing an export again updates the same
rows. Records without an id get a new one; missing creation fields are
stamped with the signed-in user. Records are written in batches; if a
batch fails, the ones already written stay.`,
		Example: `  nexusshelf import catalog.yml
  nexusshelf import catalog.yml --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := catalog.Load(args[0])
			if err != nil {
				return err
			}
			if len(books) == 0 {
				warn("%s has no records", args[0])
				return nil
			}

			ctrl, cleanup, err := openController(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			books = prepareImport(books, *ctrl.State().CurrentUser, now())
			if dryRun {
				header("Would import %d records", len(books))
				for _, b := range books {
					printBookLine(b)
				}
				return nil
			}

			var stored []catalog.Book
			if tui.ShouldUseTUI(cmd) {
				label := fmt.Sprintf("Importing %d records", len(books))
				stored, err = importWithProgress(cmd.Context(), ctrl, books, func(total int, progressCh <-chan int) error {
					return tui.ShowProgress(label, total, progressCh)
				})
			} else {
				stored, err = ctrl.ImportEntries(cmd.Context(), books, nil)
			}
			if err != nil {
				return noticeError(ctrl, err)
			}
			ok("Imported %d records.", len(stored))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the records without writing them")
	return cmd
}

// importWithProgress runs the import while show renders its progress.
// When show fails (the user quit the progress view) the import is
// cancelled; batches already stored stay stored and are reported.
func importWithProgress(ctx context.Context, ctrl *operations.Controller, books []catalog.Book, show func(total int, progressCh <-chan int) error) ([]catalog.Book, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		stored []catalog.Book
		err    error
	}
	progressCh := make(chan int, 8)
	done := make(chan result, 1)
	go func() {
		stored, err := ctrl.ImportEntries(ctx, books, func(n int) {
			select {
			case progressCh <- n:
			case <-ctx.Done():
			}
		})
		close(progressCh)
		done <- result{stored, err}
	}()

	if err := show(len(books), progressCh); err != nil {
		cancel()
		for range progressCh {
		}
		r := <-done
		if r.err == nil {
			return r.stored, nil
		}
		return r.stored, fmt.Errorf("%w after %d of %d records", err, len(r.stored), len(books))
	}
	r := <-done
	return r.stored, r.err
}

// prepareImport fills the fields a record must carry before it is stored.
// The input slice is not modified.
func prepareImport(books []catalog.Book, u session.User, at time.Time) []catalog.Book {
	out := make([]catalog.Book, len(books))
	for i, b := range books {
		if b.ID == "" {
			b.ID = catalog.NewID()
		}
		if b.CreatedTime == "" {
			b.CreatedTime = catalog.Timestamp(at)
		}
		if b.CreatedBy == "" {
			b.CreatedBy = u.FullName
		}
		if b.CurrentHolderID == "" {
			b.CurrentHolderID = u.ID
		}
		if b.Status == "" {
			b.Status = catalog.StatusPending
		}
		out[i] = b
	}
	return out
}
