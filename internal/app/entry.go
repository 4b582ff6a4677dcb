package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
	"github.com/blackwell-systems/nexusshelf/internal/editor"
	"github.com/blackwell-systems/nexusshelf/internal/ingest"
	"github.com/blackwell-systems/nexusshelf/internal/operations"
	"github.com/blackwell-systems/nexusshelf/internal/tui"
)

// entryFlags are the per-field flags shared by add and edit.
type entryFlags struct {
	fields  map[string]*string
	status  string
	suggest bool
}

// entryFlagFields maps flag names to the Book field they set.
var entryFlagFields = []struct {
	name, usage string
	ref         func(*catalog.Book) *string
}{
	{"title", "English title", func(b *catalog.Book) *string { return &b.TitleEnglish }},
	{"title-sd", "Sindhi title", func(b *catalog.Book) *string { return &b.TitleSindhi }},
	{"author", "English author", func(b *catalog.Book) *string { return &b.AuthorEnglish }},
	{"author-sd", "Sindhi author", func(b *catalog.Book) *string { return &b.AuthorSindhi }},
	{"year", "Publication year", func(b *catalog.Book) *string { return &b.Year }},
	{"publisher", "Publisher", func(b *catalog.Book) *string { return &b.Publisher }},
	{"category", "Category", func(b *catalog.Book) *string { return &b.Category }},
	{"language", "Language", func(b *catalog.Book) *string { return &b.Language }},
	{"source", "Source collection", func(b *catalog.Book) *string { return &b.Source }},
	{"link", "Link to the scan", func(b *catalog.Book) *string { return &b.Link }},
	{"thumbnail", "Thumbnail URL", func(b *catalog.Book) *string { return &b.Thumbnail }},
	{"stage", "Workflow stage", func(b *catalog.Book) *string { return &b.Stage }},
	{"scanned-by", "Who scanned it", func(b *catalog.Book) *string { return &b.ScannedBy }},
	{"assigned-to", "Who it is assigned to", func(b *catalog.Book) *string { return &b.AssignedTo }},
}

func (f *entryFlags) bind(fs *pflag.FlagSet) {
	f.fields = make(map[string]*string, len(entryFlagFields))
	for _, ff := range entryFlagFields {
		f.fields[ff.name] = fs.String(ff.name, "", ff.usage)
	}
	fs.StringVar(&f.status, "status", "", "Status (pending, in-progress, completed, rejected)")
	fs.BoolVar(&f.suggest, "suggest", false, "Ask the model for a category")
}

// changed reports whether any field flag was given.
func (f *entryFlags) changed(fs *pflag.FlagSet) bool {
	for _, ff := range entryFlagFields {
		if fs.Changed(ff.name) {
			return true
		}
	}
	return fs.Changed("status") || fs.Changed("file-name")
}

// wantsForm reports whether the interactive form should collect the
// entry: nothing was given on the command line, --suggest included.
func (f *entryFlags) wantsForm(fs *pflag.FlagSet) bool {
	return !f.changed(fs) && !f.suggest
}

// apply copies the given flags onto b. Explicit flags win over decoded
// values.
func (f *entryFlags) apply(fs *pflag.FlagSet, b *catalog.Book) error {
	for _, ff := range entryFlagFields {
		if fs.Changed(ff.name) {
			*ff.ref(b) = *f.fields[ff.name]
		}
	}
	if fs.Changed("status") {
		s, err := catalog.ParseStatus(f.status)
		if err != nil {
			return err
		}
		b.Status = s
	}
	return nil
}

func newAddCmd() *cobra.Command {
	var flags entryFlags

	cmd := &cobra.Command{
		Use:   "add [file | url | file-name]",
		Short: "Create a catalog record",
		Long: `Create a catalog record.

The argument may be a local file, a URL or just a file name. Its base
name (without extension) becomes the record's file name and is decoded
as Title-Author-Year-Source: underscores become spaces, and a title or
author written in Arabic script goes to the Sindhi field. For local
PDFs, embedded title and author metadata fill fields still blank. URLs
also fill the link.

In a terminal without field flags, the entry form opens prefilled.`,
		Example: `  nexusshelf add ~/scans/Shah_Jo_Risalo-Shah_Abdul_Latif-1744-SLA.pdf
  nexusshelf add https://archive.example.org/Sindh_Ji_Tarikh-Badwi-1950.pdf --suggest
  nexusshelf add Sachal_Jo_Kalam-Sachal-1800 --status in-progress --no-interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, cleanup, err := openController(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			d := editor.New(*ctrl.State().CurrentUser, now())
			if len(args) == 1 {
				if err := prefillFromSource(d, args[0]); err != nil {
					return err
				}
			}
			return runEntry(cmd, ctrl, d, &flags)
		},
	}

	flags.bind(cmd.Flags())
	return cmd
}

func newEditCmd() *cobra.Command {
	var (
		flags    entryFlags
		fileName string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a catalog record",
		Long: `Edit a catalog record by id (or unique id prefix).

--file-name replaces the file name and decodes it again, like typing it
into the form. In a terminal without field flags, the entry form opens.`,
		Example: `  nexusshelf edit 3f2a --status completed --scanned-by Ali
  nexusshelf edit 3f2a`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, cleanup, err := openController(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			b, err := findBook(ctrl.State().Books, args[0])
			if err != nil {
				return err
			}
			d := editor.Edit(*b)
			if cmd.Flags().Changed("file-name") {
				d.SetFileName(fileName)
			}
			return runEntry(cmd, ctrl, d, &flags)
		},
	}

	flags.bind(cmd.Flags())
	cmd.Flags().StringVar(&fileName, "file-name", "", "New file name (decoded into title, author, year and source)")
	return cmd
}

// prefillFromSource decodes a path, URL or name into the draft.
func prefillFromSource(d *editor.Draft, input string) error {
	src, err := ingest.Resolve(input)
	if err != nil {
		return err
	}
	d.SetFileName(src.FileName)
	if src.Link != "" {
		d.Book.Link = src.Link
	}
	if src.Path != "" && src.IsPDF() {
		md, err := ingest.ExtractPDFMetadata(src.Path)
		if err != nil {
			logger.Debug("no pdf metadata", zap.String("path", src.Path), zap.Error(err))
		} else {
			ingest.FillBlank(&d.Book, md)
		}
	}
	return nil
}

// runEntry finishes a draft through the form or the flags and saves it.
func runEntry(cmd *cobra.Command, ctrl *operations.Controller, d *editor.Draft, flags *entryFlags) error {
	ctx := cmd.Context()
	fs := cmd.Flags()
	if err := flags.apply(fs, &d.Book); err != nil {
		return err
	}
	user := *ctrl.State().CurrentUser
	suggester := newSuggester(ctx)

	var b catalog.Book
	if flags.wantsForm(fs) && tui.ShouldUseTUI(cmd) {
		got, err := tui.RunEntryForm(ctx, d, tui.EntryFormOptions{User: user, Suggester: suggester})
		if errors.Is(err, tui.ErrCanceled) {
			warn("Nothing saved")
			return nil
		}
		if err != nil {
			return err
		}
		b = *got
	} else {
		if flags.suggest {
			if err := suggestInto(ctx, d, suggester); err != nil {
				return err
			}
		}
		got, err := d.Submit(user, now())
		if err != nil {
			return err
		}
		b = got
	}

	saved, err := ctrl.SaveEntry(ctx, b)
	if err != nil {
		return noticeError(ctrl, err)
	}
	if d.IsNew() {
		ok("Added %s (%s)", saved.DisplayTitle(), shortID(saved.ID))
	} else {
		ok("Updated %s (%s)", saved.DisplayTitle(), shortID(saved.ID))
	}
	printEntrySummary(saved)
	return nil
}

func suggestInto(ctx context.Context, d *editor.Draft, s editor.CategorySuggester) error {
	fmt.Println("Asking for a category...")
	if err := d.SuggestCategory(ctx, s); err != nil {
		return err
	}
	printField("category", d.Book.Category)
	return nil
}

func printEntrySummary(b catalog.Book) {
	printField("file name", b.FileName)
	for _, f := range []struct{ label, value string }{
		{"title", b.TitleEnglish},
		{"title (sindhi)", b.TitleSindhi},
		{"author", b.AuthorEnglish},
		{"author (sindhi)", b.AuthorSindhi},
		{"year", b.Year},
		{"source", b.Source},
		{"category", b.Category},
	} {
		if f.value != "" {
			printField(f.label, f.value)
		}
	}
	printField("status", statusColor(b.Status))
}
