package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
	"github.com/blackwell-systems/nexusshelf/internal/util"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of one record",
		Args:  cobra.ExactArgs(1),
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

			md := bookMarkdown(*b)
			if !util.IsTTY() || flagNoColor {
				fmt.Print(md)
				return nil
			}
			r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
			if err != nil {
				fmt.Print(md)
				return nil
			}
			out, err := r.Render(md)
			if err != nil {
				return fmt.Errorf("rendering: %w", err)
			}
			fmt.Print(out)
			return nil
		},
	}
	return cmd
}

// bookMarkdown renders a record as a markdown document.
func bookMarkdown(b catalog.Book) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", b.DisplayTitle())
	if b.TitleSindhi != "" && b.TitleSindhi != b.DisplayTitle() {
		fmt.Fprintf(&sb, "**%s**\n\n", b.TitleSindhi)
	}
	fmt.Fprintf(&sb, "`%s` · %s\n\n", b.FileName, b.Status)

	rows := []struct{ label, value string }{
		{"Author", b.AuthorEnglish},
		{"Author (Sindhi)", b.AuthorSindhi},
		{"Year", b.Year},
		{"Publisher", b.Publisher},
		{"Category", b.Category},
		{"Language", b.Language},
		{"Source", b.Source},
		{"Link", b.Link},
		{"Thumbnail", b.Thumbnail},
	}
	writeTable(&sb, "Bibliographic", rows)

	writeTable(&sb, "Workflow", []struct{ label, value string }{
		{"Status", string(b.Status)},
		{"Stage", b.Stage},
		{"Holder", b.CurrentHolderID},
		{"Scanned by", b.ScannedBy},
		{"Assigned to", b.AssignedTo},
	})

	writeTable(&sb, "Audit", []struct{ label, value string }{
		{"ID", b.ID},
		{"Created", b.CreatedTime + " by " + b.CreatedBy},
		{"Last edited", strings.TrimSuffix(b.LastEditedTime+" by "+b.LastEditedBy, " by ")},
	})
	return sb.String()
}

func writeTable(sb *strings.Builder, title string, rows []struct{ label, value string }) {
	fmt.Fprintf(sb, "## %s\n\n| Field | Value |\n|---|---|\n", title)
	for _, r := range rows {
		if strings.TrimSpace(r.value) == "" {
			continue
		}
		fmt.Fprintf(sb, "| %s | %s |\n", r.label, strings.ReplaceAll(r.value, "|", `\|`))
	}
	sb.WriteString("\n")
}
