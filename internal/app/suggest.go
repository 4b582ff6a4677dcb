package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/nexusshelf/internal/ingest"
)

func newSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <english title>",
		Short: "Suggest a category for a title",
		Long: `Ask the model for a one- or two-word category for an English title.

Without an API key, or when the model fails, the answer is "General".`,
		Example: `  nexusshelf suggest "History of Sindh"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return fmt.Errorf("english title required")
			}
			fmt.Println(newSuggester(cmd.Context()).Category(cmd.Context(), title))
			return nil
		},
	}
}

type decodeResult struct {
	FileName      string `json:"file_name"`
	TitleEnglish  string `json:"title_english,omitempty"`
	TitleSindhi   string `json:"title_sindhi,omitempty"`
	AuthorEnglish string `json:"author_english,omitempty"`
	AuthorSindhi  string `json:"author_sindhi,omitempty"`
	Year          string `json:"year,omitempty"`
	Source        string `json:"source,omitempty"`
}

func newDecodeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "decode <file-name>...",
		Short: "Show what a file name decodes to",
		Long: `Decode file names of the form Title-Author-Year-Source without
touching the catalog. Paths and URLs are reduced to their base name
first.`,
		Example: `  nexusshelf decode Shah_Jo_Risalo-Shah_Abdul_Latif-1744-SLA
  nexusshelf decode ~/scans/*.pdf --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]decodeResult, 0, len(args))
			for _, arg := range args {
				src, err := ingest.Resolve(arg)
				if err != nil {
					return err
				}
				b := ingest.Decode(src.FileName)
				results = append(results, decodeResult{
					FileName:      src.FileName,
					TitleEnglish:  b.TitleEnglish,
					TitleSindhi:   b.TitleSindhi,
					AuthorEnglish: b.AuthorEnglish,
					AuthorSindhi:  b.AuthorSindhi,
					Year:          b.Year,
					Source:        b.Source,
				})
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			for i, r := range results {
				if i > 0 {
					fmt.Println()
				}
				header("%s", r.FileName)
				printField("title", r.TitleEnglish)
				printField("title (sindhi)", r.TitleSindhi)
				printField("author", r.AuthorEnglish)
				printField("author (sindhi)", r.AuthorSindhi)
				printField("year", r.Year)
				printField("source", r.Source)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}
