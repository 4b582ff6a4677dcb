package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Add the sample books to the catalog",
		Long: `Add three sample books (classic Sindhi works) to the catalog,
stamped with the signed-in user and the current time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, cleanup, err := openController(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			books, err := ctrl.SeedSamples(cmd.Context())
			if err != nil {
				return noticeError(ctrl, err)
			}
			ok("Successfully added %d sample books to database!", len(books))
			for _, b := range books {
				printBookLine(b)
			}
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, cleanup, err := openController(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			s := ctrl.Stats()
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}

			header("Catalog")
			printField("total books", fmt.Sprint(s.Total))
			printField("categories", fmt.Sprint(s.Categories))
			printField("completed", color.GreenString("%d", s.Completed))

			counts := map[string]int{}
			for _, b := range ctrl.State().Books {
				counts[string(b.Status)]++
			}
			keys := make([]string, 0, len(counts))
			for k := range counts {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Println()
			header("By status")
			for _, k := range keys {
				printField(k, fmt.Sprint(counts[k]))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}
