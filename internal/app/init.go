package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/nexusshelf/internal/config"
)

func newInitCmd() *cobra.Command {
	var (
		kind  string
		url   string
		dsn   string
		path  string
		table string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file for a catalog backend",
		Long: `Write a config file selecting where the catalog is stored.

Backends:
  • supabase  a Supabase project (REST); the key is read from SUPABASE_KEY
  • postgres  a Postgres database (--dsn)
  • sqlite    a local SQLite file (default under the data dir)
  • memory    nothing persisted; useful for trying things out

Keys are never written to the file. Category suggestions use the
GEMINI_API_KEY environment variable when set.`,
		Example: `  nexusshelf init --backend supabase --url https://abc123.supabase.co
  nexusshelf init --backend postgres --dsn "postgres://localhost/nexus?sslmode=disable"
  nexusshelf init --backend sqlite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := flagConfig
			if target == "" {
				target = config.Path()
			}
			if _, err := os.Stat(target); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", target)
			}

			c := *cfg
			c.Backend.Kind = kind
			if cmd.Flags().Changed("url") {
				c.Backend.URL = url
			}
			if cmd.Flags().Changed("dsn") {
				c.Backend.DSN = dsn
			}
			if cmd.Flags().Changed("path") {
				c.Backend.Path = config.ExpandHome(path)
			}
			if cmd.Flags().Changed("table") {
				c.Backend.Table = table
			}
			if err := c.Validate(); err != nil {
				return err
			}

			if err := config.SaveFile(target, &c); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			ok("Wrote %s (%s backend)", target, c.Backend.Kind)

			if c.Backend.Kind == "supabase" && c.Backend.Key == "" {
				warn("Set %s to your Supabase anon key before signing in", c.Backend.KeyEnv)
			}
			fmt.Println()
			fmt.Println("Next:")
			fmt.Printf("  %s\n", color.CyanString("nexusshelf signup"))
			fmt.Printf("  %s\n", color.CyanString("nexusshelf seed"))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "backend", "supabase", "Backend: supabase, postgres, sqlite or memory")
	cmd.Flags().StringVar(&url, "url", "", "Supabase project URL")
	cmd.Flags().StringVar(&dsn, "dsn", "", "Postgres connection string")
	cmd.Flags().StringVar(&path, "path", "", "SQLite database file")
	cmd.Flags().StringVar(&table, "table", "", "Table name (default books)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
