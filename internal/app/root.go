package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/nexusshelf/internal/cache"
	"github.com/blackwell-systems/nexusshelf/internal/config"
	"github.com/blackwell-systems/nexusshelf/internal/logging"
	"github.com/blackwell-systems/nexusshelf/internal/tui"
	"github.com/blackwell-systems/nexusshelf/internal/util"
)

var (
	cfg      *config.Config
	cacheMgr *cache.Manager
	logger   = zap.NewNop()

	flagNoColor       bool
	flagNoInteractive bool
	flagVerbose       bool
	flagConfig        string
)

var rootCmd = &cobra.Command{
	Use:   "nexusshelf",
	Short: "Catalog Sindhi and English books through digitization",
	Long: `nexusshelf keeps the catalog of a bilingual (Sindhi/English) book
digitization project: one record per scanned file, with titles and
authors in both scripts and a workflow status.

Records live in a Supabase table by default; Postgres, SQLite and an
in-memory store are also supported (see 'nexusshelf init').

Run 'nexusshelf' with no arguments to launch the interactive dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tui.ShouldUseTUI(cmd) {
			return runDashboard(cmd.Context())
		}
		return cmd.Help()
	},
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("✗"), err)
		os.Exit(1)
	}
}

// commands that work without a readable config file
var configOptional = map[string]bool{
	"init":       true,
	"version":    true,
	"completion": true,
	"decode":     true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log at debug level")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/nexusshelf/config.yml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		path := flagConfig
		if path == "" {
			path = config.Path()
		}
		var err error
		cfg, err = config.LoadFile(path)
		if err != nil {
			if !configOptional[cmd.Name()] {
				return fmt.Errorf("loading config: %w", err)
			}
			warn("Ignoring unreadable config %s: %v", path, err)
			cfg, err = config.LoadFile(os.DevNull)
			if err != nil {
				return err
			}
		}
		cacheMgr = cache.New(cfg.Defaults.DataDir)

		l, err := logging.New(cfg.Log, logging.Options{Verbose: flagVerbose})
		if err != nil {
			warn("Logging disabled: %v", err)
			return nil
		}
		logger = l
		logger.Debug("config loaded", zap.String("path", path), zap.String("backend", cfg.Backend.Kind))
		return nil
	}

	// Register sub-commands.
	rootCmd.AddCommand(
		newInitCmd(),
		newLoginCmd(),
		newSignupCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newListCmd(),
		newShowCmd(),
		newAddCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newSeedCmd(),
		newStatsCmd(),
		newSuggestCmd(),
		newDecodeCmd(),
		newExportCmd(),
		newImportCmd(),
		newIndexCmd(),
		newServeCmd(),
		newDataCmd(),
		newVersionCmd(),
		newCompletionCmd(),
	)
}

// runDashboard launches the TUI over the configured backend.
func runDashboard(ctx context.Context) error {
	if err := cfg.Validate(); err != nil {
		fmt.Println(color.YellowString("⚠ Welcome to nexusshelf!"))
		fmt.Println()
		fmt.Printf("  %s %v\n\n", color.RedString("✗"), err)
		fmt.Println("Next step: configure a backend")
		fmt.Printf("  %s\n", color.CyanString("nexusshelf init --backend supabase --url https://<project>.supabase.co"))
		fmt.Printf("  %s\n\n", color.CyanString("nexusshelf init --backend sqlite"))
		return nil
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(st)

	return tui.RunDashboard(ctx, tui.DashboardOptions{
		Effects:   newEffects(st),
		Suggester: newSuggester(ctx),
		Backend:   cfg.Backend.Kind,
	})
}

// errCanceled is returned when the user backs out of a prompt.
var errCanceled = errors.New("canceled")
