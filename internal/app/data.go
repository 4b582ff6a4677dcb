package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/nexusshelf/internal/cache"
	"github.com/blackwell-systems/nexusshelf/internal/session"
)

func newDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Manage the local data directory",
		Long:  "Inspect or clear files nexusshelf keeps locally: the session, the generated HTML index and the log. Catalog records are not affected.",
	}

	cmd.AddCommand(
		newDataInfoCmd(),
		newDataClearCmd(),
	)

	return cmd
}

func newDataInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show what is stored locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			size, count := calculateDirSize(cacheMgr.Dir())

			header("Local Data")
			printField("data_dir", cacheMgr.Dir())
			printField("files", fmt.Sprintf("%d", count))
			printField("size", humanBytes(size))
			printField("backend", cfg.Backend.Kind)
			if cfg.Backend.Kind == "sqlite" {
				printField("database", cfg.Backend.Path)
			}
			printField("log", cfg.Log.File)

			fmt.Println()
			for _, name := range []string{session.FileName, cache.IndexFile} {
				if cacheMgr.Exists(name) {
					fmt.Printf("  %s %s\n", color.GreenString("✓"), name)
				} else {
					fmt.Printf("  %s %s\n", color.HiBlackString("-"), name)
				}
			}
			return nil
		},
	}
}

func newDataClearCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove generated files",
		Long: `Remove the generated HTML index. With --all the saved session is
removed too, which signs you out.

The SQLite database and the log are never removed by this command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := []string{cache.IndexFile}
			if all {
				names = append(names, session.FileName)
			}

			var freed int64
			removed := 0
			for _, name := range names {
				if !cacheMgr.Exists(name) {
					continue
				}
				if fi, err := os.Stat(cacheMgr.Path(name)); err == nil {
					freed += fi.Size()
				}
				if err := cacheMgr.Remove(name); err != nil {
					return fmt.Errorf("removing %s: %w", name, err)
				}
				removed++
			}

			if removed == 0 {
				fmt.Println("Nothing to clear.")
				return nil
			}
			ok("Removed %d files (%s)", removed, humanBytes(freed))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Also remove the saved session")
	return cmd
}

// calculateDirSize recursively calculates total size and file count
func calculateDirSize(path string) (int64, int) {
	var size int64
	count := 0

	_ = filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			size += info.Size()
			count++
		}
		return nil
	})

	return size, count
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for n := n / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
