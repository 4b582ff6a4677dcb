package app

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/nexusshelf/internal/cache"
)

func newIndexCmd() *cobra.Command {
	var (
		title  string
		openIt bool
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Generate an HTML page of the catalog",
		Long: `Generate a self-contained HTML page listing every record, with
both scripts side by side and a category filter. The page is written to
the data directory and works offline.`,
		Example: `  nexusshelf index
  nexusshelf index --open`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, cleanup, err := openController(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			path, err := cacheMgr.GenerateHTMLIndex(ctrl.State().Books, cache.IndexOptions{
				Title:       title,
				GeneratedBy: ctrl.State().CurrentUser.FullName,
				GeneratedAt: now(),
			})
			if err != nil {
				return err
			}
			ok("Wrote %s (%d records)", path, len(ctrl.State().Books))

			if openIt {
				return openFile(path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Page title (default NexusShelf Catalog)")
	cmd.Flags().BoolVar(&openIt, "open", false, "Open the page in the default browser")
	return cmd
}

// openFile hands path to the desktop's default opener.
func openFile(path string) error {
	var (
		cmdName string
		args    []string
	)
	switch runtime.GOOS {
	case "darwin":
		cmdName = "open"
		args = []string{path}
	case "windows":
		cmdName = "cmd"
		args = []string{"/c", "start", "", path}
	default: // linux, freebsd, etc.
		cmdName = "xdg-open"
		args = []string{path}
	}

	c := exec.Command(cmdName, args...)
	if err := c.Start(); err != nil {
		return fmt.Errorf("opening file with %q: %w", cmdName, err)
	}
	return nil
}
