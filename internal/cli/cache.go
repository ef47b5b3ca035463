package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfgraph/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
		Long: `Manage the file cache of rendered SVG and PNG output.

A Redis cache configured with redis_addr is shared with other processes and is
not touched by these commands.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove all cached renders",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return c.clearRenderCache() },
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory path",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				dir, err := c.renderCacheDir()
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, dir)
				return nil
			},
		},
	)
	return cmd
}

func (c *CLI) clearRenderCache() error {
	dir, err := c.renderCacheDir()
	if err != nil {
		return err
	}
	n, err := countEntries(dir)
	if errors.Is(err, fs.ErrNotExist) {
		printInfo("Cache is empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	if err := fc.Clear(); err != nil {
		return err
	}
	printSuccess("Cleared render cache")
	printDetail("%d entries removed from %s", n, fc.Dir())
	return nil
}

// countEntries counts the .json entry files below dir.
func countEntries(dir string) (int, error) {
	if _, err := os.Stat(dir); err != nil {
		return 0, err
	}
	n := 0
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() && filepath.Ext(d.Name()) == ".json" {
			n++
		}
		return err
	})
	return n, err
}
