package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfgraph/pkg/btree"
	"github.com/matzehuels/shelfgraph/pkg/buildinfo"
	"github.com/matzehuels/shelfgraph/pkg/cache"
	"github.com/matzehuels/shelfgraph/pkg/errors"
	layoutio "github.com/matzehuels/shelfgraph/pkg/io"
	"github.com/matzehuels/shelfgraph/pkg/layouts"
	"github.com/matzehuels/shelfgraph/pkg/observability"
	"github.com/matzehuels/shelfgraph/pkg/warehouse"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "shelfgraph"

	// demoLayout is the layout argument that selects the embedded demo
	// warehouse when no file of that name exists.
	demoLayout = "demo"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// stdout receives command output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
	indexOrder int
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	versionTemplate := buildinfo.Template()
	root := &cobra.Command{
		Use:   appName,
		Short: "Shelfgraph models a warehouse as a graph of indexed shelves",
		Long: `Shelfgraph keeps each warehouse location's stock in an ordered B-tree index,
connects locations with weighted aisles, and answers stock, search and route
questions against layouts stored as JSON or TOML.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.indexOrder != 0 && c.indexOrder < btree.MinOrder {
				return errors.New(errors.ErrCodeInvalidOrder, "--order %d is below %d", c.indexOrder, btree.MinOrder)
			}
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			registerHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(versionTemplate)
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/shelfgraph/config.toml)")
	root.PersistentFlags().IntVar(&c.indexOrder, "order", 0, "B-tree order for location indexes (overrides layout and config)")

	root.AddCommand(c.demoCommand())
	root.AddCommand(c.inventoryCommand())
	root.AddCommand(c.findCommand())
	root.AddCommand(c.routeCommand())
	root.AddCommand(c.stockCommand())
	root.AddCommand(c.zoneCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Layout Loading
// =============================================================================

// layoutOptions resolves the index order: --order wins over the config file,
// and both win over the order stored in the layout.
func (c *CLI) layoutOptions() layoutio.Options {
	order := c.indexOrder
	if order == 0 {
		order = c.Config.IndexOrder
	}
	return layoutio.Options{IndexOrder: order}
}

// loadWarehouse reads the layout at path. The name "demo" selects the
// embedded demo layout unless a file of that name exists.
func (c *CLI) loadWarehouse(ctx context.Context, path string) (*warehouse.Warehouse, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	var (
		w   *warehouse.Warehouse
		err error
	)
	if isDemo(path) {
		path = layouts.DemoName
		w, err = layoutio.ReadTOML(bytes.NewReader(layouts.DemoTOML()), c.layoutOptions())
	} else {
		w, err = layoutio.Import(path, c.layoutOptions())
	}
	if err != nil {
		return nil, err
	}

	prog.done("Loaded "+filepath.Base(path), "locations", w.LocationCount(), "aisles", w.AisleCount(), "order", w.IndexOrder())
	return w, nil
}

// saveWarehouse writes w back to path. The embedded demo cannot be written.
func (c *CLI) saveWarehouse(ctx context.Context, w *warehouse.Warehouse, path string) error {
	if isDemo(path) {
		return errors.New(errors.ErrCodeUnsupported, "the built-in demo layout is read-only; export it with 'demo -o' first")
	}
	if err := layoutio.Export(w, path); err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("Saved layout", "path", path)
	return nil
}

func isDemo(path string) bool {
	if path != demoLayout {
		return false
	}
	_, err := os.Stat(path)
	return err != nil
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache picks the render cache backend: Redis when configured, otherwise
// a file cache. The result reports hits and misses to the cache hooks.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.Config.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, c.Config.RedisAddr, appName+":")
		if err != nil {
			loggerFromContext(ctx).Warn("Redis cache unavailable, rendering without cache", "addr", c.Config.RedisAddr, "error", err)
			return cache.NewNullCache(), nil
		}
		return cache.Observed(rc, "render"), nil
	}
	dir, err := c.renderCacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return cache.Observed(fc, "render"), nil
}

func (c *CLI) renderCacheDir() (string, error) {
	if c.Config.CacheDir != "" {
		return c.Config.CacheDir, nil
	}
	return cacheDir()
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/shelfgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/shelfgraph/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Output
// =============================================================================

// openOutput returns a writer for path, or stdout when path is empty or "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// registerHooks routes observability events to logger.
func registerHooks(logger *log.Logger) {
	observability.SetStockHooks(stockLogHooks{logger})
	observability.SetCacheHooks(cacheLogHooks{logger})
	observability.SetHTTPHooks(httpLogHooks{logger})
}
