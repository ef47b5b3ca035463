package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfgraph/pkg/cache"
	"github.com/matzehuels/shelfgraph/pkg/errors"
	"github.com/matzehuels/shelfgraph/pkg/render/nodelink"
	"github.com/matzehuels/shelfgraph/pkg/warehouse"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"

	// renderTTL bounds how long rendered artifacts stay in the cache.
	renderTTL = 7 * 24 * time.Hour
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (or base path for multiple outputs)
	formats  []string // output formats: "dot", "svg", "png"
	route    string   // "from:to" route to highlight
	detailed bool     // show IDs, kinds and product names in node labels
	noCache  bool     // bypass the render cache
}

// renderCommand creates the render command for drawing a warehouse.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <layout>",
		Short: "Draw the warehouse as DOT, SVG or PNG",
		Long: `Draw the warehouse as a Graphviz diagram: one record node per location listing
its stock in SKU order, one edge per aisle labelled with its weight.

SVG and PNG output is cached by the hash of the generated DOT source, so
re-rendering an unchanged layout skips Graphviz.`,
		Example: `  shelfgraph render demo -f svg -o demo.svg
  shelfgraph render demo -f svg,png --route 1:2 --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png (comma-separated)")
	cmd.Flags().StringVar(&opts.route, "route", "", "highlight the cheapest route between two locations (from:to)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show location IDs, kinds and product names")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	return strings.Split(s, ",")
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatDOT: true, formatSVG: true, formatPNG: true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeUnsupported, "invalid format: %s (must be 'dot', 'svg' or 'png')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output carries
// a format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns where one format is written. A single format goes to
// --output as given; otherwise each format gets base.format.
func outputPath(input, format string, opts *renderOpts) string {
	if len(opts.formats) == 1 && opts.output != "" {
		return opts.output
	}
	return basePath(opts.output, input) + "." + format
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	w, err := c.loadWarehouse(ctx, input)
	if err != nil {
		return err
	}

	dotOpts := nodelink.Options{Detailed: opts.detailed}
	if opts.route != "" {
		from, to, err := parseRouteSpec(opts.route)
		if err != nil {
			return err
		}
		r, err := warehouse.NewService(w).Route(ctx, from, to)
		if err != nil {
			return err
		}
		logger.Info("Highlighting route", "route", r.String())
		dotOpts.Highlight = &r
	}
	dot := nodelink.ToDOT(w, dotOpts)

	store, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, format := range opts.formats {
		data, cached, err := renderFormat(ctx, store, dot, format)
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}

		path := outputPath(input, format, opts)
		if err := writeOutput(path, data); err != nil {
			return err
		}
		printSuccess("Rendered %s", strings.ToUpper(format))
		printStats(w.LocationCount(), w.AisleCount(), cached)
		printFile(path)
	}
	return nil
}

// renderFormat produces one output format from dot, consulting store for SVG
// and PNG. It reports whether the result came from the cache.
func renderFormat(ctx context.Context, store cache.Cache, dot, format string) ([]byte, bool, error) {
	logger := loggerFromContext(ctx)
	if format == formatDOT {
		return []byte(dot), false, nil
	}

	key := cache.RenderKey(dot, cache.RenderKeyOpts{Format: format})
	if data, ok, err := store.Get(ctx, key); err != nil {
		logger.Warn("Cache read failed", "error", err)
	} else if ok {
		return data, true, nil
	}

	spinner := newSpinnerWithContext(ctx, "Rendering "+strings.ToUpper(format)+"...")
	spinner.Start()
	var (
		data []byte
		err  error
	)
	if format == formatPNG {
		data, err = nodelink.RenderPNG(ctx, dot)
	} else {
		data, err = nodelink.RenderSVG(ctx, dot)
	}
	if err != nil {
		spinner.StopWithError("Rendering " + strings.ToUpper(format) + " failed")
		return nil, false, err
	}
	logger.Debugf("Generated %s: %d bytes", format, len(data))

	spinner.Update("Caching " + strings.ToUpper(format) + "...")
	if err := store.Set(ctx, key, data, renderTTL); err != nil {
		logger.Warn("Cache write failed", "error", err)
	}
	spinner.Stop()
	return data, false, nil
}

func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
