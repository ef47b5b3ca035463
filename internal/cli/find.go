package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfgraph/pkg/errors"
	"github.com/matzehuels/shelfgraph/pkg/inventory"
	"github.com/matzehuels/shelfgraph/pkg/warehouse"
)

const (
	strategyBFS = "bfs"
	strategyDFS = "dfs"
)

type findFlags struct {
	from     string
	strategy string
}

// findCommand searches the warehouse for a SKU.
func (c *CLI) findCommand() *cobra.Command {
	flags := findFlags{strategy: strategyBFS}

	cmd := &cobra.Command{
		Use:   "find <layout> <sku>",
		Short: "Find the nearest location stocking a SKU",
		Long: `Walk the aisles from a starting location and report the first location that
stores the SKU. Breadth-first search (the default) finds the location with the
fewest aisles to cross; depth-first search follows each aisle as far as it
goes before backing up.`,
		Example: `  shelfgraph find demo SKU-400 --from 1
  shelfgraph find demo SKU-400 --from 1 --strategy dfs`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.loadWarehouse(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			from, err := parseLocationID(flags.from)
			if err != nil {
				return err
			}
			if _, err := lookupLocation(w, from); err != nil {
				return err
			}
			finder, err := finderFor(w, flags.strategy)
			if err != nil {
				return err
			}

			sku := args[1]
			l, p, ok := finder(sku, from)
			if !ok {
				printWarning("%s not found from %d (%s)", sku, from, flags.strategy)
				return nil
			}
			printSuccess("Found %s at %s", StyleValue.Render(p.String()), StyleNumber.Render(l.String()))
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.from, "from", "1", "location to start the search from")
	cmd.Flags().StringVar(&flags.strategy, "strategy", flags.strategy, "search order: bfs or dfs")
	return cmd
}

func finderFor(w *warehouse.Warehouse, strategy string) (func(string, warehouse.LocationID) (*warehouse.Location, *inventory.Product, bool), error) {
	switch strings.ToLower(strategy) {
	case strategyBFS:
		return w.FindBFS, nil
	case strategyDFS:
		return w.FindDFS, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown strategy %q (want bfs or dfs)", strategy)
}

// routeCommand prints the cheapest route between two locations.
func (c *CLI) routeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "route <layout> <from> <to>",
		Short: "Print the cheapest route between two locations",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w, err := c.loadWarehouse(ctx, args[0])
			if err != nil {
				return err
			}
			from, err := parseLocationID(args[1])
			if err != nil {
				return err
			}
			to, err := parseLocationID(args[2])
			if err != nil {
				return err
			}

			r, err := warehouse.NewService(w).Route(ctx, from, to)
			if err != nil {
				return err
			}

			printSuccess("Route %s", StyleValue.Render(r.String()))
			for _, a := range r.Aisles() {
				weight, _ := w.Aisle(a[0], a[1])
				src, _ := w.Location(a[0])
				dst, _ := w.Location(a[1])
				printDetail("%s %s %s  %s", src, iconArrow, dst, strconv.FormatFloat(weight, 'f', -1, 64))
			}
			printKeyValue("Distance", fmt.Sprintf("%.2f", r.Distance))
			return nil
		},
	}
}
