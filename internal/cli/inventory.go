package cli

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfgraph/pkg/errors"
)

// inventoryCommand lists the products stored at one location, or a summary of
// every location when no location is given.
func (c *CLI) inventoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inventory <layout> [location]",
		Short: "List the products stored at a location",
		Long: `List the products stored at a location in SKU order.

Without a location, print one line per location with its product and unit
counts.`,
		Example: `  shelfgraph inventory demo
  shelfgraph inventory warehouse.toml 10`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.loadWarehouse(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if len(args) == 1 {
				fmt.Fprintln(stdout, locationTable(w.Locations()))
				return nil
			}

			id, err := parseLocationID(args[1])
			if err != nil {
				return err
			}
			l, err := lookupLocation(w, id)
			if err != nil {
				return err
			}

			fmt.Fprintln(stdout, StyleTitle.Render(l.String())+" "+StyleDim.Render(l.Kind.String()))
			if l.Stock.Len() == 0 {
				printInfo("No products")
				return nil
			}
			fmt.Fprintln(stdout, productTable(collect(l)))
			printDetail("%d products, %d units", l.Stock.Len(), l.Stock.TotalUnits())
			return nil
		},
	}
}

// inspectCommand prints the shape of a location's B-tree index and checks it.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <layout> <location>",
		Short: "Print and validate a location's product index",
		Long: `Print the B-tree index of a location, one node per line indented by depth,
and check every structural rule: key order, node occupancy, and equal leaf
depth.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.loadWarehouse(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			id, err := parseLocationID(args[1])
			if err != nil {
				return err
			}
			l, err := lookupLocation(w, id)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			l.Stock.PrintIndex(&buf)
			fmt.Fprintln(stdout, StyleTitle.Render(l.String()))
			for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
				fmt.Fprintln(stdout, "  "+StyleValue.Render(line))
			}
			printNewline()
			printKeyValue("Order", strconv.Itoa(l.Stock.Order()))
			printKeyValue("Height", strconv.Itoa(l.Stock.Height()))
			printKeyValue("Products", strconv.Itoa(l.Stock.Len()))

			if err := l.Stock.Validate(); err != nil {
				printError("Index is invalid")
				return err
			}
			printSuccess("Index is valid")
			return nil
		},
	}
}

// zoneCommand suggests the location with the fewest products.
func (c *CLI) zoneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "zone <layout>",
		Short: "Suggest the emptiest location for new stock",
		Long: `Suggest the location holding the fewest distinct products. Ties go to the
lowest location ID.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.loadWarehouse(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			id, ok := w.SuggestZone()
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "warehouse has no locations")
			}
			l, _ := w.Location(id)
			printSuccess("Suggested zone %s", StyleNumber.Render(l.String()))
			printDetail("%d products, %d units", l.Stock.Len(), l.Stock.TotalUnits())
			return nil
		},
	}
}
