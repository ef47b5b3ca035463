package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfgraph/pkg/warehouse"
)

type stockFlags struct {
	write bool
}

// stockCommand groups the stock movement subcommands.
func (c *CLI) stockCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Move stock in or out of a location",
		Long: `Move stock in or out of a location.

Movements are applied to the loaded layout. Pass --write to save the result
back to the layout file; without it the change is only reported.`,
	}

	cmd.AddCommand(c.stockMoveCommand("add", "Receive units of a SKU at a location", warehouse.MovementIn))
	cmd.AddCommand(c.stockMoveCommand("remove", "Take units of a SKU out of a location", warehouse.MovementOut))

	return cmd
}

func (c *CLI) stockMoveCommand(name, short string, kind warehouse.MovementKind) *cobra.Command {
	var flags stockFlags

	cmd := &cobra.Command{
		Use:   name + " <layout> <location> <sku> <quantity>",
		Short: short,
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStock(cmd.Context(), kind, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.write, "write", false, "save the updated layout")
	return cmd
}

func (c *CLI) runStock(ctx context.Context, kind warehouse.MovementKind, args []string, flags stockFlags) error {
	w, err := c.loadWarehouse(ctx, args[0])
	if err != nil {
		return err
	}
	id, err := parseLocationID(args[1])
	if err != nil {
		return err
	}
	qty, err := parseQuantity(args[3])
	if err != nil {
		return err
	}

	svc := warehouse.NewService(w)
	sku := args[2]
	move := svc.AddStock
	if kind == warehouse.MovementOut {
		move = svc.RemoveStock
	}
	m, err := move(ctx, id, sku, qty)
	if err != nil {
		return err
	}

	p, err := svc.Product(id, sku)
	if err != nil {
		return err
	}
	printSuccess("Stock %s %s %+d at %d", kind, sku, m.Delta, id)
	printKeyValue("On hand", p.String())
	printKeyValue("Movement", m.ID.String())

	if !flags.write {
		printDetail("Layout not saved (pass --write to keep the change)")
		return nil
	}
	if err := c.saveWarehouse(ctx, w, args[0]); err != nil {
		return err
	}
	printFile(args[0])
	return nil
}
