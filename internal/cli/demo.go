package cli

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	layoutio "github.com/matzehuels/shelfgraph/pkg/io"
	"github.com/matzehuels/shelfgraph/pkg/layouts"
	"github.com/matzehuels/shelfgraph/pkg/warehouse"
)

// demoCommand writes or summarizes the built-in demo layout.
func (c *CLI) demoCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Write or summarize the built-in demo warehouse",
		Long: `The demo warehouse has a receiving dock (1), a dispatch area (2) and two rows
of four shelves (10-13 and 20-23) connected by one-way aisles.

Without --output, print a summary. With --output, write the layout as JSON or
TOML depending on the extension; "-" writes TOML to stdout. Every command that
takes a layout also accepts "demo" to use it directly.`,
		Example: `  shelfgraph demo
  shelfgraph demo -o warehouse.toml
  shelfgraph route demo 1 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w, err := layoutio.ReadTOML(bytes.NewReader(layouts.DemoTOML()), c.layoutOptions())
			if err != nil {
				return err
			}

			switch output {
			case "":
				printDemoSummary(w)
				return nil
			case "-":
				out, _ := openOutput(output)
				defer out.Close()
				return layoutio.WriteTOML(w, out)
			}
			if err := layoutio.Export(w, output); err != nil {
				return err
			}
			loggerFromContext(ctx).Debug("Exported demo layout", "path", output)
			printSuccess("Wrote demo layout")
			printFile(output)
			printNextStep("Next", "shelfgraph inventory "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layout to this file (.json or .toml, - for stdout)")
	return cmd
}

func printDemoSummary(w *warehouse.Warehouse) {
	products, units := 0, 0
	for _, l := range w.Locations() {
		products += l.Stock.Len()
		units += l.Stock.TotalUnits()
	}

	fmt.Fprintln(stdout, StyleTitle.Render("Demo warehouse"))
	printKeyValue("Locations", strconv.Itoa(w.LocationCount()))
	printKeyValue("Aisles", strconv.Itoa(w.AisleCount()))
	printKeyValue("Products", strconv.Itoa(products))
	printKeyValue("Units", strconv.Itoa(units))
	printKeyValue("Index order", strconv.Itoa(w.IndexOrder()))
	printNewline()
	fmt.Fprintln(stdout, locationTable(w.Locations()))
	printNewline()
	printNextStep("Export it", "shelfgraph demo -o warehouse.toml")
	printNextStep("Plan a route", "shelfgraph route demo 1 2")
}
