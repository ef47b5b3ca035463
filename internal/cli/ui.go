package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/shelfgraph/pkg/inventory"
	"github.com/matzehuels/shelfgraph/pkg/warehouse"
)

// ANSI 256 palette shared by every command and the browser.
var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorBlue  = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	StyleTitle  = fg(colorCyan).Bold(true)
	StyleDim    = fg(colorDim)
	StyleValue  = fg(colorWhite)
	StyleNumber = fg(colorCyan)

	styleIconSpinner = fg(colorCyan)
	styleCommand     = fg(colorBlue)
	styleKey         = fg(colorGray).Width(12)
	styleTableHeader = fg(colorGray).Bold(true)
	styleTableBorder = fg(colorDim)
)

// A mark is the coloured glyph that starts a status line.
type mark struct {
	glyph string
	style lipgloss.Style
}

var (
	markSuccess = mark{"✓", fg(colorGreen)}
	markError   = mark{"✗", fg(colorRed)}
	markWarning = mark{"!", fg(colorAmber)}
	markInfo    = mark{"›", fg(colorGray)}
)

func (m mark) println(msg string) {
	fmt.Fprintln(stdout, m.style.Render(m.glyph)+" "+msg)
}

func printSuccess(format string, args ...any) { markSuccess.println(fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { markError.println(fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { markInfo.println(fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	markWarning.println(fg(colorAmber).Render(fmt.Sprintf(format, args...)))
}

// printDetail prints a dimmed line indented under the previous status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a file that was written.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints "N locations · N aisles · cached|fresh" for a rendered
// artifact.
func printStats(locations, aisles int, cached bool) {
	status := fg(colorGray).Render("fresh")
	if cached {
		status = fg(colorGreen).Render("cached")
	}
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d locations", locations)),
		StyleDim.Render(fmt.Sprintf("%d aisles", aisles)),
		status,
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }

// headerRow is the row index lipgloss passes to a StyleFunc for headers.
const headerRow = -1

const iconArrow = "→"

// newTable returns a bordered table whose header row uses the header style
// and whose body cells are styled by cell.
func newTable(headers []string, rows [][]string, cell func(row, col int) lipgloss.Style) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleTableHeader
			}
			return cell(row, col)
		}).
		Render()
}

// productTable renders products as a SKU / name / quantity table. Empty
// quantities are dimmed.
func productTable(products []*inventory.Product) string {
	rows := make([][]string, len(products))
	for i, p := range products {
		rows[i] = []string{p.SKU(), p.Name(), strconv.Itoa(p.Quantity())}
	}
	return newTable([]string{"SKU", "Name", "Qty"}, rows, func(row, col int) lipgloss.Style {
		switch {
		case row < len(products) && products[row].Quantity() == 0:
			return StyleDim
		case col == 2:
			return StyleNumber
		}
		return StyleValue
	})
}

// locationTable renders one row per location with its product and unit
// counts.
func locationTable(locs []*warehouse.Location) string {
	rows := make([][]string, len(locs))
	for i, l := range locs {
		rows[i] = []string{
			strconv.Itoa(int(l.ID)),
			l.Label,
			l.Kind.String(),
			strconv.Itoa(l.Stock.Len()),
			strconv.Itoa(l.Stock.TotalUnits()),
		}
	}
	return newTable([]string{"ID", "Label", "Kind", "Products", "Units"}, rows, func(_, col int) lipgloss.Style {
		if col >= 3 {
			return StyleNumber
		}
		return StyleValue
	})
}

func collect(l *warehouse.Location) []*inventory.Product {
	return slices.Collect(l.Stock.Products())
}
