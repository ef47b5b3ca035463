package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfgraph/pkg/warehouse"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand opens the interactive location browser.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <layout>",
		Short: "Browse locations and their stock interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.loadWarehouse(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(NewLocationListModel(w), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// =============================================================================
// LocationListModel - Interactive location browser
// =============================================================================

// LocationListModel is the bubbletea model for browsing locations. Enter opens
// the selected location's products; esc goes back to the list.
type LocationListModel struct {
	Locations []*warehouse.Location
	Cursor    int
	Open      *warehouse.Location
	Height    int
	Offset    int

	wh *warehouse.Warehouse
}

// NewLocationListModel creates a browser over all locations of w.
func NewLocationListModel(w *warehouse.Warehouse) LocationListModel {
	return LocationListModel{
		Locations: w.Locations(),
		Height:    15,
		wh:        w,
	}
}

func (m LocationListModel) Init() tea.Cmd {
	return nil
}

func (m LocationListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace":
			if m.Open == nil {
				return m, tea.Quit
			}
			m.Open = nil
		case "up", "k":
			if m.Open == nil && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Open == nil && m.Cursor < len(m.Locations)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Locations) > 0 {
				m.Open = m.Locations[m.Cursor]
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m LocationListModel) View() string {
	if m.Open != nil {
		return m.productsView()
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Locations"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Locations))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		l := m.Locations[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			fmt.Sprint(l.ID),
			l.Label,
			l.Kind.String(),
			fmt.Sprint(l.Stock.Len()),
			exits(m.wh, l.ID),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Label", "Kind", "Products", "Aisles to").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			idx := m.Offset + row
			if idx == m.Cursor {
				return listSelectedStyle
			}
			if idx < len(m.Locations) && m.Locations[idx].Stock.Len() == 0 {
				return listDimStyle
			}
			return StyleValue
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Locations))))
	return b.String()
}

func (m LocationListModel) productsView() string {
	l := m.Open

	var b strings.Builder
	b.WriteString(StyleTitle.Render(l.String()) + " " + listDimStyle.Render(l.Kind.String()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")
	if l.Stock.Len() == 0 {
		b.WriteString(listDimStyle.Render("  No products"))
	} else {
		b.WriteString(productTable(collect(l)))
	}
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d products · %d units · index height %d",
		l.Stock.Len(), l.Stock.TotalUnits(), l.Stock.Height())))
	return b.String()
}

// exits lists the outgoing aisles of id as "to(weight)" pairs.
func exits(w *warehouse.Warehouse, id warehouse.LocationID) string {
	aisles := w.Neighbors(id)
	if len(aisles) == 0 {
		return "—"
	}
	parts := make([]string, len(aisles))
	for i, a := range aisles {
		parts[i] = fmt.Sprintf("%d(%g)", a.To, a.Weight)
	}
	return strings.Join(parts, " ")
}
