package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/shelfgraph/pkg/warehouse"
)

// Options configures warehouse diagram rendering.
type Options struct {
	// Detailed adds location IDs, kinds and product names to node labels.
	// When false, nodes list only SKUs and quantities.
	Detailed bool

	// Highlight marks the stops and aisles of a route. Nil highlights nothing.
	Highlight *warehouse.Route
}

var kindFill = map[warehouse.Kind]string{
	warehouse.KindShelf:     "white",
	warehouse.KindReceiving: "\"#d9f2d9\"",
	warehouse.KindDispatch:  "\"#f9dede\"",
}

// ToDOT converts a warehouse to Graphviz DOT format. Each location becomes a
// record node listing its stock in SKU order; each aisle becomes an edge
// labelled with its weight. The result can be rendered with [RenderSVG] or
// [RenderPNG].
func ToDOT(w *warehouse.Warehouse, opts Options) string {
	stops, aisles := highlighted(opts.Highlight)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=Mrecord, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, l := range w.Locations() {
		attrs := []string{"label=" + quote(fmtLabel(l, opts.Detailed))}
		attrs = append(attrs, "fillcolor="+kindFill[l.Kind])
		if stops[l.ID] {
			attrs = append(attrs, "color=red", "penwidth=2")
		}
		fmt.Fprintf(&buf, "  \"%d\" [%s];\n", l.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, a := range w.Aisles() {
		attrs := []string{"label=" + quote(strconv.FormatFloat(a.Weight, 'f', -1, 64))}
		if aisles[[2]warehouse.LocationID{a.From, a.To}] {
			attrs = append(attrs, "color=red", "fontcolor=red", "style=bold", "penwidth=2.5")
		}
		fmt.Fprintf(&buf, "  \"%d\" -> \"%d\" [%s];\n", a.From, a.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func highlighted(r *warehouse.Route) (map[warehouse.LocationID]bool, map[[2]warehouse.LocationID]bool) {
	stops := map[warehouse.LocationID]bool{}
	aisles := map[[2]warehouse.LocationID]bool{}
	if r == nil {
		return stops, aisles
	}
	for _, id := range r.Stops {
		stops[id] = true
	}
	for _, a := range r.Aisles() {
		aisles[a] = true
	}
	return stops, aisles
}

// fmtLabel builds a record label: the location header followed by one field
// per product.
func fmtLabel(l *warehouse.Location, detailed bool) string {
	header := escapeRecord(l.Label)
	if detailed {
		header += fmt.Sprintf(`\n#%d %s`, l.ID, l.Kind)
	}
	fields := []string{header}
	for p := range l.Stock.Products() {
		line := fmt.Sprintf("%s x%d", p.SKU(), p.Quantity())
		if detailed && p.Name() != "" {
			line = fmt.Sprintf("%s %s x%d", p.SKU(), p.Name(), p.Quantity())
		}
		fields = append(fields, escapeRecord(line))
	}
	return "{" + strings.Join(fields, "|") + "}"
}

var recordReplacer = strings.NewReplacer(
	`\`, `\\`,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
	`<`, `\<`,
	`>`, `\>`,
)

func escapeRecord(s string) string {
	return recordReplacer.Replace(s)
}

// quote wraps s as a DOT string. Unlike %q it keeps non-ASCII text readable
// and leaves record escapes alone.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
