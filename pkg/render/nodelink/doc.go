// Package nodelink renders warehouses as node-link diagrams.
//
// # Overview
//
// Locations appear as record boxes listing their stock, connected by arrows
// for aisles. Receiving and dispatch locations are tinted so the flow of
// goods through the warehouse reads left to right.
//
// # Usage
//
// Convert a warehouse to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(w, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// To draw a picking route on top of the layout:
//
//	r, _ := w.ShortestPath(1, 2)
//	dot := nodelink.ToDOT(w, nodelink.Options{Highlight: &r})
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: add location IDs, kinds and product names to labels
//   - Highlight: draw a route's stops and aisles in red
//
// # DOT Format
//
// The generated DOT uses left-to-right layout (rankdir=LR) with Mrecord
// nodes. Record fields are escaped, so labels and product names may contain
// braces, pipes or angle brackets.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering; no Graphviz installation is needed.
package nodelink
