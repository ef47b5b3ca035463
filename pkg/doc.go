// Package pkg provides the libraries behind shelfgraph.
//
// # Overview
//
// Shelfgraph models a warehouse as a directed graph of locations joined by
// weighted aisles. Every location keeps its stock in an ordered B-tree keyed
// by SKU. The pkg directory is organized as:
//
//  1. [btree] - Generic order-M B-tree with insert, delete and validation
//  2. [inventory] - Products and per-location stores built on the B-tree
//  3. [warehouse] - Location graph, traversals, routing and the stock service
//  4. [io] - JSON and TOML layout files
//  5. [render/nodelink] - Graphviz diagrams of a warehouse
//  6. [cache] - File, Redis and null caches for rendered diagrams
//
// with [errors], [observability], [layouts] and [buildinfo] supporting them.
//
// # Architecture
//
//	layout file (JSON/TOML)
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [warehouse] package (graph of locations, each with an [inventory] store)
//	         ↓
//	    stock movements, searches and routes via [warehouse.Service]
//	         ↓
//	    [render/nodelink] (DOT → SVG/PNG, cached in [cache])
//
// # Quick Start
//
//	w, _ := io.Import("warehouse.toml", io.Options{})
//	svc := warehouse.NewService(w)
//
//	m, err := svc.RemoveStock(ctx, 10, "SKU-100", 5)
//	if errors.Is(err, errors.ErrCodeInsufficientStock) {
//	    // nothing changed; m.Err records the rejection
//	}
//
//	r, _ := svc.Route(ctx, 1, 2)
//	fmt.Println(r) // 1 -> 10 -> 11 -> 12 -> 13 -> 2 (17.50)
//
// # Concurrency
//
// A [warehouse.Warehouse] and its stores are not safe for concurrent use.
// The HTTP server serializes access with a single read-write lock; the
// [warehouse.Ledger] is safe on its own.
package pkg
