// Package warehouse models a warehouse as a weighted directed graph of
// locations connected by aisles.
//
// # Locations and Aisles
//
// A [Location] is a shelf, a receiving dock or a dispatch area. Each location
// owns an [inventory.Store] indexing its products by SKU. Aisles are directed
// and carry a non-negative walking cost:
//
//	w := warehouse.New()
//	w.AddLocation(1, "RECEIVING")
//	w.AddLocation(10, "A-1")
//	w.Connect(1, 10, 7.0)
//
// # Traversal
//
// [Warehouse.BFS] and [Warehouse.DFS] visit the locations reachable from a
// start location. Neighbours are always visited in ascending ID order, so
// both traversals are deterministic. [Warehouse.FindBFS] and
// [Warehouse.FindDFS] return the first visited location stocking a SKU.
//
// # Routing
//
// [Warehouse.ShortestPaths] runs Dijkstra's algorithm from a source location;
// unreachable locations report a distance of +Inf. [Warehouse.ShortestPath]
// reconstructs the cheapest [Route] between two locations.
//
// # Service
//
// [Service] binds the graph to stock movements. Every movement, accepted or
// rejected, is appended to a [Ledger] and reported to the registered
// observability hooks.
//
// Neither [Warehouse] nor [Service] is safe for concurrent use without
// external synchronization.
package warehouse
