// Package inventory holds the products stocked at a single warehouse location.
//
// A [Store] keeps its products in an order-M B-tree keyed by SKU, so lookups
// cost O(log n) and listings come out sorted by SKU without a separate sort.
// Stock movements ([Store.AddStock], [Store.RemoveStock]) are a single lookup
// followed by an in-place change of the product's quantity; they never
// restructure the index.
//
// Failures carry codes from [github.com/matzehuels/shelfgraph/pkg/errors]:
//
//	NOT_FOUND           the SKU is not stocked here
//	INSUFFICIENT_STOCK  a removal exceeds the quantity on hand (nothing changes)
//	INVALID_INPUT       non-positive movement, empty SKU, negative quantity
//	INVALID_ORDER       index order below 3
package inventory
