// Package btree implements an in-memory order-M B-tree that maps ordered keys
// to values.
//
// # Overview
//
// Unlike a B+-tree, every node carries values alongside its keys: a key found
// in an internal node is a real entry, not a routing copy. Each shelf location
// in a warehouse owns one tree mapping SKU to product.
//
// # Order and Occupancy
//
// A tree of order M (M >= 3) bounds every node to at most M-1 keys and M
// children. Every node except the root holds at least ceil(M/2)-1 keys; the
// root may hold anywhere from 0 to M-1. All leaves sit at the same depth.
//
//	order 5:  max keys 4, min keys 2, split position 2
//	order 4:  max keys 3, min keys 1, split position 1
//	order 3:  max keys 2, min keys 1, split position 1
//
// # Insertion
//
// [Tree.Insert] descends to the leaf that should hold the key. A node that
// overflows to M keys splits at position ceil(M/2)-1: the entry at that
// position moves up into the parent and the entries after it form a new right
// sibling. The split travels back up the descent path as a promotion value; a
// promotion that reaches the root creates a new root, growing the tree by one
// level. Inserting an existing key overwrites its value in place.
//
// # Deletion
//
// [Tree.Delete] removes leaf entries directly. An internal entry is replaced
// by its predecessor (largest key of the left subtree) when the left child has
// keys to spare, otherwise by its successor, and the replacement is removed
// from the subtree it came from. A child left below minimum occupancy is
// repaired on the way back up: borrow from the left sibling, else from the
// right sibling, else merge with a sibling (left preferred) around their
// separator. A root left with no keys and a single child is replaced by that
// child. Deleting a missing key touches nothing.
//
// # Iteration
//
// [Tree.All] returns an in-order iter.Seq2 over all entries. The sequence is
// lazy and may be ranged over any number of times:
//
//	t, _ := btree.New[string, int](5)
//	t.Insert("b", 2)
//	t.Insert("a", 1)
//	for k, v := range t.All() {
//	    fmt.Println(k, v) // a 1, then b 2
//	}
//
// # Concurrency
//
// A Tree is not safe for concurrent use. Callers that share one across
// goroutines must serialize every operation, reads included, because a reader
// could otherwise observe a half-split or half-merged node.
package btree
