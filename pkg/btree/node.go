package btree

import (
	"cmp"
	"slices"
)

// nodeKind tags a node as a leaf or an internal node.
type nodeKind int

const (
	leafNode nodeKind = iota
	internalNode
)

// node is a single B-tree node. keys and values are parallel slices sorted by
// key. Internal nodes carry len(keys)+1 children; leaves carry none. A node is
// referenced only by its parent (or by the tree, for the root).
type node[K cmp.Ordered, V any] struct {
	keys     []K
	values   []V
	children []*node[K, V]
}

// promotion is the result of splitting an overflowing node: the separator
// entry that moves up and the new right sibling that takes the upper half.
type promotion[K cmp.Ordered, V any] struct {
	key   K
	value V
	right *node[K, V]
}

func (n *node[K, V]) kind() nodeKind {
	if len(n.children) == 0 {
		return leafNode
	}
	return internalNode
}

// find returns the position of key and true if present. Otherwise it returns
// the insertion position, which is also the index of the child to descend into.
func (n *node[K, V]) find(key K) (int, bool) {
	return slices.BinarySearch(n.keys, key)
}

func (n *node[K, V]) insertEntryAt(i int, key K, value V) {
	n.keys = slices.Insert(n.keys, i, key)
	n.values = slices.Insert(n.values, i, value)
}

func (n *node[K, V]) removeEntryAt(i int) (K, V) {
	key, value := n.keys[i], n.values[i]
	n.keys = slices.Delete(n.keys, i, i+1)
	n.values = slices.Delete(n.values, i, i+1)
	return key, value
}

func (n *node[K, V]) insertChildAt(i int, child *node[K, V]) {
	n.children = slices.Insert(n.children, i, child)
}

func (n *node[K, V]) removeChildAt(i int) *node[K, V] {
	child := n.children[i]
	n.children = slices.Delete(n.children, i, i+1)
	return child
}

// split cuts n at position mid. The entry at mid is returned for promotion,
// entries after it move to a new right sibling together with children[mid+1:].
func (n *node[K, V]) split(mid int) *promotion[K, V] {
	p := &promotion[K, V]{
		key:   n.keys[mid],
		value: n.values[mid],
		right: &node[K, V]{
			keys:   slices.Clone(n.keys[mid+1:]),
			values: slices.Clone(n.values[mid+1:]),
		},
	}
	if n.kind() == internalNode {
		p.right.children = slices.Clone(n.children[mid+1:])
		clear(n.children[mid+1:])
		n.children = n.children[:mid+1]
	}
	clear(n.keys[mid:])
	clear(n.values[mid:])
	n.keys = n.keys[:mid]
	n.values = n.values[:mid]
	return p
}

// insert places key in the subtree rooted at n. It reports whether a new entry
// was added (false means an existing value was overwritten) and returns a
// non-nil promotion when n itself overflowed and split.
func (n *node[K, V]) insert(key K, value V, maxKeys, mid int) (bool, *promotion[K, V]) {
	i, found := n.find(key)
	if found {
		n.values[i] = value
		return false, nil
	}

	switch n.kind() {
	case leafNode:
		n.insertEntryAt(i, key, value)
	case internalNode:
		added, p := n.children[i].insert(key, value, maxKeys, mid)
		if p == nil {
			return added, nil
		}
		n.insertEntryAt(i, p.key, p.value)
		n.insertChildAt(i+1, p.right)
	}

	if len(n.keys) <= maxKeys {
		return true, nil
	}
	return true, n.split(mid)
}

// remove deletes key from the subtree rooted at n and reports whether it was
// present. Children of n are repaired before returning; n itself may be left
// under minimum occupancy for its parent to repair.
func (n *node[K, V]) remove(key K, minKeys int) bool {
	i, found := n.find(key)

	switch n.kind() {
	case leafNode:
		if !found {
			return false
		}
		n.removeEntryAt(i)
		return true

	default:
		if !found {
			if !n.children[i].remove(key, minKeys) {
				return false
			}
			n.rebalance(i, minKeys)
			return true
		}

		left, right := n.children[i], n.children[i+1]
		switch {
		case len(left.keys) > minKeys:
			n.keys[i], n.values[i] = left.removeMax(minKeys)
			n.rebalance(i, minKeys)
		case len(right.keys) > minKeys:
			n.keys[i], n.values[i] = right.removeMin(minKeys)
			n.rebalance(i+1, minKeys)
		default:
			// Both children at minimum: fold the separator into one merged
			// child and delete it from there. The merged child briefly holds
			// 2*minKeys+1 keys and ends at 2*minKeys.
			n.merge(i)
			n.children[i].remove(key, minKeys)
		}
		return true
	}
}

// removeMax removes and returns the largest entry of the subtree rooted at n.
func (n *node[K, V]) removeMax(minKeys int) (K, V) {
	if n.kind() == leafNode {
		return n.removeEntryAt(len(n.keys) - 1)
	}
	last := len(n.children) - 1
	key, value := n.children[last].removeMax(minKeys)
	n.rebalance(last, minKeys)
	return key, value
}

// removeMin removes and returns the smallest entry of the subtree rooted at n.
func (n *node[K, V]) removeMin(minKeys int) (K, V) {
	if n.kind() == leafNode {
		return n.removeEntryAt(0)
	}
	key, value := n.children[0].removeMin(minKeys)
	n.rebalance(0, minKeys)
	return key, value
}

// rebalance restores minimum occupancy of children[i] after a removal.
func (n *node[K, V]) rebalance(i, minKeys int) {
	if len(n.children[i].keys) >= minKeys {
		return
	}
	switch {
	case i > 0 && len(n.children[i-1].keys) > minKeys:
		n.borrowFromLeft(i)
	case i < len(n.children)-1 && len(n.children[i+1].keys) > minKeys:
		n.borrowFromRight(i)
	case i > 0:
		n.merge(i - 1)
	default:
		n.merge(i)
	}
}

// borrowFromLeft rotates the separator keys[i-1] down into children[i] and the
// left sibling's last entry up into its place.
func (n *node[K, V]) borrowFromLeft(i int) {
	child, sibling := n.children[i], n.children[i-1]
	child.insertEntryAt(0, n.keys[i-1], n.values[i-1])
	n.keys[i-1], n.values[i-1] = sibling.removeEntryAt(len(sibling.keys) - 1)
	if sibling.kind() == internalNode {
		child.insertChildAt(0, sibling.removeChildAt(len(sibling.children)-1))
	}
}

// borrowFromRight rotates the separator keys[i] down into children[i] and the
// right sibling's first entry up into its place.
func (n *node[K, V]) borrowFromRight(i int) {
	child, sibling := n.children[i], n.children[i+1]
	child.insertEntryAt(len(child.keys), n.keys[i], n.values[i])
	n.keys[i], n.values[i] = sibling.removeEntryAt(0)
	if sibling.kind() == internalNode {
		child.insertChildAt(len(child.children), sibling.removeChildAt(0))
	}
}

// merge folds children[i+1] and the separator keys[i] into children[i].
// The right node is dropped.
func (n *node[K, V]) merge(i int) {
	left, right := n.children[i], n.children[i+1]
	key, value := n.removeEntryAt(i)
	n.removeChildAt(i + 1)

	left.keys = append(append(left.keys, key), right.keys...)
	left.values = append(append(left.values, value), right.values...)
	left.children = append(left.children, right.children...)
}

// walk yields the entries of the subtree rooted at n in key order. It returns
// false as soon as yield does.
func (n *node[K, V]) walk(yield func(K, V) bool) bool {
	leaf := n.kind() == leafNode
	for i := range n.keys {
		if !leaf && !n.children[i].walk(yield) {
			return false
		}
		if !yield(n.keys[i], n.values[i]) {
			return false
		}
	}
	if leaf {
		return true
	}
	return n.children[len(n.keys)].walk(yield)
}
