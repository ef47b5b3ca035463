package btree

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

// MinOrder is the smallest order a tree can be built with.
const MinOrder = 3

var (
	// ErrInvalidOrder is returned by [New] when the order is below [MinOrder].
	ErrInvalidOrder = errors.New("btree: order must be at least 3")

	// ErrInvariantViolation is returned by [Tree.Validate] when the tree's
	// structure breaks ordering, occupancy or depth rules. Valid sequences of
	// Insert and Delete never produce it.
	ErrInvariantViolation = errors.New("btree: invariant violation")
)

// Tree is an order-M B-tree mapping keys of type K to values of type V.
//
// The zero value is not usable - use [New] or [MustNew].
// Tree is not safe for concurrent use without external synchronization.
type Tree[K cmp.Ordered, V any] struct {
	root   *node[K, V]
	order  int
	length int
}

// New creates an empty tree of the given order. It returns [ErrInvalidOrder]
// if order is less than [MinOrder].
func New[K cmp.Ordered, V any](order int) (*Tree[K, V], error) {
	if order < MinOrder {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidOrder, order)
	}
	return &Tree[K, V]{root: &node[K, V]{}, order: order}, nil
}

// MustNew is like [New] but panics if the order is invalid.
func MustNew[K cmp.Ordered, V any](order int) *Tree[K, V] {
	t, err := New[K, V](order)
	if err != nil {
		panic(err)
	}
	return t
}

// Order returns the maximum number of children per node.
func (t *Tree[K, V]) Order() int { return t.order }

// Len returns the number of entries in the tree.
func (t *Tree[K, V]) Len() int { return t.length }

func (t *Tree[K, V]) maxKeys() int { return t.order - 1 }

// minKeys is ceil(order/2)-1, the occupancy floor for non-root nodes.
func (t *Tree[K, V]) minKeys() int { return (t.order+1)/2 - 1 }

// splitAt is the position promoted out of an overflowing node. It equals
// minKeys, so the left half of a split is always exactly at minimum.
func (t *Tree[K, V]) splitAt() int { return (t.order+1)/2 - 1 }

// Height returns the number of levels in the tree. An empty tree has height 1.
func (t *Tree[K, V]) Height() int {
	h := 1
	for n := t.root; n.kind() == internalNode; n = n.children[0] {
		h++
	}
	return h
}

// Search returns the value stored under key and true, or the zero value and
// false if key is not present.
func (t *Tree[K, V]) Search(key K) (V, bool) {
	n := t.root
	for {
		i, found := n.find(key)
		if found {
			return n.values[i], true
		}
		if n.kind() == leafNode {
			var zero V
			return zero, false
		}
		n = n.children[i]
	}
}

// Has reports whether key is present.
func (t *Tree[K, V]) Has(key K) bool {
	_, ok := t.Search(key)
	return ok
}

// Insert stores value under key, overwriting any existing value.
// When the root overflows a new root is created above it.
func (t *Tree[K, V]) Insert(key K, value V) {
	added, p := t.root.insert(key, value, t.maxKeys(), t.splitAt())
	if added {
		t.length++
	}
	if p != nil {
		t.root = &node[K, V]{
			keys:     []K{p.key},
			values:   []V{p.value},
			children: []*node[K, V]{t.root, p.right},
		}
	}
}

// Delete removes key and reports whether it was present. Deleting a missing
// key leaves the tree unchanged.
func (t *Tree[K, V]) Delete(key K) bool {
	if !t.root.remove(key, t.minKeys()) {
		return false
	}
	t.length--
	if len(t.root.keys) == 0 && t.root.kind() == internalNode {
		t.root = t.root.children[0]
	}
	return true
}

// Min returns the smallest key and its value, or false if the tree is empty.
func (t *Tree[K, V]) Min() (K, V, bool) {
	n := t.root
	for n.kind() == internalNode {
		n = n.children[0]
	}
	if len(n.keys) == 0 {
		var (
			k K
			v V
		)
		return k, v, false
	}
	return n.keys[0], n.values[0], true
}

// Max returns the largest key and its value, or false if the tree is empty.
func (t *Tree[K, V]) Max() (K, V, bool) {
	n := t.root
	for n.kind() == internalNode {
		n = n.children[len(n.children)-1]
	}
	if len(n.keys) == 0 {
		var (
			k K
			v V
		)
		return k, v, false
	}
	last := len(n.keys) - 1
	return n.keys[last], n.values[last], true
}

// All returns an iterator over all entries in ascending key order.
// The tree must not be modified while the iterator is running.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		t.root.walk(yield)
	}
}

// Keys returns an iterator over all keys in ascending order.
func (t *Tree[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		t.root.walk(func(k K, _ V) bool { return yield(k) })
	}
}

// Shape returns the keys of every node grouped by depth: Shape()[d] lists the
// nodes at depth d from left to right, each as its key slice.
func (t *Tree[K, V]) Shape() [][][]K {
	var levels [][][]K
	for level := []*node[K, V]{t.root}; len(level) > 0; {
		var (
			keys [][]K
			next []*node[K, V]
		)
		for _, n := range level {
			keys = append(keys, append([]K(nil), n.keys...))
			next = append(next, n.children...)
		}
		levels = append(levels, keys)
		level = next
	}
	return levels
}

// Print writes an indented rendering of the tree to w, one node per line.
func (t *Tree[K, V]) Print(w io.Writer) {
	var walk func(n *node[K, V], depth int)
	walk = func(n *node[K, V], depth int) {
		fmt.Fprintf(w, "%s%v\n", strings.Repeat("  ", depth), n.keys)
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	walk(t.root, 0)
}

// Validate checks every structural invariant and returns an error wrapping
// [ErrInvariantViolation] describing the first one that fails.
func (t *Tree[K, V]) Validate() error {
	leafDepth := -1
	count := 0

	var check func(n *node[K, V], depth int, lo, hi *K) error
	check = func(n *node[K, V], depth int, lo, hi *K) error {
		isRoot := n == t.root
		if len(n.values) != len(n.keys) {
			return t.violation("node %v: %d values for %d keys", n.keys, len(n.values), len(n.keys))
		}
		if len(n.keys) > t.maxKeys() {
			return t.violation("node %v: %d keys exceeds max %d", n.keys, len(n.keys), t.maxKeys())
		}
		if !isRoot && len(n.keys) < t.minKeys() {
			return t.violation("node %v: %d keys below min %d", n.keys, len(n.keys), t.minKeys())
		}
		for i, k := range n.keys {
			if i > 0 && n.keys[i-1] >= k {
				return t.violation("node %v: keys not strictly increasing", n.keys)
			}
			if (lo != nil && k <= *lo) || (hi != nil && k >= *hi) {
				return t.violation("node %v: key %v outside parent bounds", n.keys, k)
			}
		}
		count += len(n.keys)

		if n.kind() == leafNode {
			if leafDepth == -1 {
				leafDepth = depth
			} else if depth != leafDepth {
				return t.violation("leaf %v at depth %d, expected %d", n.keys, depth, leafDepth)
			}
			return nil
		}

		if len(n.children) != len(n.keys)+1 {
			return t.violation("node %v: %d children for %d keys", n.keys, len(n.children), len(n.keys))
		}
		for i, c := range n.children {
			clo, chi := lo, hi
			if i > 0 {
				clo = &n.keys[i-1]
			}
			if i < len(n.keys) {
				chi = &n.keys[i]
			}
			if err := check(c, depth+1, clo, chi); err != nil {
				return err
			}
		}
		return nil
	}

	if err := check(t.root, 0, nil, nil); err != nil {
		return err
	}
	if count != t.length {
		return t.violation("counted %d entries, tree reports %d", count, t.length)
	}
	return nil
}

func (t *Tree[K, V]) violation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}
