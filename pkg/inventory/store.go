package inventory

import (
	"io"
	"iter"

	"github.com/matzehuels/shelfgraph/pkg/btree"
	"github.com/matzehuels/shelfgraph/pkg/errors"
)

// DefaultOrder is the index order used by [NewStore].
const DefaultOrder = 5

// Store is the inventory of one location: products indexed by SKU.
//
// Store is not safe for concurrent use without external synchronization.
type Store struct {
	index *btree.Tree[string, *Product]
}

// NewStore creates an empty store with an index of [DefaultOrder].
func NewStore() *Store {
	return &Store{index: btree.MustNew[string, *Product](DefaultOrder)}
}

// NewStoreWithOrder creates an empty store whose index has the given order.
func NewStoreWithOrder(order int) (*Store, error) {
	t, err := btree.New[string, *Product](order)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidOrder, err, "create inventory index")
	}
	return &Store{index: t}, nil
}

// Put stores p under its SKU, replacing any product already stored there.
func (s *Store) Put(p *Product) {
	s.index.Insert(p.sku, p)
}

// Get returns the product stocked under sku.
func (s *Store) Get(sku string) (*Product, bool) {
	return s.index.Search(sku)
}

// Remove drops the product stocked under sku and reports whether it existed.
func (s *Store) Remove(sku string) bool {
	return s.index.Delete(sku)
}

// AddStock increases the quantity of sku by delta.
func (s *Store) AddStock(sku string, delta int) error {
	if err := errors.ValidateDelta(delta); err != nil {
		return err
	}
	p, ok := s.index.Search(sku)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "sku %s not found", sku)
	}
	p.quantity += delta
	return nil
}

// RemoveStock decreases the quantity of sku by delta. If delta exceeds the
// quantity on hand the product is left untouched.
func (s *Store) RemoveStock(sku string, delta int) error {
	if err := errors.ValidateDelta(delta); err != nil {
		return err
	}
	p, ok := s.index.Search(sku)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "sku %s not found", sku)
	}
	if delta > p.quantity {
		return errors.New(errors.ErrCodeInsufficientStock,
			"insufficient stock for %s: %d on hand, %d requested", sku, p.quantity, delta)
	}
	p.quantity -= delta
	return nil
}

// Products returns the stocked products in ascending SKU order.
func (s *Store) Products() iter.Seq[*Product] {
	return func(yield func(*Product) bool) {
		for _, p := range s.index.All() {
			if !yield(p) {
				return
			}
		}
	}
}

// Len returns the number of distinct products.
func (s *Store) Len() int { return s.index.Len() }

// TotalUnits returns the sum of all product quantities.
func (s *Store) TotalUnits() int {
	total := 0
	for _, p := range s.index.All() {
		total += p.quantity
	}
	return total
}

// Order returns the order of the underlying index.
func (s *Store) Order() int { return s.index.Order() }

// Height returns the number of levels of the underlying index.
func (s *Store) Height() int { return s.index.Height() }

// Validate checks the structural invariants of the underlying index.
func (s *Store) Validate() error {
	if err := s.index.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvariantViolation, err, "inventory index")
	}
	return nil
}

// PrintIndex writes the SKU layout of the index, one node per line.
func (s *Store) PrintIndex(w io.Writer) { s.index.Print(w) }
