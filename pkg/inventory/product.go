package inventory

import (
	"fmt"

	"github.com/matzehuels/shelfgraph/pkg/errors"
)

// Product is an item stocked at a location. SKU and name are fixed at
// creation; the quantity changes only through a [Store].
type Product struct {
	sku      string
	name     string
	quantity int
}

// NewProduct creates a product. It rejects invalid SKUs and negative quantities.
func NewProduct(sku, name string, quantity int) (*Product, error) {
	if err := errors.ValidateSKU(sku); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "quantity for %s cannot be negative (got %d)", sku, quantity)
	}
	return &Product{sku: sku, name: name, quantity: quantity}, nil
}

// SKU returns the product's stock keeping unit.
func (p *Product) SKU() string { return p.sku }

// Name returns the human-readable product name.
func (p *Product) Name() string { return p.name }

// Quantity returns the units on hand.
func (p *Product) Quantity() int { return p.quantity }

func (p *Product) String() string {
	return fmt.Sprintf("%s [%s]: %d units", p.name, p.sku, p.quantity)
}
