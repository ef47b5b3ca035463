package io

import (
	"github.com/matzehuels/shelfgraph/pkg/errors"
	"github.com/matzehuels/shelfgraph/pkg/inventory"
	"github.com/matzehuels/shelfgraph/pkg/warehouse"
)

// Options controls how a layout is turned into a warehouse.
type Options struct {
	// IndexOrder overrides the layout's index_order when non-zero.
	IndexOrder int
}

type layout struct {
	IndexOrder int        `json:"index_order,omitempty" toml:"index_order,omitempty"`
	Locations  []location `json:"locations" toml:"locations"`
	Aisles     []aisle    `json:"aisles" toml:"aisles"`
}

type location struct {
	ID       int       `json:"id" toml:"id"`
	Label    string    `json:"label" toml:"label"`
	Kind     string    `json:"kind,omitempty" toml:"kind,omitempty"`
	Products []product `json:"products,omitempty" toml:"products,omitempty"`
}

type product struct {
	SKU      string `json:"sku" toml:"sku"`
	Name     string `json:"name,omitempty" toml:"name,omitempty"`
	Quantity int    `json:"quantity" toml:"quantity"`
}

type aisle struct {
	From   int     `json:"from" toml:"from"`
	To     int     `json:"to" toml:"to"`
	Weight float64 `json:"weight" toml:"weight"`
}

// build validates l and constructs the warehouse it describes.
func (l *layout) build(opts Options) (*warehouse.Warehouse, error) {
	order := opts.IndexOrder
	if order == 0 {
		order = l.IndexOrder
	}
	if order == 0 {
		order = inventory.DefaultOrder
	}
	w, err := warehouse.NewWithIndexOrder(order)
	if err != nil {
		return nil, invalid(err, "index_order %d", order)
	}

	for _, loc := range l.Locations {
		id := warehouse.LocationID(loc.ID)
		if _, dup := w.Location(id); dup {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "location %d: duplicate id", loc.ID)
		}
		kind, err := warehouse.ParseKind(loc.Kind)
		if err != nil {
			return nil, invalid(err, "location %d", loc.ID)
		}
		wl, err := w.AddLocation(id, loc.Label)
		if err != nil {
			return nil, invalid(err, "location %d", loc.ID)
		}
		wl.Kind = kind

		for _, p := range loc.Products {
			if _, dup := wl.Stock.Get(p.SKU); dup {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "location %d: duplicate sku %s", loc.ID, p.SKU)
			}
			prod, err := inventory.NewProduct(p.SKU, p.Name, p.Quantity)
			if err != nil {
				return nil, invalid(err, "location %d: product %q", loc.ID, p.SKU)
			}
			wl.Stock.Put(prod)
		}
	}

	for _, a := range l.Aisles {
		from, to := warehouse.LocationID(a.From), warehouse.LocationID(a.To)
		if _, dup := w.Aisle(from, to); dup {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "aisle %d->%d: duplicate", a.From, a.To)
		}
		if err := w.Connect(from, to, a.Weight); err != nil {
			return nil, invalid(err, "aisle %d->%d", a.From, a.To)
		}
	}
	return w, nil
}

// fromWarehouse captures the current state of w in a layout.
func fromWarehouse(w *warehouse.Warehouse) layout {
	out := layout{
		Locations: make([]location, 0, w.LocationCount()),
		Aisles:    make([]aisle, 0, w.AisleCount()),
	}
	if w.IndexOrder() != inventory.DefaultOrder {
		out.IndexOrder = w.IndexOrder()
	}
	for _, l := range w.Locations() {
		loc := location{ID: int(l.ID), Label: l.Label}
		if l.Kind != warehouse.KindShelf {
			loc.Kind = l.Kind.String()
		}
		for p := range l.Stock.Products() {
			loc.Products = append(loc.Products, product{SKU: p.SKU(), Name: p.Name(), Quantity: p.Quantity()})
		}
		out.Locations = append(out.Locations, loc)
	}
	for _, a := range w.Aisles() {
		out.Aisles = append(out.Aisles, aisle{From: int(a.From), To: int(a.To), Weight: a.Weight})
	}
	return out
}

func invalid(err error, format string, args ...any) error {
	return errors.Wrap(errors.ErrCodeInvalidFormat, err, format, args...)
}
