package warehouse

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/shelfgraph/pkg/inventory"
)

var (
	// ErrInvalidLabel is returned by [Warehouse.AddLocation] when the label is
	// blank.
	ErrInvalidLabel = errors.New("location label must not be empty")

	// ErrUnknownLocation is returned when an operation references a location
	// ID that has not been added.
	ErrUnknownLocation = errors.New("unknown location")

	// ErrNegativeWeight is returned by [Warehouse.Connect] and
	// [Warehouse.UpdateConnection] for negative, NaN or infinite weights.
	ErrNegativeWeight = errors.New("aisle weight must be a finite non-negative number")

	// ErrUnknownAisle is returned by [Warehouse.UpdateConnection] when the two
	// locations are not connected.
	ErrUnknownAisle = errors.New("unknown aisle")

	// ErrNoRoute is returned by [Warehouse.ShortestPath] when the destination
	// cannot be reached from the source.
	ErrNoRoute = errors.New("no route")
)

// LocationID identifies a location within a warehouse.
type LocationID int

// Kind classifies what a location is used for.
type Kind int

const (
	// KindShelf is a storage shelf. It is the default for new locations.
	KindShelf Kind = iota
	// KindReceiving is an inbound dock where goods arrive.
	KindReceiving
	// KindDispatch is an outbound area where goods leave.
	KindDispatch
)

func (k Kind) String() string {
	switch k {
	case KindReceiving:
		return "receiving"
	case KindDispatch:
		return "dispatch"
	default:
		return "shelf"
	}
}

// ParseKind converts a kind name as produced by [Kind.String]. The empty
// string parses as [KindShelf].
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "shelf":
		return KindShelf, nil
	case "receiving":
		return KindReceiving, nil
	case "dispatch":
		return KindDispatch, nil
	}
	return KindShelf, fmt.Errorf("unknown location kind %q", s)
}

// Location is a node of the warehouse graph.
type Location struct {
	ID    LocationID
	Label string
	Kind  Kind
	Stock *inventory.Store
}

func (l *Location) String() string {
	return fmt.Sprintf("%s(#%d)", l.Label, l.ID)
}

// Aisle is a directed, weighted connection between two locations.
type Aisle struct {
	From   LocationID
	To     LocationID
	Weight float64
}

// Warehouse is a directed graph of locations. Each location carries its own
// product index.
//
// The zero value is not usable - use [New] or [NewWithIndexOrder].
type Warehouse struct {
	locations  map[LocationID]*Location
	aisles     map[LocationID]map[LocationID]float64
	indexOrder int
}

// New creates an empty warehouse whose locations index products with
// [inventory.DefaultOrder].
func New() *Warehouse {
	return &Warehouse{
		locations:  make(map[LocationID]*Location),
		aisles:     make(map[LocationID]map[LocationID]float64),
		indexOrder: inventory.DefaultOrder,
	}
}

// NewWithIndexOrder creates an empty warehouse whose locations index products
// with a B-tree of the given order.
func NewWithIndexOrder(order int) (*Warehouse, error) {
	if _, err := inventory.NewStoreWithOrder(order); err != nil {
		return nil, err
	}
	w := New()
	w.indexOrder = order
	return w, nil
}

// IndexOrder returns the order used for new location indexes.
func (w *Warehouse) IndexOrder() int { return w.indexOrder }

// AddLocation adds a shelf location. If id already exists the existing
// location is returned unchanged.
func (w *Warehouse) AddLocation(id LocationID, label string) (*Location, error) {
	if l, ok := w.locations[id]; ok {
		return l, nil
	}
	if strings.TrimSpace(label) == "" {
		return nil, ErrInvalidLabel
	}
	stock, err := inventory.NewStoreWithOrder(w.indexOrder)
	if err != nil {
		return nil, err
	}
	l := &Location{ID: id, Label: label, Kind: KindShelf, Stock: stock}
	w.locations[id] = l
	return l, nil
}

// Location returns the location with the given ID.
func (w *Warehouse) Location(id LocationID) (*Location, bool) {
	l, ok := w.locations[id]
	return l, ok
}

// Locations returns all locations sorted by ID.
func (w *Warehouse) Locations() []*Location {
	ids := slices.Sorted(maps.Keys(w.locations))
	out := make([]*Location, len(ids))
	for i, id := range ids {
		out[i] = w.locations[id]
	}
	return out
}

// LocationCount returns the number of locations.
func (w *Warehouse) LocationCount() int { return len(w.locations) }

// Connect adds an aisle from one location to another, replacing the weight
// of an existing aisle between them.
func (w *Warehouse) Connect(from, to LocationID, weight float64) error {
	if err := w.checkEndpoints(from, to); err != nil {
		return err
	}
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("%w (got %v)", ErrNegativeWeight, weight)
	}
	out := w.aisles[from]
	if out == nil {
		out = make(map[LocationID]float64)
		w.aisles[from] = out
	}
	out[to] = weight
	return nil
}

// Disconnect removes the aisle from one location to another. Missing
// locations or aisles are ignored.
func (w *Warehouse) Disconnect(from, to LocationID) {
	out := w.aisles[from]
	if out == nil {
		return
	}
	delete(out, to)
	if len(out) == 0 {
		delete(w.aisles, from)
	}
}

// UpdateConnection changes the weight of an existing aisle.
func (w *Warehouse) UpdateConnection(from, to LocationID, weight float64) error {
	if err := w.checkEndpoints(from, to); err != nil {
		return err
	}
	if _, ok := w.aisles[from][to]; !ok {
		return fmt.Errorf("%w: %d -> %d", ErrUnknownAisle, from, to)
	}
	return w.Connect(from, to, weight)
}

// Aisle returns the weight of the aisle between two locations.
func (w *Warehouse) Aisle(from, to LocationID) (float64, bool) {
	weight, ok := w.aisles[from][to]
	return weight, ok
}

// Aisles returns every aisle sorted by source, then target.
func (w *Warehouse) Aisles() []Aisle {
	var out []Aisle
	for _, from := range slices.Sorted(maps.Keys(w.aisles)) {
		out = append(out, w.Neighbors(from)...)
	}
	return out
}

// AisleCount returns the number of aisles.
func (w *Warehouse) AisleCount() int {
	n := 0
	for _, out := range w.aisles {
		n += len(out)
	}
	return n
}

// Neighbors returns the outgoing aisles of a location sorted by target ID.
func (w *Warehouse) Neighbors(id LocationID) []Aisle {
	out := w.aisles[id]
	targets := slices.Sorted(maps.Keys(out))
	aisles := make([]Aisle, len(targets))
	for i, to := range targets {
		aisles[i] = Aisle{From: id, To: to, Weight: out[to]}
	}
	return aisles
}

func (w *Warehouse) checkEndpoints(from, to LocationID) error {
	if _, ok := w.locations[from]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownLocation, from)
	}
	if _, ok := w.locations[to]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownLocation, to)
	}
	return nil
}
