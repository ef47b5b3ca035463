package warehouse

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	apperr "github.com/matzehuels/shelfgraph/pkg/errors"
	"github.com/matzehuels/shelfgraph/pkg/inventory"
	"github.com/matzehuels/shelfgraph/pkg/observability"
)

// MovementKind tells inbound from outbound stock movements.
type MovementKind int

const (
	MovementIn MovementKind = iota
	MovementOut
)

func (k MovementKind) String() string {
	if k == MovementOut {
		return "out"
	}
	return "in"
}

// Movement is one recorded stock movement. Delta is signed: negative for
// removals. Err is set when the movement was rejected and nothing changed.
type Movement struct {
	ID       uuid.UUID
	Location LocationID
	SKU      string
	Delta    int
	Kind     MovementKind
	At       time.Time
	Err      error
}

// Accepted reports whether the movement changed stock.
func (m Movement) Accepted() bool { return m.Err == nil }

// Ledger is an append-only log of stock movements. It is safe for concurrent
// use.
type Ledger struct {
	mu      sync.Mutex
	entries []Movement
}

func (l *Ledger) append(m Movement) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, m)
}

// Movements returns a copy of all recorded movements, oldest first.
func (l *Ledger) Movements() []Movement {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Movement(nil), l.entries...)
}

// Len returns the number of recorded movements.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Service coordinates a warehouse graph with stock movements. Its errors
// carry codes from pkg/errors.
type Service struct {
	wh     *Warehouse
	ledger *Ledger
	now    func() time.Time
}

// NewService wraps w. A nil w starts from an empty warehouse.
func NewService(w *Warehouse) *Service {
	if w == nil {
		w = New()
	}
	return &Service{wh: w, ledger: &Ledger{}, now: time.Now}
}

// Warehouse returns the underlying graph.
func (s *Service) Warehouse() *Warehouse { return s.wh }

// Ledger returns the movement log.
func (s *Service) Ledger() *Ledger { return s.ledger }

// AddLocation adds a location of the given kind. An existing ID keeps its
// label and kind.
func (s *Service) AddLocation(id LocationID, label string, kind Kind) (*Location, error) {
	if l, ok := s.wh.Location(id); ok {
		return l, nil
	}
	if err := apperr.ValidateLabel(label); err != nil {
		return nil, err
	}
	l, err := s.wh.AddLocation(id, label)
	if err != nil {
		return nil, Coded(err)
	}
	l.Kind = kind
	return l, nil
}

// Connect adds or replaces an aisle.
func (s *Service) Connect(from, to LocationID, weight float64) error {
	return Coded(s.wh.Connect(from, to, weight))
}

// UpdateConnection changes the weight of an existing aisle.
func (s *Service) UpdateConnection(from, to LocationID, weight float64) error {
	return Coded(s.wh.UpdateConnection(from, to, weight))
}

// PutProduct stores p at a location, replacing any product with the same SKU.
func (s *Service) PutProduct(id LocationID, p *inventory.Product) error {
	l, err := s.location(id)
	if err != nil {
		return err
	}
	l.Stock.Put(p)
	return nil
}

// Product looks up sku at a location.
func (s *Service) Product(id LocationID, sku string) (*inventory.Product, error) {
	l, err := s.location(id)
	if err != nil {
		return nil, err
	}
	p, ok := l.Stock.Get(sku)
	if !ok {
		return nil, apperr.New(apperr.ErrCodeNotFound, "sku %s not found at %s", sku, l)
	}
	return p, nil
}

// AddStock receives delta units of sku at a location.
func (s *Service) AddStock(ctx context.Context, id LocationID, sku string, delta int) (Movement, error) {
	return s.move(ctx, id, sku, delta, MovementIn)
}

// RemoveStock takes delta units of sku out of a location. A removal larger
// than the quantity on hand is rejected and leaves the quantity unchanged.
func (s *Service) RemoveStock(ctx context.Context, id LocationID, sku string, delta int) (Movement, error) {
	return s.move(ctx, id, sku, delta, MovementOut)
}

func (s *Service) move(ctx context.Context, id LocationID, sku string, delta int, kind MovementKind) (Movement, error) {
	start := time.Now()
	signed := delta
	if kind == MovementOut {
		signed = -delta
	}

	l, err := s.location(id)
	if err == nil {
		if kind == MovementIn {
			err = l.Stock.AddStock(sku, delta)
		} else {
			err = l.Stock.RemoveStock(sku, delta)
		}
	}

	m := Movement{
		ID:       uuid.New(),
		Location: id,
		SKU:      sku,
		Delta:    signed,
		Kind:     kind,
		At:       s.now(),
		Err:      err,
	}
	s.ledger.append(m)
	observability.Stock().OnMovement(ctx, int(id), sku, signed, time.Since(start), err)
	return m, err
}

// Route returns the cheapest route between two locations.
func (s *Service) Route(ctx context.Context, from, to LocationID) (Route, error) {
	start := time.Now()
	r, err := s.wh.ShortestPath(from, to)
	err = Coded(err)
	observability.Stock().OnRoute(ctx, int(from), int(to), r.Distance, time.Since(start), err)
	return r, err
}

func (s *Service) location(id LocationID) (*Location, error) {
	l, ok := s.wh.Location(id)
	if !ok {
		return nil, apperr.Wrap(apperr.ErrCodeNotFound, ErrUnknownLocation, "location %d", id)
	}
	return l, nil
}

// Coded attaches a pkg/errors code to the sentinel errors of this package.
// Errors that already carry a code are returned unchanged.
func Coded(err error) error {
	if err == nil || apperr.GetCode(err) != "" {
		return err
	}
	switch {
	case errors.Is(err, ErrUnknownLocation), errors.Is(err, ErrUnknownAisle):
		return apperr.Wrap(apperr.ErrCodeNotFound, err, "")
	case errors.Is(err, ErrNoRoute):
		return apperr.Wrap(apperr.ErrCodeNoRoute, err, "")
	case errors.Is(err, ErrInvalidLabel), errors.Is(err, ErrNegativeWeight):
		return apperr.Wrap(apperr.ErrCodeInvalidInput, err, "")
	}
	return apperr.Wrap(apperr.ErrCodeInternal, err, "")
}
