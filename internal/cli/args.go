package cli

import (
	"strconv"
	"strings"

	"github.com/matzehuels/shelfgraph/pkg/errors"
	"github.com/matzehuels/shelfgraph/pkg/warehouse"
)

// parseLocationID parses a numeric location ID argument.
func parseLocationID(s string) (warehouse.LocationID, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid location id %q", s)
	}
	return warehouse.LocationID(id), nil
}

// parseQuantity parses a positive unit count.
func parseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid quantity %q", s)
	}
	if err := errors.ValidateDelta(n); err != nil {
		return 0, err
	}
	return n, nil
}

// parseRouteSpec parses a "from:to" pair of location IDs.
func parseRouteSpec(s string) (warehouse.LocationID, warehouse.LocationID, error) {
	from, to, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "invalid route %q (want from:to)", s)
	}
	src, err := parseLocationID(from)
	if err != nil {
		return 0, 0, err
	}
	dst, err := parseLocationID(to)
	if err != nil {
		return 0, 0, err
	}
	return src, dst, nil
}

// lookupLocation returns the location with id or a NOT_FOUND error.
func lookupLocation(w *warehouse.Warehouse, id warehouse.LocationID) (*warehouse.Location, error) {
	l, ok := w.Location(id)
	if !ok {
		return nil, errors.Wrap(errors.ErrCodeNotFound, warehouse.ErrUnknownLocation, "location %d", id)
	}
	return l, nil
}
