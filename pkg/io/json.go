package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/shelfgraph/pkg/errors"
	"github.com/matzehuels/shelfgraph/pkg/warehouse"
)

// ReadJSON decodes a JSON layout from r and builds the warehouse it
// describes. Unknown fields are rejected. ReadJSON does not close r.
func ReadJSON(r io.Reader, opts Options) (*warehouse.Warehouse, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var data layout
	if err := dec.Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return data.build(opts)
}

// ImportJSON reads the JSON layout file at path.
func ImportJSON(path string, opts Options) (*warehouse.Warehouse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f, opts)
}

// WriteJSON encodes the current state of w as an indented JSON layout.
func WriteJSON(w *warehouse.Warehouse, out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fromWarehouse(w)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes w to a JSON layout file at path.
func ExportJSON(w *warehouse.Warehouse, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(w, f)
}
