package io

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/shelfgraph/pkg/errors"
	"github.com/matzehuels/shelfgraph/pkg/warehouse"
)

// ReadTOML decodes a TOML layout from r and builds the warehouse it
// describes. Unknown keys are rejected. ReadTOML does not close r.
func ReadTOML(r io.Reader, opts Options) (*warehouse.Warehouse, error) {
	var data layout
	md, err := toml.NewDecoder(r).Decode(&data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidFormat, "decode toml: unknown keys %s", strings.Join(keys, ", "))
	}
	return data.build(opts)
}

// ImportTOML reads the TOML layout file at path.
func ImportTOML(path string, opts Options) (*warehouse.Warehouse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTOML(f, opts)
}

// WriteTOML encodes the current state of w as a TOML layout.
func WriteTOML(w *warehouse.Warehouse, out io.Writer) error {
	if err := toml.NewEncoder(out).Encode(fromWarehouse(w)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportTOML writes w to a TOML layout file at path.
func ExportTOML(w *warehouse.Warehouse, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteTOML(w, f)
}
