package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/shelfgraph/pkg/errors"
	"github.com/matzehuels/shelfgraph/pkg/warehouse"
)

// Format names a layout encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatOf returns the layout format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported layout file %s (want .json or .toml)", filepath.Base(path))
}

// Import reads a layout file, choosing the decoder by extension.
func Import(path string, opts Options) (*warehouse.Warehouse, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if format == FormatTOML {
		return ImportTOML(path, opts)
	}
	return ImportJSON(path, opts)
}

// Export writes w to a layout file, choosing the encoder by extension.
func Export(w *warehouse.Warehouse, path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	if format == FormatTOML {
		return ExportTOML(w, path)
	}
	return ExportJSON(w, path)
}
