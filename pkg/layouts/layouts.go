// Package layouts provides the built-in demo warehouse layout.
//
// The layout is embedded into the binary in both supported encodings, so
// the demo command and tests work without any files on disk.
package layouts

import (
	_ "embed"
)

// The demo warehouse: a receiving dock (1), a dispatch area (2), and two rows
// of four shelves (10..13 and 20..23) stocked with nine products.

//go:embed demo.toml
var demoTOML []byte

//go:embed demo.json
var demoJSON []byte

// DemoName is the file name reported for the embedded demo layout.
const DemoName = "demo.toml"

// DemoTOML returns the demo layout in TOML.
func DemoTOML() []byte {
	return demoTOML
}

// DemoJSON returns the demo layout in JSON.
func DemoJSON() []byte {
	return demoJSON
}
