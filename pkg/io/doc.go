// Package io reads and writes warehouse layouts as JSON or TOML.
//
// # Layout Format
//
// A layout lists locations with their stocked products, and the aisles
// between them:
//
//	{
//	  "index_order": 5,
//	  "locations": [
//	    {"id": 1, "label": "RECEIVING", "kind": "receiving"},
//	    {"id": 10, "label": "A-1", "products": [
//	      {"sku": "SKU-100", "name": "Drill", "quantity": 40}
//	    ]}
//	  ],
//	  "aisles": [
//	    {"from": 1, "to": 10, "weight": 7.0}
//	  ]
//	}
//
// The TOML form has the same shape:
//
//	index_order = 5
//
//	[[locations]]
//	id = 10
//	label = "A-1"
//
//	[[locations.products]]
//	sku = "SKU-100"
//	name = "Drill"
//	quantity = 40
//
//	[[aisles]]
//	from = 1
//	to = 10
//	weight = 7.0
//
// # Fields
//
// Locations require id and label. kind is one of "shelf" (default),
// "receiving" or "dispatch". Products require sku; quantity defaults to 0.
// Aisles require from and to, which must reference listed locations, and a
// non-negative weight. index_order sets the B-tree order of every location's
// product index and defaults to 5.
//
// # Import
//
// [Import] picks the decoder from the file extension (.json or .toml).
// [ReadJSON] and [ReadTOML] decode from any io.Reader. Decoding errors carry
// the INVALID_FORMAT code and name the location, product or aisle at fault:
//
//	w, err := io.Import("layout.toml", io.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Export
//
// [Export], [WriteJSON] and [WriteTOML] write the current state of a
// warehouse, including stock levels. Locations come out in ID order, aisles
// in (from, to) order and products in SKU order, so exports are stable and
// re-import to an identical warehouse.
package io
