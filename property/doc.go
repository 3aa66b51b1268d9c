// Package property defines the typed value model of the property store.
//
// A Value is a tagged union over integer, float, boolean, string, raw data and
// unknown variants. A Property pairs a Value with its name and declared Type.
//
//	v := property.Integer(0x23456789)
//	p := property.Property{Name: "Property 1", Type: property.TypeInteger, Value: v}
//
// RawData borrows the caller's buffer; Clone produces an independent copy, which
// is what a table stores. JSON rendering (MarshalJSON) is a diagnostic view and is
// not meant to be read back.
package property
