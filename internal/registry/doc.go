// Package registry provides ObjectMap, a map keyed by a derived canonical id.
//
// Queries are values without a natural Go map key (they hold slices of filters
// and order-bys). ObjectMap derives a comparable key with a function supplied
// at construction, so structurally equal queries land on the same entry
// regardless of object identity.
//
// There is no reverse index: lookups by value walk the map with ForEach.
package registry
