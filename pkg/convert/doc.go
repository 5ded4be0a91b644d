// Package convert moves data between host object graphs (plain Go values held
// in any) and value.Value trees.
//
// FromHost accepts nil, bool, every integer and float kind, string,
// json.Number, ordered maps, Go maps with string keys, slices and arrays, and
// pointers to any of these. Anything else fails with value.ErrUnsupportedType;
// a map key that is not a string fails with value.ErrUnsupportedKeyType.
//
// ToHost is the inverse. Mappings come back as *OrderedMap in insertion order
// (or map[string]any with WithPlainMaps), sequences as []any, integers as
// int64 and floats as float64.
//
// Both directions walk the graph with an explicit stack and stop with
// value.ErrRecursionLimitExceeded once nesting passes the configured depth.
package convert
