package value

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType is returned when a host value's runtime type is outside the closed tag set.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnsupportedKeyType is returned when a mapping key is not representable as a string.
	ErrUnsupportedKeyType = errors.New("unsupported key type")

	// ErrTypeMismatch is returned when a tag-specific accessor is used on a Value of another tag.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrRecursionLimitExceeded is returned when nesting depth exceeds the configured bound.
	ErrRecursionLimitExceeded = errors.New("recursion limit exceeded")

	// ErrExcessiveAliasing is returned when YAML aliases expand far beyond the document's own size.
	ErrExcessiveAliasing = errors.New("excessive aliasing")

	// ErrKeyNotFound is returned by Lookup when the mapping has no such key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrNotFound is returned by stores when no dict is saved under a name.
	ErrNotFound = errors.New("dict not found")
)

// DefaultMaxDepth bounds container nesting for conversions and decoders.
const DefaultMaxDepth = 1000

// PathError locates a failure inside a value graph.
type PathError struct {
	Path  string // Location, e.g. "$.nested[2]"
	Value any    // Offending host value, if any
	Err   error  // One of the sentinel errors above
}

func (e *PathError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v (got %T)", e.Path, e.Err, e.Value)
}

func (e *PathError) Unwrap() error { return e.Err }

// TypeMismatchError reports which tag an accessor wanted and which it found.
type TypeMismatchError struct {
	Want Tag
	Got  Tag
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%v: want %s, got %s", ErrTypeMismatch, e.Want, e.Got)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// JoinPath appends a mapping key segment to a path.
func JoinPath(path, key string) string {
	if isIdent(key) {
		return path + "." + key
	}
	return fmt.Sprintf("%s[%q]", path, key)
}

// IndexPath appends a sequence index segment to a path.
func IndexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
