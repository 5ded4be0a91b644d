package convert

import "github.com/aretw0/kwargs/pkg/value"

// Equal reports whether two host graphs are structurally equal under
// value.Equal. Integers of any Go width compare by value; a bool never equals
// a number and an integer never equals a float.
func Equal(a, b any, opts ...Option) (bool, error) {
	va, err := FromHost(a, opts...)
	if err != nil {
		return false, err
	}
	vb, err := FromHost(b, opts...)
	if err != nil {
		return false, err
	}
	return value.Equal(va, vb), nil
}
