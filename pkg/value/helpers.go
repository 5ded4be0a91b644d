package value

import "fmt"

// Lookup extracts the value stored under key as T.
//
// Numeric and bool targets accept Int, Float and Bool payloads and convert
// between them (floats truncate toward zero, bools become 0 or 1, non-zero
// numbers become true). String, Value, *Mapping and *Sequence targets require
// the matching tag. A missing key yields ErrKeyNotFound.
func Lookup[T any](m *Mapping, key string) (T, error) {
	var zero T
	v, ok := m.Get(key)
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	return As[T](v)
}

// LookupOr is Lookup that returns def on any failure.
func LookupOr[T any](m *Mapping, key string, def T) T {
	out, err := Lookup[T](m, key)
	if err != nil {
		return def
	}
	return out
}

// As extracts v as T with the conversions described on Lookup.
func As[T any](v Value) (T, error) {
	var out T
	var err error
	switch p := any(&out).(type) {
	case *Value:
		*p = v
	case *bool:
		*p, err = v.toBool()
	case *int:
		var n int64
		n, err = v.toInt()
		*p = int(n)
	case *int32:
		var n int64
		n, err = v.toInt()
		*p = int32(n)
	case *int64:
		*p, err = v.toInt()
	case *float32:
		var f float64
		f, err = v.toFloat()
		*p = float32(f)
	case *float64:
		*p, err = v.toFloat()
	case *string:
		*p, err = v.AsString()
	case *[]Value:
		var s *Sequence
		if s, err = v.AsSequence(); err == nil {
			*p = s.Items()
		}
	case **Mapping:
		*p, err = v.AsMapping()
	case **Sequence:
		*p, err = v.AsSequence()
	default:
		err = fmt.Errorf("%w: cannot extract %T", ErrUnsupportedType, out)
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (v Value) toInt() (int64, error) {
	switch v.tag {
	case TagInt:
		return v.data.(int64), nil
	case TagFloat:
		return int64(v.data.(float64)), nil
	case TagBool:
		if v.data.(bool) {
			return 1, nil
		}
		return 0, nil
	}
	return 0, v.mismatch(TagInt)
}

func (v Value) toFloat() (float64, error) {
	switch v.tag {
	case TagFloat:
		return v.data.(float64), nil
	case TagInt:
		return float64(v.data.(int64)), nil
	case TagBool:
		if v.data.(bool) {
			return 1, nil
		}
		return 0, nil
	}
	return 0, v.mismatch(TagFloat)
}

func (v Value) toBool() (bool, error) {
	switch v.tag {
	case TagBool:
		return v.data.(bool), nil
	case TagInt:
		return v.data.(int64) != 0, nil
	case TagFloat:
		return v.data.(float64) != 0, nil
	}
	return false, v.mismatch(TagBool)
}

// WithPrefix returns a copy of m with prefix prepended to every top-level key.
// Nested mappings keep their keys.
func WithPrefix(m *Mapping, prefix string) *Mapping {
	out := NewMapping()
	m.Each(func(key string, v Value) bool {
		out.Set(prefix+key, v.Clone())
		return true
	})
	return out
}

// Merge returns a copy of a with every top-level entry of b applied over it.
// Keys already in a keep their position; new keys from b are appended.
func Merge(a, b *Mapping) *Mapping {
	out := a.Clone()
	b.Each(func(key string, v Value) bool {
		out.Set(key, v.Clone())
		return true
	})
	return out
}
