package convert

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/aretw0/kwargs/pkg/value"
)

type hostTask struct {
	host  any
	path  string
	depth int // containers enclosing this value
	put   func(value.Value)
}

type hostChild struct {
	key  string
	host any
}

// FromHost builds a value.Value tree mirroring h.
//
// Mapping keys keep the host's iteration order. On failure the returned Value
// is Null and the error is a *value.PathError wrapping one of
// value.ErrUnsupportedType, value.ErrUnsupportedKeyType or
// value.ErrRecursionLimitExceeded.
func FromHost(h any, opts ...Option) (value.Value, error) {
	o := newOptions(opts)

	var root value.Value
	stack := []hostTask{{host: h, path: "$", put: func(v value.Value) { root = v }}}

	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if v, ok, err := hostScalar(t.host, t.path); err != nil {
			return value.Null(), err
		} else if ok {
			t.put(v)
			continue
		}

		kind, children, err := hostContainer(t.host, t.path)
		if err != nil {
			return value.Null(), err
		}
		if t.depth+1 > o.MaxDepth {
			return value.Null(), &value.PathError{Path: t.path, Err: value.ErrRecursionLimitExceeded}
		}

		// Children are pushed in reverse so they are placed in host order.
		switch kind {
		case value.TagMapping:
			m := value.NewMapping()
			t.put(m.Value())
			for i := len(children) - 1; i >= 0; i-- {
				c := children[i]
				stack = append(stack, hostTask{
					host:  c.host,
					path:  value.JoinPath(t.path, c.key),
					depth: t.depth + 1,
					put:   func(v value.Value) { m.Set(c.key, v) },
				})
			}
		case value.TagSequence:
			s := value.NewSequence()
			t.put(s.Value())
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, hostTask{
					host:  children[i].host,
					path:  value.IndexPath(t.path, i),
					depth: t.depth + 1,
					put:   func(v value.Value) { s.Append(v) },
				})
			}
		}
	}
	return root, nil
}

// hostScalar converts leaves. ok is false when h is a container or unknown.
func hostScalar(h any, path string) (value.Value, bool, error) {
	switch x := h.(type) {
	case nil:
		return value.Null(), true, nil
	case bool:
		return value.Bool(x), true, nil
	case int:
		return value.Int(int64(x)), true, nil
	case int8:
		return value.Int(int64(x)), true, nil
	case int16:
		return value.Int(int64(x)), true, nil
	case int32:
		return value.Int(int64(x)), true, nil
	case int64:
		return value.Int(x), true, nil
	case uint8:
		return value.Int(int64(x)), true, nil
	case uint16:
		return value.Int(int64(x)), true, nil
	case uint32:
		return value.Int(int64(x)), true, nil
	case float32:
		return value.Float(float64(x)), true, nil
	case float64:
		return value.Float(x), true, nil
	case string:
		return value.String(x), true, nil
	case json.Number:
		if !strings.ContainsAny(x.String(), ".eE") {
			i, err := strconv.ParseInt(x.String(), 10, 64)
			if err != nil {
				return value.Null(), false, &value.PathError{Path: path, Value: h, Err: value.ErrUnsupportedType}
			}
			return value.Int(i), true, nil
		}
		f, err := x.Float64()
		if err != nil {
			return value.Null(), false, &value.PathError{Path: path, Value: h, Err: value.ErrUnsupportedType}
		}
		return value.Float(f), true, nil
	case value.Value:
		// Containers are rebuilt through the work stack so depth is counted.
		if x.IsMapping() || x.IsSequence() {
			return value.Null(), false, nil
		}
		return x, true, nil
	case *value.Mapping:
		return value.Null(), x == nil, nil
	case *value.Sequence:
		return value.Null(), x == nil, nil
	case *OrderedMap:
		return value.Null(), x == nil, nil
	case map[string]any:
		return value.Null(), x == nil, nil
	case []any:
		return value.Null(), x == nil, nil
	}

	rv := reflect.ValueOf(h)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return value.Null(), true, nil
		}
		return hostScalar(rv.Elem().Interface(), path)
	case reflect.Bool:
		return value.Bool(rv.Bool()), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int(rv.Int()), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return value.Null(), false, &value.PathError{Path: path, Value: h, Err: value.ErrUnsupportedType}
		}
		return value.Int(int64(u)), true, nil
	case reflect.Float32, reflect.Float64:
		return value.Float(rv.Float()), true, nil
	case reflect.String:
		return value.String(rv.String()), true, nil
	case reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return value.Null(), true, nil
		}
	}
	return value.Null(), false, nil
}

// hostContainer lists the children of a mapping or sequence in host order.
func hostContainer(h any, path string) (value.Tag, []hostChild, error) {
	switch x := h.(type) {
	case value.Value:
		if m, err := x.AsMapping(); err == nil {
			return hostContainer(m, path)
		}
		if s, err := x.AsSequence(); err == nil {
			return hostContainer(s, path)
		}
	case *value.Value:
		return hostContainer(*x, path)
	case *value.Mapping:
		children := make([]hostChild, 0, x.Len())
		x.Each(func(key string, v value.Value) bool {
			children = append(children, hostChild{key: key, host: v})
			return true
		})
		return value.TagMapping, children, nil
	case *value.Sequence:
		items := x.Items()
		children := make([]hostChild, len(items))
		for i, v := range items {
			children[i].host = v
		}
		return value.TagSequence, children, nil
	case *OrderedMap:
		children := make([]hostChild, 0, x.Len())
		for pair := x.Oldest(); pair != nil; pair = pair.Next() {
			children = append(children, hostChild{key: pair.Key, host: pair.Value})
		}
		return value.TagMapping, children, nil
	case map[string]any:
		children := make([]hostChild, 0, len(x))
		for k, v := range x {
			children = append(children, hostChild{key: k, host: v})
		}
		return value.TagMapping, children, nil
	case []any:
		children := make([]hostChild, len(x))
		for i, v := range x {
			children[i].host = v
		}
		return value.TagSequence, children, nil
	}

	rv := reflect.ValueOf(h)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		children := make([]hostChild, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key()
			if k.Kind() == reflect.Interface && !k.IsNil() {
				k = k.Elem()
			}
			if k.Kind() != reflect.String {
				return 0, nil, &value.PathError{Path: path, Value: iter.Key().Interface(), Err: value.ErrUnsupportedKeyType}
			}
			children = append(children, hostChild{key: k.String(), host: iter.Value().Interface()})
		}
		return value.TagMapping, children, nil
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return 0, nil, &value.PathError{Path: path, Value: h, Err: value.ErrUnsupportedType}
		}
		children := make([]hostChild, rv.Len())
		for i := range children {
			children[i].host = rv.Index(i).Interface()
		}
		return value.TagSequence, children, nil
	}
	return 0, nil, &value.PathError{Path: path, Value: h, Err: value.ErrUnsupportedType}
}
