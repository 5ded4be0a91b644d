package convert

import (
	"github.com/aretw0/kwargs/pkg/value"
)

type nativeTask struct {
	v     value.Value
	path  string
	depth int
	put   func(any)
}

// ToHost rebuilds a host object graph from v.
//
// The tag set is closed, so the only failure is value.ErrRecursionLimitExceeded.
func ToHost(v value.Value, opts ...Option) (any, error) {
	o := newOptions(opts)

	var root any
	stack := []nativeTask{{v: v, path: "$", put: func(h any) { root = h }}}

	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch t.v.Tag() {
		case value.TagMapping, value.TagSequence:
			if t.depth+1 > o.MaxDepth {
				return nil, &value.PathError{Path: t.path, Err: value.ErrRecursionLimitExceeded}
			}
		}

		switch t.v.Tag() {
		case value.TagNull:
			t.put(nil)
		case value.TagBool:
			b, _ := t.v.AsBool()
			t.put(b)
		case value.TagInt:
			i, _ := t.v.AsInt()
			t.put(i)
		case value.TagFloat:
			f, _ := t.v.AsFloat()
			t.put(f)
		case value.TagString:
			s, _ := t.v.AsString()
			t.put(s)
		case value.TagMapping:
			m, _ := t.v.AsMapping()
			keys := m.Keys()
			var set func(key string, h any)
			if o.PlainMaps {
				plain := make(map[string]any, len(keys))
				set = func(key string, h any) { plain[key] = h }
				t.put(plain)
			} else {
				ordered := NewOrderedMap()
				set = func(key string, h any) { ordered.Set(key, h) }
				t.put(ordered)
			}
			for i := len(keys) - 1; i >= 0; i-- {
				key := keys[i]
				child, _ := m.Get(key)
				stack = append(stack, nativeTask{
					v:     child,
					path:  value.JoinPath(t.path, key),
					depth: t.depth + 1,
					put:   func(h any) { set(key, h) },
				})
			}
		case value.TagSequence:
			s, _ := t.v.AsSequence()
			items := s.Items()
			out := make([]any, len(items))
			t.put(out)
			for i := len(items) - 1; i >= 0; i-- {
				idx := i
				stack = append(stack, nativeTask{
					v:     items[i],
					path:  value.IndexPath(t.path, i),
					depth: t.depth + 1,
					put:   func(h any) { out[idx] = h },
				})
			}
		}
	}
	return root, nil
}
