package value

import "math"

// Equal reports whether a and b are structurally equal.
// Mappings ignore key order, sequences do not, and tags never coerce.
func Equal(a, b Value) bool {
	type pair struct{ a, b Value }
	stack := []pair{{a, b}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.a.tag != p.b.tag {
			return false
		}
		switch p.a.tag {
		case TagNull:
		case TagBool:
			if p.a.data.(bool) != p.b.data.(bool) {
				return false
			}
		case TagInt:
			if p.a.data.(int64) != p.b.data.(int64) {
				return false
			}
		case TagFloat:
			if math.Float64bits(p.a.data.(float64)) != math.Float64bits(p.b.data.(float64)) {
				return false
			}
		case TagString:
			if p.a.data.(string) != p.b.data.(string) {
				return false
			}
		case TagMapping:
			ma, mb := p.a.data.(*Mapping), p.b.data.(*Mapping)
			if ma.Len() != mb.Len() {
				return false
			}
			ok := true
			ma.Each(func(key string, va Value) bool {
				vb, found := mb.Get(key)
				if !found {
					ok = false
					return false
				}
				stack = append(stack, pair{va, vb})
				return true
			})
			if !ok {
				return false
			}
		case TagSequence:
			sa, sb := p.a.data.(*Sequence), p.b.data.(*Sequence)
			if len(sa.items) != len(sb.items) {
				return false
			}
			for i := range sa.items {
				stack = append(stack, pair{sa.items[i], sb.items[i]})
			}
		}
	}
	return true
}

// Equal reports whether v and other are structurally equal.
func (v Value) Equal(other Value) bool { return Equal(v, other) }
