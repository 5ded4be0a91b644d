package value

import "fmt"

// Difference describes one structural mismatch between two values.
type Difference struct {
	Path  string `json:"path"`
	Left  string `json:"left,omitempty"`
	Right string `json:"right,omitempty"`
}

func (d Difference) String() string {
	switch {
	case d.Left == "":
		return fmt.Sprintf("%s: added %s", d.Path, d.Right)
	case d.Right == "":
		return fmt.Sprintf("%s: removed %s", d.Path, d.Left)
	default:
		return fmt.Sprintf("%s: %s != %s", d.Path, d.Left, d.Right)
	}
}

// Diff lists every difference between a and b, rooted at "$".
// Mapping keys are visited in a's order, then keys only present in b.
// An empty result means Equal(a, b).
func Diff(a, b Value) []Difference {
	// A task either compares a pair or emits a difference already found.
	type task struct {
		path string
		a, b Value
		emit *Difference
	}
	var out []Difference
	stack := []task{{path: "$", a: a, b: b}}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if t.emit != nil {
			out = append(out, *t.emit)
			continue
		}
		if t.a.tag != t.b.tag {
			out = append(out, Difference{Path: t.path, Left: t.a.String(), Right: t.b.String()})
			continue
		}

		var next []task
		switch t.a.tag {
		case TagMapping:
			ma, mb := t.a.data.(*Mapping), t.b.data.(*Mapping)
			ma.Each(func(key string, va Value) bool {
				path := JoinPath(t.path, key)
				if vb, ok := mb.Get(key); ok {
					next = append(next, task{path: path, a: va, b: vb})
				} else {
					next = append(next, task{emit: &Difference{Path: path, Left: va.String()}})
				}
				return true
			})
			mb.Each(func(key string, vb Value) bool {
				if !ma.Has(key) {
					next = append(next, task{emit: &Difference{Path: JoinPath(t.path, key), Right: vb.String()}})
				}
				return true
			})
		case TagSequence:
			sa, sb := t.a.data.(*Sequence), t.b.data.(*Sequence)
			n := max(len(sa.items), len(sb.items))
			for i := 0; i < n; i++ {
				path := IndexPath(t.path, i)
				switch {
				case i >= len(sa.items):
					next = append(next, task{emit: &Difference{Path: path, Right: sb.items[i].String()}})
				case i >= len(sb.items):
					next = append(next, task{emit: &Difference{Path: path, Left: sa.items[i].String()}})
				default:
					next = append(next, task{path: path, a: sa.items[i], b: sb.items[i]})
				}
			}
		default:
			if !Equal(t.a, t.b) {
				out = append(out, Difference{Path: t.path, Left: t.a.String(), Right: t.b.String()})
			}
		}
		for i := len(next) - 1; i >= 0; i-- {
			stack = append(stack, next[i])
		}
	}
	return out
}
