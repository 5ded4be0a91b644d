package value

import (
	"math"
	"strconv"
	"strings"
)

// String renders v as compact JSON-like text, e.g. {"int": 42, "vector_val": [1, "a"]}.
func (v Value) String() string {
	// Pending work is either literal text or a value still to render.
	type task struct {
		text string
		v    Value
		lit  bool
	}
	var b strings.Builder
	stack := []task{{v: v}}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t.lit {
			b.WriteString(t.text)
			continue
		}

		var next []task
		switch t.v.tag {
		case TagNull:
			b.WriteString("null")
		case TagBool:
			b.WriteString(strconv.FormatBool(t.v.data.(bool)))
		case TagInt:
			b.WriteString(strconv.FormatInt(t.v.data.(int64), 10))
		case TagFloat:
			b.WriteString(FormatFloat(t.v.data.(float64)))
		case TagString:
			b.WriteString(strconv.Quote(t.v.data.(string)))
		case TagMapping:
			b.WriteByte('{')
			sep := ""
			t.v.data.(*Mapping).Each(func(key string, child Value) bool {
				next = append(next, task{text: sep + strconv.Quote(key) + ": ", lit: true}, task{v: child})
				sep = ", "
				return true
			})
			next = append(next, task{text: "}", lit: true})
		case TagSequence:
			b.WriteByte('[')
			for i, child := range t.v.data.(*Sequence).items {
				if i > 0 {
					next = append(next, task{text: ", ", lit: true})
				}
				next = append(next, task{v: child})
			}
			next = append(next, task{text: "]", lit: true})
		}
		for i := len(next) - 1; i >= 0; i-- {
			stack = append(stack, next[i])
		}
	}
	return b.String()
}

// String renders the mapping like Value.String.
func (m *Mapping) String() string { return MappingValue(m).String() }

// String renders the sequence like Value.String.
func (s *Sequence) String() string { return SequenceValue(s).String() }

// FormatFloat formats f in its shortest form, always keeping a fraction or
// exponent so the text reads back as a float ("3.0", not "3").
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
