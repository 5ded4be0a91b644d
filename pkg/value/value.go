package value

import "fmt"

// Tag identifies the active variant of a Value.
type Tag int

const (
	TagNull     Tag = iota // no payload
	TagBool                // bool
	TagInt                 // int64
	TagFloat               // float64
	TagString              // string
	TagMapping             // *Mapping
	TagSequence            // *Sequence
)

func (t Tag) String() string {
	switch t {
	case TagNull:
		return "null"
	case TagBool:
		return "bool"
	case TagInt:
		return "int"
	case TagFloat:
		return "float"
	case TagString:
		return "string"
	case TagMapping:
		return "mapping"
	case TagSequence:
		return "sequence"
	default:
		return fmt.Sprintf("tag(%d)", int(t))
	}
}

// Value is a Dynamic Value. The zero Value is Null.
//
// Invariants:
//   - data is nil for TagNull.
//   - data is *Mapping for TagMapping and *Sequence for TagSequence, never nil.
type Value struct {
	tag  Tag
	data any
}

// Null returns the Null value.
func Null() Value { return Value{} }

func Bool(b bool) Value     { return Value{tag: TagBool, data: b} }
func Int(i int64) Value     { return Value{tag: TagInt, data: i} }
func Float(f float64) Value { return Value{tag: TagFloat, data: f} }
func String(s string) Value { return Value{tag: TagString, data: s} }

// MappingValue wraps m. A nil m yields an empty mapping.
func MappingValue(m *Mapping) Value {
	if m == nil {
		m = NewMapping()
	}
	return Value{tag: TagMapping, data: m}
}

// SequenceValue wraps s. A nil s yields an empty sequence.
func SequenceValue(s *Sequence) Value {
	if s == nil {
		s = NewSequence()
	}
	return Value{tag: TagSequence, data: s}
}

// Tag returns the active variant.
func (v Value) Tag() Tag { return v.tag }

func (v Value) IsNull() bool     { return v.tag == TagNull }
func (v Value) IsBool() bool     { return v.tag == TagBool }
func (v Value) IsInt() bool      { return v.tag == TagInt }
func (v Value) IsFloat() bool    { return v.tag == TagFloat }
func (v Value) IsString() bool   { return v.tag == TagString }
func (v Value) IsMapping() bool  { return v.tag == TagMapping }
func (v Value) IsSequence() bool { return v.tag == TagSequence }

func (v Value) mismatch(want Tag) error {
	return &TypeMismatchError{Want: want, Got: v.tag}
}

// AsBool returns the payload of a Bool value.
func (v Value) AsBool() (bool, error) {
	if v.tag != TagBool {
		return false, v.mismatch(TagBool)
	}
	return v.data.(bool), nil
}

// AsInt returns the payload of an Int value.
func (v Value) AsInt() (int64, error) {
	if v.tag != TagInt {
		return 0, v.mismatch(TagInt)
	}
	return v.data.(int64), nil
}

// AsFloat returns the payload of a Float value. Int values are not widened.
func (v Value) AsFloat() (float64, error) {
	if v.tag != TagFloat {
		return 0, v.mismatch(TagFloat)
	}
	return v.data.(float64), nil
}

// AsString returns the payload of a String value.
func (v Value) AsString() (string, error) {
	if v.tag != TagString {
		return "", v.mismatch(TagString)
	}
	return v.data.(string), nil
}

// AsMapping returns the mapping held by v. The result is shared with v.
func (v Value) AsMapping() (*Mapping, error) {
	if v.tag != TagMapping {
		return nil, v.mismatch(TagMapping)
	}
	return v.data.(*Mapping), nil
}

// AsSequence returns the sequence held by v. The result is shared with v.
func (v Value) AsSequence() (*Sequence, error) {
	if v.tag != TagSequence {
		return nil, v.mismatch(TagSequence)
	}
	return v.data.(*Sequence), nil
}

// Clone returns a deep copy of v that shares no containers with it.
func (v Value) Clone() Value {
	type task struct {
		src Value
		put func(Value)
	}
	var root Value
	stack := []task{{v, func(c Value) { root = c }}}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch t.src.tag {
		case TagMapping:
			out := NewMapping()
			t.put(MappingValue(out))
			t.src.data.(*Mapping).Each(func(key string, child Value) bool {
				// Reserve the slot so key order survives out-of-order filling.
				out.Set(key, child)
				stack = append(stack, task{child, func(c Value) { out.Set(key, c) }})
				return true
			})
		case TagSequence:
			src := t.src.data.(*Sequence)
			out := &Sequence{items: make([]Value, len(src.items))}
			t.put(SequenceValue(out))
			for i, child := range src.items {
				stack = append(stack, task{child, func(c Value) { out.items[i] = c }})
			}
		default:
			t.put(t.src)
		}
	}
	return root
}
