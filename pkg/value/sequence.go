package value

// Sequence is an ordered list of Values.
type Sequence struct {
	items []Value
}

// NewSequence returns an empty sequence.
func NewSequence() *Sequence {
	return &Sequence{items: []Value{}}
}

// SequenceOf builds a sequence holding items in order.
func SequenceOf(items ...Value) *Sequence {
	s := &Sequence{items: make([]Value, 0, len(items))}
	return s.Append(items...)
}

// Value wraps s as a Sequence Value.
func (s *Sequence) Value() Value { return SequenceValue(s) }

// Len returns the number of elements.
func (s *Sequence) Len() int { return len(s.items) }

// Append adds values to the end of the sequence.
func (s *Sequence) Append(vs ...Value) *Sequence {
	s.items = append(s.items, vs...)
	return s
}

// At returns the element at index i.
func (s *Sequence) At(i int) (Value, bool) {
	if i < 0 || i >= len(s.items) {
		return Value{}, false
	}
	return s.items[i], true
}

// Items returns a copy of the element list. Containers inside it are shared.
func (s *Sequence) Items() []Value {
	out := make([]Value, len(s.items))
	copy(out, s.items)
	return out
}

// Clone returns a deep copy of s.
func (s *Sequence) Clone() *Sequence {
	return SequenceValue(s).Clone().data.(*Sequence)
}
