package value

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Mapping is an ordered collection of unique string keys to Values.
// Iteration follows insertion order; re-setting a key keeps its position.
// The zero value is an empty mapping ready to use.
type Mapping struct {
	entries *orderedmap.OrderedMap[string, Value]
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{entries: orderedmap.New[string, Value]()}
}

// Value wraps m as a Mapping Value.
func (m *Mapping) Value() Value { return MappingValue(m) }

// Len returns the number of keys.
func (m *Mapping) Len() int {
	if m.entries == nil {
		return 0
	}
	return m.entries.Len()
}

// Set stores v under key. An existing key is overwritten in place.
func (m *Mapping) Set(key string, v Value) *Mapping {
	if m.entries == nil {
		m.entries = orderedmap.New[string, Value]()
	}
	m.entries.Set(key, v)
	return m
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	if m.entries == nil {
		return Value{}, false
	}
	return m.entries.Get(key)
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key and reports whether it was present.
func (m *Mapping) Delete(key string) bool {
	if m.entries == nil {
		return false
	}
	_, ok := m.entries.Delete(key)
	return ok
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	keys := make([]string, 0, m.Len())
	m.Each(func(key string, _ Value) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Each calls fn for every entry in insertion order until fn returns false.
func (m *Mapping) Each(fn func(key string, v Value) bool) {
	if m.entries == nil {
		return
	}
	for pair := m.entries.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Clone returns a deep copy of m.
func (m *Mapping) Clone() *Mapping {
	return MappingValue(m).Clone().data.(*Mapping)
}

// Entry is a key/value pair used to build mappings literally.
type Entry struct {
	Key   string
	Value Value
}

// MappingOf builds a mapping from entries in order. Later duplicates overwrite earlier ones.
func MappingOf(entries ...Entry) *Mapping {
	m := NewMapping()
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}
