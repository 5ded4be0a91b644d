// Package fixture builds the reference dicts both sides of the boundary test against.
package fixture

import "github.com/aretw0/kwargs/pkg/value"

// Canonical returns a fresh copy of the canonical dict:
//
//	{"int": 42, "double": 3.14, "bool": true, "string": "hello",
//	 "nested": {"inner_key": 42}, "vector_val": [42, 3.14, "hello", true]}
func Canonical() value.Value {
	return CanonicalMapping().Value()
}

// CanonicalMapping is Canonical as a *value.Mapping.
func CanonicalMapping() *value.Mapping {
	nested := value.NewMapping().Set("inner_key", value.Int(42))
	return value.NewMapping().
		Set("int", value.Int(42)).
		Set("double", value.Float(3.14)).
		Set("bool", value.Bool(true)).
		Set("string", value.String("hello")).
		Set("nested", nested.Value()).
		Set("vector_val", mixedVector().Value())
}

// Exchange returns the canonical dict extended the way a host mutates it
// before echoing it back: a scalar key, a nested mapping, a sequence, and
// "nest_self" holding a copy of everything added so far.
func Exchange() value.Value {
	dict := CanonicalMapping()
	dict.Set("new_key", value.String("new_value"))
	dict.Set("new_nested", value.NewMapping().Set("new_inner_key", value.Int(42)).Value())
	dict.Set("new_vector_val", mixedVector().Value())
	dict.Set("nest_self", dict.Clone().Value())
	return dict.Value()
}

func mixedVector() *value.Sequence {
	return value.SequenceOf(value.Int(42), value.Float(3.14), value.String("hello"), value.Bool(true))
}
