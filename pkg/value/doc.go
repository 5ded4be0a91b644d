/*
Package value defines the Dynamic Value: a closed, recursive tagged union used
on the native side to hold keyword-style data exchanged with dynamically-typed
callers.

A Value is exactly one of seven kinds:

  - Null
  - Bool (bool)
  - Int (int64)
  - Float (float64)
  - String (UTF-8 text)
  - Mapping (ordered string keys to Values)
  - Sequence (ordered list of Values)

The set is closed. Anything that does not map onto one of these tags is
rejected with a named error rather than coerced.

# Ownership

Values form trees. A container stored inside another container belongs to it;
Set and Append do not copy. To place the same content in two locations, Clone
it first:

	dict := value.NewMapping()
	dict.Set("int", value.Int(42))
	dict.Set("nest_self", value.MappingValue(dict).Clone())

# Equality

Equal compares tag and payload. Scalars must carry the same tag and an
identical payload (Bool(true) never equals Int(1), Int(3) never equals
Float(3)). Mappings compare by key set regardless of insertion order.
Sequences compare element-wise in order.

# Encoding

Value implements json.Marshaler, json.Unmarshaler, yaml.Marshaler and
yaml.Unmarshaler. Both codecs keep mapping order, and integral floats are
written as "3.0" so Int and Float survive a text round-trip.
*/
package value
