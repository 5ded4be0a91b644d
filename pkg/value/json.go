package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// MarshalJSON encodes v keeping mapping order. NaN and infinities are rejected.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeJSON(&buf, "$", v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a single JSON document into v.
func (v *Value) UnmarshalJSON(data []byte) error {
	out, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// ParseJSON decodes one JSON document. Object key order is kept, numbers
// without fraction or exponent become Int, and duplicate keys overwrite.
func ParseJSON(data []byte) (Value, error) {
	return DecodeJSON(bytes.NewReader(data))
}

// DecodeJSON reads exactly one JSON document from r.
func DecodeJSON(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeJSON(dec, "$", 0)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("json: unexpected data after top-level value")
	}
	return v, nil
}

func decodeJSON(dec *json.Decoder, path string, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, fmt.Errorf("json: %w", err)
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return numberValue(t, path)
	case json.Delim:
		if depth+1 > DefaultMaxDepth {
			return Value{}, &PathError{Path: path, Err: ErrRecursionLimitExceeded}
		}
		switch t {
		case '{':
			m := NewMapping()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return Value{}, fmt.Errorf("json: %w", err)
				}
				key := kt.(string)
				child, err := decodeJSON(dec, JoinPath(path, key), depth+1)
				if err != nil {
					return Value{}, err
				}
				m.Set(key, child)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, fmt.Errorf("json: %w", err)
			}
			return MappingValue(m), nil
		case '[':
			s := NewSequence()
			for i := 0; dec.More(); i++ {
				child, err := decodeJSON(dec, IndexPath(path, i), depth+1)
				if err != nil {
					return Value{}, err
				}
				s.Append(child)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, fmt.Errorf("json: %w", err)
			}
			return SequenceValue(s), nil
		}
	}
	return Value{}, &PathError{Path: path, Value: tok, Err: ErrUnsupportedType}
}

// numberValue keeps the Int/Float distinction of the literal.
func numberValue(n json.Number, path string) (Value, error) {
	s := n.String()
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, &PathError{Path: path, Value: s, Err: ErrUnsupportedType}
		}
		return Float(f), nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Value{}, &PathError{Path: path, Value: s, Err: fmt.Errorf("%w: integer %s out of int64 range", ErrUnsupportedType, s)}
	}
	return Int(i), nil
}

func encodeJSON(buf *bytes.Buffer, path string, v Value) error {
	type task struct {
		path string
		v    Value
		text string
		lit  bool
	}
	stack := []task{{path: path, v: v}}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t.lit {
			buf.WriteString(t.text)
			continue
		}

		var next []task
		switch t.v.tag {
		case TagNull:
			buf.WriteString("null")
		case TagBool:
			buf.WriteString(strconv.FormatBool(t.v.data.(bool)))
		case TagInt:
			buf.WriteString(strconv.FormatInt(t.v.data.(int64), 10))
		case TagFloat:
			f := t.v.data.(float64)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return &PathError{Path: t.path, Value: f, Err: fmt.Errorf("%w: %s is not representable in JSON", ErrUnsupportedType, FormatFloat(f))}
			}
			buf.WriteString(FormatFloat(f))
		case TagString:
			writeJSONString(buf, t.v.data.(string))
		case TagMapping:
			buf.WriteByte('{')
			sep := ""
			t.v.data.(*Mapping).Each(func(key string, child Value) bool {
				var kb bytes.Buffer
				kb.WriteString(sep)
				writeJSONString(&kb, key)
				kb.WriteByte(':')
				next = append(next, task{text: kb.String(), lit: true}, task{path: JoinPath(t.path, key), v: child})
				sep = ","
				return true
			})
			next = append(next, task{text: "}", lit: true})
		case TagSequence:
			buf.WriteByte('[')
			for i, child := range t.v.data.(*Sequence).items {
				if i > 0 {
					next = append(next, task{text: ",", lit: true})
				}
				next = append(next, task{path: IndexPath(t.path, i), v: child})
			}
			next = append(next, task{text: "]", lit: true})
		}
		for i := len(next) - 1; i >= 0; i-- {
			stack = append(stack, next[i])
		}
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	// json.Marshal cannot fail on a string.
	b, _ := json.Marshal(s)
	buf.Write(b)
}
