package value

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sample() Value {
	return MappingOf(
		Entry{"int", Int(42)},
		Entry{"double", Float(3.14)},
		Entry{"whole", Float(2)},
		Entry{"bool", Bool(true)},
		Entry{"string", String("42")},
		Entry{"none", Null()},
		Entry{"nested", MappingOf(Entry{"inner_key", Int(42)}).Value()},
		Entry{"vector_val", SequenceOf(Int(42), Float(3.14), String("hello"), Bool(true)).Value()},
		Entry{"empty_map", NewMapping().Value()},
		Entry{"empty_list", NewSequence().Value()},
	).Value()
}

func TestJSONRoundTrip(t *testing.T) {
	in := sample()
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"whole":2.0`)
	assert.Contains(t, string(data), `"string":"42"`)

	var out Value
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, Equal(in, out), "diff: %v", Diff(in, out))

	m, err := out.AsMapping()
	require.NoError(t, err)
	want, _ := in.AsMapping()
	assert.Equal(t, want.Keys(), m.Keys())
}

func TestParseJSON(t *testing.T) {
	v, err := ParseJSON([]byte(`{"b": 1, "a": 1.0, "b": 1e2}`))
	require.NoError(t, err)
	m, _ := v.AsMapping()
	assert.Equal(t, []string{"b", "a"}, m.Keys())
	b, _ := m.Get("b")
	assert.True(t, Equal(Float(100), b))
	a, _ := m.Get("a")
	assert.True(t, Equal(Float(1), a))

	_, err = ParseJSON([]byte(`{"big": 9223372036854775808}`))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = ParseJSON([]byte(`[1] [2]`))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`{"a": `))
	assert.Error(t, err)
}

func TestJSONRejectsNonFinite(t *testing.T) {
	_, err := json.Marshal(SequenceOf(Float(math.Inf(1))).Value())
	assert.Error(t, err)
}

func TestJSONDepthLimit(t *testing.T) {
	doc := make([]byte, 0, 2*(DefaultMaxDepth+1))
	for i := 0; i <= DefaultMaxDepth; i++ {
		doc = append(doc, '[')
	}
	for i := 0; i <= DefaultMaxDepth; i++ {
		doc = append(doc, ']')
	}
	_, err := ParseJSON(doc)
	assert.ErrorIs(t, err, ErrRecursionLimitExceeded)
}

func TestYAMLRoundTrip(t *testing.T) {
	in := sample()
	data, err := yaml.Marshal(in)
	require.NoError(t, err)

	out, err := ParseYAML(data)
	require.NoError(t, err)
	assert.True(t, Equal(in, out), "diff: %v\n%s", Diff(in, out), data)

	m, _ := out.AsMapping()
	want, _ := in.AsMapping()
	assert.Equal(t, want.Keys(), m.Keys())

	var decoded Value
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.True(t, Equal(in, decoded))
}

func TestYAMLNonFiniteFloats(t *testing.T) {
	in := SequenceOf(Float(math.Inf(1)), Float(math.Inf(-1))).Value()
	data, err := yaml.Marshal(in)
	require.NoError(t, err)
	out, err := ParseYAML(data)
	require.NoError(t, err)
	assert.True(t, Equal(in, out))
}

func TestYAMLNonStringKey(t *testing.T) {
	_, err := ParseYAML([]byte("1: one\n"))
	assert.ErrorIs(t, err, ErrUnsupportedKeyType)

	_, err = ParseYAML([]byte("outer:\n  true: x\n"))
	assert.ErrorIs(t, err, ErrUnsupportedKeyType)
}

func TestYAMLEmptyDocument(t *testing.T) {
	v, err := ParseYAML(nil)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestYAMLAliases(t *testing.T) {
	v, err := ParseYAML([]byte("point: &p [1, 2]\ncopy: *p\n"))
	require.NoError(t, err)

	m, _ := v.AsMapping()
	p, _ := m.Get("point")
	c, _ := m.Get("copy")
	assert.True(t, Equal(p, c))

	// Each alias expands into its own tree.
	cs, _ := c.AsSequence()
	cs.Append(Int(3))
	ps, _ := p.AsSequence()
	assert.Equal(t, 2, ps.Len())
}

func TestYAMLExcessiveAliasing(t *testing.T) {
	var doc strings.Builder
	doc.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= 7; i++ {
		ref := fmt.Sprintf("*l%d", i-1)
		fmt.Fprintf(&doc, "l%d: &l%d [%s]\n", i, i, strings.Repeat(ref+", ", 9)+ref)
	}

	_, err := ParseYAML([]byte(doc.String()))
	assert.ErrorIs(t, err, ErrExcessiveAliasing)
}

func TestYAMLSelfReferentialAnchor(t *testing.T) {
	_, err := ParseYAML([]byte("a: &a [*a]\n"))
	assert.ErrorIs(t, err, ErrExcessiveAliasing)
}

func TestYAMLMergeKeys(t *testing.T) {
	v, err := ParseYAML([]byte(`
base: &base
  a: 1
  b: 2
extra: &extra
  b: 20
  d: 5
derived:
  <<: [*base, *extra]
  b: 3
  c: 4
`))
	require.NoError(t, err)

	m, _ := v.AsMapping()
	derived, err := Lookup[*Mapping](m, "derived")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "d", "b", "c"}, derived.Keys())
	assert.Equal(t, int64(1), LookupOr[int64](derived, "a", 0))
	assert.Equal(t, int64(3), LookupOr[int64](derived, "b", 0))
	assert.Equal(t, int64(5), LookupOr[int64](derived, "d", 0))

	_, err = ParseYAML([]byte("x:\n  <<: 1\n"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestToYAMLNodeKeepsOrder(t *testing.T) {
	v := MappingOf(
		Entry{"z", SequenceOf(Int(1), MappingOf(Entry{"k", Null()}).Value()).Value()},
		Entry{"a", Float(2)},
	).Value()

	node := ToYAMLNode(v)
	require.Equal(t, yaml.MappingNode, node.Kind)
	require.Len(t, node.Content, 4)
	assert.Equal(t, "z", node.Content[0].Value)
	assert.Equal(t, "a", node.Content[2].Value)
	assert.Equal(t, "2.0", node.Content[3].Value)

	seq := node.Content[1]
	require.Len(t, seq.Content, 2)
	assert.Equal(t, "!!null", seq.Content[1].Content[1].Tag)

	back, err := FromYAMLNode(node)
	require.NoError(t, err)
	assert.True(t, Equal(v, back))
}
