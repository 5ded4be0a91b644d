package kwargs_test

import (
	"testing"

	"github.com/aretw0/kwargs"
	"github.com/aretw0/kwargs/pkg/convert"
	"github.com/aretw0/kwargs/pkg/fixture"
	"github.com/aretw0/kwargs/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hostDict() map[string]any {
	return map[string]any{
		"int":        42,
		"double":     3.14,
		"bool":       true,
		"string":     "hello",
		"nested":     map[string]any{"inner_key": 42},
		"vector_val": []any{42, 3.14, "hello", true},
	}
}

func assertHostEqual(t *testing.T, want, got any) {
	t.Helper()
	eq, err := convert.Equal(want, got)
	require.NoError(t, err)
	assert.True(t, eq, "want %v, got %v", want, got)
}

func TestGenerateDict(t *testing.T) {
	assertHostEqual(t, hostDict(), kwargs.GenerateDict())
	assertHostEqual(t, kwargs.GenerateDict(), kwargs.GenerateDict())
}

func TestEchoDict(t *testing.T) {
	echoed, err := kwargs.EchoDict(hostDict())
	require.NoError(t, err)
	assertHostEqual(t, hostDict(), echoed)
}

func TestEchoGeneratedDict(t *testing.T) {
	generated := kwargs.GenerateDict()
	echoed, err := kwargs.EchoDict(generated)
	require.NoError(t, err)
	assertHostEqual(t, generated, echoed)
}

func TestEchoIsIdempotent(t *testing.T) {
	once, err := kwargs.EchoDict(hostDict())
	require.NoError(t, err)
	twice, err := kwargs.EchoDict(once)
	require.NoError(t, err)
	assertHostEqual(t, once, twice)
}

func TestExchangeDict(t *testing.T) {
	fromNative, ok := kwargs.GenerateDict().(*convert.OrderedMap)
	require.True(t, ok)

	fromNative.Set("new_key", "new_value")
	fromNative.Set("new_nested", map[string]any{"new_inner_key": 42})
	fromNative.Set("new_vector_val", []any{42, 3.14, "hello", true})

	snapshot, err := kwargs.EchoDict(fromNative)
	require.NoError(t, err)
	fromNative.Set("nest_self", snapshot)

	echoed, err := kwargs.EchoDict(fromNative)
	require.NoError(t, err)
	assertHostEqual(t, fromNative, echoed)

	v, err := convert.FromHost(echoed)
	require.NoError(t, err)
	assert.True(t, value.Equal(fixture.Exchange(), v), "diff: %v", value.Diff(fixture.Exchange(), v))
}

func TestEchoEmptyContainers(t *testing.T) {
	m, err := kwargs.EchoDict(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, 0, m.(*convert.OrderedMap).Len())

	s, err := kwargs.EchoDict([]any{})
	require.NoError(t, err)
	assert.Equal(t, []any{}, s)
}

func TestEchoDictErrors(t *testing.T) {
	_, err := kwargs.EchoDict(map[string]any{"bad": map[int]string{1: "x"}})
	assert.ErrorIs(t, err, value.ErrUnsupportedKeyType)

	_, err = kwargs.EchoDict(map[string]any{"bad": func() {}})
	assert.ErrorIs(t, err, value.ErrUnsupportedType)
}
