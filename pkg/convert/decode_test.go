package convert

import (
	"testing"
	"time"

	"github.com/aretw0/kwargs/pkg/fixture"
	"github.com/aretw0/kwargs/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type canonicalArgs struct {
	Int    int     `mapstructure:"int"`
	Double float64 `mapstructure:"double"`
	Bool   bool    `mapstructure:"bool"`
	String string  `mapstructure:"string"`
	Nested struct {
		InnerKey int64 `mapstructure:"inner_key"`
	} `mapstructure:"nested"`
	Vector []any `mapstructure:"vector_val"`
}

func TestDecode(t *testing.T) {
	var args canonicalArgs
	require.NoError(t, Decode(fixture.Canonical(), &args))

	assert.Equal(t, 42, args.Int)
	assert.Equal(t, 3.14, args.Double)
	assert.True(t, args.Bool)
	assert.Equal(t, "hello", args.String)
	assert.Equal(t, int64(42), args.Nested.InnerKey)
	assert.Equal(t, []any{int64(42), 3.14, "hello", true}, args.Vector)
}

func TestDecodeMismatch(t *testing.T) {
	var out struct {
		Int []string `mapstructure:"int"`
	}
	assert.Error(t, Decode(fixture.Canonical(), &out))
}

func TestDecodeDuration(t *testing.T) {
	var out struct {
		TTL time.Duration `mapstructure:"ttl"`
	}
	v := value.NewMapping().Set("ttl", value.String("1m30s")).Value()
	require.NoError(t, Decode(v, &out))
	assert.Equal(t, 90*time.Second, out.TTL)
}
