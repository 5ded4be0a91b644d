package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/kwargs"
	"github.com/aretw0/kwargs/internal/logging"
	"github.com/aretw0/kwargs/pkg/adapters/memory"
	"github.com/aretw0/kwargs/pkg/fixture"
	"github.com/aretw0/kwargs/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with a config path that does not exist so defaults apply.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGenerateCmd(t *testing.T) {
	out, err := run(t, "", "generate")
	require.NoError(t, err)

	v, err := value.ParseJSON([]byte(out))
	require.NoError(t, err)
	assert.True(t, value.Equal(fixture.Canonical(), v))
	assert.True(t, strings.HasPrefix(out, "{\n  \"int\": 42,\n  \"double\": 3.14,"))
}

func TestGenerateCmd_YAML(t *testing.T) {
	out, err := run(t, "", "--format", "yaml", "generate")
	require.NoError(t, err)

	v, err := value.ParseYAML([]byte(out))
	require.NoError(t, err)
	assert.True(t, value.Equal(fixture.Canonical(), v))
}

func TestEchoCmd_Stdin(t *testing.T) {
	out, err := run(t, `{"b":1,"a":[2.0,null,{}]}`, "echo", "--check")
	require.NoError(t, err)

	v, err := value.ParseJSON([]byte(out))
	require.NoError(t, err)
	m, err := v.AsMapping()
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, m.Keys())
	assert.Equal(t, `{"b": 1, "a": [2.0, null, {}]}`, v.String())
}

func TestEchoCmd_YAMLFile(t *testing.T) {
	path := writeFile(t, "in.yaml", "x: 1\ny: [a, b]\n")
	out, err := run(t, "", "--format", "yaml", "echo", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "x: 1\ny:\n"))

	v, err := value.ParseYAML([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, `{"x": 1, "y": ["a", "b"]}`, v.String())
}

func TestEchoCmd_Errors(t *testing.T) {
	_, err := run(t, `{"a":`, "echo")
	assert.Error(t, err)

	_, err = run(t, `[[[1]]]`, "--max-depth", "2", "echo")
	assert.ErrorIs(t, err, value.ErrRecursionLimitExceeded)

	_, err = run(t, "1: one\n", "echo", "--input-format", "yaml")
	assert.ErrorIs(t, err, value.ErrUnsupportedKeyType)
}

func TestDiffCmd(t *testing.T) {
	left := writeFile(t, "left.json", `{"a":1,"b":[1,2]}`)
	same := writeFile(t, "same.yaml", "b: [1, 2]\na: 1\n")
	other := writeFile(t, "other.json", `{"a":1.0,"b":[1,2],"c":null}`)

	out, err := run(t, "", "diff", left, same)
	require.NoError(t, err)
	assert.Equal(t, "equal\n", out)

	out, err = run(t, "", "diff", left, other)
	assert.ErrorIs(t, err, errDictsDiffer)
	assert.Equal(t, "$.a: 1 != 1.0\n$.c: added null\n", out)
}

func TestShowCmd(t *testing.T) {
	out, err := run(t, "", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "nested:\n  inner_key: 42\n")

	out, err = run(t, "", "show", "--markdown")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# canonical\n"))
	assert.Contains(t, out, "| `int` | int | `42` |")
}

func TestConfigDirCmd(t *testing.T) {
	prefix := t.TempDir()
	out, err := run(t, "", "config-dir", "--prefix", prefix)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(prefix, "lib", "cmake", "kwargs")+"\n", out)
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "kwargs version "+kwargs.Version+"\n", out)
}

func TestInvalidFlags(t *testing.T) {
	_, err := run(t, "", "--format", "toml", "generate")
	assert.Error(t, err)

	_, err = run(t, "", "--max-depth", "-1", "generate")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, "kwargs.yaml", "max_depth: 2\n")
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(`[[[1]]]`))
	cmd.SetArgs([]string{"--config", cfg, "echo"})
	assert.ErrorIs(t, cmd.Execute(), value.ErrRecursionLimitExceeded)
}

func TestWrapStore(t *testing.T) {
	a := &app{logger: logging.NewNop()}
	a.cfg.Store.MaskKeys = []string{"secret"}
	a.cfg.Store.EncryptionKey = base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))

	backing := memory.NewStore()
	store, err := a.wrapStore(backing)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "d", value.NewMapping().Set("secret", value.Int(1)).Value()))

	loaded, err := store.Load(ctx, "d")
	require.NoError(t, err)
	assert.Equal(t, `{"secret": "***"}`, loaded.String())

	raw, err := backing.Load(ctx, "d")
	require.NoError(t, err)
	assert.NotContains(t, raw.String(), "secret")
}
