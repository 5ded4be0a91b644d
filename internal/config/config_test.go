package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/kwargs/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, value.DefaultMaxDepth, cfg.MaxDepth)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "kwargs.yaml", `
max_depth: 64
log_level: debug
http:
  port: 9090
redis:
  addr: localhost:6379
  db: 2
  ttl: 10m
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.MaxDepth)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "kwargs:dict:", cfg.Redis.Prefix, "unset fields keep defaults")
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "kwargs.json", `{"http": {"port": 7000}, "redis": {"prefix": "x:"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.HTTP.Port)
	assert.Equal(t, "x:", cfg.Redis.Prefix)
	assert.Equal(t, value.DefaultMaxDepth, cfg.MaxDepth)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeFile(t, "kwargs.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"syntax":     "max_depth: [",
		"wrong type": "http: 12",
		"bad depth":  "max_depth: 0",
		"bad port":   "http:\n  port: 70000",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "kwargs.yaml", content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_StoreKeys(t *testing.T) {
	key := strings.Repeat("k", 32)
	path := writeFile(t, "kwargs.yaml", fmt.Sprintf(`
store:
  encryption_key: %s
  fallback_keys: [%s]
  mask_keys: ["password", "^ssn"]
`, base64.StdEncoding.EncodeToString([]byte(key)), base64.StdEncoding.EncodeToString([]byte("old"))))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"password", "^ssn"}, cfg.Store.MaskKeys)

	active, fallback, err := cfg.Store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []byte(key), active)
	assert.Equal(t, [][]byte{[]byte("old")}, fallback)

	_, err = Load(writeFile(t, "bad.yaml", "store:\n  encryption_key: \"not base64!\"\n"))
	assert.Error(t, err)
}
