package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/kwargs/pkg/convert"
	"github.com/aretw0/kwargs/pkg/value"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "kwargs.yaml"

// Config holds the settings shared by the CLI and the servers.
type Config struct {
	MaxDepth int         `mapstructure:"max_depth"`
	LogLevel string      `mapstructure:"log_level"`
	HTTP     HTTPConfig  `mapstructure:"http"`
	Redis    RedisConfig `mapstructure:"redis"`
	Store    StoreConfig `mapstructure:"store"`
}

type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

// RedisConfig selects the redis dict store when Addr is set.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// StoreConfig adds middleware around whichever dict store is selected.
type StoreConfig struct {
	// EncryptionKey is a base64 AES-256 key. Empty disables encryption.
	EncryptionKey string   `mapstructure:"encryption_key"`
	FallbackKeys  []string `mapstructure:"fallback_keys"`
	// MaskKeys are regular expressions; values under matching keys are stored as "***".
	MaskKeys []string `mapstructure:"mask_keys"`
}

// Keys decodes the encryption keys. It returns nil keys when encryption is off.
func (s StoreConfig) Keys() (active []byte, fallback [][]byte, err error) {
	if s.EncryptionKey == "" {
		return nil, nil, nil
	}
	if active, err = base64.StdEncoding.DecodeString(s.EncryptionKey); err != nil {
		return nil, nil, fmt.Errorf("store.encryption_key: %w", err)
	}
	for i, k := range s.FallbackKeys {
		key, err := base64.StdEncoding.DecodeString(k)
		if err != nil {
			return nil, nil, fmt.Errorf("store.fallback_keys[%d]: %w", i, err)
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxDepth: value.DefaultMaxDepth,
		LogLevel: "info",
		HTTP:     HTTPConfig{Port: 8080},
		Redis:    RedisConfig{Prefix: "kwargs:dict:"},
	}
}

// Load reads a configuration file (YAML or JSON) over the defaults.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	enc := value.EncodingYAML
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		enc = value.EncodingJSON
	}

	doc, err := value.Decode(data, enc)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if doc.IsNull() {
		return cfg, nil
	}
	if err := convert.Decode(doc, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the servers cannot run with.
func (c Config) Validate() error {
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port out of range: %d", c.HTTP.Port)
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("redis.ttl must not be negative")
	}
	if _, _, err := c.Store.Keys(); err != nil {
		return err
	}
	return nil
}
