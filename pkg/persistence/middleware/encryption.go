package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/kwargs/pkg/ports"
	"github.com/aretw0/kwargs/pkg/value"
)

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

// envelopeKey holds the base64 ciphertext in the stored mapping.
const envelopeKey = "__encrypted__"

// ErrMissingEnvelope is returned by Load when the stored dict was not written encrypted.
var ErrMissingEnvelope = errors.New("dict is missing encrypted data envelope")

type encryptionMiddleware struct {
	next   ports.DictStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that encrypts dicts using AES-GCM.
// The stored value is a one-key mapping holding the ciphertext.
func NewEncryptionMiddleware(config EncryptionConfig) (Middleware, error) {
	if len(config.ActiveKey) != 32 {
		return nil, fmt.Errorf("active key must be 32 bytes (AES-256), got %d", len(config.ActiveKey))
	}
	for i, k := range config.FallbackKeys {
		if len(k) != 32 {
			return nil, fmt.Errorf("fallback key %d must be 32 bytes (AES-256), got %d", i, len(k))
		}
	}
	return func(next ports.DictStore) ports.DictStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}, nil
}

func (m *encryptionMiddleware) Save(ctx context.Context, name string, dict value.Value) error {
	plainText, err := dict.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal dict: %w", err)
	}

	ciphertext, err := encrypt(plainText, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt dict: %w", err)
	}

	envelope := value.NewMapping().
		Set(envelopeKey, value.String(base64.StdEncoding.EncodeToString(ciphertext)))
	return m.next.Save(ctx, name, envelope.Value())
}

func (m *encryptionMiddleware) Load(ctx context.Context, name string) (value.Value, error) {
	envelope, err := m.next.Load(ctx, name)
	if err != nil {
		return value.Null(), err
	}

	// Plain dicts are refused rather than passed through.
	mp, err := envelope.AsMapping()
	if err != nil {
		return value.Null(), ErrMissingEnvelope
	}
	encryptedStr, err := value.Lookup[string](mp, envelopeKey)
	if err != nil {
		return value.Null(), ErrMissingEnvelope
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encryptedStr)
	if err != nil {
		return value.Null(), fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return value.Null(), fmt.Errorf("failed to decrypt dict: %w", err)
	}

	dict, err := value.ParseJSON(plainText)
	if err != nil {
		return value.Null(), fmt.Errorf("failed to unmarshal decrypted dict: %w", err)
	}
	return dict, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, name string) error {
	return m.next.Delete(ctx, name)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	// Try active key first
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	// Try fallbacks in order
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	ciphertextBytes := ciphertext[gcm.NonceSize():]

	return gcm.Open(nil, nonce, ciphertextBytes, nil)
}
