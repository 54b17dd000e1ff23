package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// envelopeKey is the single Attrs key the stored envelope carries.
const envelopeKey = "__encrypted__"

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.StateStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that encrypts state using AES-GCM (envelope encryption).
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.StateStore) ports.StateStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}
}

func (m *encryptionMiddleware) Save(ctx context.Context, sessionID string, state *domain.State) error {
	plainText, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	ciphertext, err := encrypt(plainText, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt state: %w", err)
	}

	// The stored envelope carries only the blob. Cursor, query, history and
	// scroll all stay inside the ciphertext.
	envelope := &domain.State{
		SessionID: sessionID,
		Attrs: map[string]any{
			envelopeKey: base64.StdEncoding.EncodeToString(ciphertext),
		},
	}

	return m.next.Save(ctx, sessionID, envelope)
}

func (m *encryptionMiddleware) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	envelope, err := m.next.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	encryptedStr, ok := envelope.Attrs[envelopeKey].(string)
	if !ok {
		// A plain state under an encryption-configured store means either a
		// misconfiguration or tampering. Fail secure rather than pass it through.
		return nil, errors.New("state is missing encrypted data envelope")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encryptedStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt state: %w", err)
	}

	var realState domain.State
	if err := json.Unmarshal(plainText, &realState); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decrypted state: %w", err)
	}

	return &realState, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
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
