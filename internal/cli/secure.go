package cli

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/aretw0/arbor/pkg/persistence/middleware"
	"github.com/aretw0/arbor/pkg/ports"
)

// Environment variables hardening session storage. When the key is set,
// session state is sealed with AES-256-GCM before it reaches the backing
// store; fallback keys keep old sessions readable across a key rotation.
const (
	EnvSessionKey          = "ARBOR_SESSION_KEY"
	EnvSessionKeyFallbacks = "ARBOR_SESSION_KEY_FALLBACKS"
	EnvSessionRedact       = "ARBOR_SESSION_REDACT"
)

// SecureStore wraps store with the persistence middleware selected through
// the environment. Redaction sits outermost so attribute values are masked
// before the envelope is sealed; a leaked key never exposes redacted fields.
func SecureStore(store ports.StateStore) (ports.StateStore, error) {
	var mws []middleware.Middleware

	if patterns := splitList(os.Getenv(EnvSessionRedact)); len(patterns) > 0 {
		for _, p := range patterns {
			if _, err := regexp.Compile(p); err != nil {
				return nil, fmt.Errorf("%s: bad pattern %q: %w", EnvSessionRedact, p, err)
			}
		}
		mws = append(mws, middleware.NewRedactionMiddleware(patterns))
	}

	if key := os.Getenv(EnvSessionKey); key != "" {
		cfg := middleware.EncryptionConfig{ActiveKey: []byte(key)}
		if len(cfg.ActiveKey) != 32 {
			return nil, fmt.Errorf("%s must be exactly 32 bytes, got %d", EnvSessionKey, len(cfg.ActiveKey))
		}
		for _, fallback := range splitList(os.Getenv(EnvSessionKeyFallbacks)) {
			if len(fallback) != 32 {
				return nil, fmt.Errorf("%s entries must be exactly 32 bytes, got %d", EnvSessionKeyFallbacks, len(fallback))
			}
			cfg.FallbackKeys = append(cfg.FallbackKeys, []byte(fallback))
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(cfg))
	}

	return middleware.Chain(store, mws...), nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
