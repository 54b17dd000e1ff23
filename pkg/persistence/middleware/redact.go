package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

const mask = "***"

type redactionMiddleware struct {
	next     ports.StateStore
	patterns []*regexp.Regexp
}

// NewRedactionMiddleware creates a middleware that masks Attrs values whose
// keys match any of the patterns before they reach the underlying store.
// Loading returns the stored (masked) values; redaction is one-way.
func NewRedactionMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.StateStore) ports.StateStore {
		return &redactionMiddleware{next: next, patterns: patterns}
	}
}

func (m *redactionMiddleware) Save(ctx context.Context, sessionID string, state *domain.State) error {
	// Deep copy Attrs so the in-memory state used by the engine keeps its
	// real values.
	cloned := state.Clone()
	cloned.Attrs = deepCopyMap(state.Attrs)

	maskMap(cloned.Attrs, m.patterns)

	return m.next.Save(ctx, sessionID, cloned)
}

func (m *redactionMiddleware) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *redactionMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *redactionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// Helpers

func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if subMap, ok := v.(map[string]any); ok {
			out[k] = deepCopyMap(subMap)
		} else {
			out[k] = v // shallow copy of value
		}
	}
	return out
}

func maskMap(m map[string]any, patterns []*regexp.Regexp) {
	for k, v := range m {
		for _, p := range patterns {
			if p.MatchString(k) {
				m[k] = mask
				break
			}
		}

		if subMap, ok := v.(map[string]any); ok {
			maskMap(subMap, patterns)
		}
	}
}
