package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DecodeFunc defines the signature for a document decoder.
// It unmarshals raw bytes into the provided value.
type DecodeFunc func(data []byte, v any) error

// Registry manages the available document decoders, keyed by file extension.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]DecodeFunc
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]DecodeFunc),
	}
}

// Register adds a decoder for the given extension (e.g. ".yaml").
// If a decoder for the extension exists, it is overwritten.
func (r *Registry) Register(ext string, fn DecodeFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[normalizeExt(ext)] = fn
}

// Supports reports whether a decoder is registered for the extension.
func (r *Registry) Supports(ext string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.codecs[normalizeExt(ext)]
	return ok
}

// Decode looks up a decoder by extension and runs it.
// Returns an error if no decoder is registered for the extension.
func (r *Registry) Decode(ext string, data []byte, v any) error {
	r.mu.RLock()
	fn, ok := r.codecs[normalizeExt(ext)]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("no decoder registered for %q", ext)
	}

	return fn(data, v)
}

// Extensions returns the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.codecs))
	for ext := range r.codecs {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
