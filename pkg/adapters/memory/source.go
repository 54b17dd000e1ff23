package memory

import (
	"context"
	"sync"

	"github.com/aretw0/arbor/pkg/domain"
)

// Source implements ports.TreeSource from an in-memory document.
// Safe for concurrent use; Swap makes it a convenient hot-reload stand-in
// for tests and demos.
type Source struct {
	mu      sync.RWMutex
	items   []domain.Item
	subs    map[int]chan string
	nextSub int
}

// NewSource creates a Source from domain items. The document is validated
// up front so broken fixtures fail fast.
func NewSource(items ...domain.Item) (*Source, error) {
	if err := domain.ValidateItems(items); err != nil {
		return nil, err
	}
	return &Source{
		items: copyItems(items),
		subs:  make(map[int]chan string),
	}, nil
}

// Load returns the current document. The returned tree is a copy, so the
// caller cannot mutate the source through it.
func (s *Source) Load(ctx context.Context) ([]domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyItems(s.items), nil
}

// Swap replaces the document and notifies watchers.
func (s *Source) Swap(items []domain.Item) error {
	if err := domain.ValidateItems(items); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = copyItems(items)
	for _, ch := range s.subs {
		select {
		case ch <- "swap":
		default:
			// Watcher is behind; it will pick up the latest document anyway.
		}
	}
	return nil
}

// Watch implements ports.Watchable. Each call gets its own channel, closed
// when ctx is canceled.
func (s *Source) Watch(ctx context.Context) (<-chan string, error) {
	ch := make(chan string, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}

func copyItems(items []domain.Item) []domain.Item {
	if items == nil {
		return nil
	}
	out := make([]domain.Item, len(items))
	for i, it := range items {
		out[i] = it
		if it.Fields != nil {
			fields := make(map[string]any, len(it.Fields))
			for k, v := range it.Fields {
				fields[k] = v
			}
			out[i].Fields = fields
		}
		out[i].Items = copyItems(it.Items)
	}
	return out
}
