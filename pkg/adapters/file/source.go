package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/aretw0/arbor/pkg/schema"
)

// Source implements ports.TreeSource over a single document file.
// YAML and JSON are supported out of the box; other formats can be plugged
// in through WithRegistry. Key names are remappable so existing documents
// (e.g. "slug" instead of "id", "pages" instead of "items") load unchanged.
type Source struct {
	path        string
	idKey       string
	titleKey    string
	kindKey     string
	childrenKey string
	debounce    time.Duration
	codecs      *registry.Registry
}

// Option configures a Source.
type Option func(*Source)

// WithIDKey sets the document key holding the item id. Default "id".
func WithIDKey(key string) Option {
	return func(s *Source) { s.idKey = key }
}

// WithTitleKey sets the document key holding the item title. Default "title".
func WithTitleKey(key string) Option {
	return func(s *Source) { s.titleKey = key }
}

// WithKindKey sets the document key holding the item kind. Default "kind".
func WithKindKey(key string) Option {
	return func(s *Source) { s.kindKey = key }
}

// WithChildrenKey sets the document key holding nested items. Default "items".
func WithChildrenKey(key string) Option {
	return func(s *Source) { s.childrenKey = key }
}

// WithDebounce sets how long Watch waits for rapid saves to settle before
// notifying. Default 200ms.
func WithDebounce(d time.Duration) Option {
	return func(s *Source) { s.debounce = d }
}

// WithRegistry replaces the decoder registry, allowing additional formats.
func WithRegistry(r *registry.Registry) Option {
	return func(s *Source) { s.codecs = r }
}

// NewSource creates a file-backed TreeSource for the given document path.
func NewSource(path string, opts ...Option) *Source {
	s := &Source{
		path:        path,
		idKey:       "id",
		titleKey:    "title",
		kindKey:     "kind",
		childrenKey: "items",
		debounce:    200 * time.Millisecond,
		codecs:      defaultRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func defaultRegistry() *registry.Registry {
	r := registry.NewRegistry()
	r.Register(".json", json.Unmarshal)
	r.Register(".yaml", yaml.Unmarshal)
	r.Register(".yml", yaml.Unmarshal)
	return r
}

// Load reads and decodes the document, returning the nested outline. When the
// path is a directory, every supported file in it loads in name order and the
// documents' roots merge as top-level siblings.
func (s *Source) Load(ctx context.Context) ([]domain.Item, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	if info.IsDir() {
		return s.loadDir()
	}
	return s.loadFile(s.path)
}

func (s *Source) loadDir() ([]domain.Item, error) {
	dirents, err := os.ReadDir(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document directory: %w", err)
	}

	var merged []domain.Item
	for _, de := range dirents {
		if de.IsDir() || !s.codecs.Supports(filepath.Ext(de.Name())) {
			continue
		}
		items, err := s.loadFile(filepath.Join(s.path, de.Name()))
		if err != nil {
			return nil, err
		}
		merged = append(merged, items...)
	}

	// Ids must stay unique across the merged documents too.
	if err := domain.ValidateItems(merged); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(s.path), err)
	}
	return merged, nil
}

func (s *Source) loadFile(path string) ([]domain.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var raw any
	if err := s.codecs.Decode(filepath.Ext(path), data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}

	// Flat exports (the `arbor flatten` output shape) nest back losslessly.
	// A custom children key named "entries" takes precedence over flat mode.
	if m, ok := raw.(map[string]any); ok && s.childrenKey != "entries" {
		if flat, ok := m["entries"].([]any); ok {
			items, err := s.loadFlat(path, flat)
			if err != nil {
				return nil, err
			}
			if err := s.applySchema(raw, items); err != nil {
				return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
			}
			return items, nil
		}
	}

	rootList, err := s.rootItems(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	canonical, err := s.canonicalize(rootList)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	var items []domain.Item
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &items,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build document decoder: %w", err)
	}
	if err := decoder.Decode(canonical); err != nil {
		return nil, fmt.Errorf("failed to map document: %w", err)
	}

	if err := domain.ValidateItems(items); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	if err := s.applySchema(raw, items); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	return items, nil
}

// applySchema enforces the document's optional top-level "schema" block, a
// mapping of field names to type strings ("string", "int?", "[string]").
// Declared fields are required on every item unless marked optional with a
// trailing "?". The block only applies to container roots; a mapping that is
// itself a single item keeps "schema" as an ordinary field.
func (s *Source) applySchema(raw any, items []domain.Item) error {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	if _, single := m[s.idKey]; single {
		return nil
	}
	if _, ok := m[s.childrenKey]; !ok {
		if _, flat := m["entries"]; !flat {
			return nil
		}
	}
	block, ok := m["schema"]
	if !ok {
		return nil
	}

	declared, ok := block.(map[string]any)
	if !ok {
		return fmt.Errorf("schema block must be a mapping of field names to type names, got %T", block)
	}
	typeNames := make(map[string]string, len(declared))
	for field, v := range declared {
		name, ok := v.(string)
		if !ok {
			return fmt.Errorf("schema field %q: type name must be a string, got %T", field, v)
		}
		typeNames[field] = name
	}

	fieldSchema, err := schema.ParseTypeMap(typeNames)
	if err != nil {
		return fmt.Errorf("invalid schema block: %w", err)
	}

	return checkFields(items, fieldSchema)
}

func checkFields(items []domain.Item, fieldSchema schema.Schema) error {
	for _, item := range items {
		if err := schema.Validate(fieldSchema, item.Fields); err != nil {
			return fmt.Errorf("item %q: %w", item.ID, err)
		}
		if err := checkFields(item.Items, fieldSchema); err != nil {
			return err
		}
	}
	return nil
}

// loadFlat rebuilds a nested document from the flat export shape, a
// mapping with an "entries" list of flattened records. Flat exports always
// use the canonical keys, so no remapping happens here.
func (s *Source) loadFlat(path string, flat []any) ([]domain.Item, error) {
	var entries []domain.Entry
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &entries,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build flat decoder: %w", err)
	}
	if err := decoder.Decode(flat); err != nil {
		return nil, fmt.Errorf("failed to map flat entries: %w", err)
	}

	items, err := domain.NestEntries(entries)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return items, nil
}

// rootItems normalizes the decoded document root into a list of raw items.
// Accepted shapes: a top-level sequence, a mapping that is itself a single
// root item (it carries the id key), or a container mapping wrapping the
// roots under the children key.
func (s *Source) rootItems(raw any) ([]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case map[string]any:
		if _, ok := v[s.idKey]; ok {
			return []any{v}, nil
		}
		if kids, ok := v[s.childrenKey].([]any); ok {
			return kids, nil
		}
		return nil, fmt.Errorf("document root mapping has neither %q nor %q", s.childrenKey, s.idKey)
	default:
		return nil, fmt.Errorf("document root must be a sequence or mapping, got %T", raw)
	}
}

// canonicalize renames the configured keys to the canonical ones so the
// mapstructure pass sees a uniform document. Unrecognized keys ride along
// and end up in Item.Fields.
func (s *Source) canonicalize(raw []any) ([]any, error) {
	out := make([]any, 0, len(raw))
	for i, el := range raw {
		m, ok := el.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("item %d: expected a mapping, got %T", i, el)
		}

		cm := make(map[string]any, len(m))
		for k, v := range m {
			cm[k] = v
		}
		s.rename(cm, s.idKey, "id")
		s.rename(cm, s.titleKey, "title")
		s.rename(cm, s.kindKey, "kind")
		s.rename(cm, s.childrenKey, "items")

		if kids, ok := cm["items"].([]any); ok {
			canonicalKids, err := s.canonicalize(kids)
			if err != nil {
				return nil, err
			}
			cm["items"] = canonicalKids
		}

		out = append(out, cm)
	}
	return out, nil
}

func (s *Source) rename(m map[string]any, from, to string) {
	if from == to {
		return
	}
	if v, ok := m[from]; ok {
		delete(m, from)
		m[to] = v
	}
}

// Watch implements ports.Watchable using fsnotify. It watches the document's
// directory rather than the file itself: editors that save via rename replace
// the inode and a direct file watch would go stale. A directory source reacts
// to any supported document inside it. Rapid saves are coalesced by the
// configured debounce window.
func (s *Source) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to start file watcher: %w", err)
	}

	dir := filepath.Dir(s.path)
	target, err := filepath.Abs(s.path)
	if err != nil {
		target = s.path
	}
	relevant := func(name string) bool { return sameFile(name, target) }
	if info, err := os.Stat(s.path); err == nil && info.IsDir() {
		dir = s.path
		relevant = func(name string) bool { return s.codecs.Supports(filepath.Ext(name)) }
	}

	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		defer watcher.Close()

		var timer *time.Timer
		var fire <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !relevant(event.Name) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(s.debounce)
					fire = timer.C
					continue
				}
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(s.debounce)

			case <-fire:
				timer = nil
				fire = nil
				select {
				case ch <- s.path:
				case <-ctx.Done():
					return
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Transient watcher errors do not stop the pump.
			}
		}
	}()

	return ch, nil
}

func sameFile(name, target string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return name == target
	}
	return abs == target
}
