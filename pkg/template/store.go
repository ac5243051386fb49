package template

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/exp/maps"

	"github.com/telekom/moodmail/pkg/metrics"
	"github.com/telekom/moodmail/pkg/storage"
)

// Sentinel errors for template resolution.
var (
	// ErrNotFound indicates the requested name is not a known template.
	ErrNotFound = errors.New("template not found")

	// ErrUnavailable indicates a known template whose content could not be
	// obtained from any source: the backing store did not serve it and no
	// compiled-in copy exists.
	ErrUnavailable = errors.New("template unavailable")
)

// Store resolves template names to raw template content. Lookups go cache
// first, then the backing store under the derived object key, then the
// compiled-in defaults. Successful resolutions are cached for the process
// lifetime until ClearCache; failed lookups are never cached, so a template
// uploaded later is picked up on the next request.
type Store struct {
	source storage.Source // nil disables the backing store
	log    *zap.SugaredLogger

	mu    sync.RWMutex
	cache map[string]string
}

// NewStore creates a Store reading from source. A nil source is allowed and
// limits resolution to the compiled-in templates.
func NewStore(source storage.Source, log *zap.SugaredLogger) *Store {
	return &Store{
		source: source,
		log:    log.Named("templates"),
		cache:  make(map[string]string),
	}
}

// Load resolves name to raw template content.
func (s *Store) Load(ctx context.Context, name string) (string, error) {
	s.mu.RLock()
	content, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		metrics.TemplateCacheHits.Inc()
		return content, nil
	}
	metrics.TemplateCacheMisses.Inc()

	if s.source != nil {
		content, err := s.source.Get(ctx, objectKey(name))
		if err == nil {
			s.store(name, content)
			return content, nil
		}
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.log.Warnw("template backing store lookup failed", "template", name, "error", err)
		}
	}

	fallback, recognized := defaults[name]
	if !recognized {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if fallback == "" {
		return "", fmt.Errorf("%w: %s", ErrUnavailable, name)
	}

	metrics.TemplateFallbacks.WithLabelValues(name).Inc()
	s.store(name, fallback)
	return fallback, nil
}

// Process loads the named template and renders it with data.
func (s *Store) Process(ctx context.Context, name string, data Data) (string, error) {
	content, err := s.Load(ctx, name)
	if err != nil {
		return "", err
	}
	return Render(content, data), nil
}

// Validate reports whether name currently resolves to a renderable template.
// Rendering itself is total, so resolution is the only failure mode; the
// returned error carries the same not-found or unavailable condition Load
// would produce.
func (s *Store) Validate(ctx context.Context, name string, data Data) error {
	_, err := s.Process(ctx, name, data)
	return err
}

// ListAvailable returns the known template names in sorted order.
func (s *Store) ListAvailable() []string {
	names := maps.Keys(defaults)
	sort.Strings(names)
	return names
}

// ClearCache drops every cached template so subsequent loads hit the backing
// store again. Used by operators after uploading customized templates.
func (s *Store) ClearCache() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
	s.log.Infow("template cache cleared")
}

func (s *Store) store(name, content string) {
	s.mu.Lock()
	s.cache[name] = content
	s.mu.Unlock()
}

// objectKey derives the backing store key for a template name.
func objectKey(name string) string {
	return name + ".html"
}
