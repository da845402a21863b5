package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const defaultCleanupInterval = 30 * time.Second

// InMemoryStore implements Store using process-local storage. Suitable
// for single-instance deployments and testing; state is not shared
// across processes.
type InMemoryStore struct {
	entries         sync.Map // map[string]*memoryEntry
	cleanupInterval time.Duration
	logger          *zap.Logger
	stopCh          chan struct{}
	stopped         int32

	hits   int64
	misses int64
}

// memoryEntry wraps a cached value with its expiration time
type memoryEntry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

func (e *memoryEntry) isExpired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

// InMemoryStoreOption is a functional option for configuring the store
type InMemoryStoreOption func(*InMemoryStore)

// WithInMemoryLogger sets the logger for the store
func WithInMemoryLogger(logger *zap.Logger) InMemoryStoreOption {
	return func(s *InMemoryStore) {
		s.logger = logger
	}
}

// WithCleanupInterval overrides how often expired entries are swept
func WithCleanupInterval(interval time.Duration) InMemoryStoreOption {
	return func(s *InMemoryStore) {
		s.cleanupInterval = interval
	}
}

// NewInMemoryStore creates a new in-memory cache store
func NewInMemoryStore(opts ...InMemoryStoreOption) *InMemoryStore {
	store := &InMemoryStore{
		cleanupInterval: defaultCleanupInterval,
		logger:          zap.NewNop(),
		stopCh:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(store)
	}

	go store.cleanupExpired()

	return store
}

// Get retrieves a value from the cache
func (s *InMemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if value, ok := s.entries.Load(key); ok {
		entry := value.(*memoryEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&s.hits, 1)
			return entry.value, nil
		}
		s.entries.Delete(key)
	}

	atomic.AddInt64(&s.misses, 1)
	return nil, ErrCacheMiss
}

// Set stores a value in the cache
func (s *InMemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := &memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	s.entries.Store(key, entry)
	return nil
}

// Delete removes the given keys from the cache
func (s *InMemoryStore) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		s.entries.Delete(key)
	}
	return nil
}

// Stats returns hit and miss counts for monitoring
func (s *InMemoryStore) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&s.hits), atomic.LoadInt64(&s.misses)
}

// Close stops the background cleanup goroutine
func (s *InMemoryStore) Close() error {
	if atomic.CompareAndSwapInt32(&s.stopped, 0, 1) {
		close(s.stopCh)
	}
	return nil
}

// cleanupExpired periodically removes expired entries
func (s *InMemoryStore) cleanupExpired() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed := 0
			s.entries.Range(func(key, value any) bool {
				if value.(*memoryEntry).isExpired() {
					s.entries.Delete(key)
					removed++
				}
				return true
			})
			if removed > 0 {
				s.logger.Debug("removed expired cache entries", zap.Int("count", removed))
			}
		case <-s.stopCh:
			return
		}
	}
}
