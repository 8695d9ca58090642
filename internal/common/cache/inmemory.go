package cache

import (
	"context"
	"sync"
	"time"
)

type InMemoryClient[T any] struct {
	cache sync.Map
	done  chan struct{}
	once  sync.Once
}

var _ Client[string] = (*InMemoryClient[string])(nil)

type entry[T any] struct {
	value T
	expAt time.Time
}

func (e *entry[T]) expired(now time.Time) bool {
	return !e.expAt.IsZero() && e.expAt.Before(now)
}

func NewInMemoryClient[T any]() *InMemoryClient[T] {
	m := &InMemoryClient[T]{
		done: make(chan struct{}),
	}

	go m.backgroundCleaner(time.Minute)
	return m
}

func (m *InMemoryClient[T]) Get(ctx context.Context, key string) (result T, err error) {
	raw, found := m.cache.Load(key)
	if !found {
		return result, ErrNotExists
	}

	e, ok := raw.(*entry[T])
	if !ok {
		return result, ErrInvalidType
	}

	if e.expired(time.Now()) {
		m.cache.Delete(key)
		return result, ErrNotExists
	}

	return e.value, nil
}

// Set stores object until ttl elapses; a non-positive ttl never expires.
func (m *InMemoryClient[T]) Set(ctx context.Context, key string, object T, ttl time.Duration) error {
	e := &entry[T]{value: object}
	if ttl > 0 {
		e.expAt = time.Now().Add(ttl)
	}

	m.cache.Store(key, e)
	return nil
}

func (m *InMemoryClient[T]) Delete(ctx context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

func (m *InMemoryClient[T]) GetOrSet(ctx context.Context, opts GetOrSetOpts[T]) (T, error) {
	return getOrSet[T](ctx, m, opts)
}

func (m *InMemoryClient[T]) backgroundCleaner(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			m.cache.Range(func(key, value interface{}) bool {
				e, ok := value.(*entry[T])
				if !ok || e.expired(now) {
					m.cache.Delete(key)
				}
				return true
			})
		case <-m.done:
			return
		}
	}
}

// Close stops the background cleaner. It is safe to call more than once.
func (m *InMemoryClient[T]) Close() {
	m.once.Do(func() { close(m.done) })
}
