// Package ttlcache реализует in-process кэш с TTL на запись.
// Используется провайдерами расписания для поглощения повторных
// обращений к медленно меняющимся данным.
package ttlcache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	data     T
	storedAt time.Time
}

// Cache кэш значений типа T по строковому ключу.
// Записи не вытесняются: устаревшая запись перезаписывается при следующем
// промахе, объем ограничен множеством реально запрашиваемых ключей.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	now     func() time.Time
}

// New создает новый пустой кэш
func New[T any]() *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		now:     time.Now,
	}
}

// NewWithClock создает кэш с внешним источником времени (для тестов)
func NewWithClock[T any](now func() time.Time) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		now:     now,
	}
}

// GetOrFetch возвращает закэшированное значение, если запись свежее ttl.
// При промахе вызывает fetch и сохраняет результат с текущим timestamp.
// Ошибка fetch не кэшируется - каждый следующий вызов повторит запрос,
// пока не случится успешный fetch.
//
// fetch выполняется вне блокировки: два конкурентных промаха по одному ключу
// приведут к двум запросам, побеждает последняя запись. Данные идемпотентны
// по ключу, поэтому это не влияет на корректность.
func (c *Cache[T]) GetOrFetch(key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.now().Sub(e.storedAt) < ttl {
		return e.data, nil
	}

	data, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = entry[T]{data: data, storedAt: c.now()}
	c.mu.Unlock()

	return data, nil
}

// Get возвращает значение, если запись существует и свежее ttl
func (c *Cache[T]) Get(key string, ttl time.Duration) (T, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(e.storedAt) >= ttl {
		var zero T
		return zero, false
	}
	return e.data, true
}

// Set сохраняет значение с текущим timestamp
func (c *Cache[T]) Set(key string, data T) {
	c.mu.Lock()
	c.entries[key] = entry[T]{data: data, storedAt: c.now()}
	c.mu.Unlock()
}

// Invalidate удаляет запись по ключу
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len возвращает количество записей (включая устаревшие)
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
