// cache — внутрипроцессный TTL-кэш загруженных коллекций.
//
// Консоль переживает между обновлениями экрана на кэшированных данных;
// фоновый наблюдатель (watch) периодически инвалидирует записи, чтобы
// следующее обращение ушло в сеть.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// TTL — потокобезопасный кэш со сроком жизни записи.
type TTL struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time
	m   map[string]entry
}

// Option — настройка кэша.
type Option func(*TTL)

// WithNow подменяет часы (тесты).
func WithNow(now func() time.Time) Option {
	return func(c *TTL) { c.now = now }
}

// New создаёт кэш; ttl <= 0 означает "записи не устаревают сами",
// их снимает только инвалидация.
func New(ttl time.Duration, opts ...Option) *TTL {
	c := &TTL{
		ttl: ttl,
		now: time.Now,
		m:   make(map[string]entry),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get возвращает значение и признак его наличия (и свежести).
func (c *TTL) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.m[key]
	if !ok {
		return nil, false
	}

	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		delete(c.m, key)
		return nil, false
	}

	return e.value, true
}

func (c *TTL) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{value: value}
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}

	c.m[key] = e
}

func (c *TTL) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.m, key)
}

func (c *TTL) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.m = make(map[string]entry)
}

// Len — число живых записей (без проверки свежести).
func (c *TTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.m)
}
