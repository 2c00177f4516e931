package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTTL_SetGet(t *testing.T) {
	c := New(time.Minute)

	c.Set("products", []string{"Urea"})

	v, ok := c.Get("products")
	require.True(t, ok)
	require.Equal(t, []string{"Urea"}, v)

	_, ok = c.Get("absent")
	require.False(t, ok)
}

func TestTTL_Expiry(t *testing.T) {
	now := time.Date(2026, time.August, 23, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	c := New(30*time.Second, WithNow(clock))
	c.Set("products", "v")

	_, ok := c.Get("products")
	require.True(t, ok)

	// Ровно на границе запись ещё жива, после — нет.
	now = now.Add(30 * time.Second)
	_, ok = c.Get("products")
	require.True(t, ok)

	now = now.Add(time.Second)
	_, ok = c.Get("products")
	require.False(t, ok)

	// Просроченная запись удалена лениво.
	require.Equal(t, 0, c.Len())
}

func TestTTL_ZeroTTLNeverExpires(t *testing.T) {
	now := time.Date(2026, time.August, 23, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	c := New(0, WithNow(clock))
	c.Set("products", "v")

	now = now.Add(time.Hour * 24 * 365)
	_, ok := c.Get("products")
	require.True(t, ok)
}

func TestTTL_Invalidate(t *testing.T) {
	c := New(time.Minute)

	c.Set("products", "a")
	c.Set("sales", "b")
	require.Equal(t, 2, c.Len())

	c.Invalidate("products")
	_, ok := c.Get("products")
	require.False(t, ok)
	_, ok = c.Get("sales")
	require.True(t, ok)

	c.InvalidateAll()
	require.Equal(t, 0, c.Len())
}

func TestTTL_SetOverwritesAndRefreshes(t *testing.T) {
	now := time.Date(2026, time.August, 23, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	c := New(30*time.Second, WithNow(clock))
	c.Set("k", "old")

	now = now.Add(20 * time.Second)
	c.Set("k", "new")

	// Срок считается от последней записи.
	now = now.Add(25 * time.Second)
	v, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "new", v)
}
