package watch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-shop-console/internal/models"
)

// fakeLister — управляемый клиент товаров.
type fakeLister struct {
	mu       sync.Mutex
	calls    int
	products []models.Product
	err      error
}

func (f *fakeLister) LowStock(ctx context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++

	return f.products, f.err
}

func (f *fakeLister) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls
}

// fakeCache считает инвалидации.
type fakeCache struct{ invalidations int32 }

func (f *fakeCache) InvalidateAll() { atomic.AddInt32(&f.invalidations, 1) }

func TestWatcher_InvalidatesCachePeriodically(t *testing.T) {
	lister := &fakeLister{}
	c := &fakeCache{}

	w := New(lister, c, func() bool { return true }, 10*time.Millisecond, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.NoError(t, w.Run(ctx))
	require.Greater(t, atomic.LoadInt32(&c.invalidations), int32(0))
}

func TestWatcher_NotifiesOnLowStock(t *testing.T) {
	lister := &fakeLister{
		products: []models.Product{
			{ID: 1, Name: "Urea", StockQty: 2, MinimumStock: 10},
		},
	}
	c := &fakeCache{}

	notified := make(chan []models.Product, 1)

	w := New(lister, c, func() bool { return true }, time.Hour, 10*time.Millisecond)
	w.OnLowStock = func(products []models.Product) {
		select {
		case notified <- products:
		default:
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = w.Run(ctx)
		close(done)
	}()

	select {
	case products := <-notified:
		require.Len(t, products, 1)
		require.Equal(t, "Urea", products[0].Name)
	case <-time.After(2 * time.Second):
		t.Fatal("low stock notification did not arrive")
	}

	cancel()
	<-done
}

func TestWatcher_SkipsTicksWhenUnauthenticated(t *testing.T) {
	lister := &fakeLister{}
	c := &fakeCache{}

	w := New(lister, c, func() bool { return false }, 10*time.Millisecond, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	require.NoError(t, w.Run(ctx))
	require.Equal(t, 0, lister.callCount())
	require.Equal(t, int32(0), atomic.LoadInt32(&c.invalidations))
}

func TestWatcher_SurvivesListerError(t *testing.T) {
	lister := &fakeLister{err: errors.New("network down")}
	c := &fakeCache{}

	w := New(lister, c, func() bool { return true }, time.Hour, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	require.NoError(t, w.Run(ctx))
	// Ошибка не останавливает цикл: тиков было несколько.
	require.Greater(t, lister.callCount(), 1)
}

func TestWatcher_EmptyLowStockDoesNotNotify(t *testing.T) {
	lister := &fakeLister{}
	c := &fakeCache{}

	var notifications int32

	w := New(lister, c, func() bool { return true }, time.Hour, 10*time.Millisecond)
	w.OnLowStock = func([]models.Product) { atomic.AddInt32(&notifications, 1) }

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	require.NoError(t, w.Run(ctx))
	require.Greater(t, lister.callCount(), 0)
	require.Equal(t, int32(0), atomic.LoadInt32(&notifications))
}
