// watch — фоновый наблюдатель консоли: периодическая инвалидация кэша
// и проверка товаров с низким остатком.
//
// Оба тика работают только при живой сессии и молча пропускаются без неё;
// останов — по контексту. Тикеры не копят пропущенные срабатывания.
package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/pribylovaa/go-shop-console/internal/models"
	"github.com/pribylovaa/go-shop-console/internal/pkg/log"
)

// LowStockLister — минимальный контракт клиента товаров.
type LowStockLister interface {
	LowStock(ctx context.Context) ([]models.Product, error)
}

// Invalidator — минимальный контракт кэша.
type Invalidator interface {
	InvalidateAll()
}

// Watcher — периодические фоновые задачи поверх авторизованной сессии.
type Watcher struct {
	products LowStockLister
	cache    Invalidator

	authed func() bool

	invalidateEvery time.Duration
	lowStockEvery   time.Duration

	// OnLowStock вызывается при непустом списке товаров ниже минимума.
	OnLowStock func(products []models.Product)
}

// New создаёт наблюдателя. authed опрашивается перед каждым тиком:
// без аутентификации фоновые походы в сеть запрещены.
func New(products LowStockLister, cache Invalidator, authed func() bool, invalidateEvery, lowStockEvery time.Duration) *Watcher {
	return &Watcher{
		products:        products,
		cache:           cache,
		authed:          authed,
		invalidateEvery: invalidateEvery,
		lowStockEvery:   lowStockEvery,
	}
}

// Run крутит оба тика до отмены контекста. Ошибки сети не фатальны:
// логируются и ждут следующего тика.
func (w *Watcher) Run(ctx context.Context) error {
	const op = "watch/Run"

	lg := log.From(ctx)
	lg.Info("watch_start",
		slog.String("op", op),
		slog.Duration("invalidate", w.invalidateEvery),
		slog.Duration("low_stock", w.lowStockEvery),
	)

	invalidate := time.NewTicker(w.invalidateEvery)
	defer invalidate.Stop()

	lowStock := time.NewTicker(w.lowStockEvery)
	defer lowStock.Stop()

	for {
		select {
		case <-ctx.Done():
			lg.Info("watch_stop", slog.String("op", op))
			return nil
		case <-invalidate.C:
			if !w.authed() {
				continue
			}

			w.cache.InvalidateAll()
			lg.Debug("cache_invalidated", slog.String("op", op))
		case <-lowStock.C:
			if !w.authed() {
				continue
			}

			w.checkLowStock(ctx)
		}
	}
}

func (w *Watcher) checkLowStock(ctx context.Context) {
	const op = "watch/checkLowStock"

	lg := log.From(ctx)

	products, err := w.products.LowStock(ctx)
	if err != nil {
		lg.Warn("low_stock_check_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return
	}

	if len(products) == 0 {
		return
	}

	lg.Info("low_stock_detected",
		slog.String("op", op),
		slog.Int("count", len(products)),
	)

	if w.OnLowStock != nil {
		w.OnLowStock(products)
	}
}
