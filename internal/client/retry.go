package client

import (
	"context"
	"errors"
	"time"

	apierrors "github.com/pribylovaa/go-shop-console/internal/errors"
)

// RetryPolicy — параметры экспоненциального бэкоффа.
type RetryPolicy struct {
	Attempts  int           // всего попыток, включая первую
	BaseDelay time.Duration // пауза перед второй попыткой; далее удваивается
}

// DefaultRetry — 3 попытки, 1s → 2s между ними.
var DefaultRetry = RetryPolicy{Attempts: 3, BaseDelay: time.Second}

// WithRetry повторяет fn при транспортных сбоях (apierrors.ErrTransport).
// Ошибки остальных классов — валидация, 401, 404, 5xx — не повторяются:
// их политика описана в таксономии и решается выше.
//
// Вызов опциональный: сами клиенты ретраев не делают.
func WithRetry(ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) error) error {
	if policy.Attempts <= 0 {
		policy.Attempts = DefaultRetry.Attempts
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = DefaultRetry.BaseDelay
	}

	var lastErr error
	delay := policy.BaseDelay

	for attempt := 0; attempt < policy.Attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}

			delay *= 2
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if !errors.Is(lastErr, apierrors.ErrTransport) {
			return lastErr
		}
	}

	return lastErr
}
