package client

import (
	"context"

	"github.com/pribylovaa/go-shop-console/internal/models"
)

// DashboardClient — /api/dashboard/*.
type DashboardClient struct{ c *Client }

func (d DashboardClient) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var out models.DashboardStats
	if err := d.c.get(ctx, "/api/dashboard/stats", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// SalesTrend — динамика продаж за days дней (0 — серверный дефолт).
func (d DashboardClient) SalesTrend(ctx context.Context, days int) ([]models.TrendPoint, error) {
	q := newQuery().num("days", days)

	var out []models.TrendPoint
	if err := d.c.get(ctx, "/api/dashboard/sales-trend", q.values(), &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (d DashboardClient) TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {
	q := newQuery().num("limit", limit)

	var out []models.TopProduct
	if err := d.c.get(ctx, "/api/dashboard/top-products", q.values(), &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (d DashboardClient) MonthlySummary(ctx context.Context, year, month int) (*models.MonthlySummary, error) {
	q := newQuery().num("year", year).num("month", month)

	var out models.MonthlySummary
	if err := d.c.get(ctx, "/api/dashboard/monthly-summary", q.values(), &out); err != nil {
		return nil, err
	}

	return &out, nil
}
