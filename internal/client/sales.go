package client

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pribylovaa/go-shop-console/internal/models"
)

// SalesClient — /api/sales.
type SalesClient struct{ c *Client }

// SaleFilter — параметры списка продаж.
type SaleFilter struct {
	Skip          int
	Limit         int
	StartDate     string
	EndDate       string
	PaymentStatus models.PaymentStatus
	CustomerName  string
}

// SaleItemInput — позиция продажи при создании.
type SaleItemInput struct {
	ProductID  int64           `json:"product_id"`
	Quantity   float64         `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// SaleInput — тело создания продажи.
type SaleInput struct {
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone,omitempty"`
	CustomerAddress string          `json:"customer_address,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Items           []SaleItemInput `json:"items"`
}

func (s SalesClient) List(ctx context.Context, f SaleFilter) ([]models.Sale, error) {
	q := newQuery().
		num("skip", f.Skip).
		num("limit", f.Limit).
		str("start_date", f.StartDate).
		str("end_date", f.EndDate).
		str("payment_status", string(f.PaymentStatus)).
		str("customer_name", f.CustomerName)

	var out []models.Sale
	if err := s.c.get(ctx, "/api/sales", q.values(), &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (s SalesClient) ByID(ctx context.Context, id int64) (*models.Sale, error) {
	var out models.Sale
	if err := s.c.get(ctx, fmt.Sprintf("/api/sales/%d", id), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (s SalesClient) Create(ctx context.Context, in SaleInput) (*models.Sale, error) {
	var out models.Sale
	if err := s.c.post(ctx, "/api/sales", nil, in, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdatePayment фиксирует оплату; сумма уходит в query как у бэкенда.
func (s SalesClient) UpdatePayment(ctx context.Context, id int64, paid decimal.Decimal) error {
	q := newQuery().str("paid_amount", paid.String())

	return s.c.put(ctx, fmt.Sprintf("/api/sales/%d/payment", id), q.values(), nil, nil)
}

func (s SalesClient) Delete(ctx context.Context, id int64) error {
	return s.c.delete(ctx, fmt.Sprintf("/api/sales/%d", id))
}

// DailyStats — агрегаты за день; пустая дата — сегодня на стороне сервера.
func (s SalesClient) DailyStats(ctx context.Context, date string) (*models.DailyStats, error) {
	q := newQuery().str("date_filter", date)

	var out models.DailyStats
	if err := s.c.get(ctx, "/api/sales/stats/daily", q.values(), &out); err != nil {
		return nil, err
	}

	return &out, nil
}
