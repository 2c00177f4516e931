package client

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pribylovaa/go-shop-console/internal/models"
)

// PurchasesClient — /api/purchases.
type PurchasesClient struct{ c *Client }

// PurchaseFilter — параметры списка закупок.
type PurchaseFilter struct {
	Skip          int
	Limit         int
	StartDate     string
	EndDate       string
	PaymentStatus models.PaymentStatus
	SupplierName  string
}

// PurchaseItemInput — позиция закупки при создании.
type PurchaseItemInput struct {
	ProductID  int64           `json:"product_id"`
	Quantity   float64         `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// PurchaseInput — тело создания закупки.
type PurchaseInput struct {
	SupplierName    string              `json:"supplier_name"`
	SupplierPhone   string              `json:"supplier_phone,omitempty"`
	SupplierAddress string              `json:"supplier_address,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	Items           []PurchaseItemInput `json:"items"`
}

func (p PurchasesClient) List(ctx context.Context, f PurchaseFilter) ([]models.Purchase, error) {
	q := newQuery().
		num("skip", f.Skip).
		num("limit", f.Limit).
		str("start_date", f.StartDate).
		str("end_date", f.EndDate).
		str("payment_status", string(f.PaymentStatus)).
		str("supplier_name", f.SupplierName)

	var out []models.Purchase
	if err := p.c.get(ctx, "/api/purchases", q.values(), &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (p PurchasesClient) ByID(ctx context.Context, id int64) (*models.Purchase, error) {
	var out models.Purchase
	if err := p.c.get(ctx, fmt.Sprintf("/api/purchases/%d", id), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (p PurchasesClient) Create(ctx context.Context, in PurchaseInput) (*models.Purchase, error) {
	var out models.Purchase
	if err := p.c.post(ctx, "/api/purchases", nil, in, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (p PurchasesClient) UpdatePayment(ctx context.Context, id int64, paid decimal.Decimal) error {
	q := newQuery().str("paid_amount", paid.String())

	return p.c.put(ctx, fmt.Sprintf("/api/purchases/%d/payment", id), q.values(), nil, nil)
}

func (p PurchasesClient) Delete(ctx context.Context, id int64) error {
	return p.c.delete(ctx, fmt.Sprintf("/api/purchases/%d", id))
}

func (p PurchasesClient) DailyStats(ctx context.Context, date string) (*models.DailyStats, error) {
	q := newQuery().str("date_filter", date)

	var out models.DailyStats
	if err := p.c.get(ctx, "/api/purchases/stats/daily", q.values(), &out); err != nil {
		return nil, err
	}

	return &out, nil
}
