package client

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pribylovaa/go-shop-console/internal/models"
)

// DebtsClient — /api/debts.
type DebtsClient struct{ c *Client }

// DebtFilter — параметры списка долгов.
type DebtFilter struct {
	Skip         int
	Limit        int
	Status       models.PaymentStatus
	CustomerName string
	OverdueOnly  bool
}

// DebtInput — тело создания долга.
type DebtInput struct {
	CustomerName  string               `json:"customer_name"`
	CustomerPhone string               `json:"customer_phone,omitempty"`
	Amount        decimal.Decimal      `json:"amount"`
	Description   string               `json:"description"`
	DueDate       string               `json:"due_date,omitempty"`
	Status        models.PaymentStatus `json:"status"`
}

// DebtPatch — частичное обновление долга.
type DebtPatch struct {
	CustomerName  *string               `json:"customer_name,omitempty"`
	CustomerPhone *string               `json:"customer_phone,omitempty"`
	Amount        *decimal.Decimal      `json:"amount,omitempty"`
	Description   *string               `json:"description,omitempty"`
	DueDate       *string               `json:"due_date,omitempty"`
	Status        *models.PaymentStatus `json:"status,omitempty"`
}

func (d DebtsClient) List(ctx context.Context, f DebtFilter) ([]models.Debt, error) {
	q := newQuery().
		num("skip", f.Skip).
		num("limit", f.Limit).
		str("status", string(f.Status)).
		str("customer_name", f.CustomerName).
		flag("overdue_only", f.OverdueOnly)

	var out []models.Debt
	if err := d.c.get(ctx, "/api/debts", q.values(), &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (d DebtsClient) ByID(ctx context.Context, id int64) (*models.Debt, error) {
	var out models.Debt
	if err := d.c.get(ctx, fmt.Sprintf("/api/debts/%d", id), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (d DebtsClient) Create(ctx context.Context, in DebtInput) (*models.Debt, error) {
	var out models.Debt
	if err := d.c.post(ctx, "/api/debts", nil, in, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (d DebtsClient) Update(ctx context.Context, id int64, patch DebtPatch) (*models.Debt, error) {
	var out models.Debt
	if err := d.c.put(ctx, fmt.Sprintf("/api/debts/%d", id), nil, patch, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Pay гасит долг на сумму amount (query-параметр, как у бэкенда).
func (d DebtsClient) Pay(ctx context.Context, id int64, amount decimal.Decimal) error {
	q := newQuery().str("amount", amount.String())

	return d.c.put(ctx, fmt.Sprintf("/api/debts/%d/pay", id), q.values(), nil, nil)
}

func (d DebtsClient) Delete(ctx context.Context, id int64) error {
	return d.c.delete(ctx, fmt.Sprintf("/api/debts/%d", id))
}

func (d DebtsClient) Summary(ctx context.Context) (*models.DebtSummary, error) {
	var out models.DebtSummary
	if err := d.c.get(ctx, "/api/debts/stats/summary", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// MarkOverdue просит сервер пометить просроченные долги.
func (d DebtsClient) MarkOverdue(ctx context.Context) error {
	return d.c.post(ctx, "/api/debts/mark-overdue", nil, nil, nil)
}
