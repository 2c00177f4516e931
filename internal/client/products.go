package client

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pribylovaa/go-shop-console/internal/models"
)

// ProductsClient — /api/products.
type ProductsClient struct{ c *Client }

// ProductFilter — параметры списка товаров.
type ProductFilter struct {
	Skip   int
	Limit  int
	Type   models.ProductType
	Search string
}

// ProductInput — тело создания товара.
type ProductInput struct {
	Name         string             `json:"name"`
	Type         models.ProductType `json:"type"`
	Brand        string             `json:"brand"`
	Unit         string             `json:"unit"`
	PricePerUnit decimal.Decimal    `json:"price_per_unit"`
	StockQty     float64            `json:"stock_quantity"`
	MinimumStock float64            `json:"minimum_stock"`
	Description  string             `json:"description,omitempty"`
}

// ProductPatch — частичное обновление: nil-поля не отправляются.
type ProductPatch struct {
	Name         *string             `json:"name,omitempty"`
	Type         *models.ProductType `json:"type,omitempty"`
	Brand        *string             `json:"brand,omitempty"`
	Unit         *string             `json:"unit,omitempty"`
	PricePerUnit *decimal.Decimal    `json:"price_per_unit,omitempty"`
	StockQty     *float64            `json:"stock_quantity,omitempty"`
	MinimumStock *float64            `json:"minimum_stock,omitempty"`
	Description  *string             `json:"description,omitempty"`
}

// StockOp — направление изменения остатка.
type StockOp string

const (
	StockAdd      StockOp = "add"
	StockSubtract StockOp = "subtract"
)

func (p ProductsClient) List(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	q := newQuery().
		num("skip", f.Skip).
		num("limit", f.Limit).
		str("product_type", string(f.Type)).
		str("search", f.Search)

	var out []models.Product
	if err := p.c.get(ctx, "/api/products", q.values(), &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (p ProductsClient) ByID(ctx context.Context, id int64) (*models.Product, error) {
	var out models.Product
	if err := p.c.get(ctx, fmt.Sprintf("/api/products/%d", id), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (p ProductsClient) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	var out models.Product
	if err := p.c.post(ctx, "/api/products", nil, in, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (p ProductsClient) Update(ctx context.Context, id int64, patch ProductPatch) (*models.Product, error) {
	var out models.Product
	if err := p.c.put(ctx, fmt.Sprintf("/api/products/%d", id), nil, patch, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (p ProductsClient) Delete(ctx context.Context, id int64) error {
	return p.c.delete(ctx, fmt.Sprintf("/api/products/%d", id))
}

// LowStock возвращает товары с остатком ниже минимума.
func (p ProductsClient) LowStock(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := p.c.get(ctx, "/api/products/low-stock/", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// UpdateStock двигает остаток товара; параметры сервер принимает в query.
func (p ProductsClient) UpdateStock(ctx context.Context, id int64, quantity float64, op StockOp) error {
	q := newQuery().float("quantity", quantity).str("operation", string(op))

	return p.c.post(ctx, fmt.Sprintf("/api/products/%d/update-stock", id), q.values(), nil, nil)
}
