package tui

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pribylovaa/go-shop-console/internal/cache"
	"github.com/pribylovaa/go-shop-console/internal/client"
	"github.com/pribylovaa/go-shop-console/internal/grid"
)

// screen — один ресурсный экран: имя, колонки, загрузчик строк и действия.
type screen struct {
	title    string
	filename string // базовое имя файла выгрузки
	columns  []grid.Column
	load     func(ctx context.Context) ([]grid.Row, error)
	actions  []rowAction
}

// rowAction — доменное действие по строке экрана: run ходит в сеть,
// disabled решает доступность по записи. Обёртку в grid.Action с
// инвалидацией кэша и перерисовкой делает App.
type rowAction struct {
	kind     grid.ActionKind
	tooltip  string
	disabled func(grid.Row) bool
	run      func(ctx context.Context, row grid.Row) error
}

// rowID достаёт идентификатор записи; JSON приносит числа как float64.
func rowID(row grid.Row) (int64, error) {
	switch v := row["id"].(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case json.Number:
		return v.Int64()
	default:
		return 0, fmt.Errorf("row has no numeric id: %v", row["id"])
	}
}

// rowAmount читает денежное поле записи.
func rowAmount(row grid.Row, field string) (decimal.Decimal, error) {
	s, ok := row[field].(string)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("row has no %s", field)
	}

	return decimal.NewFromString(s)
}

// paidAlready — предикат блокировки платёжных действий.
func paidAlready(statusField string) func(grid.Row) bool {
	return func(row grid.Row) bool {
		return row[statusField] == "paid"
	}
}

// cached оборачивает загрузчик кэшем: между инвалидациями наблюдателя
// повторное открытие экрана не ходит в сеть.
func cached(c *cache.TTL, key string, load func(ctx context.Context) ([]grid.Row, error)) func(ctx context.Context) ([]grid.Row, error) {
	return func(ctx context.Context) ([]grid.Row, error) {
		if v, ok := c.Get(key); ok {
			if rows, ok := v.([]grid.Row); ok {
				return rows, nil
			}
		}

		rows, err := load(ctx)
		if err != nil {
			return nil, err
		}

		c.Set(key, rows)

		return rows, nil
	}
}

// screens — фиксированный набор экранов консоли.
func screens(api *client.Client) []screen {
	return []screen{
		{
			title:    "Products",
			filename: "products",
			columns: []grid.Column{
				grid.Col("name", "Name", grid.TypeText),
				grid.Col("type", "Type", grid.TypeText),
				grid.Col("brand", "Brand", grid.TypeText),
				grid.Col("unit", "Unit", grid.TypeText),
				grid.Col("price_per_unit", "Price", grid.TypeCurrency),
				grid.Col("stock_quantity", "Stock", grid.TypeNumber),
				grid.Col("minimum_stock", "Min. stock", grid.TypeNumber),
				grid.Col("updated_at", "Updated", grid.TypeDate),
			},
			load: func(ctx context.Context) ([]grid.Row, error) {
				items, err := api.Products().List(ctx, client.ProductFilter{})
				if err != nil {
					return nil, err
				}

				return grid.RowsOf(items)
			},
			actions: []rowAction{
				{
					kind:    grid.ActionDelete,
					tooltip: "delete product",
					run: func(ctx context.Context, row grid.Row) error {
						id, err := rowID(row)
						if err != nil {
							return err
						}

						return api.Products().Delete(ctx, id)
					},
				},
			},
		},
		{
			title:    "Sales",
			filename: "sales",
			columns: []grid.Column{
				grid.Col("customer_name", "Customer", grid.TypeText),
				grid.Col("total_amount", "Total", grid.TypeCurrency),
				grid.Col("paid_amount", "Paid", grid.TypeCurrency),
				grid.Col("payment_status", "Status", grid.TypeStatus),
				grid.Col("sale_date", "Date", grid.TypeDate),
			},
			load: func(ctx context.Context) ([]grid.Row, error) {
				items, err := api.Sales().List(ctx, client.SaleFilter{})
				if err != nil {
					return nil, err
				}

				return grid.RowsOf(items)
			},
			actions: []rowAction{
				{
					kind:     grid.ActionPayment,
					tooltip:  "mark as fully paid",
					disabled: paidAlready("payment_status"),
					run: func(ctx context.Context, row grid.Row) error {
						id, err := rowID(row)
						if err != nil {
							return err
						}

						total, err := rowAmount(row, "total_amount")
						if err != nil {
							return err
						}

						return api.Sales().UpdatePayment(ctx, id, total)
					},
				},
				{
					kind:    grid.ActionDelete,
					tooltip: "delete sale",
					run: func(ctx context.Context, row grid.Row) error {
						id, err := rowID(row)
						if err != nil {
							return err
						}

						return api.Sales().Delete(ctx, id)
					},
				},
			},
		},
		{
			title:    "Purchases",
			filename: "purchases",
			columns: []grid.Column{
				grid.Col("supplier_name", "Supplier", grid.TypeText),
				grid.Col("total_amount", "Total", grid.TypeCurrency),
				grid.Col("paid_amount", "Paid", grid.TypeCurrency),
				grid.Col("payment_status", "Status", grid.TypeStatus),
				grid.Col("purchase_date", "Date", grid.TypeDate),
			},
			load: func(ctx context.Context) ([]grid.Row, error) {
				items, err := api.Purchases().List(ctx, client.PurchaseFilter{})
				if err != nil {
					return nil, err
				}

				return grid.RowsOf(items)
			},
			actions: []rowAction{
				{
					kind:     grid.ActionPayment,
					tooltip:  "mark as fully paid",
					disabled: paidAlready("payment_status"),
					run: func(ctx context.Context, row grid.Row) error {
						id, err := rowID(row)
						if err != nil {
							return err
						}

						total, err := rowAmount(row, "total_amount")
						if err != nil {
							return err
						}

						return api.Purchases().UpdatePayment(ctx, id, total)
					},
				},
				{
					kind:    grid.ActionDelete,
					tooltip: "delete purchase",
					run: func(ctx context.Context, row grid.Row) error {
						id, err := rowID(row)
						if err != nil {
							return err
						}

						return api.Purchases().Delete(ctx, id)
					},
				},
			},
		},
		{
			title:    "Debts",
			filename: "debts",
			columns: []grid.Column{
				grid.Col("customer_name", "Customer", grid.TypeText),
				grid.Col("amount", "Amount", grid.TypeCurrency),
				grid.Col("description", "Description", grid.TypeText),
				grid.Col("due_date", "Due", grid.TypeDate),
				grid.Col("status", "Status", grid.TypeStatus),
			},
			load: func(ctx context.Context) ([]grid.Row, error) {
				items, err := api.Debts().List(ctx, client.DebtFilter{})
				if err != nil {
					return nil, err
				}

				return grid.RowsOf(items)
			},
			actions: []rowAction{
				{
					kind:     grid.ActionPayment,
					tooltip:  "pay off the debt",
					disabled: paidAlready("status"),
					run: func(ctx context.Context, row grid.Row) error {
						id, err := rowID(row)
						if err != nil {
							return err
						}

						amount, err := rowAmount(row, "amount")
						if err != nil {
							return err
						}

						return api.Debts().Pay(ctx, id, amount)
					},
				},
				{
					kind:    grid.ActionDelete,
					tooltip: "delete debt",
					run: func(ctx context.Context, row grid.Row) error {
						id, err := rowID(row)
						if err != nil {
							return err
						}

						return api.Debts().Delete(ctx, id)
					},
				},
			},
		},
		{
			title:    "Users",
			filename: "users",
			columns: []grid.Column{
				grid.Col("email", "Email", grid.TypeText),
				grid.Col("full_name", "Name", grid.TypeText),
				grid.Col("role", "Role", grid.TypeText),
				grid.Col("is_active", "Active", grid.TypeText),
			},
			load: func(ctx context.Context) ([]grid.Row, error) {
				items, err := api.Admin().ListUsers(ctx)
				if err != nil {
					return nil, err
				}

				return grid.RowsOf(items)
			},
			actions: []rowAction{
				{
					kind:    grid.ActionDelete,
					tooltip: "delete user",
					run: func(ctx context.Context, row grid.Row) error {
						id, err := rowID(row)
						if err != nil {
							return err
						}

						return api.Admin().DeleteUser(ctx, id)
					},
				},
			},
		},
	}
}
