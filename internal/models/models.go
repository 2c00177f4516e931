// models — доменные записи магазина в том виде, в каком их отдаёт REST-бэкенд.
//
// Денежные поля — decimal.Decimal (точность важнее удобства float64),
// даты — строки ISO-формата как на проводе: их интерпретацией занимаются
// слой таблицы (grid) и выгрузки (export).
package models

import "github.com/shopspring/decimal"

// ProductType — закрытый набор типов товара.
type ProductType string

const (
	ProductFertilizer ProductType = "fertilizer"
	ProductPesticide  ProductType = "pesticide"
	ProductSeed       ProductType = "seed"
)

// PaymentStatus — статус оплаты продажи/закупки/долга.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentOverdue PaymentStatus = "overdue"
)

type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Type         ProductType     `json:"type"`
	Brand        string          `json:"brand"`
	Unit         string          `json:"unit"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	StockQty     float64         `json:"stock_quantity"`
	MinimumStock float64         `json:"minimum_stock"`
	Description  string          `json:"description,omitempty"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

type SaleItem struct {
	ID         int64           `json:"id,omitempty"`
	ProductID  int64           `json:"product_id"`
	Quantity   float64         `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Product    *Product        `json:"product,omitempty"`
}

type Sale struct {
	ID              int64           `json:"id"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone,omitempty"`
	CustomerAddress string          `json:"customer_address,omitempty"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	Notes           string          `json:"notes,omitempty"`
	SaleDate        string          `json:"sale_date"`
	Items           []SaleItem      `json:"items"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

type PurchaseItem struct {
	ID         int64           `json:"id,omitempty"`
	ProductID  int64           `json:"product_id"`
	Quantity   float64         `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Product    *Product        `json:"product,omitempty"`
}

type Purchase struct {
	ID              int64           `json:"id"`
	SupplierName    string          `json:"supplier_name"`
	SupplierPhone   string          `json:"supplier_phone,omitempty"`
	SupplierAddress string          `json:"supplier_address,omitempty"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	Notes           string          `json:"notes,omitempty"`
	PurchaseDate    string          `json:"purchase_date"`
	Items           []PurchaseItem  `json:"items"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

type Debt struct {
	ID            int64           `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	DueDate       string          `json:"due_date,omitempty"`
	Status        PaymentStatus   `json:"status"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

// Role — роль пользователя консоли.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"is_active"`
}

type DashboardStats struct {
	TotalSales       decimal.Decimal `json:"total_sales"`
	TotalPurchases   decimal.Decimal `json:"total_purchases"`
	TotalDebts       decimal.Decimal `json:"total_debts"`
	TotalProducts    int64           `json:"total_products"`
	LowStockProducts int64           `json:"low_stock_products"`
	RecentSales      []Sale          `json:"recent_sales"`
	RecentPurchases  []Purchase      `json:"recent_purchases"`
	PendingDebts     []Debt          `json:"pending_debts"`
}

// DailyStats — агрегаты за день по продажам или закупкам.
type DailyStats struct {
	Date        string          `json:"date"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
}

// DebtSummary — сводка по долгам.
type DebtSummary struct {
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PendingCount  int64           `json:"pending_count"`
	PartialCount  int64           `json:"partial_count"`
	OverdueCount  int64           `json:"overdue_count"`
	OverdueAmount decimal.Decimal `json:"overdue_amount"`
}

// TrendPoint — точка тренда продаж для дашборда.
type TrendPoint struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// TopProduct — позиция из топа продаваемых товаров.
type TopProduct struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  float64         `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
}

// MonthlySummary — сводка за месяц для дашборда.
type MonthlySummary struct {
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	SalesCount     int64           `json:"sales_count"`
	PurchasesCount int64           `json:"purchases_count"`
}
