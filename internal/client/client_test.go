package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	apierrors "github.com/pribylovaa/go-shop-console/internal/errors"
	"github.com/pribylovaa/go-shop-console/internal/models"
)

// recorded — то, что сервер увидел в последнем запросе.
type recorded struct {
	method string
	path   string
	query  string
	body   []byte
}

// newTestClient поднимает httptest-сервер с handler и клиент поверх него.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewWith(srv.URL, srv.Client()), srv
}

// record создаёт handler, который запоминает запрос и отвечает телом reply.
func record(t *testing.T, rec *recorded, status int, reply string) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		rec.body = raw

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}
}

func TestProducts_List_BuildsQuery(t *testing.T) {
	var rec recorded
	c, _ := newTestClient(t, record(t, &rec, http.StatusOK, `[{"id":1,"name":"Urea"}]`))

	got, err := c.Products().List(context.Background(), ProductFilter{
		Skip:   20,
		Limit:  10,
		Type:   models.ProductFertilizer,
		Search: "urea",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Urea", got[0].Name)

	require.Equal(t, http.MethodGet, rec.method)
	require.Equal(t, "/api/products", rec.path)
	require.Equal(t, "limit=10&product_type=fertilizer&search=urea&skip=20", rec.query)
}

func TestProducts_List_OmitsZeroParams(t *testing.T) {
	var rec recorded
	c, _ := newTestClient(t, record(t, &rec, http.StatusOK, `[]`))

	_, err := c.Products().List(context.Background(), ProductFilter{})
	require.NoError(t, err)
	require.Empty(t, rec.query)
}

func TestProducts_Create_SendsBody(t *testing.T) {
	var rec recorded
	c, _ := newTestClient(t, record(t, &rec, http.StatusOK, `{"id":5,"name":"Urea"}`))

	price := decimal.RequireFromString("266.00")

	got, err := c.Products().Create(context.Background(), ProductInput{
		Name:         "Urea",
		Type:         models.ProductFertilizer,
		Brand:        "IFFCO",
		Unit:         "bag",
		PricePerUnit: price,
		StockQty:     120,
		MinimumStock: 10,
	})
	require.NoError(t, err)
	require.Equal(t, int64(5), got.ID)

	require.Equal(t, http.MethodPost, rec.method)

	var sent ProductInput
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	require.Equal(t, "Urea", sent.Name)
	require.True(t, sent.PricePerUnit.Equal(price))
}

func TestProducts_Update_OmitsNilPatchFields(t *testing.T) {
	var rec recorded
	c, _ := newTestClient(t, record(t, &rec, http.StatusOK, `{"id":5}`))

	name := "Urea Gold"
	_, err := c.Products().Update(context.Background(), 5, ProductPatch{Name: &name})
	require.NoError(t, err)

	require.Equal(t, http.MethodPut, rec.method)
	require.Equal(t, "/api/products/5", rec.path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	require.Equal(t, map[string]any{"name": "Urea Gold"}, sent)
}

func TestProducts_UpdateStock_QueryParams(t *testing.T) {
	var rec recorded
	c, _ := newTestClient(t, record(t, &rec, http.StatusOK, `{}`))

	err := c.Products().UpdateStock(context.Background(), 7, 2.5, StockSubtract)
	require.NoError(t, err)

	require.Equal(t, http.MethodPost, rec.method)
	require.Equal(t, "/api/products/7/update-stock", rec.path)
	require.Equal(t, "operation=subtract&quantity=2.5", rec.query)
}

func TestProducts_LowStock_Path(t *testing.T) {
	var rec recorded
	c, _ := newTestClient(t, record(t, &rec, http.StatusOK, `[{"id":3,"name":"DAP","stock_quantity":2,"minimum_stock":10}]`))

	got, err := c.Products().LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "/api/products/low-stock/", rec.path)
}

func TestSales_UpdatePayment_AmountInQuery(t *testing.T) {
	var rec recorded
	c, _ := newTestClient(t, record(t, &rec, http.StatusOK, `{}`))

	err := c.Sales().UpdatePayment(context.Background(), 12, decimal.RequireFromString("1500.50"))
	require.NoError(t, err)

	require.Equal(t, http.MethodPut, rec.method)
	require.Equal(t, "/api/sales/12/payment", rec.path)
	require.Equal(t, "paid_amount=1500.5", rec.query)
}

func TestSales_List_DateRange(t *testing.T) {
	var rec recorded
	c, _ := newTestClient(t, record(t, &rec, http.StatusOK, `[]`))

	_, err := c.Sales().List(context.Background(), SaleFilter{
		StartDate:     "2026-08-01",
		EndDate:       "2026-08-31",
		PaymentStatus: models.PaymentPending,
	})
	require.NoError(t, err)
	require.Equal(t, "end_date=2026-08-31&payment_status=pending&start_date=2026-08-01", rec.query)
}

func TestDebts_Pay_And_MarkOverdue(t *testing.T) {
	var rec recorded
	c, _ := newTestClient(t, record(t, &rec, http.StatusOK, `{}`))

	require.NoError(t, c.Debts().Pay(context.Background(), 3, decimal.RequireFromString("200")))
	require.Equal(t, "/api/debts/3/pay", rec.path)
	require.Equal(t, "amount=200", rec.query)

	require.NoError(t, c.Debts().MarkOverdue(context.Background()))
	require.Equal(t, http.MethodPost, rec.method)
	require.Equal(t, "/api/debts/mark-overdue", rec.path)
}

func TestDebts_List_OverdueOnly(t *testing.T) {
	var rec recorded
	c, _ := newTestClient(t, record(t, &rec, http.StatusOK, `[]`))

	_, err := c.Debts().List(context.Background(), DebtFilter{OverdueOnly: true})
	require.NoError(t, err)
	require.Equal(t, "overdue_only=true", rec.query)
}

func TestDashboard_Endpoints(t *testing.T) {
	var rec recorded
	c, _ := newTestClient(t, record(t, &rec, http.StatusOK, `{"total_sales":"15000.00","total_products":42}`))

	stats, err := c.Dashboard().Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/api/dashboard/stats", rec.path)
	require.Equal(t, int64(42), stats.TotalProducts)
	require.True(t, stats.TotalSales.Equal(decimal.RequireFromString("15000.00")))
}

func TestDashboard_SalesTrend_Days(t *testing.T) {
	var rec recorded
	c, _ := newTestClient(t, record(t, &rec, http.StatusOK, `[]`))

	_, err := c.Dashboard().SalesTrend(context.Background(), 30)
	require.NoError(t, err)
	require.Equal(t, "/api/dashboard/sales-trend", rec.path)
	require.Equal(t, "days=30", rec.query)
}

func TestAdmin_RoleAndActive(t *testing.T) {
	var rec recorded
	c, _ := newTestClient(t, record(t, &rec, http.StatusOK, `{}`))

	require.NoError(t, c.Admin().SetRole(context.Background(), 9, models.RoleAdmin))
	require.Equal(t, http.MethodPatch, rec.method)
	require.Equal(t, "/api/admin/users/9/role", rec.path)

	var sentRole map[string]string
	require.NoError(t, json.Unmarshal(rec.body, &sentRole))
	require.Equal(t, "admin", sentRole["role"])

	require.NoError(t, c.Admin().SetActive(context.Background(), 9, false))
	require.Equal(t, "/api/admin/users/9/active", rec.path)

	var sentActive map[string]bool
	require.NoError(t, json.Unmarshal(rec.body, &sentActive))
	require.False(t, sentActive["is_active"])
}

func TestClient_ErrorMapping(t *testing.T) {
	t.Run("404 с detail", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"product not found"}`))
		})

		_, err := c.Products().ByID(context.Background(), 404)
		require.Error(t, err)
		require.True(t, errors.Is(err, apierrors.ErrNotFound))

		var apiErr *apierrors.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, "product not found", apiErr.Detail)
	})

	t.Run("422 — валидация", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"detail":"quantity must be positive"}`))
		})

		_, err := c.Sales().Create(context.Background(), SaleInput{CustomerName: "Ramesh"})
		require.Error(t, err)
		require.True(t, errors.Is(err, apierrors.ErrInvalidArgument))
	})

	t.Run("сетевой сбой — ErrTransport", func(t *testing.T) {
		c := NewWith("http://127.0.0.1:1", http.DefaultClient)

		_, err := c.Products().List(context.Background(), ProductFilter{})
		require.Error(t, err)
		require.True(t, errors.Is(err, apierrors.ErrTransport))
	})
}
