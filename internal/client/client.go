// client — типизированные клиенты ресурсов бэкенда (товары, продажи,
// закупки, долги, дашборд, администрирование).
//
// Каждый клиент — тонкая обёртка: построение пути и параметров, строгая
// сериализация тела, прокидывание ошибок транспорта без изменений.
// Авторизацией занимается session.Session, отсюда она не видна.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	apierrors "github.com/pribylovaa/go-shop-console/internal/errors"
	"github.com/pribylovaa/go-shop-console/internal/session"
)

// Client — общая основа ресурсных клиентов.
type Client struct {
	baseURL string
	http    *http.Client
}

// New создаёт клиент поверх авторизованной сессии.
func New(sess *session.Session) *Client {
	return &Client{
		baseURL: sess.BaseURL(),
		http:    sess.Client(),
	}
}

// NewWith — клиент с произвольным транспортом (для тестов).
func NewWith(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, http: httpClient}
}

// Доменные срезы API.
func (c *Client) Products() ProductsClient   { return ProductsClient{c} }
func (c *Client) Sales() SalesClient         { return SalesClient{c} }
func (c *Client) Purchases() PurchasesClient { return PurchasesClient{c} }
func (c *Client) Debts() DebtsClient         { return DebtsClient{c} }
func (c *Client) Dashboard() DashboardClient { return DashboardClient{c} }
func (c *Client) Admin() AdminClient         { return AdminClient{c} }

// do выполняет запрос и декодирует ответ в out (если out != nil).
// Ошибки ответа (>=400) маппятся в таксономию apierrors; ошибки без ответа —
// в apierrors.ErrTransport, кроме терминального отказа сессии, который
// транспорт уже классифицировал.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	const op = "client/do"

	var body io.Reader = http.NoBody
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: marshal body: %w", op, err)
		}

		body = bytes.NewReader(raw)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Транспорт мог уже вернуть классифицированную ошибку (отказ refresh).
		var ae *apierrors.APIError
		if errors.As(err, &ae) {
			return fmt.Errorf("%s %s: %w", method, path, ae)
		}

		return fmt.Errorf("%s %s: %w", method, path, apierrors.Transport(err))
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read body: %w", op, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s %s: %w", method, path, apierrors.FromResponse(resp.StatusCode, raw))
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, query url.Values, in, out any) error {
	return c.do(ctx, http.MethodPost, path, query, in, out)
}

func (c *Client) put(ctx context.Context, path string, query url.Values, in, out any) error {
	return c.do(ctx, http.MethodPut, path, query, in, out)
}

func (c *Client) patch(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, in, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// query — набор вспомогалок для опциональных параметров списочных запросов.
type query struct{ v url.Values }

func newQuery() *query { return &query{v: url.Values{}} }

func (q *query) str(key, val string) *query {
	if val != "" {
		q.v.Set(key, val)
	}

	return q
}

func (q *query) num(key string, val int) *query {
	if val > 0 {
		q.v.Set(key, strconv.Itoa(val))
	}

	return q
}

func (q *query) flag(key string, val bool) *query {
	if val {
		q.v.Set(key, "true")
	}

	return q
}

func (q *query) float(key string, val float64) *query {
	q.v.Set(key, strconv.FormatFloat(val, 'f', -1, 64))

	return q
}

func (q *query) values() url.Values { return q.v }
