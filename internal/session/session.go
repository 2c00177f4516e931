// session — менеджер сессии консоли: хранение учётной пары, авторизующий
// HTTP-транспорт с коалесцированным refresh и операции логина/логаута.
//
// Экземпляр Session безопасен для конкурентного использования: всё
// разделяемое состояние — хранилище токенов и группа refresh — защищено
// своими механизмами. Доменные клиенты получают готовый *http.Client через
// Client() и ничего не знают о токенах.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	apierrors "github.com/pribylovaa/go-shop-console/internal/errors"
	"github.com/pribylovaa/go-shop-console/internal/models"
	"github.com/pribylovaa/go-shop-console/internal/pkg/log"
	"github.com/pribylovaa/go-shop-console/internal/pkg/redact"
	"github.com/pribylovaa/go-shop-console/internal/store"
)

// Session — явный объект сессии с жизненным циклом от старта приложения
// до логаута; модульных глобалов нет.
type Session struct {
	baseURL string
	tokens  *Tokens
	client  *http.Client
	tr      *transport
}

// Option — настройка Session при создании.
type Option func(*Session)

// WithBaseTransport подменяет базовый RoundTripper (для тестов).
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(s *Session) { s.tr.base = rt }
}

// New создаёт сессию поверх хранилища st.
// timeout ограничивает каждый запрос целиком; 0 — без ограничения.
func New(baseURL string, st store.Store, timeout time.Duration, opts ...Option) *Session {
	s := &Session{
		baseURL: baseURL,
		tokens:  NewTokens(st),
	}

	s.tr = &transport{
		base:    http.DefaultTransport,
		tokens:  s.tokens,
		baseURL: baseURL,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.client = &http.Client{
		Transport: s.tr,
		Timeout:   timeout,
	}

	return s
}

// Client возвращает HTTP-клиент с авторизующим транспортом.
func (s *Session) Client() *http.Client { return s.client }

// Tokens возвращает учётную пару сессии.
func (s *Session) Tokens() *Tokens { return s.tokens }

// BaseURL — адрес бэкенда, с которым работает сессия.
func (s *Session) BaseURL() string { return s.baseURL }

// Authenticated — есть ли действующая (по наличию) учётная пара.
func (s *Session) Authenticated() bool { return s.tokens.Authenticated() }

// loginRequest — тело POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login обменивает учётные данные на пару токенов и сохраняет её.
func (s *Session) Login(ctx context.Context, email, password string) error {
	const op = "session/Login"

	payload, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, err)
	}

	status, body, err := s.postRaw(ctx, "/api/auth/login", payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, apierrors.Transport(err))
	}

	if status != http.StatusOK {
		return fmt.Errorf("%s: %w", op, apierrors.FromResponse(status, body))
	}

	var pair tokenPair
	if err := json.Unmarshal(body, &pair); err != nil {
		return fmt.Errorf("%s: decode: %w", op, err)
	}

	if err := s.tokens.Set(pair.AccessToken, pair.RefreshToken); err != nil {
		return fmt.Errorf("%s: persist tokens: %w", op, err)
	}

	log.From(ctx).Info("login_ok",
		slog.String("email", redact.Email(email)),
		slog.String("access", redact.Token()),
	)

	return nil
}

// Logout уведомляет сервер и стирает учётную пару. Локальная очистка
// выполняется даже при сетевой ошибке.
func (s *Session) Logout(ctx context.Context) error {
	const op = "session/Logout"

	var notifyErr error
	if s.tokens.Authenticated() {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/auth/logout", http.NoBody)
		if err != nil {
			notifyErr = fmt.Errorf("%s: build request: %w", op, err)
		} else {
			resp, err := s.client.Do(req)
			if err != nil {
				notifyErr = fmt.Errorf("%s: %w", op, err)
			} else {
				_, _ = io.Copy(io.Discard, resp.Body)
				_ = resp.Body.Close()
			}
		}
	}

	if err := s.tokens.Clear(); err != nil {
		return fmt.Errorf("%s: clear tokens: %w", op, err)
	}

	log.From(ctx).Info("logout_ok")

	return notifyErr
}

// Me возвращает текущего пользователя (GET /api/auth/me).
func (s *Session) Me(ctx context.Context) (*models.User, error) {
	const op = "session/Me"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/auth/me", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", op, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w", op, apierrors.FromResponse(resp.StatusCode, body))
	}

	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	return &user, nil
}

// postRaw шлёт JSON на базовый транспорт без авторизации (логин токена не имеет).
func (s *Session) postRaw(ctx context.Context, path string, payload []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.tr.base.RoundTrip(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	return resp.StatusCode, body, nil
}
