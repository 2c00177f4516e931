package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	apierrors "github.com/pribylovaa/go-shop-console/internal/errors"
	"github.com/pribylovaa/go-shop-console/internal/pkg/log"
	"github.com/pribylovaa/go-shop-console/internal/pkg/redact"
)

// transport навешивает на каждый исходящий запрос bearer-токен и X-Request-Id
// и прозрачно восстанавливается после истечения access-токена.
//
// Протокол на 401:
//  1. ответ 401 по запросу, который ещё не повторялся, запускает refresh;
//     одновременные 401 сходятся в один сетевой вызов (singleflight), все
//     ожидающие получают общий исход — новый токен либо общую ошибку;
//  2. при успехе исходный запрос повторяется ровно один раз с новым токеном;
//     повторный 401 отдаётся вызывающему как есть;
//  3. при неуспехе refresh пара токенов стирается, всем ожидающим
//     возвращается ErrUnauthenticated — сессия терминально завершена.
//
// Любой другой статус проходит насквозь без изменений. Повтор ограничен
// локальным счётчиком попытки внутри одного RoundTrip: флаг не хранится
// на самом запросе и не виден другим вызовам.
type transport struct {
	base    http.RoundTripper
	tokens  *Tokens
	baseURL string

	refreshGroup singleflight.Group
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("X-Request-Id", uuid.NewString())

	if tok := t.tokens.Access(); tok != "" {
		r.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := t.base.RoundTrip(r)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	// Тело без GetBody после диспатча уже вычитано и повторной отправке
	// не подлежит: 401 отдаётся вызывающему как есть.
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		return resp, nil
	}

	// 401: пытаемся обновить пару и повторить запрос один раз.
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	lg := log.From(req.Context())
	lg.Debug("session_refresh_triggered",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	access, rerr := t.refresh(req.Context())
	if rerr != nil {
		return nil, rerr
	}

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, berr := req.GetBody()
		if berr != nil {
			return nil, fmt.Errorf("session: rewind request body: %w", berr)
		}

		retry.Body = body
	}

	retry.Header.Set("X-Request-Id", uuid.NewString())
	retry.Header.Set("Authorization", "Bearer "+access)

	return t.base.RoundTrip(retry)
}

// refresh выполняет (или ждёт уже идущий) обмен refresh-токена на новую пару.
// Возвращает новый access-токен.
func (t *transport) refresh(ctx context.Context) (string, error) {
	v, err, shared := t.refreshGroup.Do("refresh", func() (any, error) {
		refresh := t.tokens.Refresh()
		if refresh == "" {
			_ = t.tokens.Clear()
			return nil, apierrors.Unauthenticated(nil)
		}

		pair, err := t.refreshCall(ctx, refresh)
		if err != nil {
			// Отказ refresh терминален: полулогин не оставляем.
			_ = t.tokens.Clear()
			return nil, apierrors.Unauthenticated(err)
		}

		if serr := t.tokens.Set(pair.AccessToken, pair.RefreshToken); serr != nil {
			return nil, fmt.Errorf("session: persist tokens: %w", serr)
		}

		return pair.AccessToken, nil
	})

	lg := log.From(ctx)
	if err != nil {
		lg.Warn("session_refresh_failed",
			slog.Bool("shared", shared),
			slog.String("err", err.Error()),
		)

		return "", err
	}

	lg.Debug("session_refresh_ok",
		slog.Bool("shared", shared),
		slog.String("access", redact.Token()),
	)

	return v.(string), nil
}

// tokenPair — ответ /api/auth/login и /api/auth/refresh.
// RefreshToken может отсутствовать: сервер вправе ротировать только access.
type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// refreshCall ходит в /api/auth/refresh напрямую через базовый транспорт:
// сам себя через авторизующую обёртку он вызывать не должен.
func (t *transport) refreshCall(ctx context.Context, refresh string) (*tokenPair, error) {
	const op = "session/refreshCall"

	payload, err := json.Marshal(map[string]string{"refresh_token": refresh})
	if err != nil {
		return nil, fmt.Errorf("%s: marshal: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/api/auth/refresh", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", op, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apierrors.FromResponse(resp.StatusCode, body)
	}

	var pair tokenPair
	if err := json.Unmarshal(body, &pair); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	if pair.AccessToken == "" {
		return nil, fmt.Errorf("%s: empty access token in response", op)
	}

	return &pair, nil
}
