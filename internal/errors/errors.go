// errors стандартизирует ошибки, которые клиентский слой получает от бэкенда.
// На вход — HTTP-статус и тело ответа (FastAPI кладёт описание в поле detail),
// на выход — ошибка с:
//   - стабильным машинным кодом для обработки в UI;
//   - безопасным человекочитаемым сообщением;
//   - sentinel-классом для errors.Is.
//
// Классы и политика:
//   - 400/422 — валидация, detail сервера прокидывается дословно;
//   - 401 — ErrUnauthenticated (после исчерпания refresh-протокола сессии);
//   - 403 — ErrForbidden;
//   - 404 — ErrNotFound, detail сервера прокидывается;
//   - 5xx — ErrServer с generic-сообщением, без утечки деталей;
//   - сетевые сбои без ответа — ErrTransport.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthenticated — сессия недействительна: refresh не удался либо
	// повторённый запрос снова получил 401. Требуется новый логин.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden — операция запрещена для текущей роли.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound — ресурс не найден.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument — сервер отверг вход (400/422).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrServer — сбой на стороне сервера (5xx).
	ErrServer = errors.New("server failure")

	// ErrTransport — запрос не получил ответа (сеть, таймаут).
	ErrTransport = errors.New("transport failure")
)

// APIError — ошибка уровня API с деталями ответа.
type APIError struct {
	Status int    // HTTP-статус; 0 для транспортных сбоев
	Code   string // стабильный машинный код
	Detail string // безопасное сообщение для пользователя

	kind  error
	cause error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Detail)
	}

	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Detail)
}

func (e *APIError) Unwrap() error {
	if e.cause != nil {
		return e.cause
	}

	return e.kind
}

// Is позволяет сопоставлять APIError и с классом, и с причиной.
func (e *APIError) Is(target error) bool {
	return errors.Is(e.kind, target) || (e.cause != nil && errors.Is(e.cause, target))
}

// detailBody — минимальная форма тела ошибки бэкенда.
type detailBody struct {
	Detail string `json:"detail"`
}

// FromResponse строит ошибку по статусу и телу ответа.
// Для nil не предназначен: вызывать только при статусе >= 400.
func FromResponse(status int, body []byte) error {
	var d detailBody
	_ = json.Unmarshal(body, &d)

	switch status {
	case http.StatusBadRequest:
		return &APIError{
			Status: status,
			Code:   "BAD_REQUEST",
			Detail: orDefault(d.Detail, "bad request, check your input"),
			kind:   ErrInvalidArgument,
		}
	case http.StatusUnprocessableEntity:
		return &APIError{
			Status: status,
			Code:   "VALIDATION_ERROR",
			Detail: orDefault(d.Detail, "validation error, check your input"),
			kind:   ErrInvalidArgument,
		}
	case http.StatusUnauthorized:
		return &APIError{
			Status: status,
			Code:   "UNAUTHORIZED",
			Detail: "unauthorized, please log in again",
			kind:   ErrUnauthenticated,
		}
	case http.StatusForbidden:
		return &APIError{
			Status: status,
			Code:   "FORBIDDEN",
			Detail: "operation is not permitted",
			kind:   ErrForbidden,
		}
	case http.StatusNotFound:
		return &APIError{
			Status: status,
			Code:   "NOT_FOUND",
			Detail: orDefault(d.Detail, "resource not found"),
			kind:   ErrNotFound,
		}
	}

	if status >= 500 {
		return &APIError{
			Status: status,
			Code:   "INTERNAL_ERROR",
			Detail: "server error, try again later",
			kind:   ErrServer,
		}
	}

	return &APIError{
		Status: status,
		Code:   "UNKNOWN_ERROR",
		Detail: orDefault(d.Detail, "unexpected error"),
		kind:   ErrServer,
	}
}

// Transport оборачивает сетевой сбой (запрос остался без ответа).
func Transport(err error) error {
	return &APIError{
		Code:   "TRANSPORT_ERROR",
		Detail: "network failure, check the connection",
		kind:   ErrTransport,
		cause:  err,
	}
}

// Unauthenticated — терминальный отказ сессии (refresh не удался).
func Unauthenticated(cause error) error {
	return &APIError{
		Status: http.StatusUnauthorized,
		Code:   "UNAUTHORIZED",
		Detail: "session expired, please log in again",
		kind:   ErrUnauthenticated,
		cause:  cause,
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}

	return s
}
