package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromResponse_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		code   string
		kind   error
		detail string
	}{
		{
			name:   "400 прокидывает detail",
			status: http.StatusBadRequest,
			body:   `{"detail":"name must not be empty"}`,
			code:   "BAD_REQUEST",
			kind:   ErrInvalidArgument,
			detail: "name must not be empty",
		},
		{
			name:   "422 прокидывает detail",
			status: http.StatusUnprocessableEntity,
			body:   `{"detail":"price must be positive"}`,
			code:   "VALIDATION_ERROR",
			kind:   ErrInvalidArgument,
			detail: "price must be positive",
		},
		{
			name:   "401 не раскрывает detail сервера",
			status: http.StatusUnauthorized,
			body:   `{"detail":"token signature mismatch"}`,
			code:   "UNAUTHORIZED",
			kind:   ErrUnauthenticated,
			detail: "unauthorized, please log in again",
		},
		{
			name:   "403",
			status: http.StatusForbidden,
			body:   `{"detail":"admin only"}`,
			code:   "FORBIDDEN",
			kind:   ErrForbidden,
			detail: "operation is not permitted",
		},
		{
			name:   "404 прокидывает detail",
			status: http.StatusNotFound,
			body:   `{"detail":"product not found"}`,
			code:   "NOT_FOUND",
			kind:   ErrNotFound,
			detail: "product not found",
		},
		{
			name:   "500 скрывает детали",
			status: http.StatusInternalServerError,
			body:   `{"detail":"pq: connection reset"}`,
			code:   "INTERNAL_ERROR",
			kind:   ErrServer,
			detail: "server error, try again later",
		},
		{
			name:   "503 тоже серверный класс",
			status: http.StatusServiceUnavailable,
			body:   ``,
			code:   "INTERNAL_ERROR",
			kind:   ErrServer,
			detail: "server error, try again later",
		},
		{
			name:   "неожиданный 4xx",
			status: http.StatusConflict,
			body:   `{"detail":"duplicate"}`,
			code:   "UNKNOWN_ERROR",
			kind:   ErrServer,
			detail: "duplicate",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := FromResponse(tc.status, []byte(tc.body))
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			require.Equal(t, tc.status, apiErr.Status)
			require.Equal(t, tc.code, apiErr.Code)
			require.Equal(t, tc.detail, apiErr.Detail)
			require.True(t, errors.Is(err, tc.kind))
		})
	}
}

func TestFromResponse_NonJSONBody(t *testing.T) {
	err := FromResponse(http.StatusBadRequest, []byte("<html>nginx</html>"))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "bad request, check your input", apiErr.Detail)
}

func TestTransport_WrapsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Transport(cause)

	require.True(t, errors.Is(err, ErrTransport))
	require.True(t, errors.Is(err, cause))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, 0, apiErr.Status)
	require.Equal(t, "TRANSPORT_ERROR", apiErr.Code)
}

func TestUnauthenticated_Terminal(t *testing.T) {
	cause := FromResponse(http.StatusUnauthorized, []byte(`{"detail":"expired"}`))
	err := Unauthenticated(cause)

	require.True(t, errors.Is(err, ErrUnauthenticated))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "session expired, please log in again", apiErr.Detail)
}

func TestAPIError_Message(t *testing.T) {
	err := FromResponse(http.StatusNotFound, []byte(`{"detail":"sale not found"}`))
	require.Equal(t, "NOT_FOUND (404): sale not found", err.Error())

	terr := Transport(errors.New("timeout"))
	require.Equal(t, "TRANSPORT_ERROR: network failure, check the connection", terr.Error())
}

func TestAPIError_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("client/ListProducts: %w", FromResponse(http.StatusForbidden, nil))
	require.True(t, errors.Is(err, ErrForbidden))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusForbidden, apiErr.Status)
}
