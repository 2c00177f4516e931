package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pribylovaa/go-shop-console/internal/store"
)

// Tokens — учётная пара сессии (access + refresh) поверх долговечного
// key-value хранилища. Валидации формата нет: токены — непрозрачные строки.
//
// Семантика Set:
//   - оба значения пустые — пара удаляется целиком (эквивалент Clear);
//   - пустой access или refresh при непустом втором — соответствующий ключ
//     остаётся нетронутым: так сервер может ротировать только access-токен,
//     не отзывая refresh.
type Tokens struct {
	st store.Store
}

func NewTokens(st store.Store) *Tokens {
	return &Tokens{st: st}
}

func (t *Tokens) Access() string  { return t.st.Get(store.KeyAccessToken) }
func (t *Tokens) Refresh() string { return t.st.Get(store.KeyRefreshToken) }

func (t *Tokens) Set(access, refresh string) error {
	if access == "" && refresh == "" {
		return t.Clear()
	}

	if access != "" {
		if err := t.st.Set(store.KeyAccessToken, access); err != nil {
			return err
		}
	}

	if refresh != "" {
		if err := t.st.Set(store.KeyRefreshToken, refresh); err != nil {
			return err
		}
	}

	return nil
}

// Clear удаляет оба ключа; состояние — "не аутентифицирован".
func (t *Tokens) Clear() error {
	if err := t.st.Delete(store.KeyAccessToken); err != nil {
		return err
	}

	return t.st.Delete(store.KeyRefreshToken)
}

// Authenticated — есть ли сохранённый access-токен.
func (t *Tokens) Authenticated() bool { return t.Access() != "" }

// ExpiresAt достаёт exp-клейм текущего access-токена без проверки подписи
// (подпись проверяет сервер; клиенту срок нужен только для индикации).
// Второй результат false, если токена нет или клейм не читается.
func (t *Tokens) ExpiresAt() (time.Time, bool) {
	raw := t.Access()
	if raw == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}
