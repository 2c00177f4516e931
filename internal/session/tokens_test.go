package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-shop-console/internal/store"
)

func TestTokens_Set_Rotation(t *testing.T) {
	st := store.NewMemory()
	tk := NewTokens(st)

	require.NoError(t, tk.Set("access-1", "refresh-1"))
	require.Equal(t, "access-1", tk.Access())
	require.Equal(t, "refresh-1", tk.Refresh())

	t.Run("только access: refresh остаётся прежним", func(t *testing.T) {
		require.NoError(t, tk.Set("access-2", ""))
		require.Equal(t, "access-2", tk.Access())
		require.Equal(t, "refresh-1", tk.Refresh())
	})

	t.Run("только refresh: access остаётся прежним", func(t *testing.T) {
		require.NoError(t, tk.Set("", "refresh-2"))
		require.Equal(t, "access-2", tk.Access())
		require.Equal(t, "refresh-2", tk.Refresh())
	})

	t.Run("обе строки пустые: пара удаляется", func(t *testing.T) {
		require.NoError(t, tk.Set("", ""))
		require.Empty(t, tk.Access())
		require.Empty(t, tk.Refresh())
	})
}

func TestTokens_Clear_And_Authenticated(t *testing.T) {
	st := store.NewMemory()
	tk := NewTokens(st)

	require.False(t, tk.Authenticated())

	require.NoError(t, tk.Set("access", "refresh"))
	require.True(t, tk.Authenticated())

	require.NoError(t, tk.Clear())
	require.False(t, tk.Authenticated())
	require.Empty(t, st.Get(store.KeyAccessToken))
	require.Empty(t, st.Get(store.KeyRefreshToken))
}

func TestTokens_ExpiresAt(t *testing.T) {
	st := store.NewMemory()
	tk := NewTokens(st)

	t.Run("нет токена", func(t *testing.T) {
		_, ok := tk.ExpiresAt()
		require.False(t, ok)
	})

	t.Run("не-JWT строка", func(t *testing.T) {
		require.NoError(t, tk.Set("opaque-token", ""))

		_, ok := tk.ExpiresAt()
		require.False(t, ok)
	})

	t.Run("валидный exp-клейм", func(t *testing.T) {
		exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "user-1",
			"exp": exp.Unix(),
		})
		signed, err := token.SignedString([]byte("unit-test-secret"))
		require.NoError(t, err)

		require.NoError(t, tk.Set(signed, ""))

		got, ok := tk.ExpiresAt()
		require.True(t, ok)
		require.True(t, got.Equal(exp))
	})

	t.Run("JWT без exp", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "user-1",
		})
		signed, err := token.SignedString([]byte("unit-test-secret"))
		require.NoError(t, err)

		require.NoError(t, tk.Set(signed, ""))

		_, ok := tk.ExpiresAt()
		require.False(t, ok)
	})
}
