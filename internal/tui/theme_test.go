package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-shop-console/internal/grid"
	"github.com/pribylovaa/go-shop-console/internal/store"
)

func TestTheme_LoadDefaultsToDark(t *testing.T) {
	st := store.NewMemory()
	require.Equal(t, ThemeDark, LoadTheme(st))
}

func TestTheme_SaveLoadRoundTrip(t *testing.T) {
	st := store.NewMemory()

	require.NoError(t, SaveTheme(st, ThemeLight))
	require.Equal(t, ThemeLight, LoadTheme(st))

	require.NoError(t, SaveTheme(st, ThemeDark))
	require.Equal(t, ThemeDark, LoadTheme(st))
}

func TestTheme_LoadIgnoresGarbageValue(t *testing.T) {
	st := store.NewMemory()
	require.NoError(t, st.Set(store.KeyThemeMode, "neon"))

	require.Equal(t, ThemeDark, LoadTheme(st))
}

func TestTheme_Toggle(t *testing.T) {
	require.Equal(t, ThemeLight, ThemeDark.Toggle())
	require.Equal(t, ThemeDark, ThemeLight.Toggle())
}

func TestTheme_CellColor(t *testing.T) {
	theme := ThemeDark

	t.Run("состояние даты приоритетнее цвета статуса", func(t *testing.T) {
		cell := grid.Cell{State: grid.StateToday, Color: grid.ColorError}
		require.Equal(t, tcell.ColorBlue, theme.cellColor(cell))

		cell = grid.Cell{State: grid.StatePastDue, Color: grid.ColorSuccess}
		require.Equal(t, tcell.ColorRed, theme.cellColor(cell))
	})

	t.Run("цвета статусов", func(t *testing.T) {
		require.Equal(t, tcell.ColorGreen, theme.cellColor(grid.Cell{Color: grid.ColorSuccess}))
		require.Equal(t, tcell.ColorYellow, theme.cellColor(grid.Cell{Color: grid.ColorWarning}))
		require.Equal(t, tcell.ColorAqua, theme.cellColor(grid.Cell{Color: grid.ColorProcessing}))
		require.Equal(t, tcell.ColorRed, theme.cellColor(grid.Cell{Color: grid.ColorError}))
	})

	t.Run("обычный текст по теме", func(t *testing.T) {
		require.Equal(t, tcell.ColorWhite, ThemeDark.cellColor(grid.Cell{}))
		require.Equal(t, tcell.ColorBlack, ThemeLight.cellColor(grid.Cell{}))
	})
}
