// tui — терминальный интерфейс консоли поверх tview.
//
// Слой тонкий: вся логика таблиц живёт в grid, выгрузок — в export;
// здесь только раскраска ячеек, клавиатура и навигация по экранам.
package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pribylovaa/go-shop-console/internal/grid"
	"github.com/pribylovaa/go-shop-console/internal/store"
)

// Theme — режим оформления; хранится под пользовательским ключом состояния.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// LoadTheme читает сохранённый режим; по умолчанию — тёмный.
func LoadTheme(st store.Store) Theme {
	if Theme(st.Get(store.KeyThemeMode)) == ThemeLight {
		return ThemeLight
	}

	return ThemeDark
}

// SaveTheme сохраняет выбранный режим.
func SaveTheme(st store.Store, t Theme) error {
	return st.Set(store.KeyThemeMode, string(t))
}

// Toggle переключает режим.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}

	return ThemeDark
}

// text — базовый цвет текста темы.
func (t Theme) text() tcell.Color {
	if t == ThemeLight {
		return tcell.ColorBlack
	}

	return tcell.ColorWhite
}

// header — цвет шапки таблицы.
func (t Theme) header() tcell.Color {
	return tcell.ColorYellow
}

// cellColor переводит состояние и цветовой класс ячейки в цвет терминала.
// Состояние даты приоритетнее статусного цвета: они не пересекаются по
// типам колонок.
func (t Theme) cellColor(c grid.Cell) tcell.Color {
	switch c.State {
	case grid.StateToday:
		return tcell.ColorBlue
	case grid.StatePastDue:
		return tcell.ColorRed
	}

	switch c.Color {
	case grid.ColorSuccess:
		return tcell.ColorGreen
	case grid.ColorWarning:
		return tcell.ColorYellow
	case grid.ColorProcessing:
		return tcell.ColorAqua
	case grid.ColorError:
		return tcell.ColorRed
	case grid.ColorDefault:
		return tcell.ColorGray
	}

	return t.text()
}
