package grid

import (
	"sort"
	"strings"
	"time"
)

// Model — состояние одной таблицы: данные, фильтры, сортировка, действия.
// Колонки фиксируются при создании и дальше не меняются.
type Model struct {
	columns []Column
	actions []Action

	rows []Row

	quick      string
	colFilters map[string]string

	sortField string
	sortAsc   bool

	symbol string
	now    func() time.Time
}

// Option — настройка модели при создании.
type Option func(*Model)

// WithActions добавляет действия по строкам; колонка действий существует
// только при непустом наборе.
func WithActions(actions ...Action) Option {
	return func(m *Model) { m.actions = actions }
}

// WithCurrency задаёт символ валюты для колонок типа currency.
func WithCurrency(symbol string) Option {
	return func(m *Model) { m.symbol = symbol }
}

// WithNow подменяет часы (подсветка дат, тесты).
func WithNow(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

func New(columns []Column, opts ...Option) *Model {
	m := &Model{
		columns:    columns,
		colFilters: make(map[string]string),
		symbol:     "₹",
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Model) Columns() []Column { return m.columns }
func (m *Model) Actions() []Action { return m.actions }

// HasActions — нужна ли колонка действий.
func (m *Model) HasActions() bool { return len(m.actions) > 0 }

func (m *Model) SetRows(rows []Row) { m.rows = rows }

// SetQuickFilter устанавливает сквозной текстовый фильтр по всем видимым полям.
func (m *Model) SetQuickFilter(text string) { m.quick = text }

func (m *Model) QuickFilter() string { return m.quick }

// SetColumnFilter включает фильтр-подстроку по колонке; колонка с
// выключенной фильтрацией игнорируется. Пустой текст снимает фильтр.
func (m *Model) SetColumnFilter(field, text string) {
	col, ok := m.column(field)
	if !ok || !col.Filterable {
		return
	}

	if text == "" {
		delete(m.colFilters, field)
		return
	}

	m.colFilters[field] = text
}

// ColumnFilters — текущая модель поколоночных фильтров.
func (m *Model) ColumnFilters() map[string]string {
	out := make(map[string]string, len(m.colFilters))
	for k, v := range m.colFilters {
		out[k] = v
	}

	return out
}

// ClearFilters сбрасывает все поколоночные фильтры и текст быстрого поиска.
func (m *Model) ClearFilters() {
	m.colFilters = make(map[string]string)
	m.quick = ""
}

// SetSort включает сортировку по колонке; несортируемая колонка игнорируется.
func (m *Model) SetSort(field string, asc bool) {
	col, ok := m.column(field)
	if !ok || !col.Sortable {
		return
	}

	m.sortField = field
	m.sortAsc = asc
}

// ToggleSort: нет сортировки -> по возрастанию -> по убыванию -> снова по
// возрастанию.
func (m *Model) ToggleSort(field string) {
	if m.sortField == field {
		m.sortAsc = !m.sortAsc
		return
	}

	m.SetSort(field, true)
}

// VisibleRows — строки после быстрого поиска, поколоночных фильтров
// и сортировки. Исходный порядок данных не мутируется.
func (m *Model) VisibleRows() []Row {
	out := make([]Row, 0, len(m.rows))

	quick := strings.ToLower(strings.TrimSpace(m.quick))

	for _, row := range m.rows {
		if quick != "" && !m.matchQuick(row, quick) {
			continue
		}

		if !m.matchColumnFilters(row) {
			continue
		}

		out = append(out, row)
	}

	if m.sortField != "" {
		m.sortRows(out)
	}

	return out
}

// matchQuick ищет подстроку в отрендеренном тексте любого видимого поля.
func (m *Model) matchQuick(row Row, quick string) bool {
	for _, col := range m.columns {
		text := strings.ToLower(m.CellFor(row, col).Text)
		if strings.Contains(text, quick) {
			return true
		}
	}

	return false
}

func (m *Model) matchColumnFilters(row Row) bool {
	for field, want := range m.colFilters {
		col, ok := m.column(field)
		if !ok {
			continue
		}

		text := strings.ToLower(m.CellFor(row, col).Text)
		if !strings.Contains(text, strings.ToLower(want)) {
			return false
		}
	}

	return true
}

func (m *Model) sortRows(rows []Row) {
	col, ok := m.column(m.sortField)
	if !ok {
		return
	}

	sort.SliceStable(rows, func(i, j int) bool {
		less := m.less(rows[i], rows[j], col)
		if m.sortAsc {
			return less
		}

		return m.less(rows[j], rows[i], col)
	})
}

// less сравнивает значения с учётом типа колонки: числа и валюта — по
// величине, даты — по времени, остальное — лексикографически.
func (m *Model) less(a, b Row, col Column) bool {
	switch col.Type {
	case TypeNumber, TypeCurrency:
		da, aok := toDecimal(a[col.Field])
		db, bok := toDecimal(b[col.Field])
		if aok && bok {
			return da.LessThan(db)
		}
		return !aok && bok
	case TypeDate:
		ta, aok := parseDate(a[col.Field])
		tb, bok := parseDate(b[col.Field])
		if aok && bok {
			return ta.Before(tb)
		}
		return !aok && bok
	default:
		return asText(a[col.Field]) < asText(b[col.Field])
	}
}

// Invoke запускает действие kind для строки; возвращает false, если действие
// не настроено или заблокировано предикатом строки.
func (m *Model) Invoke(kind ActionKind, row Row) bool {
	for _, a := range m.actions {
		if a.Kind == kind {
			return a.Invoke(row)
		}
	}

	return false
}

func (m *Model) column(field string) (Column, bool) {
	for _, col := range m.columns {
		if col.Field == field {
			return col, true
		}
	}

	return Column{}, false
}
