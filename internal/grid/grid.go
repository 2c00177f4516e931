// grid — табличная модель представления: описатели колонок, закрытое
// соответствие "тип колонки - рендер ячейки", действия по строкам,
// быстрый поиск и поколоночные фильтры/сортировка.
//
// Модель ничего не знает ни о терминале, ни о форматах выгрузки: она отдаёт
// готовые ячейки (текст + выравнивание + визуальное состояние), а слои tui
// и export решают, как их показать или сериализовать.
package grid

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Type — закрытый набор типов колонок.
type Type string

const (
	TypeText     Type = "text"
	TypeNumber   Type = "number"
	TypeDate     Type = "date"
	TypeCurrency Type = "currency"
	TypeStatus   Type = "status"
)

// Column — описатель колонки: определяет и отображение, и выгрузку поля.
// Неизменяем в течение жизни таблицы.
type Column struct {
	Field      string
	HeaderName string
	Width      int
	Type       Type
	Editable   bool
	Sortable   bool
	Filterable bool

	// Formatter, если задан, полностью заменяет типовой рендер текста.
	Formatter func(Row) string
}

// Col — колонка с умолчаниями оригинальной таблицы:
// сортировка и фильтр включены, тип — text.
func Col(field, header string, typ Type) Column {
	return Column{
		Field:      field,
		HeaderName: header,
		Type:       typ,
		Sortable:   true,
		Filterable: true,
	}
}

// Row — непрозрачная запись: таблица полагается только на доступ по имени поля.
type Row map[string]any

// RowsOf приводит срез доменных структур к строкам таблицы через их
// JSON-представление — то же, что приходит с провода.
func RowsOf(v any) ([]Row, error) {
	const op = "grid/RowsOf"

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s: marshal: %w", op, err)
	}

	var rows []Row
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("%s: unmarshal: %w", op, err)
	}

	return rows, nil
}

// Align — выравнивание текста ячейки.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// State — визуальное состояние ячейки. Same-day и past-due взаимно
// исключены: сегодняшняя дата никогда не считается прошедшей.
type State int

const (
	StateNormal State = iota
	StateToday
	StatePastDue
)

// Color — цветовой класс бейджа статуса.
type Color string

const (
	ColorSuccess    Color = "success"
	ColorWarning    Color = "warning"
	ColorProcessing Color = "processing"
	ColorError      Color = "error"
	ColorDefault    Color = "default"
)

// Cell — готовая к отображению ячейка.
type Cell struct {
	Text  string
	Align Align
	State State
	Color Color
}

// toDecimal приводит значение ячейки к decimal. Второй результат false
// для nil и нечисловых значений.
func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case nil:
		return decimal.Decimal{}, false
	case decimal.Decimal:
		return x, true
	case float64:
		return decimal.NewFromFloat(x), true
	case float32:
		return decimal.NewFromFloat32(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(x)
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

// parseDate понимает форматы дат, которые реально отдаёт бэкенд.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// sameDay — совпадение календарных суток.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}
