// export — выгрузка видимых строк таблицы в CSV, xlsx и PDF.
//
// Значения проходят общую предобработку по описателям колонок, чтобы
// отображаемое и выгружаемое совпадали: валюта — ровно два знака после
// запятой, даты — единый формат таблицы, пустые значения — пустая строка.
// Файл пишется в каталог выгрузок, имя получает локальную отметку времени.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pribylovaa/go-shop-console/internal/grid"
)

// Format — целевой формат выгрузки.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
)

// Options — параметры одной выгрузки; нигде не сохраняются.
type Options struct {
	Filename string
	Format   Format
	// Columns — необязательное подмножество полей; пустой срез — все колонки.
	Columns []string
	Title   string
}

// Engine пишет выгрузки в каталог dir.
type Engine struct {
	dir    string
	symbol string
	now    func() time.Time
}

// Option — настройка движка.
type Option func(*Engine)

// WithCurrency задаёт символ валюты для xlsx-формата ячеек.
func WithCurrency(symbol string) Option {
	return func(e *Engine) { e.symbol = symbol }
}

// WithNow подменяет локальные часы (детерминированные имена в тестах).
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(dir string, opts ...Option) *Engine {
	e := &Engine{
		dir:    dir,
		symbol: "₹",
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Export сериализует строки в запрошенный формат и возвращает путь к файлу.
func (e *Engine) Export(rows []grid.Row, columns []grid.Column, o Options) (string, error) {
	const op = "export/Export"

	if o.Filename == "" {
		return "", fmt.Errorf("%s: empty filename", op)
	}

	cols := selectColumns(columns, o.Columns)
	if len(cols) == 0 {
		return "", fmt.Errorf("%s: no columns to export", op)
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("%s: ensure dir: %w", op, err)
	}

	switch o.Format {
	case FormatCSV:
		return e.writeCSV(rows, cols, o)
	case FormatExcel:
		return e.writeExcel(rows, cols, o)
	case FormatPDF:
		return e.writePDF(rows, cols, o)
	default:
		return "", fmt.Errorf("%s: unknown format %q", op, o.Format)
	}
}

// selectColumns сужает набор колонок до запрошенных полей, сохраняя порядок
// описателей.
func selectColumns(columns []grid.Column, fields []string) []grid.Column {
	if len(fields) == 0 {
		return columns
	}

	want := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		want[f] = struct{}{}
	}

	out := make([]grid.Column, 0, len(columns))
	for _, col := range columns {
		if _, ok := want[col.Field]; ok {
			out = append(out, col)
		}
	}

	return out
}

// stampedPath — "{имя}_{YYYYMMDD_HHMMSS}{AM|PM}.{расширение}" внутри каталога
// выгрузок. Время локальное, часы двенадцатичасовые.
func (e *Engine) stampedPath(base, ext string) string {
	return filepath.Join(e.dir, fmt.Sprintf("%s_%s.%s", base, Timestamp(e.now()), ext))
}

// Timestamp форматирует отметку времени имени файла: дата и время без
// разделителей внутри частей, маркер AM/PM в конце.
func Timestamp(t time.Time) string {
	period := "AM"
	if t.Hour() >= 12 {
		period = "PM"
	}

	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}

	return fmt.Sprintf("%04d%02d%02d_%02d%02d%02d%s",
		t.Year(), int(t.Month()), t.Day(),
		h, t.Minute(), t.Second(), period,
	)
}

// textValue — текстовая предобработка ячейки для CSV и PDF.
// Валюта — два знака после запятой (пустое значение — "0.00", как ноль в
// таблице), дата — формат таблицы, остальное — сырой текст или пустая строка.
func textValue(row grid.Row, col grid.Column) string {
	v := row[col.Field]

	switch col.Type {
	case grid.TypeCurrency:
		d, ok := toDecimal(v)
		if !ok {
			d = decimal.Zero
		}

		return d.StringFixed(2)
	case grid.TypeDate:
		t, ok := parseDate(v)
		if !ok {
			return ""
		}

		return t.Format("02/01/2006")
	default:
		return rawText(v)
	}
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case nil:
		return decimal.Decimal{}, false
	case decimal.Decimal:
		return x, true
	case float64:
		return decimal.NewFromFloat(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case string:
		d, err := decimal.NewFromString(x)
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

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

func rawText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return decimal.NewFromFloat(x).String()
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", x)
	}
}
