package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// dateLayout — единый формат дат таблицы и выгрузок.
const dateLayout = "02/01/2006"

// CellFor рендерит ячейку строки row в колонке col.
// Соответствие тип-поведение закрыто: text, number, date, currency, status.
func (m *Model) CellFor(row Row, col Column) Cell {
	if col.Formatter != nil {
		return Cell{Text: col.Formatter(row)}
	}

	v := row[col.Field]

	switch col.Type {
	case TypeCurrency:
		return Cell{
			Text:  FormatCurrency(m.symbol, v),
			Align: AlignRight,
		}
	case TypeNumber:
		d, ok := toDecimal(v)
		if !ok {
			return Cell{Text: "", Align: AlignRight}
		}

		return Cell{Text: d.String(), Align: AlignRight}
	case TypeDate:
		return m.dateCell(v)
	case TypeStatus:
		badge := StatusBadge(v)
		return Cell{Text: badge.Label, Color: badge.Color}
	default:
		return Cell{Text: asText(v)}
	}
}

// dateCell: сегодняшняя дата и просроченная подсвечиваются как два
// взаимоисключающих состояния; сегодняшняя выигрывает.
func (m *Model) dateCell(v any) Cell {
	t, ok := parseDate(v)
	if !ok {
		return Cell{Text: "-"}
	}

	cell := Cell{Text: t.Format(dateLayout)}

	now := m.now()
	switch {
	case sameDay(t, now):
		cell.State = StateToday
	case t.Before(now):
		cell.State = StatePastDue
	}

	return cell
}

// FormatCurrency — денежный формат таблицы: символ, группировка разрядов,
// ровно два знака после запятой. nil и нечисловые значения рендерятся
// как ноль.
func FormatCurrency(symbol string, v any) string {
	d, ok := toDecimal(v)
	if !ok {
		d = decimal.Zero
	}

	return symbol + groupThousands(d.StringFixed(2))
}

// groupThousands вставляет разделители тысяч в строку вида "-1234567.89".
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String()
	if fracPart != "" {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}

	return out
}

// Badge — метка и цвет статуса.
type Badge struct {
	Label string
	Color Color
}

// StatusBadge — закрытое соответствие статусов меткам и цветам.
// Неизвестный статус показывается нейтрально своим сырым значением,
// пустой — как "Unknown".
func StatusBadge(v any) Badge {
	raw := asText(v)

	switch strings.ToLower(raw) {
	case "paid":
		return Badge{Label: "Paid", Color: ColorSuccess}
	case "pending":
		return Badge{Label: "Pending", Color: ColorWarning}
	case "partial":
		return Badge{Label: "Partial", Color: ColorProcessing}
	case "overdue":
		return Badge{Label: "Overdue", Color: ColorError}
	case "active":
		return Badge{Label: "Active", Color: ColorSuccess}
	case "inactive":
		return Badge{Label: "Inactive", Color: ColorDefault}
	case "":
		return Badge{Label: "Unknown", Color: ColorDefault}
	default:
		return Badge{Label: raw, Color: ColorDefault}
	}
}

// asText — нейтральное текстовое представление значения; nil — пустая строка.
func asText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return decimal.NewFromFloat(x).String()
	case decimal.Decimal:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}
