package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pribylovaa/go-shop-console/internal/grid"
)

const sheetName = "Data"

// minColWidth — нижняя граница ширины колонки листа.
const minColWidth = 15

// writeExcel собирает единственный лист: заголовок + данные.
// Валютные ячейки — нативные числа с валютным числовым форматом
// (отсутствующее значение — числовой 0), даты — нативные date-ячейки.
// Ширина колонки — длина заголовка, но не уже minColWidth.
func (e *Engine) writeExcel(rows []grid.Row, cols []grid.Column, o Options) (string, error) {
	const op = "export/writeExcel"

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", fmt.Errorf("%s: rename sheet: %w", op, err)
	}

	for i, col := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return "", fmt.Errorf("%s: header cell: %w", op, err)
		}

		if err := f.SetCellValue(sheetName, cell, col.HeaderName); err != nil {
			return "", fmt.Errorf("%s: header value: %w", op, err)
		}

		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return "", fmt.Errorf("%s: column name: %w", op, err)
		}

		width := float64(len(col.HeaderName))
		if width < minColWidth {
			width = minColWidth
		}

		if err := f.SetColWidth(sheetName, name, name, width); err != nil {
			return "", fmt.Errorf("%s: column width: %w", op, err)
		}
	}

	for r, row := range rows {
		for c, col := range cols {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return "", fmt.Errorf("%s: cell name: %w", op, err)
			}

			if err := f.SetCellValue(sheetName, cell, e.excelValue(row, col)); err != nil {
				return "", fmt.Errorf("%s: cell value: %w", op, err)
			}
		}
	}

	if len(rows) > 0 {
		if err := e.styleCurrency(f, cols, len(rows)); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	path := e.stampedPath(o.Filename, "xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("%s: save %q: %w", op, path, err)
	}

	return path, nil
}

// excelValue — предобработка значения под нативные типы ячеек листа.
func (e *Engine) excelValue(row grid.Row, col grid.Column) any {
	v := row[col.Field]

	switch col.Type {
	case grid.TypeCurrency:
		d, ok := toDecimal(v)
		if !ok {
			return 0.0
		}

		out, _ := d.Float64()
		return out
	case grid.TypeDate:
		t, ok := parseDate(v)
		if !ok {
			return ""
		}

		return t
	default:
		return rawText(v)
	}
}

// styleCurrency навешивает валютный числовой формат на колонки типа currency.
func (e *Engine) styleCurrency(f *excelize.File, cols []grid.Column, nRows int) error {
	numFmt := fmt.Sprintf("%q#,##0.00", e.symbol)

	styleID, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("currency style: %w", err)
	}

	for i, col := range cols {
		if col.Type != grid.TypeCurrency {
			continue
		}

		top, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return fmt.Errorf("currency range: %w", err)
		}

		bottom, err := excelize.CoordinatesToCellName(i+1, nRows+1)
		if err != nil {
			return fmt.Errorf("currency range: %w", err)
		}

		if err := f.SetCellStyle(sheetName, top, bottom, styleID); err != nil {
			return fmt.Errorf("currency style apply: %w", err)
		}
	}

	return nil
}
