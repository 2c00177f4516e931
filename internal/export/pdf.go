package export

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/pribylovaa/go-shop-console/internal/grid"
)

// Геометрия и палитра таблицы PDF (как в исходных печатных отчётах).
const (
	pdfMargin     = 10.0
	pdfPageWidth  = 210.0 // A4, мм
	pdfHeaderH    = 7.0
	pdfRowH       = 6.0
	pdfTitleSize  = 16.0
	pdfTableSize  = 8.0
	pdfCellMargin = 2.0
)

// writePDF: необязательный заголовок, таблица с залитой шапкой (белый жирный
// текст), чередующейся заливкой строк и правым выравниванием валютных
// колонок. Разбиение на страницы автоматическое.
func (e *Engine) writePDF(rows []grid.Row, cols []grid.Column, o Options) (string, error) {
	const op = "export/writePDF"

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetCellMargin(pdfCellMargin)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if o.Title != "" {
		pdf.SetFont("Helvetica", "B", pdfTitleSize)
		pdf.CellFormat(0, 10, tr(o.Title), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	colW := (pdfPageWidth - 2*pdfMargin) / float64(len(cols))

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", pdfTableSize)
		pdf.SetFillColor(66, 139, 202)
		pdf.SetTextColor(255, 255, 255)

		for _, col := range cols {
			pdf.CellFormat(colW, pdfHeaderH, tr(col.HeaderName), "1", 0, "L", true, 0, "")
		}

		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", pdfTableSize)
		pdf.SetTextColor(0, 0, 0)
	}

	drawHeader()

	_, pageH := pdf.GetPageSize()
	for i, row := range rows {
		// Перед переполнением страницы — новая страница с повторной шапкой.
		if pdf.GetY()+pdfRowH > pageH-pdfMargin {
			pdf.AddPage()
			drawHeader()
		}

		banded := i%2 == 1
		pdf.SetFillColor(245, 245, 245)

		for _, col := range cols {
			align := "L"
			if col.Type == grid.TypeCurrency {
				align = "R"
			}

			pdf.CellFormat(colW, pdfRowH, tr(textValue(row, col)), "1", 0, align, banded, 0, "")
		}

		pdf.Ln(-1)
	}

	path := e.stampedPath(o.Filename, "pdf")
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("%s: save %q: %w", op, path, err)
	}

	return path, nil
}
