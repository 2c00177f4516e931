package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/pribylovaa/go-shop-console/internal/grid"
)

// writeCSV: строка заголовков + строки данных; каждое поле в двойных
// кавычках (внутренние кавычки удваиваются), поля через запятую, строки
// через \n. encoding/csv не подходит: он не умеет кавычить безусловно.
func (e *Engine) writeCSV(rows []grid.Row, cols []grid.Column, o Options) (string, error) {
	const op = "export/writeCSV"

	var b strings.Builder

	writeRecord := func(fields []string) {
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}

			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(f, `"`, `""`))
			b.WriteByte('"')
		}

		b.WriteByte('\n')
	}

	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.HeaderName
	}
	writeRecord(header)

	record := make([]string, len(cols))
	for _, row := range rows {
		for i, col := range cols {
			record[i] = textValue(row, col)
		}
		writeRecord(record)
	}

	path := e.stampedPath(o.Filename, "csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("%s: write %q: %w", op, path, err)
	}

	return path, nil
}
