package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/pribylovaa/go-shop-console/internal/cache"
	"github.com/pribylovaa/go-shop-console/internal/client"
	"github.com/pribylovaa/go-shop-console/internal/export"
	"github.com/pribylovaa/go-shop-console/internal/grid"
	"github.com/pribylovaa/go-shop-console/internal/store"
)

// App — корневое приложение консоли: экраны ресурсов, поиск, выгрузки.
type App struct {
	ctx context.Context

	api      *client.Client
	exporter *export.Engine
	state    store.Store
	data     *cache.TTL

	theme   Theme
	symbol  string
	screens []screen
	current int
	model   *grid.Model
	rows    []grid.Row

	tv     *tview.Application
	pages  *tview.Pages
	table  *tview.Table
	search *tview.InputField
	status *tview.TextView
}

// NewApp собирает интерфейс. Сетевые вызовы идут через ctx.
func NewApp(ctx context.Context, api *client.Client, exporter *export.Engine, state store.Store, data *cache.TTL, currency string) *App {
	a := &App{
		ctx:      ctx,
		api:      api,
		exporter: exporter,
		state:    state,
		data:     data,
		theme:    LoadTheme(state),
		symbol:   currency,
		screens:  screens(api),
	}

	// Между инвалидациями наблюдателя экраны открываются из кэша.
	for i := range a.screens {
		a.screens[i].load = cached(data, a.screens[i].title, a.screens[i].load)
	}

	a.tv = tview.NewApplication()
	a.table = tview.NewTable().
		SetBorders(false).
		SetFixed(1, 0).
		SetSelectable(true, false)

	a.search = tview.NewInputField().SetLabel("search: ")
	a.search.SetChangedFunc(func(text string) {
		if a.model != nil {
			a.model.SetQuickFilter(text)
			a.renderTable()
		}
	})
	a.search.SetDoneFunc(func(tcell.Key) {
		a.tv.SetFocus(a.table)
	})

	a.status = tview.NewTextView().SetDynamicColors(true)

	a.pages = tview.NewPages()

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.search, 1, 0, false).
		AddItem(a.table, 0, 1, true).
		AddItem(a.status, 1, 0, false)

	a.pages.AddPage("main", layout, true, true)

	a.tv.SetInputCapture(a.handleKey)
	a.tv.SetRoot(a.pages, true)

	return a
}

// Run открывает первый экран и запускает событийный цикл терминала.
func (a *App) Run() error {
	if err := a.openScreen(0); err != nil {
		a.setStatus(fmt.Sprintf("load failed: %v", err))
	}

	return a.tv.Run()
}

// Stop завершает событийный цикл (вызывается при останове приложения).
func (a *App) Stop() { a.tv.Stop() }

// Notify выводит сообщение в строку статуса из внешних горутин
// (например, предупреждение о низких остатках от наблюдателя).
func (a *App) Notify(message string) {
	a.tv.QueueUpdateDraw(func() {
		a.setStatus(message)
	})
}

func (a *App) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	// Во время ввода поиска глобальные клавиши не перехватываются.
	if a.tv.GetFocus() == a.search {
		return ev
	}

	switch ev.Rune() {
	case 'q':
		a.tv.Stop()
		return nil
	case '/':
		a.tv.SetFocus(a.search)
		return nil
	case 'F':
		if a.model != nil {
			a.model.ClearFilters()
			a.search.SetText("")
			a.renderTable()
			a.setStatus("filters cleared")
		}
		return nil
	case 'r':
		a.data.Invalidate(a.screens[a.current].title)
		if err := a.openScreen(a.current); err != nil {
			a.setStatus(fmt.Sprintf("refresh failed: %v", err))
		}
		return nil
	case 'e':
		a.showExportMenu()
		return nil
	case 'p':
		a.invokeAction(grid.ActionPayment)
		return nil
	case 'd':
		a.invokeAction(grid.ActionDelete)
		return nil
	case 't':
		a.theme = a.theme.Toggle()
		if err := SaveTheme(a.state, a.theme); err != nil {
			a.setStatus(fmt.Sprintf("theme save failed: %v", err))
		}
		a.renderTable()
		return nil
	case ']':
		_ = a.openScreen((a.current + 1) % len(a.screens))
		return nil
	case '[':
		_ = a.openScreen((a.current - 1 + len(a.screens)) % len(a.screens))
		return nil
	}

	return ev
}

// openScreen загружает данные экрана idx и строит новую модель таблицы.
func (a *App) openScreen(idx int) error {
	sc := a.screens[idx]

	rows, err := sc.load(a.ctx)
	if err != nil {
		return err
	}

	a.current = idx
	a.rows = rows
	a.model = grid.New(sc.columns,
		grid.WithCurrency(a.symbol),
		grid.WithActions(a.gridActions(sc)...),
	)
	a.model.SetRows(rows)

	a.renderTable()
	a.setStatus(fmt.Sprintf("%s: %d rows  [/]search [F]clear [e]export [p]ay [d]elete [t]heme [q]uit", sc.title, len(rows)))

	return nil
}

// gridActions оборачивает доменные действия экрана: успешный вызов
// инвалидирует кэш экрана и перечитывает данные.
func (a *App) gridActions(sc screen) []grid.Action {
	out := make([]grid.Action, 0, len(sc.actions))

	for _, ra := range sc.actions {
		ra := ra
		out = append(out, grid.Action{
			Kind:     ra.kind,
			Tooltip:  ra.tooltip,
			Disabled: ra.disabled,
			Handler: func(row grid.Row) {
				if err := ra.run(a.ctx, row); err != nil {
					a.setStatus(fmt.Sprintf("%s failed: %v", ra.kind, err))
					return
				}

				a.data.Invalidate(sc.title)
				if err := a.openScreen(a.current); err != nil {
					a.setStatus(fmt.Sprintf("refresh failed: %v", err))
					return
				}

				a.setStatus(fmt.Sprintf("%s: done", ra.kind))
			},
		})
	}

	return out
}

// invokeAction запускает действие kind для выделенной строки таблицы.
func (a *App) invokeAction(kind grid.ActionKind) {
	if a.model == nil || !a.model.HasActions() {
		return
	}

	selected, _ := a.table.GetSelection()
	rows := a.model.VisibleRows()

	idx := selected - 1 // первая строка таблицы — шапка
	if idx < 0 || idx >= len(rows) {
		return
	}

	if !a.model.Invoke(kind, rows[idx]) {
		a.setStatus(fmt.Sprintf("%s is not available for this row", kind))
	}
}

// renderTable перерисовывает таблицу по видимым строкам модели.
func (a *App) renderTable() {
	a.table.Clear()

	sc := a.screens[a.current]

	for c, col := range sc.columns {
		a.table.SetCell(0, c, tview.NewTableCell(col.HeaderName).
			SetTextColor(a.theme.header()).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))
	}

	for r, row := range a.model.VisibleRows() {
		for c, col := range sc.columns {
			cell := a.model.CellFor(row, col)

			align := tview.AlignLeft
			if cell.Align == grid.AlignRight {
				align = tview.AlignRight
			}

			a.table.SetCell(r+1, c, tview.NewTableCell(cell.Text).
				SetTextColor(a.theme.cellColor(cell)).
				SetAlign(align))
		}
	}
}

// showExportMenu предлагает формат и выгружает видимые строки.
func (a *App) showExportMenu() {
	if a.model == nil {
		return
	}

	menu := tview.NewList().
		AddItem("CSV", "", 'c', func() { a.doExport(export.FormatCSV) }).
		AddItem("Excel", "", 'x', func() { a.doExport(export.FormatExcel) }).
		AddItem("PDF", "", 'p', func() { a.doExport(export.FormatPDF) }).
		AddItem("Cancel", "", 'q', func() { a.pages.RemovePage("export") })

	menu.SetBorder(true).SetTitle(" Export ")

	a.pages.AddPage("export", center(menu, 30, 10), true, true)
}

func (a *App) doExport(format export.Format) {
	a.pages.RemovePage("export")

	sc := a.screens[a.current]

	path, err := a.exporter.Export(a.model.VisibleRows(), sc.columns, export.Options{
		Filename: sc.filename,
		Format:   format,
		Title:    sc.title,
	})
	if err != nil {
		a.setStatus(fmt.Sprintf("export failed: %v", err))
		return
	}

	a.setStatus("exported: " + path)
}

func (a *App) setStatus(message string) {
	a.status.SetText(message)
}

// center помещает примитив в центр экрана.
func center(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 0, true).
			AddItem(nil, 0, 1, false), width, 0, true).
		AddItem(nil, 0, 1, false)
}
