package grid

// ActionKind — закрытый набор действий по строке. Тегированные варианты
// вместо безымянных колбэков: набор перечислим и проверяем в тестах.
type ActionKind int

const (
	ActionEdit ActionKind = iota
	ActionDelete
	ActionPayment
	ActionView
)

func (k ActionKind) String() string {
	switch k {
	case ActionEdit:
		return "edit"
	case ActionDelete:
		return "delete"
	case ActionPayment:
		return "payment"
	case ActionView:
		return "view"
	default:
		return "unknown"
	}
}

// Action — действие по строке таблицы.
type Action struct {
	Kind    ActionKind
	Tooltip string
	// Handler вызывается с записью строки.
	Handler func(Row)
	// Disabled, если задан, запрещает действие для конкретной строки.
	Disabled func(Row) bool
}

// Enabled — доступно ли действие для строки.
func (a Action) Enabled(row Row) bool {
	return a.Disabled == nil || !a.Disabled(row)
}

// Invoke вызывает обработчик, если действие доступно для строки.
// Возвращает false, если действие было заблокировано предикатом.
func (a Action) Invoke(row Row) bool {
	if !a.Enabled(row) {
		return false
	}

	if a.Handler != nil {
		a.Handler(row)
	}

	return true
}
