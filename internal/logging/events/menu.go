package events

import "github.com/atomicstack/rofi-menu-control/internal/logging"

type MenuTracer struct{}

var Menu = MenuTracer{}

func (MenuTracer) Built(id string, items int) {
	logging.Trace("menu.built", map[string]any{"id": id, "items": items})
}

func (MenuTracer) Rendered(id string, rows int) {
	logging.Trace("menu.rendered", map[string]any{"id": id, "rows": rows})
}

func (MenuTracer) Selected(menuID, itemID string) {
	logging.Trace("menu.selected", map[string]any{"menu": menuID, "item": itemID})
}

func (MenuTracer) SelectionMiss(menuID, itemID string) {
	logging.Trace("menu.selection-miss", map[string]any{"menu": menuID, "item": itemID})
}

func (MenuTracer) UserInput(menuID, input string) {
	logging.Trace("menu.user-input", map[string]any{"menu": menuID, "input": input})
}

func (MenuTracer) Operation(code string) {
	logging.Trace("menu.operation", map[string]any{"code": code})
}
