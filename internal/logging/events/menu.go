package events

import "github.com/atomicstack/overlaykit/internal/logging"

type MenuTracer struct{}

type FilterTracer struct{}

var (
	Menu   = MenuTracer{}
	Filter = FilterTracer{}
)

func (MenuTracer) Children(menuID, title string, count int) {
	logging.Trace("menu.children", map[string]interface{}{"menu": menuID, "title": title, "count": count})
}

func (MenuTracer) Back(menuID string) {
	logging.Trace("menu.back", map[string]interface{}{"menu": menuID})
}

func (MenuTracer) Navigate(menuID, url string) {
	logging.Trace("menu.navigate", map[string]interface{}{"menu": menuID, "url": url})
}

func (MenuTracer) Cursor(listID string, cursor int) {
	logging.Trace("menu.cursor", map[string]interface{}{"list": listID, "cursor": cursor})
}

func (FilterTracer) Cleared(listID string) {
	logging.Trace("filter.clear", map[string]interface{}{"list": listID})
}

func (FilterTracer) Append(listID, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"list": listID, "filter": filter})
}

func (FilterTracer) Backspace(listID, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"list": listID, "filter": filter})
}
