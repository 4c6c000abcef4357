package events

import "github.com/atomicstack/overlaykit/internal/logging"

type ComboboxTracer struct{}

var Combobox = ComboboxTracer{}

func (ComboboxTracer) Focus(id string) {
	logging.Trace("combobox.focus", map[string]interface{}{"combobox": id})
}

func (ComboboxTracer) BlurScheduled(id string, token uint64) {
	logging.Trace("combobox.blur-scheduled", map[string]interface{}{"combobox": id, "token": token})
}

func (ComboboxTracer) BlurApplied(id string) {
	logging.Trace("combobox.blur", map[string]interface{}{"combobox": id})
}

func (ComboboxTracer) BlurDiscarded(id string, token uint64, reason string) {
	logging.Trace("combobox.blur-discarded", map[string]interface{}{"combobox": id, "token": token, "reason": reason})
}

func (ComboboxTracer) Highlight(id string, index int) {
	logging.Trace("combobox.highlight", map[string]interface{}{"combobox": id, "index": index})
}

func (ComboboxTracer) Filter(id, text string) {
	logging.Trace("combobox.filter", map[string]interface{}{"combobox": id, "text": text})
}

func (ComboboxTracer) Toggle(id, item string, selected bool) {
	logging.Trace("combobox.toggle", map[string]interface{}{"combobox": id, "item": item, "selected": selected})
}

func (ComboboxTracer) Create(id, name string) {
	logging.Trace("combobox.create", map[string]interface{}{"combobox": id, "name": name})
}

func (ComboboxTracer) LateResolve(id string) {
	logging.Trace("combobox.late-resolve", map[string]interface{}{"combobox": id})
}
