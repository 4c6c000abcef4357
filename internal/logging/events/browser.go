package events

import "github.com/atomicstack/overlaykit/internal/logging"

type BrowserTracer struct{}

type CommandTracer struct{}

var (
	Browser = BrowserTracer{}
	Command = CommandTracer{}
)

func (BrowserTracer) Request(path string, seq uint64) {
	logging.Trace("browser.request", map[string]interface{}{"path": path, "seq": seq})
}

func (BrowserTracer) Response(path string, seq uint64, entries int) {
	logging.Trace("browser.response", map[string]interface{}{"path": path, "seq": seq, "entries": entries})
}

func (BrowserTracer) Stale(path string, seq uint64) {
	logging.Trace("browser.stale", map[string]interface{}{"path": path, "seq": seq})
}

func (BrowserTracer) Duplicate(path string, seq uint64) {
	logging.Trace("browser.duplicate", map[string]interface{}{"path": path, "seq": seq})
}

func (BrowserTracer) Reload(path string, entries int) {
	logging.Trace("browser.reload", map[string]interface{}{"path": path, "entries": entries})
}

func (BrowserTracer) Chosen(path string) {
	logging.Trace("browser.chosen", map[string]interface{}{"path": path})
}

func (BrowserTracer) Submit(path string) {
	logging.Trace("browser.submit", map[string]interface{}{"path": path})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
