package events

import "github.com/atomicstack/overlaykit/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(reason string) {
	logging.Trace("app.stop", map[string]interface{}{"reason": reason})
}

func (AppTracer) Focus(target string) {
	logging.Trace("app.focus", map[string]interface{}{"target": target})
}

func (AppTracer) Editing(enabled bool) {
	logging.Trace("app.editing", map[string]interface{}{"enabled": enabled})
}

func (AppTracer) Press(x, y int, path []string) {
	logging.Trace("app.press", map[string]interface{}{"x": x, "y": y, "path": path})
}
