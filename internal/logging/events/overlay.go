package events

import "github.com/atomicstack/overlaykit/internal/logging"

type OverlayTracer struct{}

type TriggerTracer struct{}

var (
	Overlay = OverlayTracer{}
	Trigger = TriggerTracer{}
)

func (OverlayTracer) Listen(hostID string, listener uint64) {
	logging.Trace("overlay.listen", map[string]interface{}{"host": hostID, "listener": listener})
}

func (OverlayTracer) Remove(hostID string, listener uint64) {
	logging.Trace("overlay.remove", map[string]interface{}{"host": hostID, "listener": listener})
}

func (OverlayTracer) Check(hostID, variant string, path []string) {
	logging.Trace("overlay.check", map[string]interface{}{"host": hostID, "variant": variant, "path": path})
}

func (OverlayTracer) Exit(hostID, variant string) {
	logging.Trace("overlay.exit", map[string]interface{}{"host": hostID, "variant": variant})
}

func (OverlayTracer) AnchorMissing(hostID, anchor string) {
	logging.Trace("overlay.anchor-missing", map[string]interface{}{"host": hostID, "anchor": anchor})
}

func (TriggerTracer) Open(id string, x, y int) {
	logging.Trace("trigger.open", map[string]interface{}{"trigger": id, "x": x, "y": y})
}

func (TriggerTracer) Close(id string) {
	logging.Trace("trigger.close", map[string]interface{}{"trigger": id})
}
