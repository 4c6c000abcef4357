package ui

import (
	"github.com/atomicstack/overlaykit/internal/hit"
	"github.com/atomicstack/overlaykit/internal/overlay"
	"github.com/atomicstack/overlaykit/internal/theme"
)

// details is a toggle with an inline panel drawn in the page flow beneath
// it.
type details struct {
	id   string
	host *overlay.Host
}

func newDetails(id string, doc *overlay.Document) *details {
	d := &details{id: id}
	d.host = overlay.New(id+":panel", doc, overlay.Inline(), nil)
	d.host.SetParent(id)
	return d
}

func (d *details) toggleID() string { return d.id + ":toggle" }
func (d *details) closeID() string  { return d.id + ":close" }

func (d *details) IsOpen() bool { return d.host.IsOpen() }

func (d *details) Toggle() {
	if d.host.IsOpen() {
		d.host.Close()
		return
	}
	d.host.Open()
}

// Click handles a press routed to the details region.
func (d *details) Click(c overlay.Click) bool {
	target, ok := c.Path.Target()
	if !ok || target.ID != d.toggleID() {
		return c.Path.Contains(d.id)
	}
	// The press that just dismissed the panel must not reopen it.
	if !d.host.IsOpen() && c.Seq != 0 && d.host.LastDismiss() == c.Seq {
		return true
	}
	d.Toggle()
	return true
}

func (d *details) View(mk hit.Marker, focused bool, lines []string) string {
	style := styles.Trigger
	glyph := "▾"
	if d.host.IsOpen() || focused {
		style = styles.TriggerOpen
	}
	if d.host.IsOpen() {
		glyph = "▴"
	}
	toggle := mk.Mark(hit.Node{ID: d.toggleID(), Parent: d.id}, theme.Render(style, "Details "+glyph))
	if !d.host.IsOpen() {
		return mk.Mark(hit.Node{ID: d.id}, toggle)
	}
	body := make([]string, 0, len(lines)+1)
	body = append(body, lines...)
	body = append(body, mk.Mark(hit.Node{ID: d.closeID(), Parent: d.host.ID(), Markers: []string{overlay.MarkerClose}},
		theme.Render(styles.Button, "Close")))
	panel := d.host.Render(mk, nil, overlay.Size{}, overlay.Lines(body...))
	return mk.Mark(hit.Node{ID: d.id}, overlay.Lines(toggle, panel))
}
