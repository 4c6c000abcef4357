package overlay

import (
	"slices"
	"strings"

	"github.com/atomicstack/overlaykit/internal/hit"
	"github.com/atomicstack/overlaykit/internal/logging/events"
	"github.com/atomicstack/overlaykit/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

var styles = theme.Default()

// Anchor converts a located trigger rectangle into panel coordinates.
type Anchor func(hit.Rect) (x, y int)

// RightOf places the panel at the trigger's top-right corner.
func RightOf(r hit.Rect) (int, int) { return r.X + r.Width, r.Y }

// Below places the panel under the trigger's left edge.
func Below(r hit.Rect) (int, int) { return r.X, r.Y + r.Height }

// Size is the screen area available to portal overlays.
type Size struct {
	Width, Height int
}

// Host renders overlay content and owns the document click listener that
// dismisses it. The listener exists only while the host is open.
type Host struct {
	id      string
	parent  string
	variant Variant
	doc     *Document
	sub     *Subscription
	onClose func()

	open        bool
	content     []string
	lastDismiss uint64
}

// New creates a closed host. id names the overlay's root region and must be
// unique per screen.
func New(id string, doc *Document, variant Variant, onClose func()) *Host {
	return &Host{
		id:      id,
		variant: variant,
		doc:     doc,
		sub:     NewSubscription(doc, id),
		onClose: onClose,
	}
}

func (h *Host) ID() string { return h.id }

// ContentID is the region id of the panel body, used as Parent for rows.
func (h *Host) ContentID() string {
	if h.variant.Kind() == KindFullOverlay {
		return h.id + ":content"
	}
	return h.id
}

// SetParent nests an Inline host's region under another region.
func (h *Host) SetParent(id string) { h.parent = id }

func (h *Host) Variant() Variant { return h.variant }

func (h *Host) IsOpen() bool { return h.open }

// Listening reports whether the host currently holds a document listener.
func (h *Host) Listening() bool { return h.sub.Active() }

// LastDismiss is the sequence number of the click that last dismissed the
// host, or zero.
func (h *Host) LastDismiss() uint64 { return h.lastDismiss }

// Open shows the overlay with its current variant.
func (h *Host) Open() {
	if h.open {
		return
	}
	h.open = true
	h.install()
}

// OpenAt computes an AtPoint position from the anchor region once and opens
// the panel there. When the anchor cannot be located the host stays closed.
func (h *Host) OpenAt(loc hit.Locator, anchorID string, place Anchor) bool {
	var (
		rect hit.Rect
		ok   bool
	)
	if loc != nil {
		rect, ok = loc.Bounds(anchorID)
	}
	if !ok {
		// A panel already showing cannot stay pinned to a vanished anchor.
		events.Overlay.AnchorMissing(h.id, anchorID)
		h.Close()
		return false
	}
	if place == nil {
		place = RightOf
	}
	x, y := place(rect)
	h.variant = AtPoint(x, y)
	h.open = false
	h.Open()
	return true
}

// SetVariant swaps the variant; an open host re-installs its listener.
func (h *Host) SetVariant(v Variant) {
	if h.variant == v {
		return
	}
	h.variant = v
	if h.open {
		h.install()
	}
}

// SetContent records the identity of what the overlay shows. A change while
// open replaces the listener rather than adding another.
func (h *Host) SetContent(keys ...string) {
	if slices.Equal(h.content, keys) {
		return
	}
	h.content = append(h.content[:0:0], keys...)
	if h.open {
		h.install()
	}
}

// Close hides the overlay and notifies onClose. Closing a closed host does
// nothing.
func (h *Host) Close() {
	if !h.open {
		return
	}
	h.open = false
	h.sub.Close()
	if h.onClose != nil {
		h.onClose()
	}
}

// Unmount removes the listener unconditionally without notifying onClose.
func (h *Host) Unmount() {
	h.open = false
	h.sub.Close()
}

func (h *Host) install() {
	h.sub.Replace(h.handleClick)
}

func (h *Host) handleClick(c Click) {
	if !h.open {
		return
	}
	events.Overlay.Check(h.id, h.variant.String(), c.Path.IDs())
	if !ShouldExit(h.variant, h.id, c.Path) {
		return
	}
	events.Overlay.Exit(h.id, h.variant.String())
	h.lastDismiss = c.Seq
	h.Close()
}

// Render draws body for the current variant. Inline output is returned for
// in-flow placement; portal variants are queued on p and an empty string is
// returned.
func (h *Host) Render(m hit.Marker, p *Portal, screen Size, body string) string {
	if !h.open {
		return ""
	}
	switch h.variant.Kind() {
	case KindInline:
		panel := theme.Render(styles.InlinePanel, body)
		return m.Mark(hit.Node{ID: h.id, Parent: h.parent, Markers: []string{MarkerInline}}, panel)
	case KindAtPoint:
		panel := theme.Render(styles.Panel, body)
		panel = m.Mark(hit.Node{ID: h.id, Markers: []string{MarkerAtPoint}}, panel)
		x, y := h.variant.Point()
		p.Add(Layer{X: x, Y: y, Content: panel})
	case KindFullOverlay:
		dialog := theme.Render(styles.Dialog, body)
		dialog = m.Mark(hit.Node{ID: h.ContentID(), Parent: h.id}, dialog)
		width, height := screen.Width, screen.Height
		if width <= 0 {
			width = lipgloss.Width(dialog)
		}
		if height <= 0 {
			height = lipgloss.Height(dialog)
		}
		full := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog,
			lipgloss.WithWhitespaceChars("░"),
			lipgloss.WithWhitespaceForeground(styles.Backdrop.GetForeground()),
		)
		full = m.Mark(hit.Node{ID: h.id, Markers: []string{MarkerBackdrop}}, full)
		p.Add(Layer{Full: true, Content: full})
	}
	return ""
}

// Lines joins rows for use as a host body.
func Lines(rows ...string) string {
	return strings.Join(rows, "\n")
}

func traceListen(owner string, id ListenerID) {
	events.Overlay.Listen(owner, uint64(id))
}

func traceRemove(owner string, id ListenerID) {
	events.Overlay.Remove(owner, uint64(id))
}
