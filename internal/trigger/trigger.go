// Package trigger implements a button that owns an open flag and hosts one
// floating overlay anchored to the button.
package trigger

import (
	"github.com/atomicstack/overlaykit/internal/hit"
	"github.com/atomicstack/overlaykit/internal/logging/events"
	"github.com/atomicstack/overlaykit/internal/overlay"
	"github.com/atomicstack/overlaykit/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

// Position picks the side glyph drawn next to the title. It has no effect on
// where the overlay opens.
type Position int

const (
	Right Position = iota
	Left
	Top
	Bottom
)

func (p Position) glyph() string {
	switch p {
	case Left:
		return "◂"
	case Top:
		return "▴"
	case Bottom:
		return "▾"
	default:
		return "▸"
	}
}

// Title is the trigger label. Icon, when set, is drawn before Text.
type Title struct {
	Text string
	Icon string
}

func (t Title) String() string {
	switch {
	case t.Icon != "" && t.Text != "":
		return t.Icon + " " + t.Text
	case t.Icon != "":
		return t.Icon
	default:
		return t.Text
	}
}

// Options configures a Button.
type Options struct {
	Title    Title
	Position Position
	// OnClose runs once per open to closed transition.
	OnClose func()
}

// Button toggles an AtPoint overlay placed at its top-right corner.
type Button struct {
	id       string
	title    Title
	position Position
	onClose  func()
	focused  bool
	host     *overlay.Host
}

// New creates a closed button. Its overlay region id is id + ":panel".
func New(id string, doc *overlay.Document, opts Options) *Button {
	b := &Button{
		id:       id,
		title:    opts.Title,
		position: opts.Position,
		onClose:  opts.OnClose,
	}
	b.host = overlay.New(id+":panel", doc, overlay.AtPoint(0, 0), b.closed)
	return b
}

func (b *Button) ID() string { return b.id }

// PanelID is the region id of the hosted overlay.
func (b *Button) PanelID() string { return b.host.ID() }

func (b *Button) IsOpen() bool { return b.host.IsOpen() }

func (b *Button) Title() Title { return b.title }

func (b *Button) SetTitle(t Title) { b.title = t }

func (b *Button) Position() Position { return b.position }

func (b *Button) Focused() bool { return b.focused }

func (b *Button) SetFocused(v bool) { b.focused = v }

// Host exposes the hosted overlay, e.g. for content identity updates.
func (b *Button) Host() *overlay.Host { return b.host }

// Toggle opens the overlay when closed and closes it when open. Opening
// fails, leaving the button closed, when the button was not on screen.
func (b *Button) Toggle(loc hit.Locator) bool {
	if b.host.IsOpen() {
		b.host.Close()
		return false
	}
	return b.open(loc)
}

// Click handles a press on the button itself. A press that the overlay
// already treated as an outside click only closes it.
func (b *Button) Click(loc hit.Locator, c overlay.Click) bool {
	if !b.host.IsOpen() && c.Seq != 0 && b.host.LastDismiss() == c.Seq {
		return false
	}
	return b.Toggle(loc)
}

// Close closes the overlay if open.
func (b *Button) Close() {
	b.host.Close()
}

// Unmount drops the overlay listener without notifying OnClose.
func (b *Button) Unmount() {
	b.host.Unmount()
}

// Update handles keys while the button has focus or its panel is open.
func (b *Button) Update(msg tea.KeyMsg, loc hit.Locator) (bool, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		if !b.focused || b.host.IsOpen() {
			return false, nil
		}
		b.Toggle(loc)
		return true, nil
	case "esc":
		if !b.host.IsOpen() {
			return false, nil
		}
		b.host.Close()
		return true, nil
	}
	return false, nil
}

func (b *Button) open(loc hit.Locator) bool {
	if !b.host.OpenAt(loc, b.id, overlay.RightOf) {
		return false
	}
	x, y := b.host.Variant().Point()
	events.Trigger.Open(b.id, x, y)
	return true
}

func (b *Button) closed() {
	events.Trigger.Close(b.id)
	if b.onClose != nil {
		b.onClose()
	}
}

// View renders the button label as a marked region.
func (b *Button) View(m hit.Marker) string {
	style := styles.Trigger
	if b.host.IsOpen() || b.focused {
		style = styles.TriggerOpen
	}
	label := theme.Render(style, b.title.String()+" "+b.position.glyph())
	if m == nil {
		return label
	}
	return m.Mark(hit.Node{ID: b.id}, label)
}

// RenderPanel queues the open overlay with body on the portal.
func (b *Button) RenderPanel(m hit.Marker, p *overlay.Portal, screen overlay.Size, body string) {
	b.host.Render(m, p, screen, body)
}
