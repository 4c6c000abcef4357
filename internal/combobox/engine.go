// Package combobox implements a filtering, keyboard-navigable multi-select
// list. Engine is the state machine; Model wraps it for Bubble Tea.
//
// The engine never owns the selected set. Callers receive Toggle and
// CreateRequest events, update their own records, and hand the refreshed
// items back through SetItems.
package combobox

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/overlaykit/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultBlurDelay is how long a blur waits before collapsing the list, so a
// click on a list row lands first.
const DefaultBlurDelay = 100 * time.Millisecond

// Item is one selectable entry. Selected is owned by the caller.
type Item[ID comparable] struct {
	ID       ID
	Label    string
	Selected bool
}

// State is the engine's transient view state.
type State struct {
	Focused        bool
	Opened         bool
	FilterText     string
	HighlightIndex int
}

// Event is emitted towards the caller.
type Event interface {
	comboboxEvent()
}

// Toggle proposes selecting or deselecting an item.
type Toggle[ID comparable] struct {
	ID       ID
	Selected bool
}

// CreateRequest asks the caller to create an item called Name. The caller
// passes the new identity to Resolve from the event loop once it exists.
type CreateRequest[ID comparable] struct {
	Name    string
	Resolve func(ID)
}

// FilterChanged reports the current filter text.
type FilterChanged struct {
	Text string
}

func (Toggle[ID]) comboboxEvent()        {}
func (CreateRequest[ID]) comboboxEvent() {}
func (FilterChanged) comboboxEvent()     {}

// Key classifies the key that caused an input change.
type Key int

const (
	KeyOther Key = iota
	KeyUp
	KeyDown
)

func (k Key) arrow() bool {
	return k == KeyUp || k == KeyDown
}

// BlurElapsedMsg is delivered when a deferred blur comes due.
type BlurElapsedMsg struct {
	Name  string
	Token uint64
}

// Options configures an Engine.
type Options struct {
	// Name identifies the engine in messages and traces.
	Name      string
	Editing   bool
	Creation  bool
	BlurDelay time.Duration
	OnEvent   func(Event)
}

// Engine is the combobox state machine.
type Engine[ID comparable] struct {
	name      string
	editing   bool
	creation  bool
	blurDelay time.Duration
	onEvent   func(Event)

	items     []Item[ID]
	state     State
	blurToken uint64
	destroyed bool
}

// New creates an engine with fresh state.
func New[ID comparable](opts Options) *Engine[ID] {
	delay := opts.BlurDelay
	if delay <= 0 {
		delay = DefaultBlurDelay
	}
	return &Engine[ID]{
		name:      opts.Name,
		editing:   opts.Editing,
		creation:  opts.Creation,
		blurDelay: delay,
		onEvent:   opts.OnEvent,
	}
}

func (e *Engine[ID]) Name() string { return e.name }

func (e *Engine[ID]) State() State { return e.state }

func (e *Engine[ID]) Editing() bool { return e.editing }

func (e *Engine[ID]) Creation() bool { return e.creation }

func (e *Engine[ID]) BlurDelay() time.Duration { return e.blurDelay }

func (e *Engine[ID]) Destroyed() bool { return e.destroyed }

// SetEditing switches between editing and view-only mode.
func (e *Engine[ID]) SetEditing(v bool) { e.editing = v }

// SetItems replaces the caller-supplied items.
func (e *Engine[ID]) SetItems(items []Item[ID]) {
	e.items = append(e.items[:0:0], items...)
	e.settle()
}

// Items returns a copy of the current items.
func (e *Engine[ID]) Items() []Item[ID] {
	return append([]Item[ID](nil), e.items...)
}

// Chosen lists the selected items in caller order.
func (e *Engine[ID]) Chosen() []Item[ID] {
	out := make([]Item[ID], 0, len(e.items))
	for _, it := range e.items {
		if it.Selected {
			out = append(out, it)
		}
	}
	return out
}

// Visible lists unselected items whose label contains the filter text,
// ignoring case.
func (e *Engine[ID]) Visible() []Item[ID] {
	needle := strings.ToLower(e.state.FilterText)
	out := make([]Item[ID], 0, len(e.items))
	for _, it := range e.items {
		if it.Selected {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(it.Label), needle) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func (e *Engine[ID]) VisibleCount() int {
	return len(e.Visible())
}

// CreateRowShown reports whether the virtual create row follows the list.
func (e *Engine[ID]) CreateRowShown() bool {
	return e.creation && strings.TrimSpace(e.state.FilterText) != ""
}

// Focus marks the input focused and cancels any pending blur.
func (e *Engine[ID]) Focus() {
	if e.destroyed {
		return
	}
	e.blurToken++
	e.state.Focused = true
	events.Combobox.Focus(e.name)
	e.settle()
}

// Blur schedules the focus loss. The returned command must be run by the
// program; its message is handled by HandleBlurElapsed.
func (e *Engine[ID]) Blur() tea.Cmd {
	if e.destroyed {
		return nil
	}
	e.blurToken++
	token := e.blurToken
	name := e.name
	events.Combobox.BlurScheduled(name, token)
	return tea.Tick(e.blurDelay, func(time.Time) tea.Msg {
		return BlurElapsedMsg{Name: name, Token: token}
	})
}

// HandleBlurElapsed applies a deferred blur unless a later Focus, Blur or
// Destroy superseded it. It reports whether the blur took effect.
func (e *Engine[ID]) HandleBlurElapsed(msg BlurElapsedMsg) bool {
	if msg.Name != e.name {
		return false
	}
	if e.destroyed {
		events.Combobox.BlurDiscarded(e.name, msg.Token, "destroyed")
		return false
	}
	if msg.Token != e.blurToken {
		events.Combobox.BlurDiscarded(e.name, msg.Token, "superseded")
		return false
	}
	e.state.Focused = false
	e.state.HighlightIndex = 0
	events.Combobox.BlurApplied(e.name)
	e.settle()
	return true
}

// KeyDown moves the highlight for arrow keys and ignores other keys.
func (e *Engine[ID]) KeyDown(k Key) {
	if e.destroyed {
		return
	}
	switch k {
	case KeyUp:
		if e.state.HighlightIndex > 0 {
			e.state.HighlightIndex--
		}
	case KeyDown:
		bound := e.VisibleCount()
		if !e.CreateRowShown() {
			bound--
		}
		if bound < 0 {
			bound = 0
		}
		if e.state.HighlightIndex < bound {
			e.state.HighlightIndex++
		} else {
			e.state.HighlightIndex = bound
		}
	default:
		return
	}
	events.Combobox.Highlight(e.name, e.state.HighlightIndex)
	e.settle()
}

// InputChanged records new filter text. Edits not caused by an arrow key
// move the highlight back to the first row.
func (e *Engine[ID]) InputChanged(text string, k Key) {
	if e.destroyed {
		return
	}
	e.state.FilterText = text
	if !k.arrow() {
		e.state.HighlightIndex = 0
	}
	events.Combobox.Filter(e.name, text)
	e.emit(FilterChanged{Text: text})
	e.settle()
}

// Enter selects the highlighted row or requests creation from the create
// row. It reports whether an event was emitted.
func (e *Engine[ID]) Enter() bool {
	if e.destroyed {
		return false
	}
	visible := e.Visible()
	idx := e.state.HighlightIndex
	if idx < len(visible) {
		e.toggle(visible[idx].ID, true)
		return true
	}
	if idx != len(visible) || !e.CreateRowShown() {
		return false
	}
	name := strings.TrimSpace(e.state.FilterText)
	e.state.FilterText = ""
	e.state.HighlightIndex = 0
	events.Combobox.Create(e.name, name)
	e.emit(CreateRequest[ID]{Name: name, Resolve: e.resolver()})
	e.emit(FilterChanged{})
	e.settle()
	return true
}

// Hover highlights the visible row holding id.
func (e *Engine[ID]) Hover(id ID) {
	if e.destroyed {
		return
	}
	for i, it := range e.Visible() {
		if it.ID == id {
			e.state.HighlightIndex = i
			return
		}
	}
}

// HoverCreateRow highlights the position after the last visible row.
func (e *Engine[ID]) HoverCreateRow() {
	if e.destroyed {
		return
	}
	e.state.HighlightIndex = e.VisibleCount()
}

// Select proposes selecting id.
func (e *Engine[ID]) Select(id ID) {
	if e.destroyed {
		return
	}
	e.toggle(id, true)
}

// Unselect proposes deselecting id. View-only engines ignore it entirely.
func (e *Engine[ID]) Unselect(id ID) {
	if e.destroyed || !e.editing {
		return
	}
	e.toggle(id, false)
}

// Destroy retires the engine. Pending blurs and late resolves become no-ops.
func (e *Engine[ID]) Destroy() {
	e.destroyed = true
	e.blurToken++
}

func (e *Engine[ID]) resolver() func(ID) {
	return func(id ID) {
		if e.destroyed {
			events.Combobox.LateResolve(e.name)
			return
		}
		e.toggle(id, true)
	}
}

func (e *Engine[ID]) toggle(id ID, selected bool) {
	events.Combobox.Toggle(e.name, fmt.Sprint(id), selected)
	e.emit(Toggle[ID]{ID: id, Selected: selected})
}

func (e *Engine[ID]) emit(ev Event) {
	if e.onEvent != nil {
		e.onEvent(ev)
	}
}

// settle restores the derived state (Opened, highlight bounds) after a transition.
func (e *Engine[ID]) settle() {
	e.state.Opened = e.state.Focused &&
		(len(e.items) > 0 || strings.TrimSpace(e.state.FilterText) != "")
	if limit := e.VisibleCount(); e.state.HighlightIndex > limit {
		e.state.HighlightIndex = limit
	}
	if e.state.HighlightIndex < 0 {
		e.state.HighlightIndex = 0
	}
}
