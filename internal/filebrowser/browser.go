// Package filebrowser is a directory picker: a path field with an Open
// button, and a full-screen popup that walks directories listed by the
// owner. The browser never reads the filesystem itself. It emits a
// RequestEvent per directory and waits for the owner to call Update.
package filebrowser

import (
	"slices"
	"strings"
	"unicode"

	"github.com/atomicstack/overlaykit/internal/format/table"
	"github.com/atomicstack/overlaykit/internal/hit"
	"github.com/atomicstack/overlaykit/internal/logging/events"
	"github.com/atomicstack/overlaykit/internal/overlay"
	"github.com/atomicstack/overlaykit/internal/theme"
	uistate "github.com/atomicstack/overlaykit/internal/ui/state"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

var styles = theme.Default()

const (
	backRowID   = "back"
	backTitle   = ".. [Back]"
	defaultRows = 12
	titleWidth  = 48
)

// Event is emitted towards the owner.
type Event interface {
	browserEvent()
}

// Request asks the owner to list Path. Update must be called exactly once,
// from the event loop, with an optional corrected path and the entries.
type Request struct {
	Path   string
	Update func(corrected string, entries []FileInfo)
}

// RequestEvent carries a listing request.
type RequestEvent struct {
	Request
}

// Submit reports the location the user confirmed.
type Submit struct {
	Path string
}

func (RequestEvent) browserEvent() {}
func (Submit) browserEvent()       {}

// Options configures a Browser.
type Options struct {
	InitLocation string
	// ShowFiles lists files as inert rows. Without it only directories show.
	ShowFiles bool
	OnEvent   func(Event)
	MaxRows   int
}

// Browser is the picker state.
type Browser struct {
	id        string
	host      *overlay.Host
	onEvent   func(Event)
	showFiles bool
	maxRows   int

	initLocation string
	// current is the directory the popup is showing.
	current string
	// chosen is the submitted or typed location; empty until set.
	chosen      string
	files       []FileInfo
	initialCall bool
	seq         uint64
	pending     bool

	input        textinput.Model
	inputFocused bool
	level        *uistate.Level
}

// New builds a closed browser. Call Start to request the first listing.
func New(id string, doc *overlay.Document, opts Options) *Browser {
	b := &Browser{
		id:           id,
		onEvent:      opts.OnEvent,
		showFiles:    opts.ShowFiles,
		maxRows:      opts.MaxRows,
		initLocation: opts.InitLocation,
		current:      opts.InitLocation,
	}
	if b.maxRows <= 0 {
		b.maxRows = defaultRows
	}
	b.host = overlay.New(id+":popup", doc, overlay.FullOverlay(), b.closed)
	b.level = uistate.NewLevel(id, "", nil)

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "path"
	if styles.FilterPlaceholder != nil {
		ti.PlaceholderStyle = *styles.FilterPlaceholder
	}
	b.input = ti
	b.syncInput()
	return b
}

func (b *Browser) ID() string { return b.id }

func (b *Browser) Host() *overlay.Host { return b.host }

func (b *Browser) Level() *uistate.Level { return b.level }

func (b *Browser) IsOpen() bool { return b.host.IsOpen() }

// Current is the directory shown in the popup.
func (b *Browser) Current() string { return b.current }

// Location is the value shown in the path field: the chosen location, or
// the initial one until something was chosen.
func (b *Browser) Location() string {
	if b.chosen != "" {
		return b.chosen
	}
	return b.initLocation
}

// Files returns a copy of the last listing.
func (b *Browser) Files() []FileInfo {
	return slices.Clone(b.files)
}

// Pending reports whether the current directory awaits its listing.
func (b *Browser) Pending() bool { return b.pending }

func (b *Browser) InputFocused() bool { return b.inputFocused }

func (b *Browser) inputID() string  { return b.id + ":input" }
func (b *Browser) openID() string   { return b.id + ":open" }
func (b *Browser) cancelID() string { return b.id + ":cancel" }
func (b *Browser) submitID() string { return b.id + ":submit" }
func (b *Browser) rowPrefix() string {
	return b.id + ":row:"
}

// Start requests the listing of the initial location.
func (b *Browser) Start() {
	b.openPath(b.initLocation)
}

// SetInitLocation resets the browser to a new starting point. Setting the
// same location again does nothing.
func (b *Browser) SetInitLocation(path string) {
	if path == b.initLocation {
		return
	}
	b.chosen = ""
	b.initLocation = path
	b.syncInput()
	b.openPath(path)
}

// InputChanged commits text typed into the path field. Blank input is
// ignored.
func (b *Browser) InputChanged(value string) bool {
	v := strings.TrimSpace(value)
	if v == "" {
		b.syncInput()
		return false
	}
	b.chosen = v
	events.Browser.Chosen(v)
	b.syncInput()
	return true
}

// Toggle opens or closes the popup. Opening returns to the chosen location,
// requesting it again when the popup was left elsewhere.
func (b *Browser) Toggle() {
	if b.host.IsOpen() {
		b.host.Close()
		return
	}
	loc := b.Location()
	if loc != b.current {
		b.files = nil
		b.openPath(loc)
	}
	b.current = loc
	b.level.ClearFilter()
	b.host.Open()
	b.refresh()
}

// Open navigates the popup into path.
func (b *Browser) Open(path string) {
	b.openPath(path)
}

// Submit confirms the current directory and closes the popup.
func (b *Browser) Submit() {
	if !b.host.IsOpen() {
		return
	}
	b.chosen = b.current
	b.host.Close()
	b.syncInput()
	events.Browser.Submit(b.current)
	b.emit(Submit{Path: b.current})
}

// Cancel closes the popup without changing the chosen location.
func (b *Browser) Cancel() {
	b.host.Close()
}

// Unmount drops the popup listener and orphans outstanding requests.
func (b *Browser) Unmount() {
	b.host.Unmount()
	b.seq++
	b.pending = false
}

// Reload replaces the entries of the current directory with a fresh
// listing, e.g. from a watcher. It reports whether anything changed.
func (b *Browser) Reload(path string, entries []FileInfo) bool {
	if b.pending || path != b.current || slices.Equal(b.files, entries) {
		return false
	}
	b.files = slices.Clone(entries)
	events.Browser.Reload(path, len(entries))
	b.refresh()
	return true
}

func (b *Browser) openPath(path string) {
	b.current = path
	b.seq++
	seq := b.seq
	b.pending = true
	b.level.ClearFilter()
	events.Browser.Request(path, seq)
	answered := false
	update := func(corrected string, entries []FileInfo) {
		if answered {
			events.Browser.Duplicate(path, seq)
			return
		}
		answered = true
		b.respond(seq, path, corrected, entries)
	}
	b.refresh()
	b.emit(RequestEvent{Request{Path: path, Update: update}})
}

func (b *Browser) respond(seq uint64, path, corrected string, entries []FileInfo) {
	if seq != b.seq {
		events.Browser.Stale(path, seq)
		return
	}
	b.pending = false
	b.files = slices.Clone(entries)
	if corrected != "" {
		// The first correction fixes up the initial location itself.
		if b.initialCall {
			b.current = corrected
		} else {
			b.chosen = corrected
			b.initialCall = true
			b.syncInput()
		}
	}
	events.Browser.Response(path, seq, len(entries))
	b.refresh()
}

func (b *Browser) emit(ev Event) {
	if b.onEvent != nil {
		b.onEvent(ev)
	}
}

func (b *Browser) closed() {
	b.level.ClearFilter()
	b.syncContent()
}

func (b *Browser) syncInput() {
	if b.inputFocused {
		return
	}
	b.input.SetValue(b.Location())
}

func (b *Browser) refresh() {
	items := make([]uistate.Item, 0, len(b.files)+1)
	if parent, ok := Parent(b.current); ok {
		items = append(items, uistate.Item{ID: backRowID, Label: backTitle, Pinned: true, Data: parent})
	}
	for _, f := range b.files {
		if f.IsFile && !b.showFiles {
			continue
		}
		items = append(items, uistate.Item{ID: "path:" + f.Path, Label: f.Title, Inert: f.IsFile, Data: f})
	}
	b.level.UpdateItems(items)
	switch {
	case len(b.level.Items) == 0:
		b.level.Cursor = -1
	case b.level.Cursor < 0:
		b.level.Cursor = 0
	case b.level.Cursor >= len(b.level.Items):
		b.level.Cursor = len(b.level.Items) - 1
	}
	b.level.EnsureCursorVisible(b.maxRows)
	b.syncContent()
}

func (b *Browser) syncContent() {
	keys := make([]string, 0, len(b.level.Items)+2)
	keys = append(keys, b.current, b.level.Filter)
	for _, item := range b.level.Items {
		keys = append(keys, item.ID)
	}
	b.host.SetContent(keys...)
}

func (b *Browser) item(itemID string) (uistate.Item, bool) {
	for _, item := range b.level.Full {
		if item.ID == itemID {
			return item, true
		}
	}
	return uistate.Item{}, false
}

// Activate enters the directory behind a row. File rows are inert.
func (b *Browser) Activate(item uistate.Item) {
	if item.Inert {
		return
	}
	if item.ID == backRowID {
		if parent, ok := item.Data.(string); ok {
			b.openPath(parent)
		}
		return
	}
	if f, ok := item.Data.(FileInfo); ok && !f.IsFile {
		b.openPath(f.Path)
	}
}

// FocusInput moves keyboard focus to the path field.
func (b *Browser) FocusInput() tea.Cmd {
	b.inputFocused = true
	return b.input.Focus()
}

// BlurInput commits the path field and releases focus.
func (b *Browser) BlurInput() {
	if !b.inputFocused {
		return
	}
	value := b.input.Value()
	b.inputFocused = false
	b.input.Blur()
	b.InputChanged(value)
}

// Update handles keys for the focused path field or the open popup, and
// forwards everything else to the text input.
func (b *Browser) Update(msg tea.Msg) (bool, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var cmd tea.Cmd
		b.input, cmd = b.input.Update(msg)
		return false, cmd
	}
	if b.host.IsOpen() {
		return b.handlePopupKey(key)
	}
	if !b.inputFocused {
		return false, nil
	}
	switch key.String() {
	case "enter", "tab":
		b.BlurInput()
		return true, nil
	case "esc":
		b.inputFocused = false
		b.input.Blur()
		b.syncInput()
		return true, nil
	}
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(key)
	return true, cmd
}

func (b *Browser) handlePopupKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	l := b.level
	switch msg.String() {
	case "esc":
		b.Cancel()
		return true, nil
	case "ctrl+s":
		b.Submit()
		return true, nil
	case "enter":
		if item, ok := l.Current(); ok {
			b.Activate(item)
		}
		return true, nil
	case "up", "ctrl+p":
		b.moved(l.MoveCursorUp())
		return true, nil
	case "down", "ctrl+n":
		b.moved(l.MoveCursorDown())
		return true, nil
	case "pgup":
		b.moved(l.MoveCursorPageUp(b.maxRows))
		return true, nil
	case "pgdown":
		b.moved(l.MoveCursorPageDown(b.maxRows))
		return true, nil
	case "home":
		b.moved(l.MoveCursorHome())
		return true, nil
	case "end":
		b.moved(l.MoveCursorEnd())
		return true, nil
	case "ctrl+u":
		if l.ClearFilter() {
			events.Filter.Cleared(l.ID)
			b.syncContent()
		}
		return true, nil
	case "backspace", "ctrl+h":
		if l.DeleteFilterRuneBackward() {
			events.Filter.Backspace(l.ID, l.Filter)
			b.syncContent()
			return true, nil
		}
		if parent, ok := Parent(b.current); ok {
			b.openPath(parent)
		}
		return true, nil
	}
	if msg.Type == tea.KeyRunes && !msg.Alt {
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
		}
		if l.InsertFilterText(string(msg.Runes)) {
			events.Filter.Append(l.ID, l.Filter)
			b.syncContent()
		}
		return true, nil
	}
	return true, nil
}

func (b *Browser) moved(ok bool) {
	b.level.EnsureCursorVisible(b.maxRows)
	if ok {
		events.Menu.Cursor(b.level.ID, b.level.Cursor)
	}
}

// Click handles a press routed to the browser. It reports whether the press
// landed on one of its regions.
func (b *Browser) Click(c overlay.Click) (bool, tea.Cmd) {
	if b.inputFocused && !c.Path.Contains(b.inputID()) {
		b.BlurInput()
	}
	target, ok := c.Path.Target()
	if !ok {
		return false, nil
	}
	switch target.ID {
	case b.openID():
		b.Toggle()
		return true, nil
	case b.inputID():
		if b.inputFocused {
			return true, nil
		}
		return true, b.FocusInput()
	case b.cancelID():
		b.Cancel()
		return true, nil
	case b.submitID():
		b.Submit()
		return true, nil
	}
	if itemID, ok := strings.CutPrefix(target.ID, b.rowPrefix()); ok {
		if item, ok := b.item(itemID); ok {
			b.Activate(item)
		}
		return true, nil
	}
	return c.Path.Contains(b.id) || c.Path.Contains(b.host.ID()), nil
}

// Hover moves the cursor to the row under the pointer.
func (b *Browser) Hover(path hit.Path) {
	if !b.host.IsOpen() {
		return
	}
	target, ok := path.Target()
	if !ok {
		return
	}
	if itemID, ok := strings.CutPrefix(target.ID, b.rowPrefix()); ok {
		if idx := b.level.IndexOf(itemID); idx >= 0 {
			b.level.SetCursor(idx)
		}
	}
}

// View renders the path field and the Open button.
func (b *Browser) View(mk hit.Marker) string {
	style := styles.Input
	if b.inputFocused {
		style = styles.InputFocused
	}
	field := theme.Render(style, b.input.View())
	field = mk.Mark(hit.Node{ID: b.inputID(), Parent: b.id}, field)
	open := mk.Mark(hit.Node{ID: b.openID(), Parent: b.id}, theme.Render(styles.Button, "Open"))
	row := lipgloss.JoinHorizontal(lipgloss.Center, field, " ", open)
	return mk.Mark(hit.Node{ID: b.id}, row)
}

// RenderPanel queues the open popup on the portal.
func (b *Browser) RenderPanel(mk hit.Marker, p *overlay.Portal, screen overlay.Size) {
	if !b.host.IsOpen() {
		return
	}
	b.host.Render(mk, p, screen, b.panelBody(mk))
}

func (b *Browser) panelBody(mk hit.Marker) string {
	l := b.level
	parent := b.host.ContentID()
	lines := []string{theme.Render(styles.Header, truncate.StringWithTail(b.current, titleWidth+8, "…"))}
	if l.Filter != "" {
		lines = append(lines, theme.Render(styles.FilterPrompt, "» ")+theme.Render(styles.Filter, l.Filter))
	}
	rows, start := l.Window(b.maxRows)
	switch {
	case len(rows) == 0 && b.pending:
		lines = append(lines, theme.Render(styles.Info, "Loading…"))
	case len(rows) == 0:
		lines = append(lines, theme.Render(styles.Info, "(empty)"))
	}
	cells := make([][]string, len(rows))
	for i, item := range rows {
		kind := "dir"
		if item.Inert {
			kind = "file"
		} else if item.ID == backRowID {
			kind = ""
		}
		cells[i] = []string{truncate.StringWithTail(item.Label, titleWidth, "…"), kind}
	}
	formatted := table.Format(cells, []table.Alignment{table.AlignLeft, table.AlignRight})
	for i, item := range rows {
		line := formatted[i]
		switch {
		case start+i == l.Cursor:
			line = theme.Render(styles.SelectedItemIndicator, "▌") + theme.Render(styles.SelectedItem, " "+line)
		case item.Inert:
			line = theme.Render(styles.ItemIndicator, " ") + theme.Render(styles.DisabledItem, " "+line)
		default:
			line = theme.Render(styles.ItemIndicator, " ") + theme.Render(styles.Item, " "+line)
		}
		lines = append(lines, mk.Mark(hit.Node{ID: b.rowPrefix() + item.ID, Parent: parent}, line))
	}
	cancel := mk.Mark(hit.Node{ID: b.cancelID(), Parent: parent, Markers: []string{overlay.MarkerClose}},
		theme.Render(styles.ButtonDanger, "Cancel"))
	submit := mk.Mark(hit.Node{ID: b.submitID(), Parent: parent}, theme.Render(styles.ButtonConfirm, "Submit"))
	lines = append(lines, "", lipgloss.JoinHorizontal(lipgloss.Top, cancel, " ", submit))
	return overlay.Lines(lines...)
}
