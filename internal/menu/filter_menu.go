package menu

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/atomicstack/overlaykit/internal/hit"
	"github.com/atomicstack/overlaykit/internal/logging/events"
	"github.com/atomicstack/overlaykit/internal/overlay"
	"github.com/atomicstack/overlaykit/internal/theme"
	"github.com/atomicstack/overlaykit/internal/trigger"
	uistate "github.com/atomicstack/overlaykit/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"
)

var styles = theme.Default()

const (
	backRowID     = "back"
	defaultRows   = 10
	panelMaxWidth = 40
)

// Options configures a Menu.
type Options struct {
	Tree     Tree
	Location Location
	// OnNavigate receives the destination of each chosen redirect.
	OnNavigate func(Navigate)
	OnClose    func()
	MaxRows    int
}

// Menu is a trigger whose panel lists a Tree.
type Menu struct {
	id         string
	tree       Tree
	loc        Location
	button     *trigger.Button
	dispatch   *Dispatcher
	level      *uistate.Level
	onNavigate func(Navigate)
	onClose    func()
	maxRows    int
	// dropdown is the root index of the dropdown shown by the dispatcher.
	dropdown int
}

// New builds a closed menu.
func New(id string, doc *overlay.Document, opts Options) *Menu {
	m := &Menu{
		id:         id,
		tree:       opts.Tree,
		loc:        opts.Location,
		onNavigate: opts.OnNavigate,
		onClose:    opts.OnClose,
		maxRows:    opts.MaxRows,
	}
	if m.maxRows <= 0 {
		m.maxRows = defaultRows
	}
	m.button = trigger.New(id, doc, trigger.Options{
		Title:    trigger.Title{Text: m.tree.Title},
		Position: trigger.Bottom,
		OnClose:  m.closed,
	})
	m.level = uistate.NewLevel(id, m.tree.Title, nil)
	m.dispatch = NewDispatcher(id, m.refresh)
	m.refresh()
	return m
}

func (m *Menu) ID() string { return m.id }

func (m *Menu) Button() *trigger.Button { return m.button }

func (m *Menu) Dispatcher() *Dispatcher { return m.dispatch }

func (m *Menu) Level() *uistate.Level { return m.level }

func (m *Menu) Location() Location { return m.loc }

// SetLocation updates the page location used to build redirect URLs.
func (m *Menu) SetLocation(loc Location) {
	m.loc = loc
	m.refresh()
}

func (m *Menu) IsOpen() bool { return m.button.IsOpen() }

// Rows lists the rows currently offered, in display order.
func (m *Menu) Rows() []Row {
	return m.dispatch.Rows(m.tree.Nodes)
}

func (m *Menu) rowID(itemID string) string {
	return m.id + ":row:" + itemID
}

func (m *Menu) refresh() {
	rows := m.Rows()
	items := make([]uistate.Item, 0, len(rows))
	active := make([]string, 0, 1)
	for i, row := range rows {
		item := uistate.Item{Label: row.Title}
		switch row.Kind {
		case RowBack:
			item.ID = backRowID
			item.Pinned = true
		case RowDropdown:
			item.ID = "node:" + strconv.Itoa(i)
		case RowRedirect:
			item.ID = m.redirectItemID(i)
			if v, ok := m.loc.Value(row.Redirect.Param); ok && v == row.Redirect.Value {
				active = append(active, item.ID)
			}
		}
		items = append(items, item)
	}
	m.level.Filter = ""
	m.level.FilterCursor = 0
	m.level.UpdateItems(items)
	m.level.Cursor = 0
	if m.dispatch.Active() && len(m.level.Items) > 1 {
		m.level.Cursor = 1
	}
	m.level.ViewportOffset = 0
	m.level.SetSelected(active...)
	m.syncContent()
}

func (m *Menu) redirectItemID(i int) string {
	if !m.dispatch.Active() {
		return "node:" + strconv.Itoa(i)
	}
	return "child:" + strconv.Itoa(m.dropdown) + ":" + strconv.Itoa(i-1)
}

// rowFor maps an item id back to its row through the static tree, so a row
// stays resolvable after the content it was drawn in has been replaced.
func (m *Menu) rowFor(itemID string) (Row, bool) {
	if itemID == backRowID {
		return Row{Kind: RowBack, Title: "Back", Source: -1}, true
	}
	parts := strings.Split(itemID, ":")
	index := func(s string) (int, bool) {
		n, err := strconv.Atoi(s)
		return n, err == nil && n >= 0
	}
	switch {
	case len(parts) == 2 && parts[0] == "node":
		i, ok := index(parts[1])
		if !ok || i >= len(m.tree.Nodes) {
			return Row{}, false
		}
		switch n := m.tree.Nodes[i].(type) {
		case Redirect:
			return Row{Kind: RowRedirect, Title: n.Title, Redirect: n, Source: i}, true
		case Dropdown:
			return Row{Kind: RowDropdown, Title: n.Title, Dropdown: n, Source: i}, true
		}
	case len(parts) == 3 && parts[0] == "child":
		d, ok := index(parts[1])
		c, ok2 := index(parts[2])
		if !ok || !ok2 || d >= len(m.tree.Nodes) {
			return Row{}, false
		}
		dd, isDropdown := m.tree.Nodes[d].(Dropdown)
		if !isDropdown || c >= len(dd.Children) {
			return Row{}, false
		}
		r := dd.Children[c]
		return Row{Kind: RowRedirect, Title: r.Title, Redirect: r, Source: d}, true
	}
	return Row{}, false
}

func (m *Menu) syncContent() {
	keys := make([]string, 0, len(m.level.Items)+1)
	keys = append(keys, m.level.Filter)
	for _, item := range m.level.Items {
		keys = append(keys, item.ID)
	}
	m.button.Host().SetContent(keys...)
}

// Activate performs a row's action: Back and dropdowns swap the content in
// place, redirects navigate and close the panel.
func (m *Menu) Activate(row Row) {
	switch row.Kind {
	case RowBack:
		m.dispatch.Back()
	case RowDropdown:
		m.dropdown = row.Source
		m.dispatch.RequestChildren(row.Title, row.Dropdown.Children)
	case RowRedirect:
		url := RedirectURL(m.loc, row.Redirect, m.tree.OverwriteQuery)
		events.Menu.Navigate(m.id, url)
		m.button.SetTitle(trigger.Title{Text: row.Title})
		m.loc = ParseLocation(url)
		m.button.Close()
		m.refresh()
		if m.onNavigate != nil {
			m.onNavigate(Navigate{MenuID: m.id, Title: row.Title, URL: url})
		}
	}
}

func (m *Menu) closed() {
	m.dispatch.Back()
	if m.level.Filter != "" {
		m.refresh()
	}
	if m.onClose != nil {
		m.onClose()
	}
}

// ClickTrigger handles a press on the trigger button.
func (m *Menu) ClickTrigger(loc hit.Locator, c overlay.Click) bool {
	return m.button.Click(loc, c)
}

// Click handles a press resolved to path. It reports whether the press hit
// one of the menu's regions.
func (m *Menu) Click(loc hit.Locator, c overlay.Click) bool {
	target, ok := c.Path.Target()
	if !ok {
		return false
	}
	if target.ID == m.id {
		m.ClickTrigger(loc, c)
		return true
	}
	itemID, ok := strings.CutPrefix(target.ID, m.id+":row:")
	if !ok {
		return c.Path.Contains(m.button.PanelID())
	}
	row, ok := m.rowFor(itemID)
	if !ok {
		return true
	}
	m.Activate(row)
	return true
}

// Hover moves the cursor to the row under the pointer.
func (m *Menu) Hover(path hit.Path) {
	if !m.IsOpen() {
		return
	}
	target, ok := path.Target()
	if !ok {
		return
	}
	itemID, ok := strings.CutPrefix(target.ID, m.id+":row:")
	if !ok {
		return
	}
	if idx := m.level.IndexOf(itemID); idx >= 0 && m.level.SetCursor(idx) {
		events.Menu.Cursor(m.level.ID, idx)
	}
}

// Update handles keys. While closed only the trigger keys apply.
func (m *Menu) Update(msg tea.KeyMsg, loc hit.Locator) (bool, tea.Cmd) {
	if !m.IsOpen() {
		return m.button.Update(msg, loc)
	}
	l := m.level
	switch msg.String() {
	case "esc":
		return m.button.Update(msg, loc)
	case "enter":
		item, ok := l.Current()
		if !ok {
			return true, nil
		}
		if row, ok := m.rowFor(item.ID); ok {
			m.Activate(row)
		}
		return true, nil
	case "up", "ctrl+p":
		m.moved(l.MoveCursorUp())
		return true, nil
	case "down", "ctrl+n":
		m.moved(l.MoveCursorDown())
		return true, nil
	case "pgup":
		m.moved(l.MoveCursorPageUp(m.maxRows))
		return true, nil
	case "pgdown":
		m.moved(l.MoveCursorPageDown(m.maxRows))
		return true, nil
	case "home":
		m.moved(l.MoveCursorHome())
		return true, nil
	case "end":
		m.moved(l.MoveCursorEnd())
		return true, nil
	case "left":
		l.MoveFilterCursor(-1)
		return true, nil
	case "right":
		l.MoveFilterCursor(1)
		return true, nil
	case "ctrl+u":
		if l.ClearFilter() {
			events.Filter.Cleared(l.ID)
			m.syncContent()
		}
		return true, nil
	case "ctrl+w":
		if l.DeleteFilterWordBackward() {
			events.Filter.Backspace(l.ID, l.Filter)
			m.syncContent()
		}
		return true, nil
	case "backspace", "ctrl+h":
		if l.DeleteFilterRuneBackward() {
			events.Filter.Backspace(l.ID, l.Filter)
			m.syncContent()
			return true, nil
		}
		m.dispatch.Back()
		return true, nil
	}
	if (msg.Type == tea.KeyRunes && !msg.Alt) || msg.Type == tea.KeySpace {
		text := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			text = " "
		}
		for _, r := range text {
			if unicode.IsControl(r) {
				return false, nil
			}
		}
		if l.InsertFilterText(text) {
			events.Filter.Append(l.ID, l.Filter)
			m.syncContent()
		}
		return true, nil
	}
	return false, nil
}

func (m *Menu) moved(ok bool) {
	m.level.EnsureCursorVisible(m.maxRows)
	if ok {
		events.Menu.Cursor(m.level.ID, m.level.Cursor)
	}
}

// View renders the trigger.
func (m *Menu) View(mk hit.Marker) string {
	return m.button.View(mk)
}

// RenderPanel queues the open panel on the portal.
func (m *Menu) RenderPanel(mk hit.Marker, p *overlay.Portal, screen overlay.Size) {
	if !m.IsOpen() {
		return
	}
	m.button.RenderPanel(mk, p, screen, m.panelBody(mk))
}

func (m *Menu) panelBody(mk hit.Marker) string {
	l := m.level
	title := m.tree.Title
	if m.dispatch.Active() {
		title = m.dispatch.Title()
	}
	lines := []string{theme.Render(styles.Header, title)}
	if l.Filter != "" {
		lines = append(lines, theme.Render(styles.FilterPrompt, "» ")+theme.Render(styles.Filter, l.Filter))
	}
	rows, start := l.Window(m.maxRows)
	if len(rows) == 0 {
		lines = append(lines, theme.Render(styles.Info, fmt.Sprintf("No matches for %q", l.Filter)))
	}
	for i, item := range rows {
		idx := start + i
		line := m.renderRow(item, idx == l.Cursor)
		node := hit.Node{ID: m.rowID(item.ID), Parent: m.button.PanelID()}
		if row, ok := m.rowFor(item.ID); ok && row.Kind == RowRedirect {
			node.Markers = []string{overlay.MarkerClose}
		}
		if mk != nil {
			line = mk.Mark(node, line)
		}
		lines = append(lines, line)
	}
	return overlay.Lines(lines...)
}

func (m *Menu) renderRow(item uistate.Item, current bool) string {
	label := item.Label
	switch {
	case item.ID == backRowID:
		label = "‹ " + label
	case strings.HasPrefix(item.ID, "node:"):
		if row, ok := m.rowFor(item.ID); ok && row.Kind == RowDropdown {
			label += " ›"
		}
	}
	if m.level.IsSelected(item.ID) {
		label += " ✓"
	}
	label = truncate.StringWithTail(label, panelMaxWidth, "…")
	if current {
		return theme.Render(styles.SelectedItemIndicator, "▌") + theme.Render(styles.SelectedItem, " "+label)
	}
	return theme.Render(styles.ItemIndicator, " ") + theme.Render(styles.Item, " "+label)
}
