package menu

import "github.com/atomicstack/overlaykit/internal/logging/events"

// RowKind classifies a rendered menu row.
type RowKind int

const (
	RowRedirect RowKind = iota
	RowDropdown
	RowBack
)

// Row is one entry of the panel content.
type Row struct {
	Kind     RowKind
	Title    string
	Redirect Redirect
	Dropdown Dropdown
	// Source is the index of the root node the row came from, or -1.
	Source int
}

// Dispatcher is the handle menu rows use to swap the panel content. One
// dispatcher belongs to one menu; it is passed to rows explicitly.
type Dispatcher struct {
	menuID   string
	title    string
	override []Redirect
	active   bool
	changed  func()
}

// NewDispatcher creates a dispatcher; changed runs after every swap.
func NewDispatcher(menuID string, changed func()) *Dispatcher {
	return &Dispatcher{menuID: menuID, changed: changed}
}

// RequestChildren shows children instead of the root rows. A second request
// replaces the first; there is no history.
func (d *Dispatcher) RequestChildren(title string, children []Redirect) {
	d.title = title
	d.override = append([]Redirect(nil), children...)
	d.active = true
	events.Menu.Children(d.menuID, title, len(children))
	d.notify()
}

// Back returns to the root rows.
func (d *Dispatcher) Back() {
	if !d.active {
		return
	}
	d.active = false
	d.title = ""
	d.override = nil
	events.Menu.Back(d.menuID)
	d.notify()
}

// Active reports whether an override is shown.
func (d *Dispatcher) Active() bool { return d.active }

// Title is the title of the dropdown currently shown.
func (d *Dispatcher) Title() string { return d.title }

// Rows returns the content to render: the root nodes, or a Back row followed
// by the override.
func (d *Dispatcher) Rows(root []Node) []Row {
	if !d.active {
		rows := make([]Row, 0, len(root))
		for i, n := range root {
			switch n := n.(type) {
			case Redirect:
				rows = append(rows, Row{Kind: RowRedirect, Title: n.Title, Redirect: n, Source: i})
			case Dropdown:
				rows = append(rows, Row{Kind: RowDropdown, Title: n.Title, Dropdown: n, Source: i})
			}
		}
		return rows
	}
	rows := make([]Row, 0, len(d.override)+1)
	rows = append(rows, Row{Kind: RowBack, Title: "Back", Source: -1})
	for _, r := range d.override {
		rows = append(rows, Row{Kind: RowRedirect, Title: r.Title, Redirect: r, Source: -1})
	}
	return rows
}

func (d *Dispatcher) notify() {
	if d.changed != nil {
		d.changed()
	}
}
