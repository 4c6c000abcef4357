// Package menu implements a filter menu hosted in a trigger overlay. Root
// rows are redirect links or dropdowns; opening a dropdown swaps the panel
// content for its links plus a Back row.
package menu

// Node is a root-level menu entry: a Redirect or a Dropdown.
type Node interface {
	Label() string
	menuNode()
}

// Redirect is a link that sets one query parameter.
type Redirect struct {
	Title string `json:"title"`
	Param string `json:"param"`
	Value string `json:"value"`
}

// Dropdown groups redirects behind one row. Dropdowns do not nest.
type Dropdown struct {
	Title    string     `json:"title"`
	Children []Redirect `json:"children"`
}

func (r Redirect) Label() string { return r.Title }
func (d Dropdown) Label() string { return d.Title }

func (Redirect) menuNode() {}
func (Dropdown) menuNode() {}

// Tree is a complete menu definition.
type Tree struct {
	Title          string
	OverwriteQuery bool
	Nodes          []Node
}

// Navigate is emitted when a redirect is chosen.
type Navigate struct {
	MenuID string
	Title  string
	URL    string
}

// DefaultTree is the menu shown when no menu file is configured.
func DefaultTree() Tree {
	return Tree{
		Title: "Filter",
		Nodes: []Node{
			Dropdown{Title: "ABC", Children: []Redirect{
				{Title: "Testing 1", Param: "abc", Value: "def"},
				{Title: "Testing 2", Param: "abc", Value: "xyz"},
			}},
			Dropdown{Title: "123", Children: []Redirect{
				{Title: "Testing 3", Param: "123", Value: "456"},
			}},
			Redirect{Title: "Baby You and Me", Param: "baby", Value: "You and Me"},
		},
	}
}
