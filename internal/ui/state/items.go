package state

// Item is one row of a list level.
type Item struct {
	ID    string
	Label string
	// Pinned rows stay visible whatever the filter.
	Pinned bool
	// Inert rows are drawn but cannot be activated.
	Inert bool
	Data  interface{}
}

// CloneItems produces a shallow copy of items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
