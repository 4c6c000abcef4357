package state

// CleanupSelections drops marks for ids no longer in the item list.
func (l *Level) CleanupSelections() {
	if len(l.Selected) == 0 {
		return
	}
	valid := make(map[string]struct{}, len(l.Full))
	for _, item := range l.Full {
		valid[item.ID] = struct{}{}
	}
	for id := range l.Selected {
		if _, ok := valid[id]; !ok {
			delete(l.Selected, id)
		}
	}
}

// IsSelected reports whether id is marked.
func (l *Level) IsSelected(id string) bool {
	if l.Selected == nil {
		return false
	}
	_, ok := l.Selected[id]
	return ok
}

// SetSelected replaces the marked ids.
func (l *Level) SetSelected(ids ...string) {
	l.Selected = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		l.Selected[id] = struct{}{}
	}
	l.CleanupSelections()
}
