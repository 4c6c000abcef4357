// Package state holds the records the gallery owns on behalf of its widgets.
// Widgets propose changes through events; only the stores here decide what
// is selected or which directory listing is current.
package state

import (
	"sort"
	"strings"
)

// Tag is one selectable label.
type Tag struct {
	ID   int
	Name string
}

type TagStore interface {
	Entries() []Tag
	SetEntries([]Tag)
	// Add returns the tag called name, creating it when no tag matches
	// case-insensitively. created reports whether a new tag was allocated.
	Add(name string) (tag Tag, created bool)
	Lookup(id int) (Tag, bool)
	Selected() []int
	IsSelected(id int) bool
	SetSelected(id int, selected bool) bool
	Filter() string
	SetFilter(string)
}

type tagStore struct {
	entries  []Tag
	selected map[int]struct{}
	nextID   int
	filter   string
}

func NewTagStore(entries ...Tag) TagStore {
	s := &tagStore{selected: make(map[int]struct{})}
	s.SetEntries(entries)
	return s
}

func (s *tagStore) Entries() []Tag {
	return cloneTags(s.entries)
}

func (s *tagStore) SetEntries(entries []Tag) {
	s.entries = cloneTags(entries)
	s.nextID = 0
	for _, t := range s.entries {
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	for id := range s.selected {
		if _, ok := s.Lookup(id); !ok {
			delete(s.selected, id)
		}
	}
}

func (s *tagStore) Add(name string) (Tag, bool) {
	name = strings.TrimSpace(name)
	for _, t := range s.entries {
		if strings.EqualFold(t.Name, name) {
			return t, false
		}
	}
	t := Tag{ID: s.nextID, Name: name}
	s.nextID++
	s.entries = append(s.entries, t)
	return t, true
}

func (s *tagStore) Lookup(id int) (Tag, bool) {
	for _, t := range s.entries {
		if t.ID == id {
			return t, true
		}
	}
	return Tag{}, false
}

func (s *tagStore) Selected() []int {
	if len(s.selected) == 0 {
		return nil
	}
	ids := make([]int, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (s *tagStore) IsSelected(id int) bool {
	_, ok := s.selected[id]
	return ok
}

// SetSelected reports whether the selection changed. Unknown ids are
// ignored.
func (s *tagStore) SetSelected(id int, selected bool) bool {
	if _, ok := s.Lookup(id); !ok {
		return false
	}
	if s.IsSelected(id) == selected {
		return false
	}
	if selected {
		s.selected[id] = struct{}{}
	} else {
		delete(s.selected, id)
	}
	return true
}

func (s *tagStore) Filter() string {
	return s.filter
}

func (s *tagStore) SetFilter(filter string) {
	s.filter = filter
}

func cloneTags(entries []Tag) []Tag {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]Tag, len(entries))
	copy(dup, entries)
	return dup
}
