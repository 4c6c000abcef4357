// Package hit tracks the marked screen regions of the last rendered frame and
// resolves a mouse position to the chain of regions that contain it. The
// chain plays the role of an element's ancestry: widgets attach markers to
// regions and dismissal logic walks the chain looking for them.
package hit

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// Node describes one marked region.
type Node struct {
	ID      string
	Parent  string
	Markers []string
}

// HasMarker reports whether the node itself carries marker.
func (n Node) HasMarker(marker string) bool {
	for _, m := range n.Markers {
		if m == marker {
			return true
		}
	}
	return false
}

// Path is a region chain ordered innermost first.
type Path []Node

// Target returns the innermost region.
func (p Path) Target() (Node, bool) {
	if len(p) == 0 {
		return Node{}, false
	}
	return p[0], true
}

// HasMarker reports whether any region in the chain carries marker.
func (p Path) HasMarker(marker string) bool {
	for _, n := range p {
		if n.HasMarker(marker) {
			return true
		}
	}
	return false
}

// Contains reports whether the chain includes the region id.
func (p Path) Contains(id string) bool {
	for _, n := range p {
		if n.ID == id {
			return true
		}
	}
	return false
}

// IDs lists region identifiers innermost first.
func (p Path) IDs() []string {
	ids := make([]string, len(p))
	for i, n := range p {
		ids[i] = n.ID
	}
	return ids
}

// Rect is a region's cell rectangle.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Resolver maps a mouse event to the region chain under it.
type Resolver interface {
	Resolve(msg tea.MouseMsg) Path
}

// Locator reports where a region was drawn on the last frame.
type Locator interface {
	Bounds(id string) (Rect, bool)
}

// Marker wraps rendered content so its on-screen bounds are tracked.
type Marker interface {
	Mark(n Node, content string) string
}

// Tree is the frame-scoped region registry backed by bubblezone.
type Tree struct {
	zones *zone.Manager

	mu    sync.RWMutex
	nodes map[string]entry
	seq   int
}

type entry struct {
	node  Node
	order int
}

// NewTree allocates a tree with its own zone manager.
func NewTree() *Tree {
	return &Tree{zones: zone.New(), nodes: make(map[string]entry)}
}

// Close stops the zone worker.
func (t *Tree) Close() {
	if t == nil || t.zones == nil {
		return
	}
	t.zones.Close()
}

// Begin forgets the regions of the previous frame. Call at the top of View.
func (t *Tree) Begin() {
	t.mu.Lock()
	t.nodes = make(map[string]entry, len(t.nodes))
	t.seq = 0
	t.mu.Unlock()
}

// Mark registers n and wraps content with its zone marker. Regions marked
// later win ties when resolving overlapping regions of equal depth.
func (t *Tree) Mark(n Node, content string) string {
	if t == nil || n.ID == "" {
		return content
	}
	t.mu.Lock()
	t.seq++
	t.nodes[n.ID] = entry{node: n, order: t.seq}
	t.mu.Unlock()
	return t.zones.Mark(n.ID, content)
}

// Scan strips zone markers from the final frame and records their bounds.
func (t *Tree) Scan(view string) string {
	if t == nil {
		return view
	}
	return t.zones.Scan(view)
}

// Bounds returns the rectangle recorded for id on the last scanned frame.
func (t *Tree) Bounds(id string) (Rect, bool) {
	if t == nil {
		return Rect{}, false
	}
	info := t.zones.Get(id)
	if info.IsZero() {
		return Rect{}, false
	}
	return Rect{
		X:      info.StartX,
		Y:      info.StartY,
		Width:  info.EndX - info.StartX + 1,
		Height: info.EndY - info.StartY + 1,
	}, true
}

// Resolve returns the chain for the deepest region containing the event.
func (t *Tree) Resolve(msg tea.MouseMsg) Path {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	var (
		best      entry
		bestDepth = -1
	)
	for id, e := range t.nodes {
		if !t.zones.Get(id).InBounds(msg) {
			continue
		}
		depth := t.depthLocked(e.node)
		if depth > bestDepth || (depth == bestDepth && e.order > best.order) {
			best = e
			bestDepth = depth
		}
	}
	if bestDepth < 0 {
		return nil
	}
	return t.ancestryLocked(best.node.ID)
}

// Ancestry returns the registered chain starting at id.
func (t *Tree) Ancestry(id string) Path {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ancestryLocked(id)
}

func (t *Tree) ancestryLocked(id string) Path {
	path := Path{}
	seen := map[string]struct{}{}
	for id != "" {
		if _, loop := seen[id]; loop {
			break
		}
		seen[id] = struct{}{}
		e, ok := t.nodes[id]
		if !ok {
			break
		}
		path = append(path, e.node)
		id = e.node.Parent
	}
	return path
}

func (t *Tree) depthLocked(n Node) int {
	return len(t.ancestryLocked(n.ID))
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(tea.MouseMsg) Path

func (f ResolverFunc) Resolve(msg tea.MouseMsg) Path {
	return f(msg)
}

// StaticLocator serves fixed bounds, mostly for tests and headless use.
type StaticLocator map[string]Rect

func (s StaticLocator) Bounds(id string) (Rect, bool) {
	r, ok := s[id]
	return r, ok
}
