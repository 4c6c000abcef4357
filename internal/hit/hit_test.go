package hit

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathMarkerWalk(t *testing.T) {
	path := Path{
		{ID: "row-2", Parent: "list"},
		{ID: "list", Parent: "panel", Markers: []string{"close-popup"}},
		{ID: "panel", Markers: []string{"popup-at-point"}},
	}

	target, ok := path.Target()
	require.True(t, ok)
	assert.Equal(t, "row-2", target.ID)
	assert.True(t, path.HasMarker("popup-at-point"))
	assert.True(t, path.HasMarker("close-popup"))
	assert.False(t, path.HasMarker("modal"))
	assert.True(t, path.Contains("list"))
	assert.False(t, path.Contains("other"))
	assert.Equal(t, []string{"row-2", "list", "panel"}, path.IDs())
}

func TestEmptyPath(t *testing.T) {
	var path Path
	_, ok := path.Target()
	assert.False(t, ok)
	assert.False(t, path.HasMarker("anything"))
}

func TestTreeAncestryFollowsParents(t *testing.T) {
	tree := NewTree()
	defer tree.Close()

	tree.Begin()
	tree.Mark(Node{ID: "root", Markers: []string{"modal"}}, "x")
	tree.Mark(Node{ID: "dialog", Parent: "root"}, "y")
	tree.Mark(Node{ID: "button", Parent: "dialog", Markers: []string{"close-popup"}}, "z")

	path := tree.Ancestry("button")
	assert.Equal(t, []string{"button", "dialog", "root"}, path.IDs())
	assert.True(t, path.HasMarker("modal"))

	tree.Begin()
	assert.Empty(t, tree.Ancestry("button"), "expected registry reset on Begin")
}

func TestTreeMarkIgnoresEmptyID(t *testing.T) {
	tree := NewTree()
	defer tree.Close()
	assert.Equal(t, "plain", tree.Mark(Node{}, "plain"))
}

func TestStaticLocator(t *testing.T) {
	loc := StaticLocator{"trigger": {X: 4, Y: 1, Width: 3, Height: 1}}
	r, ok := loc.Bounds("trigger")
	require.True(t, ok)
	assert.Equal(t, 4, r.X)
	_, ok = loc.Bounds("missing")
	assert.False(t, ok)
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// scanned renders a frame through the tree and waits for the zone worker to
// record id.
func scanned(t *testing.T, tree *Tree, frame, id string) string {
	t.Helper()
	out := tree.Scan(frame)
	require.Eventually(t, func() bool {
		_, ok := tree.Bounds(id)
		return ok
	}, time.Second, 5*time.Millisecond)
	return out
}

func TestTreeResolvesRenderedRegions(t *testing.T) {
	tree := NewTree()
	defer tree.Close()

	tree.Begin()
	button := tree.Mark(Node{ID: "button", Parent: "panel", Markers: []string{"close-popup"}}, "[ok]")
	panel := tree.Mark(Node{ID: "panel", Markers: []string{"popup-at-point"}}, "ab"+button+"cd")
	// Same depth and same cells: the region marked last wins.
	shared := tree.Mark(Node{ID: "over"}, tree.Mark(Node{ID: "under"}, "xy"))
	frame := "header\n" + panel + "\n" + shared

	out := scanned(t, tree, frame, "over")
	assert.Equal(t, "header\nab[ok]cd\nxy", out)

	r, ok := tree.Bounds("panel")
	require.True(t, ok)
	assert.Equal(t, Rect{X: 0, Y: 1, Width: 8, Height: 1}, r)
	r, ok = tree.Bounds("button")
	require.True(t, ok)
	assert.Equal(t, Rect{X: 2, Y: 1, Width: 4, Height: 1}, r)

	inner := tree.Resolve(press(3, 1))
	assert.Equal(t, []string{"button", "panel"}, inner.IDs())
	assert.True(t, inner.HasMarker("close-popup"))

	edge := tree.Resolve(press(0, 1))
	assert.Equal(t, []string{"panel"}, edge.IDs())
	assert.False(t, edge.HasMarker("close-popup"))

	assert.Equal(t, []string{"over"}, tree.Resolve(press(1, 2)).IDs())
	assert.Empty(t, tree.Resolve(press(0, 0)))
	assert.Empty(t, tree.Resolve(press(8, 1)))
}

func TestTreeDeeperRegionWinsOverLaterOne(t *testing.T) {
	tree := NewTree()
	defer tree.Close()

	tree.Begin()
	leaf := tree.Mark(Node{ID: "leaf", Parent: "base"}, "zz")
	base := tree.Mark(Node{ID: "base"}, leaf)
	// A parentless region marked afterwards over the same cells.
	frame := tree.Mark(Node{ID: "flat"}, base)

	scanned(t, tree, frame, "flat")
	assert.Equal(t, []string{"leaf", "base"}, tree.Resolve(press(1, 0)).IDs())
}
