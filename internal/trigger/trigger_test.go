package trigger

import (
	"testing"

	"github.com/atomicstack/overlaykit/internal/hit"
	"github.com/atomicstack/overlaykit/internal/overlay"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newButton(t *testing.T) (*Button, *overlay.Document, *int, hit.StaticLocator) {
	t.Helper()
	doc := overlay.NewDocument()
	closed := 0
	b := New("filters", doc, Options{Title: Title{Text: "Filters"}, OnClose: func() { closed++ }})
	loc := hit.StaticLocator{"filters": {X: 2, Y: 0, Width: 9, Height: 1}}
	return b, doc, &closed, loc
}

func buttonPath() hit.Path {
	return hit.Path{{ID: "filters"}}
}

func TestToggleOpensAtRightEdge(t *testing.T) {
	b, doc, closed, loc := newButton(t)

	require.True(t, b.Toggle(loc))
	assert.True(t, b.IsOpen())
	x, y := b.Host().Variant().Point()
	assert.Equal(t, 11, x)
	assert.Equal(t, 0, y)
	assert.Equal(t, 1, doc.Len())

	assert.False(t, b.Toggle(loc))
	assert.False(t, b.IsOpen())
	assert.Equal(t, 1, *closed)
	assert.Equal(t, 0, doc.Len())
}

func TestToggleFailsClosedOffscreen(t *testing.T) {
	b, doc, closed, _ := newButton(t)
	assert.False(t, b.Toggle(hit.StaticLocator{}))
	assert.False(t, b.IsOpen())
	assert.Equal(t, 0, doc.Len())
	assert.Equal(t, 0, *closed)
}

func TestOutsideClickClosesOnce(t *testing.T) {
	b, doc, closed, loc := newButton(t)
	require.True(t, b.Toggle(loc))

	doc.Dispatch(40, 10, hit.Path{{ID: "page"}})
	assert.False(t, b.IsOpen())
	assert.Equal(t, 1, *closed)

	b.Close()
	assert.Equal(t, 1, *closed)
}

func TestInsideClickKeepsOpen(t *testing.T) {
	b, doc, closed, loc := newButton(t)
	require.True(t, b.Toggle(loc))

	doc.Dispatch(12, 1, hit.Path{
		{ID: "row", Parent: b.PanelID()},
		{ID: b.PanelID(), Markers: []string{overlay.MarkerAtPoint}},
	})
	assert.True(t, b.IsOpen())
	assert.Equal(t, 0, *closed)
}

func TestClickOnTriggerWhileOpenDoesNotReopen(t *testing.T) {
	b, doc, closed, loc := newButton(t)
	click := doc.Dispatch(3, 0, buttonPath())
	require.True(t, b.Click(loc, click))

	click = doc.Dispatch(3, 0, buttonPath())
	assert.False(t, b.IsOpen())
	assert.False(t, b.Click(loc, click))
	assert.False(t, b.IsOpen())
	assert.Equal(t, 1, *closed)

	click = doc.Dispatch(3, 0, buttonPath())
	assert.True(t, b.Click(loc, click))
}

func TestKeys(t *testing.T) {
	b, _, closed, loc := newButton(t)

	handled, _ := b.Update(tea.KeyMsg{Type: tea.KeyEnter}, loc)
	assert.False(t, handled, "unfocused trigger ignores enter")

	b.SetFocused(true)
	handled, _ = b.Update(tea.KeyMsg{Type: tea.KeySpace}, loc)
	assert.True(t, handled)
	assert.True(t, b.IsOpen())

	handled, _ = b.Update(tea.KeyMsg{Type: tea.KeyEsc}, loc)
	assert.True(t, handled)
	assert.False(t, b.IsOpen())
	assert.Equal(t, 1, *closed)
}

func TestPositionOnlyChangesGlyph(t *testing.T) {
	doc := overlay.NewDocument()
	loc := hit.StaticLocator{"a": {X: 0, Y: 0, Width: 4, Height: 1}, "b": {X: 0, Y: 0, Width: 4, Height: 1}}
	left := New("a", doc, Options{Title: Title{Icon: "⚙"}, Position: Left})
	bottom := New("b", doc, Options{Title: Title{Icon: "⚙"}, Position: Bottom})
	require.True(t, left.Toggle(loc))
	require.True(t, bottom.Toggle(loc))
	assert.Equal(t, left.Host().Variant().String(), bottom.Host().Variant().String())
	assert.Contains(t, left.View(nil), "◂")
	assert.Contains(t, bottom.View(nil), "▾")
}

func TestTitleString(t *testing.T) {
	assert.Equal(t, "x", Title{Text: "x"}.String())
	assert.Equal(t, "★", Title{Icon: "★"}.String())
	assert.Equal(t, "★ x", Title{Icon: "★", Text: "x"}.String())
}
