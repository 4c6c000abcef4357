package combobox

import (
	"testing"
	"time"

	"github.com/atomicstack/overlaykit/internal/hit"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(opts Options) (*Model[int], *recorder) {
	rec := &recorder{}
	opts.OnEvent = rec.on
	opts.Name = "tags"
	if opts.BlurDelay == 0 {
		opts.BlurDelay = time.Millisecond
	}
	m := NewModel[int](opts)
	m.Engine().SetItems(numbers())
	return m, rec
}

func typeText(m *Model[int], text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func inside(ids ...string) hit.Path {
	path := make(hit.Path, 0, len(ids)+1)
	for _, id := range ids {
		path = append(path, hit.Node{ID: id, Parent: "tags"})
	}
	return append(path, hit.Node{ID: "tags"})
}

func TestModelTypingFilters(t *testing.T) {
	m, rec := newModel(Options{Editing: true})
	m.Focus()
	typeText(m, "tw")
	assert.Equal(t, "tw", m.Engine().State().FilterText)
	assert.Equal(t, []string{"Two"}, labels(m.Engine().Visible()))
	require.NotEmpty(t, rec.events)
	assert.Equal(t, FilterChanged{Text: "tw"}, rec.events[len(rec.events)-1])
}

func TestModelIgnoresKeysWhenUnfocused(t *testing.T) {
	m, rec := newModel(Options{Editing: true})
	typeText(m, "x")
	assert.Empty(t, rec.events)
	assert.Equal(t, "", m.InputValue())
}

func TestModelEnterCreatesAndClearsInput(t *testing.T) {
	m, rec := newModel(Options{Editing: true, Creation: true})
	m.Focus()
	typeText(m, "Five")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	req, ok := rec.events[len(rec.events)-1].(CreateRequest[int])
	require.True(t, ok)
	assert.Equal(t, "Five", req.Name)
	assert.Equal(t, "", m.InputValue())
}

func TestModelArrowKeysMoveHighlight(t *testing.T) {
	m, _ := newModel(Options{Editing: true})
	m.Focus()
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.Engine().State().HighlightIndex)
}

func TestModelClickOptionSelects(t *testing.T) {
	m, rec := newModel(Options{Editing: true})
	m.Click(inside("tags:opt:2"))
	assert.True(t, m.Engine().State().Focused)
	assert.Equal(t, []Toggle[int]{{ID: 2, Selected: true}}, rec.toggles())
}

func TestModelClickOutsideBlursLater(t *testing.T) {
	m, _ := newModel(Options{Editing: true})
	m.Focus()
	cmd := m.Click(hit.Path{{ID: "page"}})
	require.NotNil(t, cmd)
	assert.True(t, m.Engine().State().Focused)

	m.Update(cmd())
	assert.False(t, m.Engine().State().Focused)
}

func TestModelClickInsideDuringBlurKeepsFocus(t *testing.T) {
	m, rec := newModel(Options{Editing: true})
	m.Focus()
	blur := m.Click(hit.Path{{ID: "page"}})
	require.NotNil(t, blur)
	m.Click(inside("tags:opt:0"))

	m.Update(blur())
	assert.True(t, m.Engine().State().Focused)
	assert.Equal(t, []Toggle[int]{{ID: 0, Selected: true}}, rec.toggles())
}

func TestModelPillClickRespectsEditing(t *testing.T) {
	m, rec := newModel(Options{Editing: false})
	items := numbers()
	items[4].Selected = true
	m.Engine().SetItems(items)

	m.Click(inside("tags:pill:0"))
	assert.Empty(t, rec.events)

	m.SetEditing(true)
	m.Click(inside("tags:pill:0"))
	assert.Equal(t, []Toggle[int]{{ID: 4, Selected: false}}, rec.toggles())
}

func TestModelClickCreateRow(t *testing.T) {
	m, rec := newModel(Options{Editing: true, Creation: true})
	m.Focus()
	typeText(m, "new")
	m.Click(inside("tags:create"))
	req, ok := rec.events[len(rec.events)-1].(CreateRequest[int])
	require.True(t, ok)
	assert.Equal(t, "new", req.Name)
	assert.Equal(t, "", m.InputValue())
}

func TestModelHover(t *testing.T) {
	m, _ := newModel(Options{Editing: true, Creation: true})
	m.Focus()
	m.Hover(inside("tags:opt:3"))
	assert.Equal(t, 3, m.Engine().State().HighlightIndex)
	typeText(m, "o")
	m.Hover(inside("tags:create"))
	assert.Equal(t, 4, m.Engine().State().HighlightIndex)
}

func TestModelViewOnlyShowsPills(t *testing.T) {
	m, _ := newModel(Options{Editing: false})
	items := numbers()
	items[1].Selected = true
	m.Engine().SetItems(items)
	view := m.View(nil)
	assert.Contains(t, view, "One")
	assert.NotContains(t, view, "Zero")
	assert.NotContains(t, view, "×")
}

func TestModelViewListsOptionsWhenOpen(t *testing.T) {
	m, _ := newModel(Options{Editing: true, Creation: true})
	m.Focus()
	typeText(m, "t")
	view := m.View(nil)
	assert.Contains(t, view, "Two")
	assert.Contains(t, view, "Three")
	assert.NotContains(t, view, "Zero")
	assert.Contains(t, view, `Create "t"`)
}

func TestModelViewMarksRegions(t *testing.T) {
	m, _ := newModel(Options{Editing: true})
	m.Focus()
	rec := &markRecorder{}
	m.View(rec)
	assert.Contains(t, rec.ids, "tags")
	assert.Contains(t, rec.ids, "tags:input")
	assert.Contains(t, rec.ids, "tags:opt:0")
	assert.Contains(t, rec.ids, "tags:opt:4")
}

type markRecorder struct {
	ids []string
}

func (r *markRecorder) Mark(n hit.Node, content string) string {
	r.ids = append(r.ids, n.ID)
	return content
}
