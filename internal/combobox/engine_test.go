package combobox

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []Event
}

func (r *recorder) on(ev Event) { r.events = append(r.events, ev) }

func (r *recorder) toggles() []Toggle[int] {
	var out []Toggle[int]
	for _, ev := range r.events {
		if t, ok := ev.(Toggle[int]); ok {
			out = append(out, t)
		}
	}
	return out
}

func numbers() []Item[int] {
	return []Item[int]{
		{ID: 0, Label: "Zero"},
		{ID: 1, Label: "One"},
		{ID: 2, Label: "Two"},
		{ID: 3, Label: "Three"},
		{ID: 4, Label: "Four"},
	}
}

func newEngine(opts Options) (*Engine[int], *recorder) {
	rec := &recorder{}
	opts.OnEvent = rec.on
	if opts.Name == "" {
		opts.Name = "numbers"
	}
	if opts.BlurDelay == 0 {
		opts.BlurDelay = time.Millisecond
	}
	e := New[int](opts)
	e.SetItems(numbers())
	return e, rec
}

func runBlur(t *testing.T, cmd tea.Cmd) BlurElapsedMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(BlurElapsedMsg)
	require.True(t, ok)
	return msg
}

func labels(items []Item[int]) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

func TestFocusOpensWhenItemsExist(t *testing.T) {
	e, _ := newEngine(Options{})
	assert.False(t, e.State().Opened)
	e.Focus()
	assert.True(t, e.State().Focused)
	assert.True(t, e.State().Opened)

	empty := New[int](Options{Name: "empty"})
	empty.Focus()
	assert.False(t, empty.State().Opened)
	empty.InputChanged("  ", KeyOther)
	assert.False(t, empty.State().Opened)
	empty.InputChanged("x", KeyOther)
	assert.True(t, empty.State().Opened)
}

func TestFilterResetsHighlight(t *testing.T) {
	e, _ := newEngine(Options{})
	e.Focus()
	for _, text := range []string{"o", "on", "o", "", "t"} {
		e.KeyDown(KeyDown)
		e.KeyDown(KeyDown)
		e.InputChanged(text, KeyOther)
		assert.Equal(t, 0, e.State().HighlightIndex, text)
	}
}

func TestArrowEditKeepsHighlight(t *testing.T) {
	e, _ := newEngine(Options{})
	e.Focus()
	e.KeyDown(KeyDown)
	e.InputChanged("", KeyDown)
	assert.Equal(t, 1, e.State().HighlightIndex)
}

func TestHighlightStaysInRange(t *testing.T) {
	for _, creation := range []bool{false, true} {
		for visible := 0; visible <= 3; visible++ {
			items := numbers()[:visible]
			e := New[int](Options{Name: "n", Creation: creation})
			e.SetItems(items)
			e.Focus()
			e.InputChanged("", KeyOther)
			keys := []Key{KeyDown, KeyDown, KeyDown, KeyDown, KeyUp, KeyDown, KeyUp, KeyUp, KeyUp, KeyUp, KeyDown}
			for _, k := range keys {
				e.KeyDown(k)
				idx := e.State().HighlightIndex
				assert.GreaterOrEqual(t, idx, 0)
				assert.LessOrEqual(t, idx, e.VisibleCount())
			}
		}
	}
}

func TestArrowDownBounds(t *testing.T) {
	e, _ := newEngine(Options{})
	e.Focus()
	for i := 0; i < 10; i++ {
		e.KeyDown(KeyDown)
	}
	assert.Equal(t, 4, e.State().HighlightIndex, "stops on last item without create row")

	c, _ := newEngine(Options{Creation: true})
	c.Focus()
	c.InputChanged("e", KeyOther)
	require.Equal(t, []string{"Zero", "One", "Three"}, labels(c.Visible()))
	for i := 0; i < 10; i++ {
		c.KeyDown(KeyDown)
	}
	assert.Equal(t, 3, c.State().HighlightIndex, "reaches create row")

	for i := 0; i < 10; i++ {
		c.KeyDown(KeyUp)
	}
	assert.Equal(t, 0, c.State().HighlightIndex)
}

func TestFilterIsCaseInsensitiveSubstring(t *testing.T) {
	e, _ := newEngine(Options{})
	e.InputChanged("o", KeyOther)
	assert.Equal(t, []string{"Zero", "One", "Two", "Four"}, labels(e.Visible()))

	items := numbers()
	items[1].Selected = true
	e.SetItems(items)
	assert.Equal(t, []string{"Zero", "Two", "Four"}, labels(e.Visible()))

	e.InputChanged("TH", KeyOther)
	assert.Equal(t, []string{"Three"}, labels(e.Visible()))
}

func TestInputChangedEmitsFilterChanged(t *testing.T) {
	e, rec := newEngine(Options{})
	e.InputChanged("tw", KeyOther)
	require.Len(t, rec.events, 1)
	assert.Equal(t, FilterChanged{Text: "tw"}, rec.events[0])
}

func TestSelectEmitsSingleToggle(t *testing.T) {
	e, rec := newEngine(Options{})
	e.Select(3)
	require.Len(t, rec.events, 1)
	assert.Equal(t, Toggle[int]{ID: 3, Selected: true}, rec.events[0])
}

func TestUnselectDependsOnEditing(t *testing.T) {
	e, rec := newEngine(Options{Editing: false})
	items := numbers()
	items[0].Selected = true
	e.SetItems(items)
	before := e.State()

	e.Unselect(0)
	assert.Empty(t, rec.events)
	assert.Equal(t, before, e.State())
	assert.Len(t, e.Chosen(), 1)

	e.SetEditing(true)
	e.Unselect(0)
	assert.Equal(t, []Toggle[int]{{ID: 0, Selected: false}}, rec.toggles())
}

func TestEnterSelectsHighlightedVisibleItem(t *testing.T) {
	e, rec := newEngine(Options{})
	e.Focus()
	e.InputChanged("t", KeyOther)
	require.Equal(t, []string{"Two", "Three"}, labels(e.Visible()))
	e.KeyDown(KeyDown)
	require.True(t, e.Enter())
	assert.Equal(t, []Toggle[int]{{ID: 3, Selected: true}}, rec.toggles())
}

func TestEnterOnCreateRow(t *testing.T) {
	e, rec := newEngine(Options{Creation: true})
	e.Focus()
	e.InputChanged("Five", KeyOther)
	require.Equal(t, 0, e.VisibleCount())
	require.True(t, e.CreateRowShown())
	rec.events = nil

	require.True(t, e.Enter())
	require.Len(t, rec.events, 2)
	req, ok := rec.events[0].(CreateRequest[int])
	require.True(t, ok)
	assert.Equal(t, "Five", req.Name)
	assert.Equal(t, "", e.State().FilterText)
	assert.Equal(t, FilterChanged{Text: ""}, rec.events[1], "clearing the text is reported")

	req.Resolve(5)
	assert.Equal(t, []Toggle[int]{{ID: 5, Selected: true}}, rec.toggles())
}

func TestEnterOnCreateRowWithoutCreation(t *testing.T) {
	e, rec := newEngine(Options{Creation: false})
	e.Focus()
	e.InputChanged("Five", KeyOther)
	rec.events = nil
	assert.False(t, e.Enter())
	assert.Empty(t, rec.events)
	assert.Equal(t, "Five", e.State().FilterText)
}

func TestEnterWithEmptyListAndNoText(t *testing.T) {
	e := New[int](Options{Name: "x", Creation: true})
	e.Focus()
	assert.False(t, e.Enter())
}

func TestResolveAfterDestroyIsNoop(t *testing.T) {
	e, rec := newEngine(Options{Creation: true})
	e.Focus()
	e.InputChanged("Six", KeyOther)
	e.Enter()
	req := rec.events[len(rec.events)-2].(CreateRequest[int])
	rec.events = nil

	e.Destroy()
	assert.NotPanics(t, func() { req.Resolve(6) })
	assert.Empty(t, rec.events)
}

func TestHover(t *testing.T) {
	e, _ := newEngine(Options{Creation: true})
	e.Focus()
	e.InputChanged("o", KeyOther)
	e.Hover(4)
	assert.Equal(t, 3, e.State().HighlightIndex)
	e.Hover(3)
	assert.Equal(t, 3, e.State().HighlightIndex, "hidden item leaves highlight alone")
	e.HoverCreateRow()
	assert.Equal(t, 4, e.State().HighlightIndex)
}

func TestBlurIsDeferred(t *testing.T) {
	e, _ := newEngine(Options{})
	e.Focus()
	e.KeyDown(KeyDown)
	cmd := e.Blur()
	assert.True(t, e.State().Focused, "blur waits for its timer")

	msg := runBlur(t, cmd)
	assert.True(t, e.HandleBlurElapsed(msg))
	assert.False(t, e.State().Focused)
	assert.False(t, e.State().Opened)
	assert.Equal(t, 0, e.State().HighlightIndex)
}

func TestFocusDuringBlurDelayWins(t *testing.T) {
	e, _ := newEngine(Options{BlurDelay: 100 * time.Millisecond})
	e.Focus()
	cmd := e.Blur()
	e.Focus()

	msg := runBlur(t, cmd)
	assert.False(t, e.HandleBlurElapsed(msg))
	assert.True(t, e.State().Focused)
	assert.True(t, e.State().Opened)
}

func TestBlurAfterDestroyIsNoop(t *testing.T) {
	e, _ := newEngine(Options{})
	e.Focus()
	cmd := e.Blur()
	e.Destroy()
	assert.False(t, e.HandleBlurElapsed(runBlur(t, cmd)))
	assert.True(t, e.State().Focused)
	assert.Nil(t, e.Blur())
}

func TestBlurForOtherEngineIgnored(t *testing.T) {
	e, _ := newEngine(Options{})
	e.Focus()
	msg := runBlur(t, e.Blur())
	msg.Name = "other"
	assert.False(t, e.HandleBlurElapsed(msg))
	assert.True(t, e.State().Focused)
}

func TestSetItemsClampsHighlight(t *testing.T) {
	e, _ := newEngine(Options{})
	e.Focus()
	for i := 0; i < 4; i++ {
		e.KeyDown(KeyDown)
	}
	e.SetItems(numbers()[:2])
	assert.Equal(t, 2, e.State().HighlightIndex)
}

func TestDefaultBlurDelay(t *testing.T) {
	e := New[string](Options{Name: "s"})
	assert.Equal(t, DefaultBlurDelay, e.BlurDelay())
}
