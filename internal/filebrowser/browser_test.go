package filebrowser

import (
	"testing"

	"github.com/atomicstack/overlaykit/internal/hit"
	"github.com/atomicstack/overlaykit/internal/overlay"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type browserFixture struct {
	browser  *Browser
	doc      *overlay.Document
	requests []Request
	submits  []string
}

func newBrowserFixture(t *testing.T, opts Options) *browserFixture {
	t.Helper()
	f := &browserFixture{doc: overlay.NewDocument()}
	if opts.InitLocation == "" {
		opts.InitLocation = "/"
	}
	opts.OnEvent = func(ev Event) {
		switch ev := ev.(type) {
		case RequestEvent:
			f.requests = append(f.requests, ev.Request)
		case Submit:
			f.submits = append(f.submits, ev.Path)
		}
	}
	f.browser = New("files", f.doc, opts)
	return f
}

func (f *browserFixture) last(t *testing.T) Request {
	t.Helper()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

// press mirrors the root model: document listeners first, then the browser.
func (f *browserFixture) press(path hit.Path) {
	click := f.doc.Dispatch(0, 0, path)
	f.browser.Click(click)
}

func (f *browserFixture) rowPath(itemID string) hit.Path {
	host := f.browser.Host()
	return hit.Path{
		{ID: "files:row:" + itemID, Parent: host.ContentID()},
		{ID: host.ContentID(), Parent: host.ID()},
		{ID: host.ID(), Markers: []string{overlay.MarkerBackdrop}},
	}
}

func demoEntries(dir string) []FileInfo {
	return []FileInfo{
		{Title: "Another Test", Path: dir + "Another Test"},
		{Title: "Testing", Path: dir + "Testing"},
		{Title: "My Files", Path: dir + "My Files", IsFile: true},
	}
}

func labels(b *Browser) []string {
	out := make([]string, len(b.Level().Items))
	for i, item := range b.Level().Items {
		out[i] = item.Label
	}
	return out
}

func TestStartRequestsInitialLocation(t *testing.T) {
	f := newBrowserFixture(t, Options{InitLocation: "/srv"})
	f.browser.Start()

	req := f.last(t)
	assert.Equal(t, "/srv", req.Path)
	assert.True(t, f.browser.Pending())
	assert.Equal(t, "/srv", f.browser.Location())
}

func TestFirstCorrectionSetsChosenLaterOnesSetCurrent(t *testing.T) {
	f := newBrowserFixture(t, Options{InitLocation: "/"})
	f.browser.Start()
	f.last(t).Update("C:/", nil)

	assert.Equal(t, "C:/", f.browser.Location())
	assert.Equal(t, "/", f.browser.Current())

	f.browser.Open("/data/")
	f.last(t).Update("/data", nil)
	assert.Equal(t, "/data", f.browser.Current())
	assert.Equal(t, "C:/", f.browser.Location())
}

func TestStaleResponseIsDropped(t *testing.T) {
	f := newBrowserFixture(t, Options{})
	f.browser.Open("/a")
	first := f.last(t)
	f.browser.Open("/b")
	second := f.last(t)

	first.Update("", demoEntries("/a/"))
	assert.Empty(t, f.browser.Files())
	assert.True(t, f.browser.Pending())

	second.Update("", demoEntries("/b/"))
	assert.Len(t, f.browser.Files(), 3)
	assert.False(t, f.browser.Pending())
	assert.Equal(t, "/b/Another Test", f.browser.Files()[0].Path)
}

func TestUpdateAppliesOnce(t *testing.T) {
	f := newBrowserFixture(t, Options{})
	f.browser.Start()
	req := f.last(t)
	req.Update("", demoEntries("/"))
	req.Update("", nil)

	assert.Len(t, f.browser.Files(), 3)
}

func TestInputChangedIgnoresBlank(t *testing.T) {
	f := newBrowserFixture(t, Options{InitLocation: "/"})

	assert.False(t, f.browser.InputChanged("   "))
	assert.Equal(t, "/", f.browser.Location())

	assert.True(t, f.browser.InputChanged("  /tmp "))
	assert.Equal(t, "/tmp", f.browser.Location())
}

func TestToggleReturnsToChosenLocation(t *testing.T) {
	f := newBrowserFixture(t, Options{InitLocation: "/"})
	f.browser.Start()
	f.last(t).Update("", demoEntries("/"))
	f.browser.InputChanged("/tmp")

	f.browser.Toggle()
	require.True(t, f.browser.IsOpen())
	assert.Equal(t, "/tmp", f.browser.Current())
	assert.Equal(t, "/tmp", f.last(t).Path)
	assert.Empty(t, f.browser.Files())
	assert.Equal(t, 1, f.doc.Len())
}

func TestToggleAtSameLocationDoesNotRequest(t *testing.T) {
	f := newBrowserFixture(t, Options{InitLocation: "/"})
	f.browser.Start()
	f.last(t).Update("", demoEntries("/"))
	before := len(f.requests)

	f.browser.Toggle()
	assert.Len(t, f.requests, before)
	assert.Len(t, f.browser.Files(), 3)
}

func TestRowsHideFilesUnlessShown(t *testing.T) {
	f := newBrowserFixture(t, Options{InitLocation: "/home"})
	f.browser.Start()
	f.last(t).Update("", demoEntries("/home/"))
	assert.Equal(t, []string{backTitle, "Another Test", "Testing"}, labels(f.browser))

	g := newBrowserFixture(t, Options{InitLocation: "/", ShowFiles: true})
	g.browser.Start()
	g.last(t).Update("", demoEntries("/"))
	assert.Equal(t, []string{"Another Test", "Testing", "My Files"}, labels(g.browser))
}

func TestFileRowsAreInert(t *testing.T) {
	f := newBrowserFixture(t, Options{InitLocation: "/", ShowFiles: true})
	f.browser.Start()
	f.last(t).Update("", demoEntries("/"))
	f.browser.Toggle()
	before := len(f.requests)

	f.press(f.rowPath("path:/My Files"))
	assert.Len(t, f.requests, before)
	assert.True(t, f.browser.IsOpen())
}

func TestClickingDirectoryAndBackNavigates(t *testing.T) {
	f := newBrowserFixture(t, Options{InitLocation: "/"})
	f.browser.Start()
	f.last(t).Update("", demoEntries("/"))
	f.browser.Toggle()

	f.press(f.rowPath("path:/Testing"))
	require.Equal(t, "/Testing", f.last(t).Path)
	f.last(t).Update("", nil)
	assert.Equal(t, []string{backTitle}, labels(f.browser))
	assert.True(t, f.browser.IsOpen())
	assert.Equal(t, 1, f.doc.Len())

	f.press(f.rowPath(backRowID))
	assert.Equal(t, "/", f.last(t).Path)
}

func TestSubmitChoosesCurrentAndCloses(t *testing.T) {
	f := newBrowserFixture(t, Options{InitLocation: "/"})
	f.browser.Start()
	f.last(t).Update("", demoEntries("/"))
	f.browser.Toggle()
	f.browser.Open("/Testing")
	f.last(t).Update("", nil)

	f.press(hit.Path{{ID: "files:submit", Parent: f.browser.Host().ContentID()}, {ID: f.browser.Host().ContentID()}})
	assert.False(t, f.browser.IsOpen())
	assert.Equal(t, []string{"/Testing"}, f.submits)
	assert.Equal(t, "/Testing", f.browser.Location())
	assert.Zero(t, f.doc.Len())
}

func TestCancelAndBackdropClose(t *testing.T) {
	f := newBrowserFixture(t, Options{InitLocation: "/"})
	f.browser.Start()
	f.last(t).Update("", demoEntries("/"))

	f.browser.Toggle()
	f.press(hit.Path{{ID: "files:cancel", Markers: []string{overlay.MarkerClose}}, {ID: f.browser.Host().ContentID()}})
	assert.False(t, f.browser.IsOpen())

	f.browser.Toggle()
	f.press(hit.Path{{ID: f.browser.Host().ID(), Markers: []string{overlay.MarkerBackdrop}}})
	assert.False(t, f.browser.IsOpen())
	assert.Empty(t, f.submits)
	assert.Equal(t, "/", f.browser.Location())
}

func TestPopupKeysFilterAndNavigate(t *testing.T) {
	f := newBrowserFixture(t, Options{InitLocation: "/home"})
	f.browser.Start()
	f.last(t).Update("", demoEntries("/home/"))
	f.browser.Toggle()

	f.browser.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("test")})
	assert.Equal(t, "test", f.browser.Level().Filter)
	assert.Contains(t, labels(f.browser), backTitle)
	assert.Contains(t, labels(f.browser), "Testing")

	f.browser.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Empty(t, f.browser.Level().Filter)

	f.browser.Update(tea.KeyMsg{Type: tea.KeyDown})
	f.browser.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "/home/Another Test", f.last(t).Path)

	f.browser.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "/home", f.last(t).Path)

	f.browser.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, f.browser.IsOpen())
}

func TestPathFieldCommitsOnEnter(t *testing.T) {
	f := newBrowserFixture(t, Options{InitLocation: "/"})
	f.browser.Click(overlay.Click{Path: hit.Path{{ID: "files:input", Parent: "files"}, {ID: "files"}}})
	require.True(t, f.browser.InputFocused())

	f.browser.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("tmp")})
	f.browser.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, f.browser.InputFocused())
	assert.Equal(t, "/tmp", f.browser.Location())
}

func TestReloadOnlyForSettledCurrentDirectory(t *testing.T) {
	f := newBrowserFixture(t, Options{InitLocation: "/"})
	f.browser.Start()
	assert.False(t, f.browser.Reload("/", demoEntries("/")))

	f.last(t).Update("", demoEntries("/"))
	assert.False(t, f.browser.Reload("/", demoEntries("/")))
	assert.False(t, f.browser.Reload("/other", nil))
	assert.True(t, f.browser.Reload("/", demoEntries("/")[:1]))
	assert.Len(t, f.browser.Files(), 1)
}

type markRecorder struct {
	nodes []hit.Node
}

func (r *markRecorder) Mark(n hit.Node, content string) string {
	r.nodes = append(r.nodes, n)
	return content
}

func (r *markRecorder) find(id string) (hit.Node, bool) {
	for _, n := range r.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return hit.Node{}, false
}

func TestRenderPanelMarksRowsAndButtons(t *testing.T) {
	f := newBrowserFixture(t, Options{InitLocation: "/home"})
	f.browser.Start()
	f.last(t).Update("", demoEntries("/home/"))
	f.browser.Toggle()

	mk := &markRecorder{}
	p := overlay.NewPortal()
	f.browser.RenderPanel(mk, p, overlay.Size{Width: 80, Height: 24})
	assert.Equal(t, 1, p.Len())

	row, ok := mk.find("files:row:path:/home/Testing")
	require.True(t, ok)
	assert.Equal(t, f.browser.Host().ContentID(), row.Parent)

	cancel, ok := mk.find("files:cancel")
	require.True(t, ok)
	assert.True(t, cancel.HasMarker(overlay.MarkerClose))

	backdrop, ok := mk.find(f.browser.Host().ID())
	require.True(t, ok)
	assert.True(t, backdrop.HasMarker(overlay.MarkerBackdrop))
}
