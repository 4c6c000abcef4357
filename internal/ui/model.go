package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/overlaykit/internal/backend"
	"github.com/atomicstack/overlaykit/internal/combobox"
	"github.com/atomicstack/overlaykit/internal/data/dispatcher"
	"github.com/atomicstack/overlaykit/internal/filebrowser"
	"github.com/atomicstack/overlaykit/internal/hit"
	"github.com/atomicstack/overlaykit/internal/menu"
	"github.com/atomicstack/overlaykit/internal/overlay"
	"github.com/atomicstack/overlaykit/internal/state"
	"github.com/atomicstack/overlaykit/internal/theme"
	"github.com/atomicstack/overlaykit/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	menuID      = "filter"
	tagsID      = "tags"
	browserID   = "files"
	detailsID   = "details"
	listTimeout = 5 * time.Second
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures the gallery.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Tree       menu.Tree
	Location   menu.Location
	RootDir    string
	ShowFiles  bool
	BlurDelay  time.Duration
	Tags       []state.Tag
	Provider   filebrowser.Provider
	Watcher    *backend.Watcher

	// Resolver and Locator replace the bubblezone-backed region tree,
	// mostly for tests.
	Resolver hit.Resolver
	Locator  hit.Locator
}

// Model implements the Bubble Tea model for the gallery.
type Model struct {
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	infoMsg     string
	infoExpire  time.Time
	errMsg      string

	regions  *hit.Tree
	resolver hit.Resolver
	locator  hit.Locator
	doc      *overlay.Document
	portal   *overlay.Portal

	menu    *menu.Menu
	tags    *combobox.Model[int]
	browser *filebrowser.Browser
	details *details
	focus   focusTarget

	handlers map[reflect.Type]msgHandler

	// pending collects commands requested from widget callbacks, which have
	// no way to return them. finishUpdate drains it.
	pending []tea.Cmd

	bus            *command.Bus
	provider       filebrowser.Provider
	backend        *backend.Watcher
	backendLastErr string
	tagStore       state.TagStore
	dirStore       state.DirectoryStore
	dispatcher     *dispatcher.Dispatcher
}

// NewModel initialises the widgets and their stores.
func NewModel(opts Options) *Model {
	tags := state.NewTagStore(opts.Tags...)
	dirs := state.NewDirectoryStore()
	m := &Model{
		showFooter: opts.ShowFooter,
		regions:    hit.NewTree(),
		doc:        overlay.NewDocument(),
		portal:     overlay.NewPortal(),
		bus:        command.New(listTimeout),
		provider:   opts.Provider,
		backend:    opts.Watcher,
		tagStore:   tags,
		dirStore:   dirs,
		dispatcher: dispatcher.New(tags, dirs),
	}
	m.resolver = m.regions
	m.locator = m.regions
	if opts.Resolver != nil {
		m.resolver = opts.Resolver
	}
	if opts.Locator != nil {
		m.locator = opts.Locator
	}
	if m.provider == nil {
		m.provider = filebrowser.OSProvider{}
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}

	tree := opts.Tree
	if len(tree.Nodes) == 0 {
		tree = menu.DefaultTree()
	}
	m.menu = menu.New(menuID, m.doc, menu.Options{
		Tree:       tree,
		Location:   opts.Location,
		OnNavigate: m.handleNavigate,
	})
	m.tags = combobox.NewModel[int](combobox.Options{
		Name:      tagsID,
		Editing:   true,
		Creation:  true,
		BlurDelay: opts.BlurDelay,
		OnEvent:   m.handleTagEvent,
	})
	m.syncTags()

	root := opts.RootDir
	if root == "" {
		root = "."
	}
	m.browser = filebrowser.New(browserID, m.doc, filebrowser.Options{
		InitLocation: root,
		ShowFiles:    opts.ShowFiles,
		OnEvent:      m.handleBrowserEvent,
	})
	m.details = newDetails(detailsID, m.doc)
	m.setFocus(focusMenu)
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	m.browser.Start()
	cmds := m.takePending()
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}
	// Cursor blinks and other widget-internal messages.
	if cmd := m.tags.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if _, cmd := m.browser.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):              m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):            m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):       m.handleWindowSizeMsg,
		reflect.TypeOf(combobox.BlurElapsedMsg{}): m.handleBlurElapsedMsg,
		reflect.TypeOf(listingMsg{}):              m.handleListingMsg,
		reflect.TypeOf(backendEventMsg{}):         m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):          m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	cmds = append(cmds, m.takePending()...)
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) takePending() []tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return cmds
}

// Close releases background resources owned by the model.
func (m *Model) Close() {
	m.bus.Close()
	m.regions.Close()
	if m.backend != nil {
		m.backend.Stop()
	}
}

func (m *Model) Menu() *menu.Menu { return m.menu }

func (m *Model) Tags() *combobox.Model[int] { return m.tags }

func (m *Model) TagStore() state.TagStore { return m.tagStore }

func (m *Model) Browser() *filebrowser.Browser { return m.browser }

func (m *Model) Document() *overlay.Document { return m.doc }
