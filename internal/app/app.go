package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/overlaykit/internal/backend"
	"github.com/atomicstack/overlaykit/internal/filebrowser"
	"github.com/atomicstack/overlaykit/internal/menu"
	"github.com/atomicstack/overlaykit/internal/state"
	"github.com/atomicstack/overlaykit/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Width          int
	Height         int
	ShowFooter     bool
	BlurDelay      time.Duration
	MenuFile       string
	RootDir        string
	ShowFiles      bool
	OverwriteQuery bool
	NoMouse        bool
	WatchInterval  time.Duration
}

var defaultTags = []state.Tag{
	{ID: 1, Name: "Go"},
	{ID: 2, Name: "Terminal"},
	{ID: 3, Name: "Overlay"},
}

// Options translates the configuration into gallery options.
func Options(cfg Config) (ui.Options, error) {
	tree := menu.DefaultTree()
	if cfg.MenuFile != "" {
		loaded, err := menu.LoadTree(cfg.MenuFile)
		if err != nil {
			return ui.Options{}, fmt.Errorf("load menu: %w", err)
		}
		tree = loaded
	}
	if cfg.OverwriteQuery {
		tree.OverwriteQuery = true
	}
	return ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Tree:       tree,
		RootDir:    cfg.RootDir,
		ShowFiles:  cfg.ShowFiles,
		BlurDelay:  cfg.BlurDelay,
		Tags:       defaultTags,
		Provider:   filebrowser.OSProvider{},
	}, nil
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	opts, err := Options(cfg)
	if err != nil {
		return err
	}
	if cfg.WatchInterval > 0 {
		// The model points the watcher at the browsed directory once the
		// first listing arrives.
		opts.Watcher = backend.NewWatcher(opts.Provider, "", cfg.WatchInterval)
	}
	model := ui.NewModel(opts)
	defer model.Close()

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if !cfg.NoMouse {
		programOpts = append(programOpts, tea.WithMouseAllMotion())
	}
	program := tea.NewProgram(model, programOpts...)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
