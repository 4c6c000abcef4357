package ui

import (
	"github.com/atomicstack/overlaykit/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

type focusTarget int

const (
	focusMenu focusTarget = iota
	focusTags
	focusPath
	focusBrowse
	focusDetails
	focusCount
)

func (f focusTarget) String() string {
	switch f {
	case focusMenu:
		return "menu"
	case focusTags:
		return "tags"
	case focusPath:
		return "path"
	case focusBrowse:
		return "browse"
	case focusDetails:
		return "details"
	}
	return "unknown"
}

// setFocus moves keyboard focus, releasing whatever held it before.
func (m *Model) setFocus(f focusTarget) tea.Cmd {
	prev := m.focus
	m.focus = f
	m.menu.Button().SetFocused(f == focusMenu)
	var cmd tea.Cmd
	if prev == focusTags && f != focusTags {
		cmd = m.tags.Blur()
	}
	if prev == focusPath && f != focusPath {
		m.browser.BlurInput()
	}
	if prev != f {
		events.App.Focus(f.String())
	}
	return cmd
}

func (m *Model) cycleFocus(delta int) tea.Cmd {
	next := (int(m.focus) + delta + int(focusCount)) % int(focusCount)
	return m.setFocus(focusTarget(next))
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "ctrl+e":
		editing := !m.tags.Engine().Editing()
		events.App.Editing(editing)
		if editing {
			m.setInfo("Tag editing enabled")
		} else {
			m.setInfo("Tag editing disabled")
		}
		return m.tags.SetEditing(editing)
	}

	// Open overlays take the keyboard first.
	if m.browser.IsOpen() || m.browser.InputFocused() {
		_, cmd := m.browser.Update(keyMsg)
		if !m.browser.InputFocused() && m.focus == focusPath {
			m.focus = focusBrowse
			events.App.Focus(m.focus.String())
		}
		return cmd
	}
	if m.menu.IsOpen() {
		_, cmd := m.menu.Update(keyMsg, m.locator)
		return cmd
	}
	if m.focus == focusTags && m.tags.Engine().State().Focused {
		if keyMsg.String() == "tab" || keyMsg.String() == "shift+tab" {
			return m.handleFocusKey(keyMsg)
		}
		return m.tags.Update(keyMsg)
	}
	return m.handleFocusKey(keyMsg)
}

func (m *Model) handleFocusKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		return m.cycleFocus(1)
	case "shift+tab":
		return m.cycleFocus(-1)
	case "esc", "q":
		if m.details.IsOpen() {
			m.details.Toggle()
			return nil
		}
		return tea.Quit
	case "enter", " ":
		return m.activateFocused(msg)
	}
	return nil
}

func (m *Model) activateFocused(msg tea.KeyMsg) tea.Cmd {
	switch m.focus {
	case focusMenu:
		_, cmd := m.menu.Update(msg, m.locator)
		return cmd
	case focusTags:
		return m.tags.Focus()
	case focusPath:
		return m.browser.FocusInput()
	case focusBrowse:
		m.browser.Toggle()
	case focusDetails:
		m.details.Toggle()
	}
	return nil
}
