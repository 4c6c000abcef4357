package ui

import (
	"github.com/atomicstack/overlaykit/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// handleMouseMsg resolves the pointer against the last frame. Presses are
// offered to the overlay Document before any widget sees them, so an open
// overlay closes on the same press that lands elsewhere.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	switch ev.Action {
	case tea.MouseActionMotion:
		path := m.resolver.Resolve(ev)
		m.menu.Hover(path)
		m.tags.Hover(path)
		m.browser.Hover(path)
		return nil
	case tea.MouseActionPress:
		if ev.Button != tea.MouseButtonLeft {
			return nil
		}
		return m.press(ev)
	}
	return nil
}

func (m *Model) press(ev tea.MouseMsg) tea.Cmd {
	path := m.resolver.Resolve(ev)
	events.App.Press(ev.X, ev.Y, path.IDs())
	modal := m.browser.IsOpen()
	click := m.doc.Dispatch(ev.X, ev.Y, path)
	if modal {
		_, cmd := m.browser.Click(click)
		return cmd
	}

	cmds := make([]tea.Cmd, 0, 2)
	if cmd := m.tags.Click(path); cmd != nil {
		cmds = append(cmds, cmd)
	}
	target := m.focus
	switch {
	case m.menu.Click(m.locator, click):
		target = focusMenu
	case path.Contains(tagsID):
		target = focusTags
	case path.Contains(detailsID):
		m.details.Click(click)
		target = focusDetails
	default:
		hitBrowser, cmd := m.browser.Click(click)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if hitBrowser {
			target = focusBrowse
			if m.browser.InputFocused() {
				target = focusPath
			}
		}
	}
	if target != m.focus {
		// The combobox already handled its own focus for this press.
		if m.focus == focusTags {
			m.focus = target
			events.App.Focus(target.String())
			m.menu.Button().SetFocused(target == focusMenu)
		} else if cmd := m.setFocus(target); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}
