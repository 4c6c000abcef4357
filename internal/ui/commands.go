package ui

import (
	"context"
	"fmt"

	"github.com/atomicstack/overlaykit/internal/combobox"
	"github.com/atomicstack/overlaykit/internal/filebrowser"
	"github.com/atomicstack/overlaykit/internal/logging"
	"github.com/atomicstack/overlaykit/internal/menu"
	"github.com/atomicstack/overlaykit/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// listingMsg mirrors the async provider response.
type listingMsg struct {
	request filebrowser.Request
	listing filebrowser.Listing
	err     error
}

func (m *Model) listCmd(req filebrowser.Request) tea.Cmd {
	provider := m.provider
	return m.bus.Execute(command.Request{
		ID:    "browser.list",
		Label: req.Path,
		Handler: func(ctx context.Context) tea.Msg {
			listing, err := provider.List(ctx, req.Path)
			return listingMsg{request: req, listing: listing, err: err}
		},
	})
}

func (m *Model) handleListingMsg(msg tea.Msg) tea.Cmd {
	resp, ok := msg.(listingMsg)
	if !ok {
		return nil
	}
	if resp.err != nil {
		logging.Error(resp.err)
		m.errMsg = resp.err.Error()
		resp.request.Update("", nil)
	} else {
		m.errMsg = ""
		resp.request.Update(resp.listing.Corrected, resp.listing.Entries)
	}
	if m.backend != nil && !m.browser.Pending() {
		m.backend.SetPath(m.browser.Current())
	}
	return nil
}

func (m *Model) handleBrowserEvent(ev filebrowser.Event) {
	switch ev := ev.(type) {
	case filebrowser.RequestEvent:
		m.queue(m.listCmd(ev.Request))
	case filebrowser.Submit:
		m.setInfo(fmt.Sprintf("Directory set to %s", ev.Path))
	}
}

func (m *Model) handleTagEvent(ev combobox.Event) {
	res := m.dispatcher.Handle(ev)
	if res.Created {
		if create, ok := ev.(combobox.CreateRequest[int]); ok {
			m.setInfo(fmt.Sprintf("Created tag %q", create.Name))
		}
	}
	if res.TagsUpdated {
		m.syncTags()
	}
}

func (m *Model) handleNavigate(nav menu.Navigate) {
	m.setInfo(fmt.Sprintf("Navigated to %s", nav.URL))
}

// syncTags hands the store's records back to the combobox.
func (m *Model) syncTags() {
	entries := m.tagStore.Entries()
	items := make([]combobox.Item[int], 0, len(entries))
	for _, tag := range entries {
		items = append(items, combobox.Item[int]{ID: tag.ID, Label: tag.Name, Selected: m.tagStore.IsSelected(tag.ID)})
	}
	m.tags.Engine().SetItems(items)
}

func (m *Model) handleBlurElapsedMsg(msg tea.Msg) tea.Cmd {
	return m.tags.Update(msg)
}
