package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/overlaykit/internal/hit"
	tea "github.com/charmbracelet/bubbletea"
)

func TestViewShowsFieldsAndFooter(t *testing.T) {
	h, _ := newTestHarness(t, Options{Width: 80, Height: 24, ShowFooter: true})
	view := h.View()
	for _, want := range []string{"Filter", "Tags", "Folder", "Details", footerText} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestViewComposesOpenMenu(t *testing.T) {
	h, ptr := newTestHarness(t, Options{Width: 80, Height: 24})
	h.Send(ptr.at(10, 2, hit.Node{ID: menuID}))
	view := h.View()
	if !strings.Contains(view, "ABC") || !strings.Contains(view, "Baby You and Me") {
		t.Fatalf("expected menu rows in view:\n%s", view)
	}
}

func TestViewComposesBrowserDialog(t *testing.T) {
	h, _ := newTestHarness(t, Options{Width: 80, Height: 24})
	h.Model().Browser().Toggle()
	view := h.View()
	for _, want := range []string{"Another Test", "Submit", "Cancel"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestWindowSizeIgnoredWhenFixed(t *testing.T) {
	h, _ := newTestHarness(t, Options{Width: 60})
	h.Send(tea.WindowSizeMsg{Width: 100, Height: 40})
	m := h.Model()
	if m.width != 60 || m.height != 40 {
		t.Fatalf("unexpected size %dx%d", m.width, m.height)
	}
}
