package ui

import (
	"strings"
	"time"

	"github.com/atomicstack/overlaykit/internal/hit"
	"github.com/atomicstack/overlaykit/internal/overlay"
	"github.com/atomicstack/overlaykit/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	labelWidth = 10
	footerText = "tab focus  enter open  ctrl+e edit tags  esc close  ctrl+c quit"
)

// View implements tea.Model. Regions are re-marked on every frame and the
// overlays are composited over the page last, so they resolve on top.
func (m *Model) View() string {
	m.regions.Begin()
	var mk hit.Marker = m.regions
	base := m.viewPage(mk)
	m.portal.Reset()
	screen := overlay.Size{Width: m.width, Height: m.height}
	m.menu.RenderPanel(mk, m.portal, screen)
	m.browser.RenderPanel(mk, m.portal, screen)
	frame := m.portal.Composite(base, m.width, m.height)
	return m.regions.Scan(frame)
}

func (m *Model) viewPage(mk hit.Marker) string {
	lines := make([]string, 0, 16)
	lines = append(lines, theme.Render(styles.Header, "overlaykit  "+m.menu.Location().String()), "")
	lines = append(lines,
		m.field("Filter", focusMenu, m.menu.View(mk)),
		m.field("Tags", focusTags, m.tags.View(mk)),
		m.field("Folder", focusPath, m.browser.View(mk)),
		m.field("", focusDetails, m.details.View(mk, m.focus == focusDetails, m.detailLines())),
	)
	lines = append(lines, "")
	if status, style := m.statusLine(); status != "" {
		lines = append(lines, theme.Render(style, status))
	}
	if m.showFooter {
		lines = append(lines, theme.Render(styles.Footer, footerText))
	}
	out := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return fitFrame(out, m.width, m.height)
}

// field lays a label beside a widget, marking the label when its widget
// holds the keyboard.
func (m *Model) field(label string, target focusTarget, body string) string {
	focused := m.focus == target || (target == focusPath && m.focus == focusBrowse)
	indicator := theme.Render(styles.ItemIndicator, " ")
	if focused {
		indicator = theme.Render(styles.SelectedItemIndicator, "▌")
	}
	style := lipgloss.NewStyle()
	if styles.Header != nil {
		style = *styles.Header
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, indicator, style.Width(labelWidth).Render(label), body)
}

func (m *Model) detailLines() []string {
	chosen := m.tags.Engine().Chosen()
	names := make([]string, 0, len(chosen))
	for _, it := range chosen {
		names = append(names, it.Label)
	}
	tags := "(none)"
	if len(names) > 0 {
		tags = strings.Join(names, ", ")
	}
	return []string{
		"url     " + m.menu.Location().String(),
		"tags    " + tags,
		"folder  " + m.browser.Location(),
	}
}

func (m *Model) statusLine() (string, *lipgloss.Style) {
	switch {
	case m.errMsg != "":
		return m.errMsg, styles.Error
	case m.backendLastErr != "":
		return "watcher: " + m.backendLastErr, styles.Error
	}
	if info := m.currentInfo(); info != "" {
		return info, styles.Info
	}
	return "", nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.tags.SetWidth(m.width - labelWidth - 1)
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}

// fitFrame truncates rows to width and drops rows beyond height, ending with
// an ellipsis row when anything was cut.
func fitFrame(frame string, width, height int) string {
	rows := strings.Split(frame, "\n")
	if width > 0 {
		for i, row := range rows {
			if ansi.StringWidth(row) > width {
				rows[i] = ansi.Truncate(row, width, "…")
			}
		}
	}
	if height > 0 && len(rows) > height {
		rows = append(rows[:height-1], "…")
	}
	return strings.Join(rows, "\n")
}
