package combobox

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/overlaykit/internal/hit"
	"github.com/atomicstack/overlaykit/internal/theme"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

var styles = theme.Default()

// Model renders an Engine as chosen pills, a filter input and the open
// option list, and translates keys and clicks into engine operations.
type Model[ID comparable] struct {
	engine *Engine[ID]
	input  textinput.Model
	parent string
	width  int
}

// NewModel creates a model around a fresh engine.
func NewModel[ID comparable](opts Options) *Model[ID] {
	ti := textinput.New()
	ti.Prompt = "» "
	ti.Placeholder = "type to filter"
	if styles.FilterPrompt != nil {
		ti.PromptStyle = *styles.FilterPrompt
	}
	if styles.FilterPlaceholder != nil {
		ti.PlaceholderStyle = *styles.FilterPlaceholder
	}
	return &Model[ID]{engine: New[ID](opts), input: ti}
}

func (m *Model[ID]) Engine() *Engine[ID] { return m.engine }

func (m *Model[ID]) Name() string { return m.engine.Name() }

// SetParent nests the model's region under another marked region.
func (m *Model[ID]) SetParent(id string) { m.parent = id }

func (m *Model[ID]) SetWidth(w int) { m.width = w }

// InputValue is the text currently shown in the filter field.
func (m *Model[ID]) InputValue() string { return m.input.Value() }

func (m *Model[ID]) inputID() string { return m.Name() + ":input" }
func (m *Model[ID]) createID() string { return m.Name() + ":create" }
func (m *Model[ID]) optionID(i int) string { return m.Name() + ":opt:" + strconv.Itoa(i) }
func (m *Model[ID]) pillID(i int) string { return m.Name() + ":pill:" + strconv.Itoa(i) }
func (m *Model[ID]) optionPrefix() string { return m.Name() + ":opt:" }
func (m *Model[ID]) pillPrefix() string { return m.Name() + ":pill:" }

// Focus focuses the engine and the filter field.
func (m *Model[ID]) Focus() tea.Cmd {
	if !m.engine.Editing() {
		return nil
	}
	m.engine.Focus()
	return m.input.Focus()
}

// Blur schedules a deferred blur.
func (m *Model[ID]) Blur() tea.Cmd {
	if !m.engine.State().Focused {
		return nil
	}
	return m.engine.Blur()
}

// SetEditing switches editing mode. Leaving it schedules a blur.
func (m *Model[ID]) SetEditing(v bool) tea.Cmd {
	m.engine.SetEditing(v)
	if v {
		return nil
	}
	return m.Blur()
}

// Destroy retires the engine.
func (m *Model[ID]) Destroy() {
	m.engine.Destroy()
	m.input.Blur()
}

// Update handles blur timers, and keys while focused.
func (m *Model[ID]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case BlurElapsedMsg:
		if m.engine.HandleBlurElapsed(msg) {
			m.input.Blur()
		}
		return nil
	case tea.KeyMsg:
		if !m.engine.State().Focused || !m.engine.Editing() || m.engine.Destroyed() {
			return nil
		}
		return m.handleKey(msg)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model[ID]) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "ctrl+p":
		m.engine.KeyDown(KeyUp)
		return nil
	case "down", "ctrl+n":
		m.engine.KeyDown(KeyDown)
		return nil
	case "enter":
		m.engine.Enter()
		m.syncInput()
		return nil
	case "esc", "tab":
		return m.Blur()
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.engine.InputChanged(after, KeyOther)
	}
	return cmd
}

func (m *Model[ID]) syncInput() {
	if text := m.engine.State().FilterText; m.input.Value() != text {
		m.input.SetValue(text)
	}
}

// Click routes a press resolved to path. Presses outside the widget start a
// deferred blur; presses inside focus it first, cancelling a pending blur,
// then act on the row under the pointer.
func (m *Model[ID]) Click(path hit.Path) tea.Cmd {
	if m.engine.Destroyed() {
		return nil
	}
	if !path.Contains(m.Name()) {
		return m.Blur()
	}
	target, _ := path.Target()
	if idx, ok := regionIndex(target.ID, m.pillPrefix()); ok {
		chosen := m.engine.Chosen()
		if idx < len(chosen) {
			m.engine.Unselect(chosen[idx].ID)
		}
		return nil
	}
	cmd := m.Focus()
	switch {
	case target.ID == m.createID():
		m.engine.HoverCreateRow()
		m.engine.Enter()
		m.syncInput()
	default:
		if idx, ok := regionIndex(target.ID, m.optionPrefix()); ok {
			visible := m.engine.Visible()
			if idx < len(visible) {
				m.engine.Select(visible[idx].ID)
			}
		}
	}
	return cmd
}

// Hover moves the highlight to the row under the pointer.
func (m *Model[ID]) Hover(path hit.Path) {
	if !m.engine.State().Opened {
		return
	}
	target, ok := path.Target()
	if !ok {
		return
	}
	if target.ID == m.createID() {
		m.engine.HoverCreateRow()
		return
	}
	if idx, ok := regionIndex(target.ID, m.optionPrefix()); ok {
		visible := m.engine.Visible()
		if idx < len(visible) {
			m.engine.Hover(visible[idx].ID)
		}
	}
}

func regionIndex(id, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok {
		return 0, false
	}
	idx, err := strconv.Atoi(rest)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

// View renders the widget. View-only engines show the chosen pills only.
func (m *Model[ID]) View(mk hit.Marker) string {
	if mk == nil {
		mk = passthrough{}
	}
	state := m.engine.State()
	sections := []string{m.viewPills(mk)}
	if m.engine.Editing() {
		box := styles.Input
		if state.Focused {
			box = styles.InputFocused
		}
		field := theme.Render(box, m.input.View())
		sections = append(sections, mk.Mark(hit.Node{ID: m.inputID(), Parent: m.Name()}, field))
		if state.Opened {
			sections = append(sections, m.viewOptions(mk, state)...)
		}
	}
	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return mk.Mark(hit.Node{ID: m.Name(), Parent: m.parent}, body)
}

func (m *Model[ID]) viewPills(mk hit.Marker) string {
	chosen := m.engine.Chosen()
	if len(chosen) == 0 {
		return theme.Render(styles.Info, "(none selected)")
	}
	pills := make([]string, 0, len(chosen)*2)
	for i, it := range chosen {
		var pill string
		if m.engine.Editing() {
			pill = theme.Render(styles.Pill, it.Label+" ×")
		} else {
			pill = theme.Render(styles.PillReadOnly, it.Label)
		}
		if i > 0 {
			pills = append(pills, " ")
		}
		pills = append(pills, mk.Mark(hit.Node{ID: m.pillID(i), Parent: m.Name()}, pill))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, pills...)
}

func (m *Model[ID]) viewOptions(mk hit.Marker, state State) []string {
	visible := m.engine.Visible()
	rows := make([]string, 0, len(visible)+1)
	for i, it := range visible {
		rows = append(rows, mk.Mark(hit.Node{ID: m.optionID(i), Parent: m.Name()}, m.row(it.Label, i == state.HighlightIndex, styles.Item)))
	}
	if m.engine.CreateRowShown() {
		label := fmt.Sprintf("Create %q", strings.TrimSpace(state.FilterText))
		rows = append(rows, mk.Mark(hit.Node{ID: m.createID(), Parent: m.Name()}, m.row(label, state.HighlightIndex == len(visible), styles.CreateRow)))
	}
	if len(rows) == 0 {
		msg := "(no options)"
		if state.FilterText != "" {
			msg = fmt.Sprintf("No matches for %q", state.FilterText)
		}
		rows = append(rows, theme.Render(styles.Info, msg))
	}
	return rows
}

func (m *Model[ID]) row(label string, highlighted bool, style *lipgloss.Style) string {
	prefix := "  "
	prefixStyle := styles.ItemIndicator
	if highlighted {
		prefix = "› "
		prefixStyle = styles.SelectedItemIndicator
		style = styles.SelectedItem
	}
	if m.width > 0 {
		label = truncate.StringWithTail(label, uint(max(m.width-2, 1)), "…")
	}
	return theme.Render(prefixStyle, prefix) + theme.Render(style, label)
}

type passthrough struct{}

func (passthrough) Mark(_ hit.Node, content string) string { return content }
