package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Layer is one detached overlay queued for compositing.
type Layer struct {
	X, Y    int
	Full    bool
	Content string
}

// Portal collects detached overlays during a frame and draws them over the
// base view, in the order they were added.
type Portal struct {
	layers []Layer
}

func NewPortal() *Portal {
	return &Portal{}
}

// Reset drops the layers of the previous frame.
func (p *Portal) Reset() {
	if p == nil {
		return
	}
	p.layers = p.layers[:0]
}

func (p *Portal) Add(l Layer) {
	if p == nil || l.Content == "" {
		return
	}
	p.layers = append(p.layers, l)
}

func (p *Portal) Len() int {
	if p == nil {
		return 0
	}
	return len(p.layers)
}

// Composite draws every queued layer over base. A full layer replaces the
// frame; positioned layers are shifted left or up just enough to stay on a
// width x height screen.
func (p *Portal) Composite(base string, width, height int) string {
	if p == nil {
		return base
	}
	out := base
	for _, l := range p.layers {
		if l.Full {
			out = l.Content
			continue
		}
		out = paste(out, l.Content, l.X, l.Y, width, height)
	}
	return out
}

func paste(base, panel string, x, y, width, height int) string {
	rows := strings.Split(base, "\n")
	panelRows := strings.Split(panel, "\n")
	panelWidth := 0
	for _, r := range panelRows {
		if w := ansi.StringWidth(r); w > panelWidth {
			panelWidth = w
		}
	}
	if width > 0 && x+panelWidth > width {
		x = width - panelWidth
	}
	if height > 0 && y+len(panelRows) > height {
		y = height - len(panelRows)
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	for len(rows) < y+len(panelRows) {
		rows = append(rows, "")
	}
	for i, pr := range panelRows {
		row := rows[y+i]
		left := ansi.Truncate(row, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ""
		if ansi.StringWidth(row) > x+panelWidth {
			right = ansi.TruncateLeft(row, x+panelWidth, "")
		}
		if fill := panelWidth - ansi.StringWidth(pr); fill > 0 {
			pr += strings.Repeat(" ", fill)
		}
		rows[y+i] = left + pr + right
	}
	return strings.Join(rows, "\n")
}
