package overlay

import (
	"fmt"

	"github.com/atomicstack/overlaykit/internal/hit"
)

// Region markers consulted by the dismissal rules.
const (
	MarkerBackdrop = "modal"
	MarkerAtPoint  = "popup-at-point"
	MarkerInline   = "popup-display"
	MarkerClose    = "close-popup"
)

// Kind enumerates overlay variants.
type Kind int

const (
	KindFullOverlay Kind = iota
	KindAtPoint
	KindInline
)

func (k Kind) String() string {
	switch k {
	case KindFullOverlay:
		return "full-overlay"
	case KindAtPoint:
		return "at-point"
	case KindInline:
		return "inline"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Variant selects how an overlay is drawn and when a click dismisses it.
type Variant struct {
	kind Kind
	x, y int
}

// FullOverlay is a centered dialog over a dimmed backdrop.
func FullOverlay() Variant { return Variant{kind: KindFullOverlay} }

// AtPoint is a floating panel whose top-left corner sits at (x, y).
func AtPoint(x, y int) Variant { return Variant{kind: KindAtPoint, x: x, y: y} }

// Inline is an always in-flow dropdown.
func Inline() Variant { return Variant{kind: KindInline} }

func (v Variant) Kind() Kind { return v.kind }

// Point returns the anchor of an AtPoint variant and zeros otherwise.
func (v Variant) Point() (int, int) {
	if v.kind != KindAtPoint {
		return 0, 0
	}
	return v.x, v.y
}

// Portal reports whether the variant renders detached from its parent.
func (v Variant) Portal() bool {
	return v.kind != KindInline
}

func (v Variant) String() string {
	if v.kind == KindAtPoint {
		return fmt.Sprintf("%s(%d,%d)", v.kind, v.x, v.y)
	}
	return v.kind.String()
}

// ShouldExit decides whether a click on path dismisses the overlay whose root
// region is rootID. An explicit close marker anywhere in the ancestry always
// wins; otherwise the rule depends on the variant.
func ShouldExit(v Variant, rootID string, path hit.Path) bool {
	if path.HasMarker(MarkerClose) {
		return true
	}
	switch v.kind {
	case KindFullOverlay:
		target, ok := path.Target()
		if !ok {
			return false
		}
		return path.Contains(rootID) && target.HasMarker(MarkerBackdrop)
	case KindAtPoint:
		return !path.HasMarker(MarkerAtPoint)
	case KindInline:
		return !path.HasMarker(MarkerInline)
	}
	return false
}
