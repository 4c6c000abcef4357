package overlay

import "github.com/atomicstack/overlaykit/internal/hit"

// Click is one document-level mouse press.
type Click struct {
	Seq  uint64
	X, Y int
	Path hit.Path
}

// Listener observes document clicks.
type Listener func(Click)

// ListenerID identifies an installed listener.
type ListenerID uint64

// Document is the document-level click source. The root model dispatches
// every press here before routing it to the widget under the pointer, which
// mirrors a capture-phase listener.
type Document struct {
	next      ListenerID
	seq       uint64
	listeners map[ListenerID]Listener
	order     []ListenerID
}

func NewDocument() *Document {
	return &Document{listeners: make(map[ListenerID]Listener)}
}

// Listen installs fn and returns its handle.
func (d *Document) Listen(fn Listener) ListenerID {
	if fn == nil {
		return 0
	}
	d.next++
	id := d.next
	d.listeners[id] = fn
	d.order = append(d.order, id)
	return id
}

// Remove uninstalls a listener, reporting whether it was present.
func (d *Document) Remove(id ListenerID) bool {
	if _, ok := d.listeners[id]; !ok {
		return false
	}
	delete(d.listeners, id)
	for i, cur := range d.order {
		if cur == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return true
}

// Len reports the number of installed listeners.
func (d *Document) Len() int {
	return len(d.listeners)
}

// Dispatch delivers a press to every listener in install order. Listeners
// removed by an earlier listener during the same dispatch are skipped.
func (d *Document) Dispatch(x, y int, path hit.Path) Click {
	d.seq++
	click := Click{Seq: d.seq, X: x, Y: y, Path: path}
	snapshot := append([]ListenerID(nil), d.order...)
	for _, id := range snapshot {
		fn, ok := d.listeners[id]
		if !ok {
			continue
		}
		fn(click)
	}
	return click
}

// Subscription owns at most one installed listener.
type Subscription struct {
	doc   *Document
	id    ListenerID
	owner string
}

// NewSubscription binds a subscription slot to doc. owner is used for tracing.
func NewSubscription(doc *Document, owner string) *Subscription {
	return &Subscription{doc: doc, owner: owner}
}

// Replace removes the current listener, then installs fn.
func (s *Subscription) Replace(fn Listener) {
	if s == nil || s.doc == nil {
		return
	}
	s.Close()
	s.id = s.doc.Listen(fn)
	if s.id != 0 {
		traceListen(s.owner, s.id)
	}
}

// Close removes the current listener. Safe to call repeatedly.
func (s *Subscription) Close() {
	if s == nil || s.doc == nil || s.id == 0 {
		return
	}
	if s.doc.Remove(s.id) {
		traceRemove(s.owner, s.id)
	}
	s.id = 0
}

// Active reports whether a listener is installed.
func (s *Subscription) Active() bool {
	return s != nil && s.id != 0
}
