package dispatcher

import (
	"github.com/atomicstack/overlaykit/internal/backend"
	"github.com/atomicstack/overlaykit/internal/combobox"
	"github.com/atomicstack/overlaykit/internal/filebrowser"
	"github.com/atomicstack/overlaykit/internal/logging"
	"github.com/atomicstack/overlaykit/internal/state"
)

type Result struct {
	TagsUpdated      bool
	FilterUpdated    bool
	Created          bool
	DirectoryUpdated bool
	Err              error
}

type Dispatcher struct {
	tags state.TagStore
	dirs state.DirectoryStore
}

func New(t state.TagStore, d state.DirectoryStore) *Dispatcher {
	return &Dispatcher{tags: t, dirs: d}
}

// Handle applies a combobox event to the tag store. Create requests are
// answered immediately: the tag is allocated and passed to Resolve, which
// comes back through Handle as a Toggle.
func (d *Dispatcher) Handle(ev combobox.Event) Result {
	var res Result
	switch ev := ev.(type) {
	case combobox.Toggle[int]:
		res.TagsUpdated = d.tags.SetSelected(ev.ID, ev.Selected)
	case combobox.FilterChanged:
		if d.tags.Filter() != ev.Text {
			d.tags.SetFilter(ev.Text)
			res.FilterUpdated = true
		}
	case combobox.CreateRequest[int]:
		tag, created := d.tags.Add(ev.Name)
		res.Created = created
		res.TagsUpdated = created
		if ev.Resolve != nil {
			ev.Resolve(tag.ID)
		}
	}
	return res
}

// HandleBackend records a directory listing from the watcher.
func (d *Dispatcher) HandleBackend(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		d.dirs.SetErr(evt.Err)
		logging.Error(evt.Err)
		res.Err = evt.Err
		return res
	}
	switch evt.Kind {
	case backend.KindDirectory:
		if listing, ok := evt.Data.(filebrowser.Listing); ok {
			res.DirectoryUpdated = d.dirs.Set(listing.Path, listing.Entries)
		}
	}
	return res
}
