package backend

import (
	"errors"
	"testing"
	"time"

	"github.com/atomicstack/overlaykit/internal/filebrowser"
)

func TestListingFilterDropsRepeats(t *testing.T) {
	clock := time.Unix(0, 0)
	f := newListingFilter(time.Minute)
	f.now = func() time.Time { return clock }

	a := filebrowser.Listing{Path: "/srv", Entries: []filebrowser.FileInfo{{Title: "a", Path: "/srv/a"}}}
	if !f.allow(a, nil) {
		t.Fatal("first listing must pass")
	}
	if f.allow(a, nil) {
		t.Fatal("identical listing should be dropped")
	}

	b := filebrowser.Listing{Path: "/srv", Entries: append(a.Entries, filebrowser.FileInfo{Title: "b", Path: "/srv/b"})}
	if !f.allow(b, nil) {
		t.Fatal("changed entries must pass")
	}
	if !f.allow(filebrowser.Listing{Path: "/tmp", Entries: b.Entries}, nil) {
		t.Fatal("a different directory must pass")
	}
}

func TestListingFilterResendsAfterQuiet(t *testing.T) {
	clock := time.Unix(0, 0)
	f := newListingFilter(time.Minute)
	f.now = func() time.Time { return clock }

	l := filebrowser.Listing{Path: "/srv"}
	f.allow(l, nil)
	clock = clock.Add(30 * time.Second)
	if f.allow(l, nil) {
		t.Fatal("repeat inside the quiet period should be dropped")
	}
	clock = clock.Add(31 * time.Second)
	if !f.allow(l, nil) {
		t.Fatal("repeat after the quiet period should pass")
	}
}

func TestListingFilterTracksErrors(t *testing.T) {
	f := newListingFilter(time.Minute)
	l := filebrowser.Listing{Path: "/srv"}
	boom := errors.New("permission denied")

	if !f.allow(l, boom) {
		t.Fatal("first error must pass")
	}
	if f.allow(l, boom) {
		t.Fatal("repeated error should be dropped")
	}
	if !f.allow(l, nil) {
		t.Fatal("recovery must pass")
	}
}

func TestListingFilterNilAllowsAll(t *testing.T) {
	var f *listingFilter
	if !f.allow(filebrowser.Listing{}, nil) {
		t.Fatal("nil filter should not drop anything")
	}
}
