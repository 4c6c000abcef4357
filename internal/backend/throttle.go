package backend

import (
	"slices"
	"sync"
	"time"

	"github.com/atomicstack/overlaykit/internal/filebrowser"
)

// unchangedResend is how long a repeated listing stays suppressed.
const unchangedResend = 30 * time.Second

// listingFilter drops polls that found the same directory contents (or the
// same error) as the last reported one. A repeat still goes through once
// quiet has passed since the last report.
type listingFilter struct {
	quiet time.Duration
	now   func() time.Time

	mu      sync.Mutex
	seen    bool
	path    string
	entries []filebrowser.FileInfo
	errText string
	last    time.Time
}

func newListingFilter(quiet time.Duration) *listingFilter {
	return &listingFilter{quiet: quiet, now: time.Now}
}

// allow records the poll result and reports whether it should be emitted.
func (f *listingFilter) allow(listing filebrowser.Listing, err error) bool {
	if f == nil {
		return true
	}
	errText := ""
	if err != nil {
		errText = err.Error()
	}
	now := f.now()

	f.mu.Lock()
	defer f.mu.Unlock()
	same := f.seen &&
		f.path == listing.Path &&
		f.errText == errText &&
		slices.Equal(f.entries, listing.Entries)
	if same && (f.quiet <= 0 || now.Sub(f.last) < f.quiet) {
		return false
	}
	f.seen = true
	f.path = listing.Path
	f.entries = slices.Clone(listing.Entries)
	f.errText = errText
	f.last = now
	return true
}
