package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/overlaykit/internal/filebrowser"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindDirectory Kind = iota
)

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Watcher polls a provider for the directory currently on screen and
// publishes each listing.
type Watcher struct {
	provider filebrowser.Provider
	interval time.Duration

	mu   sync.Mutex
	path string
	// wake interrupts the ticker after the path changes.
	wake chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that lists path every interval. An empty path
// idles the poller until SetPath is called.
func NewWatcher(provider filebrowser.Provider, path string, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		provider: provider,
		interval: interval,
		path:     path,
		wake:     make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startDirectoryPoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Path reports the directory being watched.
func (w *Watcher) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// SetPath switches the watched directory and polls it promptly.
func (w *Watcher) SetPath(path string) {
	w.mu.Lock()
	changed := w.path != path
	w.path = path
	w.mu.Unlock()
	if !changed {
		return
	}
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Stop cancels the watcher. The poller exits after its current fetch
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller goroutine has exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startDirectoryPoller() {
	filter := newListingFilter(unchangedResend)
	w.wg.Add(1)
	go w.poll(KindDirectory, func(ctx context.Context) (interface{}, error) {
		path := w.Path()
		if path == "" {
			return nil, errIdle
		}
		listing, err := w.provider.List(ctx, path)
		if !filter.allow(listing, err) {
			return nil, errUnchanged
		}
		return listing, err
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		if skipped(err) {
			return true
		}
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
		case <-w.wake:
		}
		if !emit() {
			return
		}
	}
}
