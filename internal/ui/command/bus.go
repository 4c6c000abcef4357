package command

import (
	"context"
	"fmt"
	"time"

	"github.com/atomicstack/overlaykit/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Handler performs blocking work off the event loop and reports back with a
// message. A nil message means there is nothing to deliver.
type Handler func(ctx context.Context) tea.Msg

// Request encapsulates an action invocation.
type Request struct {
	ID      string
	Label   string
	Handler Handler
}

// Bus turns blocking work into Bubble Tea commands that share one
// cancellation scope.
type Bus struct {
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

// New initialises a command bus. A positive timeout bounds each request.
func New(timeout time.Duration) *Bus {
	ctx, cancel := context.WithCancel(context.Background())
	return &Bus{ctx: ctx, cancel: cancel, timeout: timeout}
}

// Close cancels every request still running.
func (b *Bus) Close() {
	b.cancel()
}

// Execute wraps a handler into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		ctx := b.ctx
		if b.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, b.timeout)
			defer cancel()
		}
		msg := req.Handler(ctx)
		if msg == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
