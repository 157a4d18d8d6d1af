// Package detail owns the lifecycle of the single deal detail view:
// Closed -> Opening -> Open or OpenError -> Closing -> Closed. Only one
// view is open at a time, and a fetch that completes after its view was
// closed or replaced is discarded.
package detail

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"flashdeals/internal/models"
	"flashdeals/internal/normalize"
)

// State of the detail view.
type State string

const (
	StateClosed    State = "closed"
	StateOpening   State = "opening"
	StateOpen      State = "open"
	StateOpenError State = "error"
	StateClosing   State = "closing"
)

// fetchErrorText replaces the detail content when the fetch fails; the
// overlay then carries only this panel and a close affordance.
const fetchErrorText = "Sorry, we could not load more details for this deal. Try again later."

// Fetcher loads one deal's detail record.
type Fetcher interface {
	DealDetail(ctx context.Context, dealID string) (*models.DealDetail, error)
}

// View is what the render layer shows inside the overlay.
type View struct {
	State State             `json:"state"`
	Deal  *normalize.Detail `json:"deal,omitempty"`
	Error string            `json:"error,omitempty"`
}

type Controller struct {
	fetcher    Fetcher
	normalizer *normalize.Normalizer
	closeDelay time.Duration

	// afterFunc defaults to time.AfterFunc; tests substitute it to fire
	// the deferred close by hand.
	afterFunc func(d time.Duration, f func()) *time.Timer

	mu      sync.Mutex
	state   State
	view    uuid.UUID
	dealID  string
	deal    *normalize.Detail
	errText string
}

func New(fetcher Fetcher, n *normalize.Normalizer, closeDelay time.Duration) *Controller {
	return &Controller{
		fetcher:    fetcher,
		normalizer: n,
		closeDelay: closeDelay,
		afterFunc:  time.AfterFunc,
		state:      StateClosed,
	}
}

// Open fetches and renders the detail view for one deal. The view
// enters Opening immediately; the returned view is Open or OpenError.
// It returns nil when the view was closed or replaced while the fetch
// was outstanding, in which case the response is discarded.
func (c *Controller) Open(ctx context.Context, dealID string) *View {
	c.mu.Lock()
	c.state = StateOpening
	c.view = uuid.New()
	c.dealID = dealID
	c.deal = nil
	c.errText = ""
	view := c.view
	c.mu.Unlock()

	record, err := c.fetcher.DealDetail(ctx, dealID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if view != c.view || c.dealID != dealID {
		slog.Info("Discarding detail response for a view no longer open", "dealID", dealID)
		return nil
	}

	if err != nil {
		slog.Error("Detail fetch failed", "dealID", dealID, "error", err)
		c.state = StateOpenError
		c.errText = fetchErrorText
		return c.snapshot()
	}

	d := c.normalizer.Detail(dealID, *record)
	c.state = StateOpen
	c.deal = &d
	return c.snapshot()
}

// Close deactivates the view right away and discards the rendered
// content after the close delay, matching the overlay's exit animation.
// Closing an already closed view is a no-op.
func (c *Controller) Close() *View {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateClosed || c.state == StateClosing {
		return c.snapshot()
	}

	c.state = StateClosing
	c.view = uuid.New() // invalidates any in-flight fetch
	view := c.view

	c.afterFunc(c.closeDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.view != view || c.state != StateClosing {
			return // a new open raced the deferred close
		}
		c.state = StateClosed
		c.dealID = ""
		c.deal = nil
		c.errText = ""
	})

	return c.snapshot()
}

// Current reports the view as it stands.
func (c *Controller) Current() *View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() *View {
	return &View{
		State: c.state,
		Deal:  c.deal,
		Error: c.errText,
	}
}
