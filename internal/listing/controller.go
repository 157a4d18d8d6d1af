// Package listing owns the search/filter/sort session and its
// pagination state. A session starts with NewSearch, which captures the
// parameters it was given; LoadMore reuses those captured parameters no
// matter what the inputs say by the time the user paginates.
package listing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"flashdeals/internal/cheapshark"
	"flashdeals/internal/models"
	"flashdeals/internal/normalize"
)

// Severity of a status message shown in the message region.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Status is the message region content; an empty Text clears it.
type Status struct {
	Severity Severity `json:"severity,omitempty"`
	Text     string   `json:"text,omitempty"`
}

// Params are the session parameters captured when a search starts.
type Params struct {
	Title   string `json:"title"`
	StoreID string `json:"storeID"`
	SortBy  string `json:"sortBy"`
}

// Update is the outcome of one listing query, ready for rendering.
// Append distinguishes a load-more batch from a fresh grid.
type Update struct {
	Session      string           `json:"session"`
	Cards        []normalize.Card `json:"cards"`
	Append       bool             `json:"append"`
	ShowLoadMore bool             `json:"showLoadMore"`
	Status       Status           `json:"status"`
}

// DealLister issues one page query against the upstream deals API.
type DealLister interface {
	ListDeals(ctx context.Context, q cheapshark.DealQuery) ([]models.Deal, error)
}

// Controller is safe for concurrent use; state is only ever read or
// written under the mutex, and queries run outside it.
type Controller struct {
	lister     DealLister
	normalizer *normalize.Normalizer
	pageSize   int

	mu      sync.Mutex
	session uuid.UUID
	params  Params
	page    int
}

func New(lister DealLister, n *normalize.Normalizer, pageSize int) *Controller {
	return &Controller{
		lister:     lister,
		normalizer: n,
		pageSize:   pageSize,
	}
}

// NewSearch starts a fresh session: page resets to zero, the given
// parameters become the captured session parameters, and any previous
// status is cleared by the returned update. It returns nil only when a
// newer search superseded this one while its query was in flight.
func (c *Controller) NewSearch(ctx context.Context, p Params) *Update {
	p.Title = strings.TrimSpace(p.Title)

	c.mu.Lock()
	c.session = uuid.New()
	c.params = p
	c.page = 0
	session := c.session
	c.mu.Unlock()

	return c.query(ctx, session, p, 0, false)
}

// LoadMore requests the next page using the parameters captured at the
// start of the current session. It returns nil when the session was
// replaced before the response arrived.
func (c *Controller) LoadMore(ctx context.Context) *Update {
	c.mu.Lock()
	session := c.session
	p := c.params
	page := c.page
	c.mu.Unlock()

	return c.query(ctx, session, p, page, true)
}

// Params returns the captured parameters of the current session.
func (c *Controller) Params() Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

func (c *Controller) query(ctx context.Context, session uuid.UUID, p Params, page int, isMore bool) *Update {
	q := cheapshark.DealQuery{
		SortBy:     p.SortBy,
		PageNumber: page,
		PageSize:   c.pageSize,
		StoreID:    p.StoreID,
		Title:      p.Title,
	}
	deals, err := c.lister.ListDeals(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()

	if session != c.session {
		slog.Info("Discarding listing response for superseded session", "session", session, "page", page)
		return nil
	}

	if err != nil {
		slog.Error("Listing query failed", "page", page, "error", err)
		// Previously rendered results stay in place; the page counter is
		// not advanced, so a later load-more retries the same page.
		return &Update{
			Session: session.String(),
			Append:  isMore,
			Status: Status{
				Severity: SeverityError,
				Text:     fmt.Sprintf("Error: %v. Could not load deals from the API.", err),
			},
		}
	}

	// The page counter advances after every completed query, whether or
	// not it returned results.
	c.page = page + 1

	update := &Update{
		Session:      session.String(),
		Cards:        make([]normalize.Card, 0, len(deals)),
		Append:       isMore,
		ShowLoadMore: len(deals) == c.pageSize,
	}
	for _, d := range deals {
		update.Cards = append(update.Cards, c.normalizer.Card(d))
	}

	if len(deals) == 0 && !isMore {
		if p.Title != "" {
			update.Status = Status{Severity: SeverityInfo, Text: fmt.Sprintf("No deals found for %q.", p.Title)}
		} else {
			update.Status = Status{Severity: SeverityInfo, Text: "No deals found with these filters."}
		}
	}

	slog.Info("Listing query completed", "page", page, "results", len(deals), "append", isMore)
	return update
}
