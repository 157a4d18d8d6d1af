package detail

import (
	"context"
	"errors"
	"testing"
	"time"

	"flashdeals/internal/models"
	"flashdeals/internal/normalize"
)

type mapLookup map[string]string

func (m mapLookup) Lookup(storeID string) string {
	if name, ok := m[storeID]; ok {
		return name
	}
	return "Unknown Store"
}

type mockFetcher struct {
	detail *models.DealDetail
	err    error

	// onFetch runs before the response is returned, letting tests close
	// the view while the fetch is outstanding.
	onFetch func()
}

func (m *mockFetcher) DealDetail(_ context.Context, _ string) (*models.DealDetail, error) {
	if m.onFetch != nil {
		m.onFetch()
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.detail, nil
}

// newTestController wires a controller whose deferred close runs only
// when the returned fire function is called.
func newTestController(f *mockFetcher) (*Controller, func()) {
	n := normalize.New(mapLookup{"1": "Steam"}, "https://example.com/redirect")
	c := New(f, n, 300*time.Millisecond)

	var pending func()
	c.afterFunc = func(_ time.Duration, fn func()) *time.Timer {
		pending = fn
		return nil
	}
	fire := func() {
		if pending != nil {
			pending()
			pending = nil
		}
	}
	return c, fire
}

func sampleDetail() *models.DealDetail {
	return &models.DealDetail{
		Info: models.DealInfo{Title: "Hades", SalePrice: "9.99", RetailPrice: "24.99", StoreID: "1"},
		CheaperStores: []models.CheaperStore{
			{DealID: "o1", StoreID: "7", SalePrice: "9.50"},
			{DealID: "o2", StoreID: "8", SalePrice: "9.25"},
		},
	}
}

func TestOpenSuccess(t *testing.T) {
	c, _ := newTestController(&mockFetcher{detail: sampleDetail()})

	v := c.Open(context.Background(), "deal-1")
	if v == nil {
		t.Fatal("Open returned nil")
	}
	if v.State != StateOpen {
		t.Errorf("State = %q, want open", v.State)
	}
	if v.Deal == nil || v.Deal.Title != "Hades" {
		t.Errorf("Deal = %+v", v.Deal)
	}
	if v.Error != "" {
		t.Errorf("Error = %q, want empty", v.Error)
	}
}

func TestOpenFailureThenClose(t *testing.T) {
	c, fire := newTestController(&mockFetcher{err: errors.New("timeout")})

	v := c.Open(context.Background(), "deal-1")
	if v == nil {
		t.Fatal("Open returned nil")
	}
	if v.State != StateOpenError {
		t.Errorf("State = %q, want error", v.State)
	}
	if v.Error == "" {
		t.Error("Error text is empty")
	}
	if v.Deal != nil {
		t.Errorf("Deal = %+v, want nil on failure", v.Deal)
	}

	// Close deactivates immediately, content is discarded after the delay.
	v = c.Close()
	if v.State != StateClosing {
		t.Errorf("State after Close = %q, want closing", v.State)
	}
	fire()
	v = c.Current()
	if v.State != StateClosed {
		t.Errorf("State after delay = %q, want closed", v.State)
	}
	if v.Deal != nil || v.Error != "" {
		t.Errorf("content survived close: deal=%+v error=%q", v.Deal, v.Error)
	}
}

func TestCloseDiscardsContentAfterDelayOnly(t *testing.T) {
	c, fire := newTestController(&mockFetcher{detail: sampleDetail()})

	c.Open(context.Background(), "deal-1")
	v := c.Close()
	if v.State != StateClosing {
		t.Fatalf("State = %q, want closing", v.State)
	}
	if v.Deal == nil {
		t.Error("content discarded before the close delay elapsed")
	}
	fire()
	if v := c.Current(); v.State != StateClosed || v.Deal != nil {
		t.Errorf("after delay: %+v, want closed with no content", v)
	}
}

func TestCloseWhileClosedIsNoop(t *testing.T) {
	c, fire := newTestController(&mockFetcher{detail: sampleDetail()})
	if v := c.Close(); v.State != StateClosed {
		t.Errorf("State = %q, want closed", v.State)
	}
	fire() // nothing pending; must not panic
}

func TestLateResponseDiscardedAfterClose(t *testing.T) {
	f := &mockFetcher{detail: sampleDetail()}
	c, fire := newTestController(f)

	// The view is closed while the fetch is still outstanding.
	f.onFetch = func() {
		f.onFetch = nil
		c.Close()
		fire()
	}

	if v := c.Open(context.Background(), "deal-1"); v != nil {
		t.Errorf("late response produced view %+v, want nil", v)
	}
	if v := c.Current(); v.State != StateClosed {
		t.Errorf("State = %q, want closed", v.State)
	}
}

func TestReopenDuringClosingWins(t *testing.T) {
	c, fire := newTestController(&mockFetcher{detail: sampleDetail()})

	c.Open(context.Background(), "deal-1")
	c.Close()
	// A new open lands before the deferred close fires; the close must
	// not wipe the new view.
	v := c.Open(context.Background(), "deal-2")
	if v == nil || v.State != StateOpen {
		t.Fatalf("reopen view = %+v, want open", v)
	}
	fire()
	if v := c.Current(); v.State != StateOpen {
		t.Errorf("State after stale deferred close = %q, want open", v.State)
	}
}
