package stores

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"flashdeals/internal/models"
)

// UnknownStore is the placeholder name for identifiers the directory has
// never seen, including every lookup made before a successful load.
const UnknownStore = "Unknown Store"

// Lister fetches the full upstream store list.
type Lister interface {
	ListStores(ctx context.Context) ([]models.Store, error)
}

// Directory maps store identifiers to display names. Load replaces the
// whole mapping in one swap, so concurrent readers never observe a
// partially populated directory.
type Directory struct {
	lister Lister

	mu    sync.RWMutex
	names map[string]string
}

func New(lister Lister) *Directory {
	return &Directory{
		lister: lister,
		names:  map[string]string{},
	}
}

// Load fetches the store list, keeps only active stores and swaps the
// directory contents. A failed load keeps whatever was there before and
// is reported as a non-fatal warning to the caller.
func (d *Directory) Load(ctx context.Context) error {
	list, err := d.lister.ListStores(ctx)
	if err != nil {
		slog.Warn("Store list load failed, keeping previous directory", "error", err)
		return fmt.Errorf("failed to load store list: %w", err)
	}

	names := make(map[string]string, len(list))
	for _, s := range list {
		if s.IsActive != 1 {
			continue
		}
		names[s.StoreID] = s.StoreName
	}

	d.mu.Lock()
	d.names = names
	d.mu.Unlock()

	slog.Info("Store directory loaded", "active", len(names), "total", len(list))
	return nil
}

// Lookup is total: unknown identifiers resolve to the placeholder name.
func (d *Directory) Lookup(storeID string) string {
	d.mu.RLock()
	name, ok := d.names[storeID]
	d.mu.RUnlock()
	if !ok {
		return UnknownStore
	}
	return name
}

// Option is one entry for the store filter selector.
type Option struct {
	StoreID   string `json:"storeID"`
	StoreName string `json:"storeName"`
}

// Options lists the active stores sorted by display name.
func (d *Directory) Options() []Option {
	d.mu.RLock()
	opts := make([]Option, 0, len(d.names))
	for id, name := range d.names {
		opts = append(opts, Option{StoreID: id, StoreName: name})
	}
	d.mu.RUnlock()

	sort.Slice(opts, func(i, j int) bool { return opts[i].StoreName < opts[j].StoreName })
	return opts
}
