package web

import (
	"context"

	"flashdeals/internal/detail"
	"flashdeals/internal/listing"
	"flashdeals/internal/stores"
)

// ListingController drives the search/pagination session.
type ListingController interface {
	NewSearch(ctx context.Context, p listing.Params) *listing.Update
	LoadMore(ctx context.Context) *listing.Update
}

// DetailController drives the deal detail overlay.
type DetailController interface {
	Open(ctx context.Context, dealID string) *detail.View
	Close() *detail.View
}

// StoreDirectory exposes the store list for the filter selector and
// the explicit reload operation.
type StoreDirectory interface {
	Load(ctx context.Context) error
	Options() []stores.Option
}
