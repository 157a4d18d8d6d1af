// Package cheapshark is a thin client for the CheapShark deals API.
// It only decodes wire shapes; all fallback logic for partial data
// lives in the normalizer.
package cheapshark

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"flashdeals/internal/models"
)

// API is the slice of the upstream service this application consumes.
type API interface {
	ListStores(ctx context.Context) ([]models.Store, error)
	ListDeals(ctx context.Context, q DealQuery) ([]models.Deal, error)
	DealDetail(ctx context.Context, dealID string) (*models.DealDetail, error)
}

// DealQuery carries the parameters of one /deals page request. StoreID
// and Title are appended only when non-empty.
type DealQuery struct {
	SortBy     string
	PageNumber int
	PageSize   int
	StoreID    string
	Title      string
}

// Values encodes the query the way the upstream expects: sort key and
// paging always present, filters only when set.
func (q DealQuery) Values() url.Values {
	v := url.Values{}
	v.Set("sortBy", q.SortBy)
	v.Set("pageNumber", strconv.Itoa(q.PageNumber))
	v.Set("pageSize", strconv.Itoa(q.PageSize))
	if q.StoreID != "" {
		v.Set("storeID", q.StoreID)
	}
	if q.Title != "" {
		v.Set("title", q.Title)
	}
	return v
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListStores fetches the full store list, active and inactive alike.
func (c *Client) ListStores(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	if err := c.getJSON(ctx, c.baseURL+"/stores", &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

// ListDeals fetches one page of deals for the given query.
func (c *Client) ListDeals(ctx context.Context, q DealQuery) ([]models.Deal, error) {
	var deals []models.Deal
	if err := c.getJSON(ctx, c.baseURL+"/deals?"+q.Values().Encode(), &deals); err != nil {
		return nil, err
	}
	return deals, nil
}

// DealDetail fetches the detail record for a single deal identifier.
func (c *Client) DealDetail(ctx context.Context, dealID string) (*models.DealDetail, error) {
	v := url.Values{}
	v.Set("id", dealID)
	var detail models.DealDetail
	if err := c.getJSON(ctx, c.baseURL+"/deals?"+v.Encode(), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %s from %s: %s", resp.Status, rawURL, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", rawURL, err)
	}
	return nil
}
